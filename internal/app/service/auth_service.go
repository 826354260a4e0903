package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/common/security"
	"devpair/internal/common/validation"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/logger"
	"devpair/internal/platform/metrics"
	"errors"
	"fmt"
	"strings"
	"time"
)

type AuthService struct {
	userRepo    repository.UserRepository
	revocations security.RevocationStore
	bcryptCost  int
}

func NewAuthService(userRepo repository.UserRepository, revocations security.RevocationStore, bcryptCost int) *AuthService {
	return &AuthService{userRepo: userRepo, revocations: revocations, bcryptCost: bcryptCost}
}

type RegisterRequest struct {
	Username        string                 `json:"username" validate:"required,max=80"`
	Email           string                 `json:"email" validate:"required,email,max=120"`
	FullName        string                 `json:"full_name" validate:"required,max=100"`
	Password        string                 `json:"password" validate:"required,max=72"`
	ExperienceLevel *model.ExperienceLevel `json:"experience_level"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         *model.User `json:"user,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:        req.Username,
		Email:           req.Email,
		FullName:        req.FullName,
		PasswordHash:    hashedPassword,
		ExperienceLevel: model.ExperienceBeginner,
		IsAvailable:     true,
	}
	if req.ExperienceLevel != nil {
		user.ExperienceLevel = *req.ExperienceLevel
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	metrics.IncDomainEvent("user_registered")
	logger.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user registered")

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		metrics.IncAuthFailure("invalid_payload")
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			metrics.IncAuthFailure("unknown_user")
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.IncAuthFailure("bad_password")
		return nil, common.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*AuthResponse, error) {
	access, err := security.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := security.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &AuthResponse{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Logout revokes the token id until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Refresh mints a new access token. The refresh token itself stays valid.
func (s *AuthService) Refresh(ctx context.Context, userID int64) (*AuthResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	access, err := security.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{AccessToken: access}, nil
}

func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revocations.IsRevoked(ctx, jti)
}
