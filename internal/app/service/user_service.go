package service

import (
	"context"
	"devpair/internal/common"
	"devpair/internal/common/validation"
	"devpair/internal/domain/model"
	"devpair/internal/domain/repository"
	"fmt"
	"strings"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, patch model.UserProfilePatch) (*model.User, error) {
	if err := validation.ValidateStruct(&patch); err != nil {
		return nil, err
	}
	if patch.FullName != nil && strings.TrimSpace(*patch.FullName) == "" {
		return nil, common.Validationf("full_name cannot be empty")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	patch.Apply(user)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
