package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	TokenAuth *jwtauth.JWTAuth

	accessTTL  = 15 * time.Minute
	refreshTTL = 30 * 24 * time.Hour
)

func InitJWT(secret []byte, access, refresh time.Duration) {
	TokenAuth = jwtauth.New("HS256", secret, nil)
	if access > 0 {
		accessTTL = access
	}
	if refresh > 0 {
		refreshTTL = refresh
	}
}

// AccessTTL is the lifetime of newly issued access tokens.
func AccessTTL() time.Duration {
	return accessTTL
}

func GenerateAccessToken(userID int64) (string, error) {
	return generateToken(userID, TokenTypeAccess, accessTTL)
}

func GenerateRefreshToken(userID int64) (string, error) {
	return generateToken(userID, TokenTypeRefresh, refreshTTL)
}

func generateToken(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"jti":  uuid.NewString(),
		"type": tokenType,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware and handlers.
func GetUserIDFromClaims(claims map[string]interface{}) (int64, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("sub claim is missing or not a string")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("sub claim is not a valid user id")
	}
	return id, nil
}

func GetTokenTypeFromClaims(claims map[string]interface{}) (string, error) {
	tokenType, ok := claims["type"].(string)
	if !ok {
		return "", errors.New("type claim is missing or not a string")
	}
	return tokenType, nil
}

func GetJTIFromClaims(claims map[string]interface{}) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", errors.New("jti claim is missing or not a string")
	}
	return jti, nil
}

// GetExpiryFromClaims accepts both the decoded time form and raw unix seconds.
func GetExpiryFromClaims(claims map[string]interface{}) (time.Time, error) {
	switch exp := claims["exp"].(type) {
	case time.Time:
		return exp, nil
	case float64:
		return time.Unix(int64(exp), 0), nil
	case int64:
		return time.Unix(exp, 0), nil
	case int:
		return time.Unix(int64(exp), 0), nil
	default:
		return time.Time{}, errors.New("exp claim is missing or malformed")
	}
}
