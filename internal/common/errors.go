package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound              = errors.New("requested resource not found")
	ErrUnauthorized          = errors.New("unauthorized access")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("forbidden access")
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateIdentifier   = errors.New("username or email already exists")
	ErrDuplicateRequest      = errors.New("you already have a request for this project")
	ErrDuplicateCollaborator = errors.New("user is already a collaborator on this project")
	ErrInternalServer        = errors.New("internal server error")
)

var publicSentinels = []error{
	ErrNotFound,
	ErrInvalidCredentials,
	ErrUnauthorized,
	ErrForbidden,
	ErrDuplicateIdentifier,
	ErrDuplicateRequest,
	ErrDuplicateCollaborator,
}

// Postgres SQLSTATE codes the repositories translate.
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
	PgCheckViolation      = "23514"
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateIdentifier) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrDuplicateCollaborator) {
		return http.StatusBadRequest
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgUniqueViolation, PgCheckViolation, PgForeignKeyViolation:
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// IsPgCode reports whether err wraps a Postgres error with the given SQLSTATE.
func IsPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// PgConstraint returns the violated constraint name, or "".
func PgConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// Validationf wraps ErrValidation with a caller-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
