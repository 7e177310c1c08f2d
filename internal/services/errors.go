package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy shared by every service. Handlers map these to status codes with
// errors.Is; authorization errors live in the authz package.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage error")
)

var (
	ErrUserNotFound     = notFound("user")
	ErrCategoryNotFound = notFound("category")
	ErrTagNotFound      = notFound("tag")
	ErrQuestionNotFound = notFound("question")
	ErrAnswerNotFound   = notFound("answer")

	ErrEmailTaken    = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrCategoryInUse = fmt.Errorf("category still has questions: %w", ErrConflict)

	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrPasswordTooShort        = fmt.Errorf("password too short: %w", ErrValidation)
	ErrTagSuggesterUnavailable = errors.New("tag suggestion is not configured")
)

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps a repository error onto the taxonomy. notFoundErr is returned for
// gorm.ErrRecordNotFound; op names the failed operation for everything else.
func translate(err error, notFoundErr error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundErr
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("failed to %s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%w: failed to %s: %w", ErrStorage, op, err)
	}
}
