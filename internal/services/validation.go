package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/qa-forum-api/internal/constants"
)

// validate checks service input independently of the HTTP binding layer.
var validate = validator.New(validator.WithRequiredStructEnabled())

// requireText trims value and checks it is non-empty and at most max runes.
func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if err := validate.Var(value, "required"); err != nil {
		return "", validationError("%s is required", field)
	}
	if err := validate.Var(value, fmt.Sprintf("max=%d", max)); err != nil {
		return "", validationError("%s must be at most %d characters", field, max)
	}
	return value, nil
}

// optionalImage normalizes an image reference; blank means none.
func optionalImage(image *string) (*string, error) {
	if image == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*image)
	if value == "" {
		return nil, nil
	}
	if err := validate.Var(value, fmt.Sprintf("max=%d", constants.MaxImageLength)); err != nil {
		return nil, validationError("image must be at most %d characters", constants.MaxImageLength)
	}
	return &value, nil
}

// normalizeEmail lowercases and trims email and checks its syntax and length.
func normalizeEmail(email string) (string, error) {
	email, err := requireText("email", strings.ToLower(email), constants.MaxEmailLength)
	if err != nil {
		return "", err
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", validationError("email is not a valid address")
	}
	return email, nil
}

func checkPassword(password string) error {
	if err := validate.Var(password, fmt.Sprintf("min=%d", constants.MinPasswordLength)); err != nil {
		return ErrPasswordTooShort
	}
	return nil
}
