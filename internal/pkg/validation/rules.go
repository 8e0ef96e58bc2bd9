package validation

import (
	"regexp"
	"strings"

	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// Required checks that a field is non-empty after trimming
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewCustomError(apperrors.ErrEmptyField, field+" is required")
	}
	return nil
}

// Email checks the email format
func Email(value string) error {
	if err := Required("email", value); err != nil {
		return err
	}
	if !CompiledPatterns.Email.MatchString(value) {
		return apperrors.NewCustomError(apperrors.ErrInvalidEmail, "email format is invalid")
	}
	return nil
}

// Password checks the password against the minimum length rule
func Password(value string) error {
	if err := Required("password", value); err != nil {
		return err
	}
	if len(value) < PasswordMinLength {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must be at least 8 characters")
	}
	return nil
}

// FullName checks the display name length bounds
func FullName(value string) error {
	if err := Required("name", value); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < NameMinLength || len(trimmed) > NameMaxLength {
		return apperrors.NewValidationError("name must be between 2 and 100 characters")
	}
	return nil
}
