package validation

import (
	"errors"
	"testing"

	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last+tag@sub.example.org"}
	for _, email := range valid {
		if err := Email(email); err != nil {
			t.Errorf("Email(%q) should pass: %v", email, err)
		}
	}

	if err := Email(""); !errors.Is(err, apperrors.ErrEmptyField) {
		t.Errorf("Empty email should report ErrEmptyField, got %v", err)
	}

	invalid := []string{"plainaddress", "a@b", "@example.com", "a b@c.com"}
	for _, email := range invalid {
		if err := Email(email); !errors.Is(err, apperrors.ErrInvalidEmail) {
			t.Errorf("Email(%q) should report ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("long-enough-pass"); err != nil {
		t.Errorf("Valid password should pass: %v", err)
	}
	if err := Password("short"); !errors.Is(err, apperrors.ErrInvalidPassword) {
		t.Errorf("Short password should report ErrInvalidPassword, got %v", err)
	}
	if err := Password(""); !errors.Is(err, apperrors.ErrEmptyField) {
		t.Errorf("Empty password should report ErrEmptyField, got %v", err)
	}
}

func TestFullName(t *testing.T) {
	if err := FullName("A B"); err != nil {
		t.Errorf("Valid name should pass: %v", err)
	}
	if err := FullName("x"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("One-letter name should fail, got %v", err)
	}
	if err := FullName("   "); !errors.Is(err, apperrors.ErrEmptyField) {
		t.Errorf("Blank name should report ErrEmptyField, got %v", err)
	}
}
