// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	DefaultMaxStringLength = 255
	MaxNameLength          = 120
	MaxDescriptionLength   = 1024
	MaxIconLength          = 16
	MaxCoverImageLength    = 2048
)

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateRequiredText combines the not-empty and max-length checks.
func ValidateRequiredText(s string, maxLength int, fieldName string) error {
	if err := ValidateStringNotEmpty(s, fieldName); err != nil {
		return err
	}
	return ValidateStringMaxLength(s, maxLength, fieldName)
}

// ValidatePositiveAmount rejects zero and negative amounts.
func ValidatePositiveAmount(amount int64, fieldName string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero, got %d", ErrValidationFailed, fieldName, amount)
	}
	return nil
}

// ValidateNonNegativeAmount rejects negative amounts.
func ValidateNonNegativeAmount(amount int64, fieldName string) error {
	if amount < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %d", ErrValidationFailed, fieldName, amount)
	}
	return nil
}

// ValidateDateRequired rejects the zero time.
func ValidateDateRequired(t time.Time, fieldName string) error {
	if t.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrValidationFailed, fieldName)
	}
	return nil
}

// DateLayouts are the date formats accepted from clients and CSV files.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// ParseDate parses s using the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ValidateDateString checks that s is a date in one of DateLayouts.
func ValidateDateString(s, fieldName string) (time.Time, error) {
	if err := ValidateStringNotEmpty(s, fieldName); err != nil {
		return time.Time{}, err
	}
	t, ok := ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s ('%s') is not a valid date (expected YYYY-MM-DD)", ErrValidationFailed, fieldName, s)
	}
	return t, nil
}
