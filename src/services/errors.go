// backend/src/services/errors.go
package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/username/masdompet/backend/src/security/validation"
)

// Define common service errors
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", validation.ErrValidationFailed)
	ErrImmutable     = errors.New("record is managed by another operation and cannot be edited")
	ErrParsingFailed = errors.New("csv parsing failed")
)

// notFound converts sql.ErrNoRows into ErrNotFound and wraps anything else
// as a store failure.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return fmt.Errorf("error loading %s %d: %w", entity, id, err)
}

// missingUnless returns ErrNotFound when a write touched no row.
func missingUnless(ok bool, entity string, id int64) error {
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return nil
}
