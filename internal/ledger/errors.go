package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input the caller must fix. Nothing was written.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced biller or bill does not exist
	// for the owner. It never distinguishes "not yours" from "does not exist".
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a concurrent modification kept winning
	// after retries. The whole operation may be retried.
	ErrConflict = errors.New("conflict")

	// ErrStorage wraps transaction and connection failures.
	ErrStorage = errors.New("storage failure")
)

// ValidationError describes one invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
