package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID indicates that an identifier is not 24 hexadecimal characters
	ErrInvalidID = errors.New("invalid id")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrPersistence indicates a storage-layer failure (connectivity, timeout, driver fault)
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors lists every violated constraint of a record, ordered by field.
type ValidationErrors []*ValidationError

// Error joins all violations into a single message.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true for ValidationErrors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// fromOzzo converts ozzo-validation field errors into ValidationErrors.
// Internal (non-validation) errors are returned unchanged.
func fromOzzo(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make(ValidationErrors, 0, len(fields))
	for _, f := range fields {
		var ie validation.InternalError
		if errors.As(errs[f], &ie) {
			return ie.InternalError()
		}
		out = append(out, &ValidationError{Field: f, Message: errs[f].Error()})
	}
	return out
}
