package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Precondition errors
	ErrInsufficientColumns = errors.New("at least two numeric columns are required")
	ErrNotNumeric          = errors.New("column is not numeric")
	ErrInvalidArgument     = errors.New("invalid argument")

	// Table shape errors
	ErrDuplicateColumn   = errors.New("duplicate column name")
	ErrRaggedTable       = errors.New("columns have unequal lengths")
	ErrEmptyColumnName   = errors.New("column name cannot be empty")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewNotNumericError(name string) error {
	return fmt.Errorf("%w: %q", ErrNotNumeric, name)
}

func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewInsufficientColumnsError(got int) error {
	return fmt.Errorf("%w (got %d)", ErrInsufficientColumns, got)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionError reports errors the shell should surface as a warning
// for the offending request rather than a failure of the whole upload.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrInsufficientColumns) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrInvalidArgument)
}

func IsTableShapeError(err error) bool {
	return errors.Is(err, ErrDuplicateColumn) ||
		errors.Is(err, ErrRaggedTable) ||
		errors.Is(err, ErrEmptyColumnName)
}
