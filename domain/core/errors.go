package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural errors: the fixed positional layout of the input table is violated
	ErrMalformedTable = errors.New("malformed input table")

	// Input errors
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyDataset      = errors.New("dataset has no data rows")

	// Output errors
	ErrNoRecords = errors.New("no comparison records to render")
)

// NewMalformedTableError wraps ErrMalformedTable with the violated constraint
func NewMalformedTableError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedTable, fmt.Sprintf(format, args...))
}

// NewUnsupportedFormatError reports a dataset file type the loader cannot read
func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Error checking helpers
func IsMalformedTableError(err error) bool {
	return errors.Is(err, ErrMalformedTable)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyDataset)
}
