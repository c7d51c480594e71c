package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when a dataset is missing its header or
	// contains a line that is not two integers.
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyInput is returned when a prediction is requested with no products.
	ErrEmptyInput = errors.New("at least one input product is required")

	// ErrNotTrained is returned when the model has no associations to query.
	ErrNotTrained = errors.New("model is not trained")
)

// MalformedInputError identifies the dataset line that failed to parse.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
}

// Is reports ErrMalformedInput as a match so callers can use errors.Is.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
