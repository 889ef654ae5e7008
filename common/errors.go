package common

import (
	"errors"
	"fmt"
)

var ErrorInvalidValue = errors.New("invalid value")

// InvalidInputError reports a sample or argument the density computation cannot use.
// It unwraps to ErrorInvalidValue.
type InvalidInputError struct {
	Reason string
}

func NewInvalidInputError(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InvalidInputError) Unwrap() error {
	return ErrorInvalidValue
}
