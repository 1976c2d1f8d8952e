package converter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal conversion error.
type ErrorKind string

const (
	ErrorKindNilInput       ErrorKind = "nil_input"
	ErrorKindRecursionDepth ErrorKind = "recursion_depth"
)

// Sentinels matched with errors.Is.
var (
	ErrNilProject             = errors.New("nil project")
	ErrRecursionDepthExceeded = errors.New("recursion depth exceeded")
)

// ConversionError aborts a conversion. Recoverable problems never produce
// one; they are reported through the diagnostics sink instead.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the sentinel or cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a ConversionError.
func NewConversionError(kind ErrorKind, message string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Message: message, Err: err}
}

// IsFatal reports whether err aborted a conversion.
func IsFatal(err error) bool {
	var conversionErr *ConversionError
	return errors.As(err, &conversionErr)
}
