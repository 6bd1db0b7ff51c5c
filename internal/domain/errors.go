package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// FetchError is a failed backend request: either a transport failure or
// a non-success envelope. Message is human-readable; Code is the machine
// code from the envelope when the server provided one.
type FetchError struct {
	Message string
	Code    string
	Status  int
}

func (e *FetchError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// NewFetchError wraps an arbitrary error as a FetchError.
func NewFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Message: err.Error()}
}

// ValidationError is malformed user input caught before any network
// call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
