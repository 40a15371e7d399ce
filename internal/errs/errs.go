package errs

import (
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrSubmissionInProgress = errors.New("order submission already in progress")
var ErrNotGuest = errors.New("session is not a guest session")
var ErrNoSession = errors.New("no session")

// FieldError is a validation failure caught before any network call.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func Validation(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// TransportError means the request to the backend never completed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectedError is a non-2xx answer from the backend.
type RejectedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// ContractError is a 2xx answer missing a field the caller depends on.
type ContractError struct {
	Op      string
	Field   string
	Message string
}

func (e *ContractError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: response has no %s", e.Op, e.Field)
}
