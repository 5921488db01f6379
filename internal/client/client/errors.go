package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// TransportError reports that no usable answer came back: the server could
// not be reached (Status 0) or its body was not JSON.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnavailable for connection failures.
func (e *TransportError) Is(target error) bool {
	return target == ErrUnavailable && e.Status == 0
}

// ApplicationError is a failure the server reported in a well-formed body.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is matches ErrUnauthorized for 401 answers.
func (e *ApplicationError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
