// Package common defines sentinel errors shared by the server and client
// layers of gophauth. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrUndefinedTable = errors.New("undefined table")
	ErrDuplicateKey   = errors.New("duplicate key")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// ErrorConfiguration means the store connection setting is absent.
	ErrorConfiguration = errors.New("store is not configured")
)
