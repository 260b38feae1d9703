package models

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrInvalidPayload marks a server response that does not match the
	// expected shape.
	ErrInvalidPayload = errors.New("invalid payload")
)
