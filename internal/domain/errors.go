package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidStatus is returned when a ferment status is outside the
	// closed set of lifecycle states.
	ErrInvalidStatus = errors.New("invalid ferment status")

	// ErrInvalidType is returned when a ferment type is outside the closed
	// set of fermentation categories.
	ErrInvalidType = errors.New("invalid ferment type")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")
)
