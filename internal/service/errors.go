// Package service provides application-level services coordinating the
// ferment store, the reminder scheduler, and user accounts.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or a wrong password. Deliberately indistinguishable from the outside.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
