package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store and domain errors are wrapped with context and keep their identity
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInactiveAccount indicates the authenticated user has been deactivated.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInactiveAccount = errors.New("user account is inactive")

	// ErrAuthorChange indicates a non-superuser tried to file a todo under
	// another user's name.
	// API layer should map this to HTTP 403 Forbidden.
	ErrAuthorChange = errors.New("todos can only be authored as yourself")
)
