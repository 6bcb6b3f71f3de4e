package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to
// HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. API layer maps this to 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrPlaceNotFound indicates the requested place does not exist.
	// API layer maps this to 404 Not Found.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrUserNotFound indicates the requested user does not exist.
	// API layer maps this to 404 Not Found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates signup was attempted with an email that
	// already belongs to a user. API layer maps this to 422.
	ErrEmailTaken = errors.New("user exists already")
)
