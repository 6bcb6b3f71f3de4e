// Package service contains the application use cases. It orchestrates
// interactions between domain objects and the repositories defined in
// internal/store, applying transactional boundaries where an operation
// must update a place and its creator's reference list together.
//
// Services receive dependencies through constructor injection and return
// sentinel errors (or wrapping service error types) that the API layer
// maps to HTTP status codes.
package service
