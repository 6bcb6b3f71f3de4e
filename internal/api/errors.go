package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/roam-api/internal/api/shared"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/geocoding"
	"github.com/phrazzld/roam-api/internal/platform/storage"
	"github.com/phrazzld/roam-api/internal/service"
	"github.com/phrazzld/roam-api/internal/service/auth"
	"github.com/phrazzld/roam-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Authentication failures are 401, ownership failures 403, missing
// resources 404 and rejected input 422.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrPlaceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrPlaceNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Rejected input
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, geocoding.ErrAddressNotFound),
		errors.Is(err, storage.ErrUnsupportedType):
		return http.StatusUnprocessableEntity

	// Upstream failures
	case errors.Is(err, geocoding.ErrProviderUnavailable):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal detail never leaves through this function.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Authentication failed!"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials, could not log you in."

	case errors.Is(err, service.ErrNotOwned):
		return "You are not allowed to edit this place."

	case errors.Is(err, service.ErrPlaceNotFound),
		errors.Is(err, store.ErrPlaceNotFound):
		return "Could not find place for the provided id."

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return "Could not find user for the provided id."

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return "User exists already, please login instead."

	case errors.Is(err, geocoding.ErrAddressNotFound):
		return "Could not find location for the specified address."

	case errors.Is(err, geocoding.ErrProviderUnavailable):
		return "Could not resolve the address, please try again later."

	case errors.Is(err, storage.ErrUnsupportedType):
		return "Invalid image type, only PNG and JPEG are accepted."

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id format."

	case errors.Is(err, domain.ErrValidation):
		return "Invalid inputs passed, please check your data."

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes
// the error response. An empty overrideMessage uses the mapped message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)
	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError converts a validator error into a short
// user-facing message without echoing submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()
	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				if len(fieldParts) >= 5 {
					return "Invalid " + field + ": " + validationTagMessage(fieldParts[3])
				}
				return "Invalid " + field
			}
		}
	}
	return "Invalid inputs passed, please check your data."
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
