package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/geocoding"
	"github.com/phrazzld/roam-api/internal/platform/storage"
	"github.com/phrazzld/roam-api/internal/service"
	"github.com/phrazzld/roam-api/internal/service/auth"
	"github.com/phrazzld/roam-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"place not found", service.ErrPlaceNotFound, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"store place not found", store.ErrPlaceNotFound, http.StatusNotFound},
		{"email taken", service.ErrEmailTaken, http.StatusUnprocessableEntity},
		{"validation", domain.ErrValidation, http.StatusUnprocessableEntity},
		{"empty place title", domain.ErrEmptyPlaceTitle, http.StatusUnprocessableEntity},
		{"empty place address", domain.ErrEmptyPlaceAddress, http.StatusUnprocessableEntity},
		{"short description", domain.ErrDescriptionTooShort, http.StatusUnprocessableEntity},
		{"empty user name", domain.ErrEmptyUserName, http.StatusUnprocessableEntity},
		{"short password", domain.ErrPasswordTooShort, http.StatusUnprocessableEntity},
		{"invalid id", domain.ErrInvalidID, http.StatusUnprocessableEntity},
		{"address not found", geocoding.ErrAddressNotFound, http.StatusUnprocessableEntity},
		{"unsupported image", storage.ErrUnsupportedType, http.StatusUnprocessableEntity},
		{"provider unavailable", geocoding.ErrProviderUnavailable, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not owned", fmt.Errorf("context: %w", service.ErrNotOwned), http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"not owned", service.ErrNotOwned, "You are not allowed to edit this place."},
		{"place not found", service.ErrPlaceNotFound, "Could not find place for the provided id."},
		{"email taken", service.ErrEmailTaken, "User exists already, please login instead."},
		{"credentials", auth.ErrInvalidCredentials, "Invalid credentials, could not log you in."},
		{"address not found", geocoding.ErrAddressNotFound, "Could not find location for the specified address."},
		{"empty place title", domain.ErrEmptyPlaceTitle, "Invalid inputs passed, please check your data."},
		{
			"internal detail is hidden",
			errors.New("pq: connection to postgres://user:pass@db failed"),
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag",
	)
	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Email")
	assert.NotContains(t, msg, "LoginRequest")

	generic := SanitizeValidationError(errors.New("some other failure"))
	assert.Equal(t, "Invalid inputs passed, please check your data.", generic)
}
