package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
)

// Common request/response structures

// SignupRequest defines the form fields for the user signup endpoint.
// The body is multipart/form-data so an avatar image can ride along.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"userId"`

	// Email is the authenticated user's email address
	Email string `json:"email"`

	// Token is the JWT access token used for API authorization
	Token string `json:"token"`
}

// CreatePlaceRequest defines the form fields for the place creation
// endpoint. The body is multipart/form-data carrying the place image.
type CreatePlaceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
	Address     string `json:"address"     validate:"required"`
}

// UpdatePlaceRequest defines the payload for the place update endpoint.
// Only the title and description of a place can change after creation.
type UpdatePlaceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// PlaceResponse is the wire form of a single place.
type PlaceResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Location    domain.Coordinates `json:"location"`
	Image       string             `json:"image"`
	Creator     uuid.UUID          `json:"creator"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// UserResponse is the wire form of a single user.
type UserResponse struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Image  string      `json:"image"`
	Places []uuid.UUID `json:"places"`
}

// DeleteResponse acknowledges a successful deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// NewPlaceResponse converts a domain place to its wire form.
func NewPlaceResponse(place *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location:    place.Location,
		Image:       place.ImagePath,
		Creator:     place.CreatorID,
		CreatedAt:   place.CreatedAt,
	}
}

// NewPlaceListResponse converts a slice of domain places to wire form.
// It always returns a non-nil slice so empty lists serialize as [].
func NewPlaceListResponse(places []*domain.Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, place := range places {
		out = append(out, NewPlaceResponse(place))
	}
	return out
}

// NewUserResponse converts a domain user to its wire form.
func NewUserResponse(user *domain.User) UserResponse {
	places := user.PlaceIDs
	if places == nil {
		places = []uuid.UUID{}
	}
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Image:  user.ImagePath,
		Places: places,
	}
}

// NewUserListResponse converts a slice of domain users to wire form.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
