package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors for Place fields. All wrap ErrValidation.
var (
	ErrEmptyPlaceID        = fmt.Errorf("%w: place ID cannot be empty", ErrValidation)
	ErrEmptyPlaceTitle     = fmt.Errorf("%w: place title cannot be empty", ErrValidation)
	ErrDescriptionTooShort = fmt.Errorf("%w: place description must be at least 5 characters long", ErrValidation)
	ErrEmptyPlaceAddress   = fmt.Errorf("%w: place address cannot be empty", ErrValidation)
	ErrEmptyPlaceCreator   = fmt.Errorf("%w: place creator cannot be empty", ErrValidation)
)

// minDescriptionLen is the minimum accepted description length.
const minDescriptionLen = 5

// Coordinates is a geographic point derived from a place's address.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place represents a point of interest created by exactly one user.
// CreatorID references the owning user; the inverse reference lives in
// that user's PlaceIDs list and the two are kept consistent by the place
// service's transactional create/delete paths.
type Place struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    Coordinates `json:"location"`
	ImagePath   string      `json:"image"`
	CreatorID   uuid.UUID   `json:"creator"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewPlace creates a new Place owned by creatorID. It generates a new UUID
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewPlace(
	creatorID uuid.UUID,
	title, description, address string,
	location Coordinates,
	imagePath string,
) (*Place, error) {
	now := time.Now().UTC()
	place := &Place{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Address:     address,
		Location:    location,
		ImagePath:   imagePath,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := place.Validate(); err != nil {
		return nil, err
	}

	return place, nil
}

// Validate checks if the Place has valid data.
// Returns an error if any field fails validation.
func (p *Place) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPlaceID
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyPlaceTitle
	}

	if len(p.Description) < minDescriptionLen {
		return ErrDescriptionTooShort
	}

	if strings.TrimSpace(p.Address) == "" {
		return ErrEmptyPlaceAddress
	}

	if p.CreatorID == uuid.Nil {
		return ErrEmptyPlaceCreator
	}

	return nil
}

// ApplyUpdate sets the mutable fields of a place. Address, coordinates and
// image are immutable after creation; only title and description change.
// Returns an error if the resulting place would be invalid.
func (p *Place) ApplyUpdate(title, description string) error {
	updated := *p
	updated.Title = title
	updated.Description = description
	if err := updated.Validate(); err != nil {
		return err
	}

	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	return nil
}
