package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
)

// PlaceStore defines the interface for place data persistence.
type PlaceStore interface {
	// Create saves a new place to the store.
	// Returns validation errors from the domain Place if data is invalid.
	Create(ctx context.Context, place *domain.Place) error

	// GetByID retrieves a place by its unique ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// FindByCreator returns all places created by the given user, newest
	// first. Returns an empty slice (not an error) when the user owns no
	// places or does not exist.
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Place, error)

	// Update persists the mutable fields (title, description) of an
	// existing place. Returns ErrPlaceNotFound if the place does not exist.
	Update(ctx context.Context, place *domain.Place) error

	// Delete removes a place from the store by its ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PlaceStore bound to the provided transaction, so
	// multiple operations can participate in one atomic commit.
	WithTx(tx *sql.Tx) PlaceStore
}
