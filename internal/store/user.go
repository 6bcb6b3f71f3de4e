package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext never reaches the store layer.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including the
	// place-reference list. Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users. Password hashes are populated; callers must
	// not serialize them (the domain User already hides them from JSON).
	List(ctx context.Context) ([]*domain.User, error)

	// AppendPlace adds placeID to the user's place-reference list.
	// Returns ErrUserNotFound if the user does not exist. Appending an ID
	// that is already present is a no-op at the set level.
	AppendPlace(ctx context.Context, userID, placeID uuid.UUID) error

	// RemovePlace removes placeID from the user's place-reference list.
	// Returns ErrUserNotFound if the user does not exist. Removing an ID
	// that is absent is a no-op.
	RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction, so
	// multiple operations can participate in one atomic commit. The
	// transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
