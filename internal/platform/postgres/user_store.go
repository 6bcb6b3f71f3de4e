package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/logger"
	"github.com/phrazzld/roam-api/internal/store"
)

// UserStore implements store.UserStore using a PostgreSQL database.
//
// The place_ids column is a uuid[] holding the user's place-reference
// list. There is deliberately no foreign key between it and the places
// table; consistency is maintained transactionally by the service layer.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
// It accepts a database connection or transaction managed by the caller.
// If logger is nil, the default logger is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists if the email is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO users (id, name, email, hashed_password, image_path, place_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::uuid[], $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.ImagePath,
		formatUUIDArray(user.PlaceIDs),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

const userColumns = `id, name, email, hashed_password, image_path, place_ids, created_at, updated_at`

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return users, nil
}

// AppendPlace implements store.UserStore.AppendPlace. The append is
// guarded against duplicates so the list keeps set semantics.
func (s *UserStore) AppendPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET place_ids = array_append(place_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(place_ids))
	`
	result, err := s.db.ExecContext(ctx, query, userID, placeID)
	if err != nil {
		log.Error("failed to append place reference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("place_id", placeID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the user is gone or the reference already exists;
		// distinguish so a missing user fails the enclosing transaction.
		if _, err := s.GetByID(ctx, userID); err != nil {
			return err
		}
		log.Debug("place reference already present",
			slog.String("user_id", userID.String()),
			slog.String("place_id", placeID.String()))
	}
	return nil
}

// RemovePlace implements store.UserStore.RemovePlace.
func (s *UserStore) RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET place_ids = array_remove(place_ids, $2), updated_at = now()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, userID, placeID)
	if err != nil {
		log.Error("failed to remove place reference",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("place_id", placeID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "user"); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *UserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var placeIDs []byte

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.ImagePath,
		&placeIDs,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.PlaceIDs, err = parseUUIDArray(placeIDs)
	if err != nil {
		return nil, fmt.Errorf("invalid place_ids for user %s: %w", user.ID, err)
	}
	return &user, nil
}

// formatUUIDArray renders ids as a PostgreSQL array literal suitable for a
// $n::uuid[] parameter.
func formatUUIDArray(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return "{}"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// parseUUIDArray parses the wire form of a uuid[] column ("{a,b}").
func parseUUIDArray(raw []byte) ([]uuid.UUID, error) {
	trimmed := strings.Trim(string(raw), "{}")
	if trimmed == "" {
		return []uuid.UUID{}, nil
	}
	parts := strings.Split(trimmed, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
