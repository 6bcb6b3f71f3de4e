package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/logger"
	"github.com/phrazzld/roam-api/internal/store"
)

// PlaceStore implements store.PlaceStore using a PostgreSQL database.
type PlaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPlaceStore creates a PostgreSQL implementation of store.PlaceStore.
// It accepts a database connection or transaction managed by the caller.
// If logger is nil, the default logger is used.
func NewPlaceStore(db store.DBTX, logger *slog.Logger) *PlaceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceStore{
		db:     db,
		logger: logger.With(slog.String("component", "place_store")),
	}
}

var _ store.PlaceStore = (*PlaceStore)(nil)

// WithTx implements store.PlaceStore.WithTx.
func (s *PlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return &PlaceStore{db: tx, logger: s.logger}
}

// Create implements store.PlaceStore.Create.
func (s *PlaceStore) Create(ctx context.Context, place *domain.Place) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := place.Validate(); err != nil {
		log.Warn("place validation failed during create",
			slog.String("error", err.Error()),
			slog.String("place_id", place.ID.String()))
		return err
	}

	query := `
		INSERT INTO places (id, title, description, address, lat, lng, image_path, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Location.Lat,
		place.Location.Lng,
		place.ImagePath,
		place.CreatorID,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate place ID during creation",
				slog.String("place_id", place.ID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to create place",
			slog.String("error", err.Error()),
			slog.String("place_id", place.ID.String()))
		return MapError(err)
	}

	log.Info("place created successfully",
		slog.String("place_id", place.ID.String()),
		slog.String("creator_id", place.CreatorID.String()))
	return nil
}

const placeColumns = `id, title, description, address, lat, lng, image_path, creator_id, created_at, updated_at`

// GetByID implements store.PlaceStore.GetByID.
func (s *PlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	place, err := scanPlace(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("place not found", slog.String("place_id", id.String()))
			return nil, store.ErrPlaceNotFound
		}
		log.Error("failed to get place by ID",
			slog.String("error", err.Error()),
			slog.String("place_id", id.String()))
		return nil, MapError(err)
	}
	return place, nil
}

// FindByCreator implements store.PlaceStore.FindByCreator. An unknown
// creator yields an empty slice, not an error.
func (s *PlaceStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + placeColumns + ` FROM places WHERE creator_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		log.Error("failed to query places by creator",
			slog.String("error", err.Error()),
			slog.String("creator_id", creatorID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	places := []*domain.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			log.Error("failed to scan place row", slog.String("error", err.Error()))
			return nil, err
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return places, nil
}

// Update implements store.PlaceStore.Update. Only the mutable fields are
// written; address, location, image and creator are fixed at creation.
func (s *PlaceStore) Update(ctx context.Context, place *domain.Place) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := place.Validate(); err != nil {
		log.Warn("place validation failed during update",
			slog.String("error", err.Error()),
			slog.String("place_id", place.ID.String()))
		return err
	}

	query := `
		UPDATE places
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, place.ID, place.Title, place.Description, place.UpdatedAt)
	if err != nil {
		log.Error("failed to update place",
			slog.String("error", err.Error()),
			slog.String("place_id", place.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "place"); err != nil {
		return fmt.Errorf("%w: %v", store.ErrPlaceNotFound, err)
	}

	log.Info("place updated successfully", slog.String("place_id", place.ID.String()))
	return nil
}

// Delete implements store.PlaceStore.Delete.
func (s *PlaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM places WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete place",
			slog.String("error", err.Error()),
			slog.String("place_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "place"); err != nil {
		return fmt.Errorf("%w: %v", store.ErrPlaceNotFound, err)
	}

	log.Info("place deleted successfully", slog.String("place_id", id.String()))
	return nil
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var place domain.Place
	err := row.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Location.Lat,
		&place.Location.Lng,
		&place.ImagePath,
		&place.CreatorID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}
