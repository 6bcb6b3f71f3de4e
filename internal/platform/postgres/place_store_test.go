package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/store"
)

func newPlaceStoreFixture(t *testing.T) (*PlaceStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPlaceStore(db, nil), mock
}

func validPlace(t *testing.T) *domain.Place {
	t.Helper()

	now := time.Now().UTC()
	return &domain.Place{
		ID:          uuid.New(),
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world.",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    domain.Coordinates{Lat: 40.7484, Lng: -73.9857},
		ImagePath:   "uploads/images/esb.png",
		CreatorID:   uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func placeRow(place *domain.Place) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "address", "lat", "lng",
		"image_path", "creator_id", "created_at", "updated_at",
	}).AddRow(
		place.ID.String(),
		place.Title,
		place.Description,
		place.Address,
		place.Location.Lat,
		place.Location.Lng,
		place.ImagePath,
		place.CreatorID.String(),
		place.CreatedAt,
		place.UpdatedAt,
	)
}

func TestPlaceStoreCreate(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectExec(`INSERT INTO places`).
		WithArgs(
			place.ID.String(),
			place.Title,
			place.Description,
			place.Address,
			place.Location.Lat,
			place.Location.Lng,
			place.ImagePath,
			place.CreatorID.String(),
			place.CreatedAt,
			place.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), place))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreCreateRejectsInvalidPlace(t *testing.T) {
	t.Parallel()

	s, _ := newPlaceStoreFixture(t)
	place := validPlace(t)
	place.Title = ""

	err := s.Create(context.Background(), place)
	assert.ErrorIs(t, err, domain.ErrEmptyPlaceTitle)
}

func TestPlaceStoreCreateCheckViolation(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectExec(`INSERT INTO places`).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "places_description_min_length"})

	err := s.Create(context.Background(), place)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreGetByID(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectQuery(`SELECT .* FROM places WHERE id = \$1`).
		WithArgs(place.ID.String()).
		WillReturnRows(placeRow(place))

	got, err := s.GetByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.Title, got.Title)
	assert.Equal(t, place.CreatorID, got.CreatorID)
	assert.InDelta(t, place.Location.Lat, got.Location.Lat, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreGetByIDNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM places WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreFindByCreator(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectQuery(`SELECT .* FROM places WHERE creator_id = \$1`).
		WithArgs(place.CreatorID.String()).
		WillReturnRows(placeRow(place))

	places, err := s.FindByCreator(context.Background(), place.CreatorID)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, place.ID, places[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreFindByCreatorEmpty(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	creatorID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM places WHERE creator_id = \$1`).
		WithArgs(creatorID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	places, err := s.FindByCreator(context.Background(), creatorID)
	require.NoError(t, err)
	assert.NotNil(t, places)
	assert.Empty(t, places)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreUpdate(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectExec(`UPDATE places`).
		WithArgs(place.ID.String(), place.Title, place.Description, place.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), place))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreUpdateNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	place := validPlace(t)

	mock.ExpectExec(`UPDATE places`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), place)
	assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreDelete(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM places`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceStoreDeleteNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newPlaceStoreFixture(t)

	mock.ExpectExec(`DELETE FROM places`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
