package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/geocoding"
	"github.com/phrazzld/roam-api/internal/platform/logger"
	"github.com/phrazzld/roam-api/internal/store"
)

// PlaceServiceError is a custom error type for place service errors.
type PlaceServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PlaceServiceError.
func (e *PlaceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("place service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("place service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PlaceServiceError) Unwrap() error {
	return e.Err
}

// NewPlaceServiceError creates a new PlaceServiceError.
func NewPlaceServiceError(operation, message string, err error) *PlaceServiceError {
	return &PlaceServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ImageRemover deletes a stored image by its public path. Satisfied by
// the storage backends; failures here are logged but never fail the
// place operation that triggered the cleanup.
type ImageRemover interface {
	Remove(ctx context.Context, path string) error
}

// CreatePlaceInput carries the caller-supplied fields for a new place.
// The address is resolved to coordinates by the service.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	ImagePath   string
	CreatorID   uuid.UUID
}

// UpdatePlaceInput carries the mutable fields of a place.
type UpdatePlaceInput struct {
	Title       string
	Description string
}

// PlaceService provides place-related operations. Writes that touch both
// a place and its creator's reference list run in a single transaction.
type PlaceService interface {
	// CreatePlace geocodes the address, stores the place and appends it
	// to the creator's reference list atomically.
	CreatePlace(ctx context.Context, input CreatePlaceInput) (*domain.Place, error)

	// GetPlace retrieves a place by its ID.
	GetPlace(ctx context.Context, placeID uuid.UUID) (*domain.Place, error)

	// ListPlacesByUser retrieves all places created by the given user,
	// newest first. An unknown user yields an empty slice.
	ListPlacesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Place, error)

	// UpdatePlace changes a place's title and description. Only the
	// creator may update; others get ErrNotOwned.
	UpdatePlace(ctx context.Context, placeID, requesterID uuid.UUID, input UpdatePlaceInput) (*domain.Place, error)

	// DeletePlace removes a place and its reference from the creator's
	// list atomically, then deletes the stored image. Only the creator
	// may delete; others get ErrNotOwned.
	DeletePlace(ctx context.Context, placeID, requesterID uuid.UUID) error
}

// placeServiceImpl implements the PlaceService interface.
type placeServiceImpl struct {
	db         *sql.DB
	placeStore store.PlaceStore
	userStore  store.UserStore
	geocoder   geocoding.Geocoder
	images     ImageRemover
	logger     *slog.Logger
}

// NewPlaceService creates a new PlaceService.
// It returns an error if any of the required dependencies are nil.
func NewPlaceService(
	db *sql.DB,
	placeStore store.PlaceStore,
	userStore store.UserStore,
	geocoder geocoding.Geocoder,
	images ImageRemover,
	logger *slog.Logger,
) (PlaceService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if placeStore == nil {
		return nil, domain.NewValidationError("placeStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if geocoder == nil {
		return nil, domain.NewValidationError("geocoder", "cannot be nil", domain.ErrValidation)
	}
	if images == nil {
		return nil, domain.NewValidationError("images", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &placeServiceImpl{
		db:         db,
		placeStore: placeStore,
		userStore:  userStore,
		geocoder:   geocoder,
		images:     images,
		logger:     logger.With(slog.String("component", "place_service")),
	}, nil
}

// CreatePlace implements PlaceService.CreatePlace.
func (s *placeServiceImpl) CreatePlace(
	ctx context.Context,
	input CreatePlaceInput,
) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	location, err := s.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		log.Warn("failed to geocode address",
			slog.String("error", err.Error()),
			slog.String("creator_id", input.CreatorID.String()))
		return nil, err
	}

	place, err := domain.NewPlace(
		input.CreatorID,
		input.Title,
		input.Description,
		input.Address,
		location,
		input.ImagePath,
	)
	if err != nil {
		return nil, err
	}

	log.Debug("creating place and reference in transaction",
		slog.String("place_id", place.ID.String()),
		slog.String("creator_id", input.CreatorID.String()))

	err = store.RunInTransaction(
		ctx,
		s.db,
		func(ctx context.Context, tx *sql.Tx) error {
			txUserStore := s.userStore.WithTx(tx)
			txPlaceStore := s.placeStore.WithTx(tx)

			// The creator must exist; checking inside the transaction
			// keeps the reference list and place row consistent even if
			// the user is deleted concurrently.
			if _, err := txUserStore.GetByID(ctx, place.CreatorID); err != nil {
				if errors.Is(err, store.ErrUserNotFound) {
					return ErrUserNotFound
				}
				return NewPlaceServiceError("create_place", "failed to load creator", err)
			}

			if err := txPlaceStore.Create(ctx, place); err != nil {
				log.Error("failed to create place in transaction",
					slog.String("error", err.Error()),
					slog.String("place_id", place.ID.String()))
				return NewPlaceServiceError("create_place", "failed to save place", err)
			}

			if err := txUserStore.AppendPlace(ctx, place.CreatorID, place.ID); err != nil {
				log.Error("failed to append place reference in transaction",
					slog.String("error", err.Error()),
					slog.String("place_id", place.ID.String()),
					slog.String("creator_id", place.CreatorID.String()))
				return NewPlaceServiceError("create_place", "failed to update creator's places", err)
			}

			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.Info("place created",
		slog.String("place_id", place.ID.String()),
		slog.String("creator_id", place.CreatorID.String()))
	return place, nil
}

// GetPlace implements PlaceService.GetPlace.
func (s *placeServiceImpl) GetPlace(ctx context.Context, placeID uuid.UUID) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrPlaceNotFound
		}
		log.Error("failed to retrieve place",
			slog.String("error", err.Error()),
			slog.String("place_id", placeID.String()))
		return nil, NewPlaceServiceError("get_place", "failed to retrieve place", err)
	}
	return place, nil
}

// ListPlacesByUser implements PlaceService.ListPlacesByUser.
func (s *placeServiceImpl) ListPlacesByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	places, err := s.placeStore.FindByCreator(ctx, userID)
	if err != nil {
		log.Error("failed to list places by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewPlaceServiceError("list_places", "failed to list places", err)
	}
	return places, nil
}

// UpdatePlace implements PlaceService.UpdatePlace.
func (s *placeServiceImpl) UpdatePlace(
	ctx context.Context,
	placeID, requesterID uuid.UUID,
	input UpdatePlaceInput,
) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, NewPlaceServiceError("update_place", "failed to retrieve place", err)
	}

	// Missing places report not-found before the ownership check runs.
	if place.CreatorID != requesterID {
		log.Warn("update rejected: requester is not the creator",
			slog.String("place_id", placeID.String()),
			slog.String("requester_id", requesterID.String()))
		return nil, ErrNotOwned
	}

	if err := place.ApplyUpdate(input.Title, input.Description); err != nil {
		return nil, err
	}

	if err := s.placeStore.Update(ctx, place); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrPlaceNotFound
		}
		log.Error("failed to update place",
			slog.String("error", err.Error()),
			slog.String("place_id", placeID.String()))
		return nil, NewPlaceServiceError("update_place", "failed to save place", err)
	}

	log.Info("place updated", slog.String("place_id", placeID.String()))
	return place, nil
}

// DeletePlace implements PlaceService.DeletePlace.
func (s *placeServiceImpl) DeletePlace(ctx context.Context, placeID, requesterID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrPlaceNotFound
		}
		return NewPlaceServiceError("delete_place", "failed to retrieve place", err)
	}

	if place.CreatorID != requesterID {
		log.Warn("delete rejected: requester is not the creator",
			slog.String("place_id", placeID.String()),
			slog.String("requester_id", requesterID.String()))
		return ErrNotOwned
	}

	err = store.RunInTransaction(
		ctx,
		s.db,
		func(ctx context.Context, tx *sql.Tx) error {
			txPlaceStore := s.placeStore.WithTx(tx)
			txUserStore := s.userStore.WithTx(tx)

			if err := txPlaceStore.Delete(ctx, place.ID); err != nil {
				log.Error("failed to delete place in transaction",
					slog.String("error", err.Error()),
					slog.String("place_id", place.ID.String()))
				return NewPlaceServiceError("delete_place", "failed to delete place", err)
			}

			if err := txUserStore.RemovePlace(ctx, place.CreatorID, place.ID); err != nil {
				log.Error("failed to remove place reference in transaction",
					slog.String("error", err.Error()),
					slog.String("place_id", place.ID.String()),
					slog.String("creator_id", place.CreatorID.String()))
				return NewPlaceServiceError("delete_place", "failed to update creator's places", err)
			}

			return nil
		},
	)
	if err != nil {
		return err
	}

	// Image cleanup happens after commit; a leaked file is preferable to
	// a deleted image for a place that still exists.
	if place.ImagePath != "" {
		if err := s.images.Remove(ctx, place.ImagePath); err != nil {
			log.Warn("failed to remove place image after delete",
				slog.String("error", err.Error()),
				slog.String("place_id", place.ID.String()),
				slog.String("image_path", place.ImagePath))
		}
	}

	log.Info("place deleted",
		slog.String("place_id", place.ID.String()),
		slog.String("creator_id", place.CreatorID.String()))
	return nil
}
