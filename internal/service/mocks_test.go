package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/service/auth"
	"github.com/phrazzld/roam-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// mockUserStore is a testify mock for store.UserStore. WithTx returns
// the mock itself so transactional paths exercise the same expectations.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) AppendPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	args := m.Called(ctx, userID, placeID)
	return args.Error(0)
}

func (m *mockUserStore) RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	args := m.Called(ctx, userID, placeID)
	return args.Error(0)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// mockPlaceStore is a testify mock for store.PlaceStore.
type mockPlaceStore struct {
	mock.Mock
}

func (m *mockPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *mockPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if place, ok := args.Get(0).(*domain.Place); ok {
		return place, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Place, error) {
	args := m.Called(ctx, creatorID)
	if places, ok := args.Get(0).([]*domain.Place); ok {
		return places, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceStore) Update(ctx context.Context, place *domain.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *mockPlaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return m
}

// mockGeocoder is a testify mock for geocoding.Geocoder.
type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	args := m.Called(ctx, address)
	coords, _ := args.Get(0).(domain.Coordinates)
	return coords, args.Error(1)
}

// mockImageRemover is a testify mock for ImageRemover.
type mockImageRemover struct {
	mock.Mock
}

func (m *mockImageRemover) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// mockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// mockJWTService implements auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if claims, ok := args.Get(0).(*auth.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}
