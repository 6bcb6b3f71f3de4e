package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// mockPlaceService is a testify mock for service.PlaceService.
type mockPlaceService struct {
	mock.Mock
}

func (m *mockPlaceService) CreatePlace(ctx context.Context, input service.CreatePlaceInput) (*domain.Place, error) {
	args := m.Called(ctx, input)
	if place, ok := args.Get(0).(*domain.Place); ok {
		return place, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceService) GetPlace(ctx context.Context, placeID uuid.UUID) (*domain.Place, error) {
	args := m.Called(ctx, placeID)
	if place, ok := args.Get(0).(*domain.Place); ok {
		return place, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceService) ListPlacesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Place, error) {
	args := m.Called(ctx, userID)
	if places, ok := args.Get(0).([]*domain.Place); ok {
		return places, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceService) UpdatePlace(ctx context.Context, placeID, requesterID uuid.UUID, input service.UpdatePlaceInput) (*domain.Place, error) {
	args := m.Called(ctx, placeID, requesterID, input)
	if place, ok := args.Get(0).(*domain.Place); ok {
		return place, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceService) DeletePlace(ctx context.Context, placeID, requesterID uuid.UUID) error {
	args := m.Called(ctx, placeID, requesterID)
	return args.Error(0)
}

// mockUserService is a testify mock for service.UserService.
type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Signup(ctx context.Context, input service.SignupInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	if result, ok := args.Get(0).(*service.AuthResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if result, ok := args.Get(0).(*service.AuthResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// mockImageStore is a testify mock for storage.ImageStore.
type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, content io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
