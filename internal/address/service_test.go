package address

import (
	"context"
	"errors"
	"testing"

	"checkout-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) ([]*SavedAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SavedAddress), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*SavedAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SavedAddress), args.Error(1)
}

func (m *MockRepository) GetDefault(ctx context.Context, userID uint, addrType AddressType) (*SavedAddress, error) {
	args := m.Called(ctx, userID, addrType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SavedAddress), args.Error(1)
}

// --- Helpers ---

func userContext(userID uint) context.Context {
	return utils.SetUserContext(context.Background(), userID, "test@example.com", "user")
}

// --- Tests ---

func TestService_List(t *testing.T) {
	userID := uint(1)
	ctx := userContext(userID)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := []*SavedAddress{{ID: uuid.New(), UserID: userID}}
		mockRepo.On("GetByUserID", ctx, userID).Return(expected, nil)

		result, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.List(context.Background())
		assert.ErrorIs(t, err, ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})
}

func TestService_Get(t *testing.T) {
	userID := uint(1)
	ctx := userContext(userID)
	addrID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := &SavedAddress{ID: addrID, UserID: userID, IsActive: true}
		mockRepo.On("GetByID", ctx, addrID).Return(expected, nil)

		result, err := svc.Get(ctx, addrID)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetByID", ctx, addrID).Return(nil, errors.New("db error"))

		_, err := svc.Get(ctx, addrID)
		assert.Error(t, err)
	})

	t.Run("WrongUser", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		other := &SavedAddress{ID: addrID, UserID: 999, IsActive: true}
		mockRepo.On("GetByID", ctx, addrID).Return(other, nil)

		_, err := svc.Get(ctx, addrID)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		inactive := &SavedAddress{ID: addrID, UserID: userID, IsActive: false}
		mockRepo.On("GetByID", ctx, addrID).Return(inactive, nil)

		_, err := svc.Get(ctx, addrID)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Get(context.Background(), addrID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_Default(t *testing.T) {
	userID := uint(1)
	ctx := userContext(userID)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := &SavedAddress{ID: uuid.New(), UserID: userID, IsDefaultBilling: true}
		mockRepo.On("GetDefault", ctx, userID, TypeBilling).Return(expected, nil)

		result, err := svc.Default(ctx, TypeBilling)

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("None", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetDefault", ctx, userID, TypeShipping).Return(nil, nil)

		result, err := svc.Default(ctx, TypeShipping)

		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("InvalidType", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Default(ctx, AddressType("HOME"))
		assert.ErrorIs(t, err, ErrInvalidType)
		mockRepo.AssertNotCalled(t, "GetDefault", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Default(context.Background(), TypeBilling)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetDefault", ctx, userID, TypeBilling).Return(nil, errors.New("db error"))

		_, err := svc.Default(ctx, TypeBilling)
		assert.EqualError(t, err, "db error")
	})
}
