package address

import (
	"context"

	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes the authenticated user's address book.
type Service interface {
	List(ctx context.Context) ([]*SavedAddress, error)
	Get(ctx context.Context, addressID uuid.UUID) (*SavedAddress, error)
	Default(ctx context.Context, addrType AddressType) (*SavedAddress, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(
	ctx context.Context,
) ([]*SavedAddress, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "List"),
		zap.Uint("user_id", userID),
	)

	log.Debug("listing addresses")

	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(
	ctx context.Context,
	addressID uuid.UUID,
) (*SavedAddress, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Get"),
		zap.String("address_id", addressID.String()),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		log.Warn("address lookup failed", zap.Error(err))
		return nil, err
	}

	if addr.UserID != userID || !addr.IsActive {
		log.Warn("unauthorized address access", zap.Uint("user_id", userID))
		return nil, ErrAddressNotFound
	}

	return addr, nil
}

func (s *service) Default(
	ctx context.Context,
	addrType AddressType,
) (*SavedAddress, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if !addrType.Valid() {
		return nil, ErrInvalidType
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Default"),
		zap.Uint("user_id", userID),
		zap.String("type", string(addrType)),
	)

	addr, err := s.repo.GetDefault(ctx, userID, addrType)
	if err != nil {
		log.Error("failed to load default address", zap.Error(err))
		return nil, err
	}

	return addr, nil
}
