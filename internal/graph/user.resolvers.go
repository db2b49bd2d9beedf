package graph

import (
	"context"
	"fmt"

	"checkout-be/internal/address"
	"checkout-be/internal/graph/model"
	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"go.uber.org/zap"
)

// Me returns the authenticated user with their address book, or nil for
// guests.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}

	log := logger.FromCtx(ctx).With(zap.Uint("user_id", userID))

	addrs, err := r.AddressSvc.List(ctx)
	if err != nil {
		log.Error("failed to list addresses", zap.Error(err))
		return nil, err
	}

	defaultBilling, err := r.AddressSvc.Default(ctx, address.TypeBilling)
	if err != nil {
		return nil, err
	}

	defaultShipping, err := r.AddressSvc.Default(ctx, address.TypeShipping)
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:                     fmt.Sprint(userID),
		Email:                  utils.GetUserEmailFromContext(ctx),
		Addresses:              mapSavedAddresses(addrs),
		DefaultBillingAddress:  mapSavedAddress(defaultBilling),
		DefaultShippingAddress: mapSavedAddress(defaultShipping),
	}, nil
}
