package graph

import (
	"context"
	"errors"

	"checkout-be/internal/billing"
	"checkout-be/internal/checkout"
	"checkout-be/internal/graph/model"
	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"go.uber.org/zap"
)

func (r *queryResolver) Checkout(ctx context.Context, id string) (*model.Checkout, error) {
	c, err := r.CheckoutSvc.Get(ctx, id)
	if errors.Is(err, checkout.ErrCheckoutNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapCheckout(c), nil
}

func (r *mutationResolver) CheckoutCreate(ctx context.Context, input model.CheckoutCreateInput) (*model.CheckoutCreate, error) {
	log := logger.FromCtx(ctx)

	c, fieldErrs, err := r.CheckoutSvc.Create(ctx, checkout.CreateInput{
		Email:              utils.PtrString(input.Email),
		LanguageCode:       r.languageCode(ctx, input.LanguageCode),
		IsShippingRequired: utils.BoolOr(input.IsShippingRequired, true),
		ShippingAddress:    toAddressPtr(input.ShippingAddress),
		BillingAddress:     toAddressPtr(input.BillingAddress),
	})
	if err != nil {
		log.Error("checkout create failed", zap.Error(err))
		return nil, err
	}

	if c != nil {
		log.Info("checkout created", zap.String("checkout_id", c.ID.String()))
	}

	return &model.CheckoutCreate{
		Checkout: mapCheckout(c),
		Errors:   mapFieldErrors(fieldErrs),
	}, nil
}

func (r *mutationResolver) CheckoutBillingAddressUpdate(
	ctx context.Context,
	checkoutID string,
	languageCode *string,
	billingAddress model.AddressInput,
	validationRules *model.CheckoutAddressValidationRules,
) (*model.CheckoutBillingAddressUpdate, error) {

	c, fieldErrs, err := r.CheckoutSvc.UpdateBillingAddress(ctx, checkout.AddressUpdateInput{
		CheckoutID:      checkoutID,
		LanguageCode:    r.languageCode(ctx, languageCode),
		Address:         toAddress(billingAddress),
		ValidationRules: toValidationRules(validationRules),
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("billing address update failed",
			zap.String("checkout_id", checkoutID),
			zap.Error(err),
		)
		return nil, err
	}

	if c != nil {
		c = r.notifySection(ctx, c)
	}

	return &model.CheckoutBillingAddressUpdate{
		Checkout: mapCheckout(c),
		Errors:   mapFieldErrors(fieldErrs),
	}, nil
}

func (r *mutationResolver) CheckoutShippingAddressUpdate(
	ctx context.Context,
	checkoutID string,
	languageCode *string,
	shippingAddress model.AddressInput,
	validationRules *model.CheckoutAddressValidationRules,
) (*model.CheckoutShippingAddressUpdate, error) {

	c, fieldErrs, err := r.CheckoutSvc.UpdateShippingAddress(ctx, checkout.AddressUpdateInput{
		CheckoutID:      checkoutID,
		LanguageCode:    r.languageCode(ctx, languageCode),
		Address:         toAddress(shippingAddress),
		ValidationRules: toValidationRules(validationRules),
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("shipping address update failed",
			zap.String("checkout_id", checkoutID),
			zap.Error(err),
		)
		return nil, err
	}

	if c != nil {
		c = r.notifySection(ctx, c)
	}

	return &model.CheckoutShippingAddressUpdate{
		Checkout: mapCheckout(c),
		Errors:   mapFieldErrors(fieldErrs),
	}, nil
}

// notifySection hands the updated checkout to its mounted billing section,
// if any. When the section mirrored shipping into billing the checkout is
// read again so the response carries the new billing address.
func (r *Resolver) notifySection(ctx context.Context, c *checkout.Checkout) *checkout.Checkout {
	if r.Sections == nil {
		return c
	}

	s, ok := r.Sections.Get(c.ID)
	if !ok {
		return c
	}

	log := logger.FromCtx(ctx).With(
		zap.String("checkout_id", c.ID.String()),
	)

	act := s.ObserveCheckout(ctx, c)
	log.Debug("billing section notified", zap.String("action", act.Kind.String()))

	if act.Kind != billing.OverwriteBillingWithShipping {
		return c
	}

	fresh, err := r.CheckoutSvc.Get(ctx, c.ID.String())
	if err != nil {
		log.Warn("failed to reload checkout after mirroring", zap.Error(err))
		return c
	}
	return fresh
}
