package graph

import (
	"context"
	"errors"

	"checkout-be/internal/address"
	"checkout-be/internal/billing"
	"checkout-be/internal/graph/model"
	"checkout-be/internal/logger"
	"checkout-be/internal/transport"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (r *queryResolver) BillingAddressSection(ctx context.Context, checkoutID string, locale *string) (*model.BillingAddressSection, error) {
	s, err := r.mountSection(ctx, checkoutID, locale)
	if err != nil {
		return nil, err
	}
	return mapSection(s.View()), nil
}

func (r *mutationResolver) BillingAddressSectionSetSameAsShipping(
	ctx context.Context,
	checkoutID string,
	sameAsShipping bool,
	locale *string,
) (*model.BillingAddressSectionUpdate, error) {

	s, err := r.mountSection(ctx, checkoutID, locale)
	if err != nil {
		return nil, err
	}

	act := s.SetSameAsShipping(ctx, sameAsShipping)

	logger.FromCtx(ctx).Info("same as shipping changed",
		zap.String("checkout_id", checkoutID),
		zap.Bool("same_as_shipping", sameAsShipping),
		zap.String("action", act.Kind.String()),
	)

	return &model.BillingAddressSectionUpdate{
		Section: mapSection(s.View()),
		Action:  mapAction(act),
		Errors:  mapFieldErrors(nil),
	}, nil
}

func (r *mutationResolver) BillingAddressSectionSubmit(
	ctx context.Context,
	checkoutID string,
	billingAddress model.AddressInput,
	autoSave bool,
	locale *string,
) (*model.BillingAddressSectionUpdate, error) {

	s, err := r.mountSection(ctx, checkoutID, locale)
	if err != nil {
		return nil, err
	}

	err = s.SubmitBillingAddress(ctx, billing.FormData{
		Address:  toAddress(billingAddress),
		AutoSave: autoSave,
	})
	return sectionUpdate(s, err)
}

func (r *mutationResolver) BillingAddressSectionSelectAddress(
	ctx context.Context,
	checkoutID string,
	addressID string,
	locale *string,
) (*model.BillingAddressSectionUpdate, error) {

	id, err := uuid.Parse(addressID)
	if err != nil {
		return nil, address.ErrInvalidAddressID
	}

	s, err := r.mountSection(ctx, checkoutID, locale)
	if err != nil {
		return nil, err
	}

	return sectionUpdate(s, s.SelectAddress(ctx, id))
}

func (r *mutationResolver) BillingAddressSectionUnmount(ctx context.Context, checkoutID string) (bool, error) {
	c, err := r.CheckoutSvc.Get(ctx, checkoutID)
	if err != nil {
		return false, err
	}

	unmounted := r.Sections.Unmount(c.ID)

	logger.FromCtx(ctx).Info("billing section unmounted",
		zap.String("checkout_id", checkoutID),
		zap.Bool("was_mounted", unmounted),
	)
	return unmounted, nil
}

// mountSection returns the billing section of a checkout the caller may
// access, mounting it on first use.
func (r *Resolver) mountSection(ctx context.Context, checkoutID string, locale *string) (*billing.Section, error) {
	c, err := r.CheckoutSvc.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}

	identity := identityFromCtx(ctx)
	loc := r.locale(ctx, locale)

	s, err := r.Sections.Mount(c.ID, identity, func() (*billing.Section, error) {
		return billing.NewSection(ctx, c, loc, identity, billing.Deps{
			Updater: r.CheckoutSvc,
			Source:  r.AddressSvc,
		})
	})
	if err != nil {
		return nil, err
	}

	transport.SetResponseHeader(ctx, "Content-Language", s.Locale())
	return s, nil
}

// sectionUpdate reports a rejected billing write as payload errors and
// anything else as a GraphQL error.
func sectionUpdate(s *billing.Section, err error) (*model.BillingAddressSectionUpdate, error) {
	var verrs billing.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return nil, err
	}

	return &model.BillingAddressSectionUpdate{
		Section: mapSection(s.View()),
		Errors:  mapFieldErrors(verrs),
	}, nil
}
