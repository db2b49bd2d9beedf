package checkout

import (
	"context"
	"errors"

	"checkout-be/internal/address"
	"checkout-be/internal/logger"
	"checkout-be/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLanguageCode = "EN_US"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service owns checkout address state.
//
// The update methods report validation failures as field errors with a
// nil error; the error return is kept for lookup, access and storage
// failures.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Checkout, address.FieldErrors, error)
	Get(ctx context.Context, checkoutID string) (*Checkout, error)
	UpdateBillingAddress(ctx context.Context, input AddressUpdateInput) (*Checkout, address.FieldErrors, error)
	UpdateShippingAddress(ctx context.Context, input AddressUpdateInput) (*Checkout, address.FieldErrors, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	input CreateInput,
) (*Checkout, address.FieldErrors, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "Create"),
	)

	if err := validate.Var(input.Email, "omitempty,email"); err != nil {
		return nil, address.FieldErrors{{
			Field:   "email",
			Message: "Enter a valid email address",
			Code:    address.CodeInvalid,
		}}, nil
	}

	c := &Checkout{
		ID:                 uuid.New(),
		Email:              input.Email,
		LanguageCode:       input.LanguageCode,
		IsShippingRequired: input.IsShippingRequired,
	}
	if c.LanguageCode == "" {
		c.LanguageCode = defaultLanguageCode
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		c.UserID = &userID
		if c.Email == "" {
			c.Email = utils.GetUserEmailFromContext(ctx)
		}
	}

	var fieldErrs address.FieldErrors

	if input.ShippingAddress != nil {
		if !input.IsShippingRequired {
			fieldErrs = append(fieldErrs, shippingNotRequiredError())
		} else {
			normalized, errs := address.Validate(*input.ShippingAddress, address.DefaultRules())
			fieldErrs = append(fieldErrs, errs...)
			c.ShippingAddress = &normalized
		}
	}

	if input.BillingAddress != nil {
		normalized, errs := address.Validate(*input.BillingAddress, address.DefaultRules())
		fieldErrs = append(fieldErrs, errs...)
		c.BillingAddress = &normalized
	}

	if len(fieldErrs) > 0 {
		log.Info("checkout input rejected", zap.Int("errors", len(fieldErrs)))
		return nil, fieldErrs, nil
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create checkout", zap.Error(err))
		return nil, nil, err
	}

	log.Info("checkout created", zap.String("checkout_id", c.ID.String()))
	return c, nil, nil
}

func (s *service) Get(
	ctx context.Context,
	checkoutID string,
) (*Checkout, error) {
	return s.load(ctx, checkoutID)
}

func (s *service) UpdateBillingAddress(
	ctx context.Context,
	input AddressUpdateInput,
) (*Checkout, address.FieldErrors, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "UpdateBillingAddress"),
		zap.String("checkout_id", input.CheckoutID),
		zap.String("language_code", input.LanguageCode),
		zap.Bool("check_required_fields", input.ValidationRules.CheckRequiredFields),
	)

	c, err := s.load(ctx, input.CheckoutID)
	if err != nil {
		return nil, nil, err
	}

	normalized, fieldErrs := address.Validate(input.Address, input.ValidationRules)
	if len(fieldErrs) > 0 {
		log.Info("billing address rejected", zap.Int("errors", len(fieldErrs)))
		return nil, fieldErrs, nil
	}

	updatedAt, err := s.repo.UpdateBillingAddress(ctx, c.ID, &normalized)
	if err != nil {
		log.Error("failed to persist billing address", zap.Error(err))
		if errors.Is(err, ErrCheckoutNotFound) {
			return nil, nil, err
		}
		return nil, nil, ErrFailedUpdateCheckout
	}

	c.BillingAddress = &normalized
	c.UpdatedAt = updatedAt

	log.Info("billing address updated")
	return c, nil, nil
}

func (s *service) UpdateShippingAddress(
	ctx context.Context,
	input AddressUpdateInput,
) (*Checkout, address.FieldErrors, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Checkout"),
		zap.String("method", "UpdateShippingAddress"),
		zap.String("checkout_id", input.CheckoutID),
		zap.String("language_code", input.LanguageCode),
	)

	c, err := s.load(ctx, input.CheckoutID)
	if err != nil {
		return nil, nil, err
	}

	if !c.IsShippingRequired {
		log.Info("shipping address rejected, shipping not required")
		return nil, address.FieldErrors{shippingNotRequiredError()}, nil
	}

	normalized, fieldErrs := address.Validate(input.Address, input.ValidationRules)
	if len(fieldErrs) > 0 {
		log.Info("shipping address rejected", zap.Int("errors", len(fieldErrs)))
		return nil, fieldErrs, nil
	}

	updatedAt, err := s.repo.UpdateShippingAddress(ctx, c.ID, &normalized)
	if err != nil {
		log.Error("failed to persist shipping address", zap.Error(err))
		if errors.Is(err, ErrCheckoutNotFound) {
			return nil, nil, err
		}
		return nil, nil, ErrFailedUpdateCheckout
	}

	c.ShippingAddress = &normalized
	c.UpdatedAt = updatedAt

	log.Info("shipping address updated")
	return c, nil, nil
}

// load fetches a checkout and enforces ownership: guest checkouts are
// open to whoever holds the ID, user checkouts only to their owner.
func (s *service) load(ctx context.Context, checkoutID string) (*Checkout, error) {
	id, err := uuid.Parse(checkoutID)
	if err != nil {
		return nil, ErrInvalidCheckoutID
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.UserID != nil {
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok || userID != *c.UserID {
			logger.FromCtx(ctx).Warn("checkout access denied",
				zap.String("checkout_id", checkoutID),
			)
			return nil, ErrForbidden
		}
	}

	return c, nil
}

func shippingNotRequiredError() address.FieldError {
	return address.FieldError{
		Field:   fieldShippingAddress,
		Message: "This checkout doesn't need shipping",
		Code:    "SHIPPING_NOT_REQUIRED",
	}
}
