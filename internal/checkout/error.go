package checkout

import "errors"

var (
	ErrCheckoutNotFound  = errors.New("checkout not found")
	ErrInvalidCheckoutID = errors.New("invalid checkout id")
	ErrForbidden         = errors.New("checkout belongs to another user")

	ErrFailedCreateCheckout = errors.New("failed to create checkout")
	ErrFailedUpdateCheckout = errors.New("failed to update checkout")
)

const fieldShippingAddress = "shippingAddress"
