package checkout

import (
	"time"

	"checkout-be/internal/address"

	"github.com/google/uuid"
)

// Checkout is the address-related state of a checkout session.
type Checkout struct {
	ID     uuid.UUID
	UserID *uint
	Email  string

	LanguageCode       string
	IsShippingRequired bool

	ShippingAddress *address.Address
	BillingAddress  *address.Address

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateInput struct {
	Email              string
	LanguageCode       string
	IsShippingRequired bool
	ShippingAddress    *address.Address
	BillingAddress     *address.Address
}

// AddressUpdateInput is the payload of a billing or shipping address
// update: the checkout, the caller's language, the address fields and
// the validation rules to apply.
type AddressUpdateInput struct {
	CheckoutID      string
	LanguageCode    string
	Address         address.Address
	ValidationRules address.ValidationRules
}
