package billing

import (
	"testing"

	"checkout-be/internal/address"
	"checkout-be/internal/checkout"

	"github.com/stretchr/testify/assert"
)

func addr(street string) *address.Address {
	return &address.Address{
		FirstName:      "Jane",
		LastName:       "Doe",
		StreetAddress1: street,
		City:           "Warsaw",
		PostalCode:     "00-001",
		Country:        "PL",
	}
}

func TestDecide_PreferenceOff(t *testing.T) {
	shippings := []*address.Address{nil, addr("A"), addr("B")}

	for _, curShip := range shippings {
		for _, prevShip := range shippings {
			for _, prevPref := range []bool{true, false} {
				act := Decide(
					Snapshot{ShippingAddress: curShip, SameAsShipping: false},
					Snapshot{ShippingAddress: prevShip, SameAsShipping: prevPref},
				)
				assert.Equal(t, NoOp, act.Kind)
				assert.Nil(t, act.Address)
			}
		}
	}
}

func TestDecide_SwitchedOn(t *testing.T) {
	t.Run("With shipping address", func(t *testing.T) {
		for _, prevShip := range []*address.Address{nil, addr("A"), addr("B")} {
			act := Decide(
				Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
				Snapshot{ShippingAddress: prevShip, SameAsShipping: false},
			)
			assert.Equal(t, OverwriteBillingWithShipping, act.Kind)
			assert.Equal(t, addr("A"), act.Address)
		}
	})

	t.Run("Without shipping address", func(t *testing.T) {
		act := Decide(
			Snapshot{SameAsShipping: true},
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: false},
		)
		assert.Equal(t, NoOp, act.Kind)
	})
}

func TestDecide_ShippingChanged(t *testing.T) {
	t.Run("Changed while on", func(t *testing.T) {
		act := Decide(
			Snapshot{ShippingAddress: addr("B"), SameAsShipping: true},
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
		)
		assert.Equal(t, OverwriteBillingWithShipping, act.Kind)
		assert.Equal(t, "B", act.Address.StreetAddress1)
	})

	t.Run("First shipping address while on", func(t *testing.T) {
		act := Decide(
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
			Snapshot{SameAsShipping: true},
		)
		assert.Equal(t, OverwriteBillingWithShipping, act.Kind)
	})

	t.Run("Equal value in a new instance", func(t *testing.T) {
		act := Decide(
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
		)
		assert.Equal(t, NoOp, act.Kind)
	})

	t.Run("Shipping removed while on", func(t *testing.T) {
		act := Decide(
			Snapshot{SameAsShipping: true},
			Snapshot{ShippingAddress: addr("A"), SameAsShipping: true},
		)
		assert.Equal(t, NoOp, act.Kind)
	})
}

func TestDecide_IsPure(t *testing.T) {
	cur := Snapshot{ShippingAddress: addr("B"), SameAsShipping: true}
	prev := Snapshot{ShippingAddress: addr("A"), SameAsShipping: true}

	first := Decide(cur, prev)
	second := Decide(cur, prev)

	assert.Equal(t, first, second)
	assert.Equal(t, "A", prev.ShippingAddress.StreetAddress1)

	// payload is a copy
	first.Address.StreetAddress1 = "mutated"
	assert.Equal(t, "B", cur.ShippingAddress.StreetAddress1)
}

func TestAdvance(t *testing.T) {
	t.Run("Overwrite records current", func(t *testing.T) {
		cur := Snapshot{ShippingAddress: addr("B"), SameAsShipping: true}
		prev := Snapshot{ShippingAddress: addr("A"), SameAsShipping: false}

		next := Advance(cur, prev, Decide(cur, prev))
		assert.Equal(t, cur, next)
	})

	t.Run("Switching off keeps last shipping", func(t *testing.T) {
		cur := Snapshot{ShippingAddress: addr("B"), SameAsShipping: false}
		prev := Snapshot{ShippingAddress: addr("A"), SameAsShipping: true}

		next := Advance(cur, prev, Decide(cur, prev))
		assert.False(t, next.SameAsShipping)
		assert.Equal(t, addr("A"), next.ShippingAddress)
	})

	t.Run("NoOp keeps previous", func(t *testing.T) {
		cur := Snapshot{ShippingAddress: addr("B"), SameAsShipping: false}
		prev := Snapshot{ShippingAddress: addr("A"), SameAsShipping: false}

		assert.Equal(t, prev, Advance(cur, prev, Decide(cur, prev)))
	})
}

func TestInitialPreference(t *testing.T) {
	tests := []struct {
		name     string
		checkout *checkout.Checkout
		expected bool
	}{
		{
			name:     "Shipping required, billing absent",
			checkout: &checkout.Checkout{IsShippingRequired: true, ShippingAddress: addr("A")},
			expected: true,
		},
		{
			name: "Shipping required, billing equals shipping",
			checkout: &checkout.Checkout{
				IsShippingRequired: true,
				ShippingAddress:    addr("A"),
				BillingAddress:     addr("A"),
			},
			expected: true,
		},
		{
			name: "Shipping required, billing differs",
			checkout: &checkout.Checkout{
				IsShippingRequired: true,
				ShippingAddress:    addr("A"),
				BillingAddress:     addr("B"),
			},
			expected: false,
		},
		{
			name: "Shipping not required, addresses equal",
			checkout: &checkout.Checkout{
				IsShippingRequired: false,
				ShippingAddress:    addr("A"),
				BillingAddress:     addr("A"),
			},
			expected: false,
		},
		{
			name:     "Shipping not required, no addresses",
			checkout: &checkout.Checkout{IsShippingRequired: false},
			expected: false,
		},
		{
			name:     "Guest without any address",
			checkout: &checkout.Checkout{IsShippingRequired: true},
			expected: true,
		},
		{
			name: "Billing present, shipping absent",
			checkout: &checkout.Checkout{
				IsShippingRequired: true,
				BillingAddress:     addr("A"),
			},
			expected: false,
		},
		{
			name:     "Nil checkout",
			checkout: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InitialPreference(tt.checkout))
		})
	}
}

func TestSyncActionString(t *testing.T) {
	assert.Equal(t, "NO_OP", NoOp.String())
	assert.Equal(t, "OVERWRITE_BILLING_WITH_SHIPPING", OverwriteBillingWithShipping.String())
}
