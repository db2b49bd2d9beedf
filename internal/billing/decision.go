package billing

import (
	"checkout-be/internal/address"
	"checkout-be/internal/checkout"
)

type SyncAction int

const (
	NoOp SyncAction = iota
	OverwriteBillingWithShipping
)

func (a SyncAction) String() string {
	switch a {
	case OverwriteBillingWithShipping:
		return "OVERWRITE_BILLING_WITH_SHIPPING"
	default:
		return "NO_OP"
	}
}

// Action is the outcome of a decision. Address is the shipping address to
// copy and is only set for OverwriteBillingWithShipping.
type Action struct {
	Kind    SyncAction
	Address *address.Address
}

// Snapshot is what the synchronizer observes at one point in time.
type Snapshot struct {
	ShippingAddress *address.Address
	SameAsShipping  bool
}

// Decide compares the current snapshot with the last observed one.
// Billing is overwritten when the preference was just switched on or when
// the shipping address changed while it stayed on; never without a
// shipping address.
func Decide(current, previous Snapshot) Action {
	if !current.SameAsShipping || current.ShippingAddress == nil {
		return Action{Kind: NoOp}
	}

	switchedOn := !previous.SameAsShipping
	shippingChanged := !address.IsMatching(current.ShippingAddress, previous.ShippingAddress)

	if switchedOn || shippingChanged {
		return Action{
			Kind:    OverwriteBillingWithShipping,
			Address: address.Clone(current.ShippingAddress),
		}
	}

	return Action{Kind: NoOp}
}

// Advance returns the snapshot to remember once act was decided for
// current. An overwrite records everything; switching the preference off
// records only the preference, so a later switch back on is detected
// against the shipping address last mirrored.
func Advance(current, previous Snapshot, act Action) Snapshot {
	switch {
	case act.Kind == OverwriteBillingWithShipping:
		return Snapshot{
			ShippingAddress: address.Clone(current.ShippingAddress),
			SameAsShipping:  true,
		}
	case !current.SameAsShipping && previous.SameAsShipping:
		return Snapshot{
			ShippingAddress: previous.ShippingAddress,
			SameAsShipping:  false,
		}
	default:
		return previous
	}
}

// InitialPreference tells whether billing starts out mirroring shipping.
// It is off when the checkout needs no shipping; otherwise it is on when
// no billing address exists yet or billing already equals shipping.
func InitialPreference(c *checkout.Checkout) bool {
	if c == nil || !c.IsShippingRequired {
		return false
	}
	return c.BillingAddress == nil || address.IsMatching(c.ShippingAddress, c.BillingAddress)
}
