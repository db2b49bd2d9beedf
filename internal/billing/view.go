package billing

import (
	"checkout-be/internal/address"
)

// View is what the storefront renders for a section.
type View struct {
	CheckoutID               string
	ShowSameAsShippingToggle bool
	ToggleLabel              string
	SameAsShipping           bool
	SaveState                SaveState
	Alerts                   []Alert

	// Form is nil while billing mirrors shipping.
	Form *FormView
}

// FormView describes the billing form or address picker.
type FormView struct {
	Title                    string
	Type                     address.AddressType
	Authenticated            bool
	DefaultAddress           *address.Address
	DefaultAddressID         string
	Addresses                []*address.SavedAddress
	CheckAddressAvailability bool
	Errors                   address.FieldErrors
}

// View renders the section. Pending alerts are handed out once.
func (s *Section) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		CheckoutID:               s.checkout.ID.String(),
		ShowSameAsShippingToggle: s.checkout.IsShippingRequired,
		ToggleLabel:              s.printer.Sprintf(msgUseShippingAsBilling),
		SameAsShipping:           s.sameAsShipping,
		SaveState:                s.saveState.State(),
	}
	if s.feed != nil {
		v.Alerts = s.feed.Drain()
	}

	if s.sameAsShipping {
		return v
	}

	form := &FormView{
		Title:                    s.printer.Sprintf(msgBillingAddress),
		Type:                     address.TypeBilling,
		Authenticated:            s.identity != nil,
		CheckAddressAvailability: false,
		Errors:                   s.fieldErrors.List(),
	}

	if s.identity != nil {
		form.Addresses = s.addresses
		if s.defaultBilling != nil {
			def := s.defaultBilling.Address
			form.DefaultAddress = &def
			form.DefaultAddressID = s.defaultBilling.ID.String()
		}
	} else if s.passDefaultFormData {
		form.DefaultAddress = address.Clone(s.checkout.BillingAddress)
	}

	v.Form = form
	return v
}

// State returns the decision inputs currently held by the section.
func (s *Section) State() (current, prior Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current = Snapshot{
		ShippingAddress: address.Clone(s.checkout.ShippingAddress),
		SameAsShipping:  s.sameAsShipping,
	}
	return current, s.prior
}
