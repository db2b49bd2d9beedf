package graph

import (
	"time"

	"checkout-be/internal/address"
	"checkout-be/internal/billing"
	"checkout-be/internal/checkout"
	"checkout-be/internal/graph/model"
	"checkout-be/internal/utils"
)

func mapAddress(a *address.Address) *model.Address {
	if a == nil {
		return nil
	}
	return &model.Address{
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		CompanyName:    a.CompanyName,
		StreetAddress1: a.StreetAddress1,
		StreetAddress2: a.StreetAddress2,
		City:           a.City,
		CityArea:       a.CityArea,
		PostalCode:     a.PostalCode,
		Country:        a.Country,
		CountryArea:    a.CountryArea,
		Phone:          a.Phone,
	}
}

func mapSavedAddress(a *address.SavedAddress) *model.Address {
	if a == nil {
		return nil
	}
	out := mapAddress(&a.Address)
	out.ID = utils.StrPtr(a.ID.String())
	out.IsDefaultBillingAddress = &a.IsDefaultBilling
	out.IsDefaultShippingAddress = &a.IsDefaultShipping
	return out
}

func mapSavedAddresses(list []*address.SavedAddress) []*model.Address {
	out := make([]*model.Address, 0, len(list))
	for _, a := range list {
		out = append(out, mapSavedAddress(a))
	}
	return out
}

func mapCheckout(c *checkout.Checkout) *model.Checkout {
	if c == nil {
		return nil
	}

	var email *string
	if c.Email != "" {
		email = utils.StrPtr(c.Email)
	}

	return &model.Checkout{
		ID:                 c.ID.String(),
		Email:              email,
		LanguageCode:       c.LanguageCode,
		IsShippingRequired: c.IsShippingRequired,
		ShippingAddress:    mapAddress(c.ShippingAddress),
		BillingAddress:     mapAddress(c.BillingAddress),
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
}

func mapFieldErrors(errs address.FieldErrors) []model.CheckoutError {
	out := make([]model.CheckoutError, 0, len(errs))
	for _, fe := range errs {
		var field *string
		if fe.Field != "" {
			field = utils.StrPtr(fe.Field)
		}
		out = append(out, model.CheckoutError{
			Field:   field,
			Message: fe.Message,
			Code:    fe.Code,
		})
	}
	return out
}

func mapAction(a billing.Action) *model.SyncAction {
	action := model.SyncAction(a.Kind.String())
	return &action
}

func mapSection(v billing.View) *model.BillingAddressSection {
	alerts := make([]*model.Alert, 0, len(v.Alerts))
	for _, a := range v.Alerts {
		var field *string
		if a.Field != "" {
			field = utils.StrPtr(a.Field)
		}
		alerts = append(alerts, &model.Alert{
			Scope:   string(a.Scope),
			Field:   field,
			Message: a.Message,
			Code:    a.Code,
		})
	}

	out := &model.BillingAddressSection{
		CheckoutID:               v.CheckoutID,
		ShowSameAsShippingToggle: v.ShowSameAsShippingToggle,
		ToggleLabel:              v.ToggleLabel,
		SameAsShipping:           v.SameAsShipping,
		SaveState:                model.SaveState(v.SaveState),
		Alerts:                   alerts,
	}

	if v.Form != nil {
		defaultAddress := mapAddress(v.Form.DefaultAddress)
		if defaultAddress != nil && v.Form.DefaultAddressID != "" {
			defaultAddress.ID = utils.StrPtr(v.Form.DefaultAddressID)
		}
		out.Form = &model.BillingAddressForm{
			Title:                    v.Form.Title,
			Type:                     model.AddressTypeEnum(v.Form.Type),
			Authenticated:            v.Form.Authenticated,
			DefaultAddress:           defaultAddress,
			Addresses:                mapSavedAddresses(v.Form.Addresses),
			CheckAddressAvailability: v.Form.CheckAddressAvailability,
			Errors:                   mapFieldErrors(v.Form.Errors),
		}
	}

	return out
}

func toAddress(in model.AddressInput) address.Address {
	return address.Address{
		FirstName:      utils.PtrString(in.FirstName),
		LastName:       utils.PtrString(in.LastName),
		CompanyName:    utils.PtrString(in.CompanyName),
		StreetAddress1: utils.PtrString(in.StreetAddress1),
		StreetAddress2: utils.PtrString(in.StreetAddress2),
		City:           utils.PtrString(in.City),
		CityArea:       utils.PtrString(in.CityArea),
		PostalCode:     utils.PtrString(in.PostalCode),
		Country:        utils.PtrString(in.Country),
		CountryArea:    utils.PtrString(in.CountryArea),
		Phone:          utils.PtrString(in.Phone),
	}
}

func toAddressPtr(in *model.AddressInput) *address.Address {
	if in == nil {
		return nil
	}
	a := toAddress(*in)
	return &a
}

func toValidationRules(in *model.CheckoutAddressValidationRules) address.ValidationRules {
	if in == nil {
		return address.DefaultRules()
	}
	return address.ValidationRules{
		CheckRequiredFields:       utils.BoolOr(in.CheckRequiredFields, true),
		CheckFieldsFormat:         utils.BoolOr(in.CheckFieldsFormat, true),
		EnableFieldsNormalization: utils.BoolOr(in.EnableFieldsNormalization, true),
	}
}
