package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"checkout-be/internal/address"
	"checkout-be/internal/billing"
	"checkout-be/internal/checkout"
	"checkout-be/internal/graph/model"
	"checkout-be/internal/transport"
	"checkout-be/internal/utils"
)

type Resolver struct {
	CheckoutSvc   checkout.Service
	AddressSvc    address.Service
	Sections      *billing.Registry
	DefaultLocale string
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

func (r *queryResolver) fields() map[string]FieldFunc {
	return map[string]FieldFunc{
		"checkout": func(ctx context.Context, args map[string]any) (any, error) {
			return r.Checkout(ctx, stringArg(args, "id"))
		},
		"me": func(ctx context.Context, _ map[string]any) (any, error) {
			return r.Me(ctx)
		},
		"billingAddressSection": func(ctx context.Context, args map[string]any) (any, error) {
			return r.BillingAddressSection(ctx, stringArg(args, "checkoutId"), optStringArg(args, "locale"))
		},
	}
}

func (r *mutationResolver) fields() map[string]FieldFunc {
	return map[string]FieldFunc{
		"checkoutCreate": func(ctx context.Context, args map[string]any) (any, error) {
			var input model.CheckoutCreateInput
			if err := decodeArg(args, "input", &input); err != nil {
				return nil, err
			}
			return r.CheckoutCreate(ctx, input)
		},
		"checkoutBillingAddressUpdate": func(ctx context.Context, args map[string]any) (any, error) {
			var (
				addr  model.AddressInput
				rules *model.CheckoutAddressValidationRules
			)
			if err := decodeArg(args, "billingAddress", &addr); err != nil {
				return nil, err
			}
			if err := decodeArg(args, "validationRules", &rules); err != nil {
				return nil, err
			}
			return r.CheckoutBillingAddressUpdate(ctx, stringArg(args, "checkoutId"), optStringArg(args, "languageCode"), addr, rules)
		},
		"checkoutShippingAddressUpdate": func(ctx context.Context, args map[string]any) (any, error) {
			var (
				addr  model.AddressInput
				rules *model.CheckoutAddressValidationRules
			)
			if err := decodeArg(args, "shippingAddress", &addr); err != nil {
				return nil, err
			}
			if err := decodeArg(args, "validationRules", &rules); err != nil {
				return nil, err
			}
			return r.CheckoutShippingAddressUpdate(ctx, stringArg(args, "checkoutId"), optStringArg(args, "languageCode"), addr, rules)
		},
		"billingAddressSectionSetSameAsShipping": func(ctx context.Context, args map[string]any) (any, error) {
			return r.BillingAddressSectionSetSameAsShipping(ctx,
				stringArg(args, "checkoutId"),
				boolArg(args, "sameAsShipping"),
				optStringArg(args, "locale"),
			)
		},
		"billingAddressSectionSubmit": func(ctx context.Context, args map[string]any) (any, error) {
			var addr model.AddressInput
			if err := decodeArg(args, "billingAddress", &addr); err != nil {
				return nil, err
			}
			return r.BillingAddressSectionSubmit(ctx,
				stringArg(args, "checkoutId"),
				addr,
				boolArg(args, "autoSave"),
				optStringArg(args, "locale"),
			)
		},
		"billingAddressSectionSelectAddress": func(ctx context.Context, args map[string]any) (any, error) {
			return r.BillingAddressSectionSelectAddress(ctx,
				stringArg(args, "checkoutId"),
				stringArg(args, "addressId"),
				optStringArg(args, "locale"),
			)
		},
		"billingAddressSectionUnmount": func(ctx context.Context, args map[string]any) (any, error) {
			return r.BillingAddressSectionUnmount(ctx, stringArg(args, "checkoutId"))
		},
	}
}

// locale picks the explicit locale, then the request's Accept-Language,
// then the configured default.
func (r *Resolver) locale(ctx context.Context, explicit *string) string {
	if explicit != nil && *explicit != "" {
		return *explicit
	}
	return utils.PreferredLocale(transport.AcceptLanguage(ctx), r.DefaultLocale)
}

func (r *Resolver) languageCode(ctx context.Context, explicit *string) string {
	if explicit != nil && *explicit != "" {
		return *explicit
	}
	code, err := utils.LanguageCode(r.locale(ctx, nil))
	if err != nil {
		return ""
	}
	return code
}

func identityFromCtx(ctx context.Context) *billing.Identity {
	id, ok := utils.IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return &billing.Identity{UserID: id.UserID, Email: id.Email}
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func optStringArg(args map[string]any, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func boolArg(args map[string]any, name string) bool {
	b, _ := args[name].(bool)
	return b
}

// decodeArg fills dst from an input object argument. A missing or null
// argument leaves dst untouched.
func decodeArg(args map[string]any, name string, dst any) error {
	v, ok := args[name]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errInvalidInput, name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", errInvalidInput, name, err)
	}
	return nil
}
