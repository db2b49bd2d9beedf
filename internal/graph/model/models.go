package model

type AddressTypeEnum string

const (
	AddressTypeEnumBilling  AddressTypeEnum = "BILLING"
	AddressTypeEnumShipping AddressTypeEnum = "SHIPPING"
)

type SaveState string

const (
	SaveStateIdle    SaveState = "IDLE"
	SaveStateLoading SaveState = "LOADING"
	SaveStateSuccess SaveState = "SUCCESS"
	SaveStateError   SaveState = "ERROR"
)

type SyncAction string

const (
	SyncActionNoOp                         SyncAction = "NO_OP"
	SyncActionOverwriteBillingWithShipping SyncAction = "OVERWRITE_BILLING_WITH_SHIPPING"
)

type Address struct {
	ID                       *string `json:"id"`
	FirstName                string  `json:"firstName"`
	LastName                 string  `json:"lastName"`
	CompanyName              string  `json:"companyName"`
	StreetAddress1           string  `json:"streetAddress1"`
	StreetAddress2           string  `json:"streetAddress2"`
	City                     string  `json:"city"`
	CityArea                 string  `json:"cityArea"`
	PostalCode               string  `json:"postalCode"`
	Country                  string  `json:"country"`
	CountryArea              string  `json:"countryArea"`
	Phone                    string  `json:"phone"`
	IsDefaultBillingAddress  *bool   `json:"isDefaultBillingAddress"`
	IsDefaultShippingAddress *bool   `json:"isDefaultShippingAddress"`
}

type AddressInput struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	CompanyName    *string `json:"companyName,omitempty"`
	StreetAddress1 *string `json:"streetAddress1,omitempty"`
	StreetAddress2 *string `json:"streetAddress2,omitempty"`
	City           *string `json:"city,omitempty"`
	CityArea       *string `json:"cityArea,omitempty"`
	PostalCode     *string `json:"postalCode,omitempty"`
	Country        *string `json:"country,omitempty"`
	CountryArea    *string `json:"countryArea,omitempty"`
	Phone          *string `json:"phone,omitempty"`
}

type CheckoutAddressValidationRules struct {
	CheckRequiredFields       *bool `json:"checkRequiredFields,omitempty"`
	CheckFieldsFormat         *bool `json:"checkFieldsFormat,omitempty"`
	EnableFieldsNormalization *bool `json:"enableFieldsNormalization,omitempty"`
}

type CheckoutError struct {
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    string  `json:"code"`
}

type Checkout struct {
	ID                 string   `json:"id"`
	Email              *string  `json:"email"`
	LanguageCode       string   `json:"languageCode"`
	IsShippingRequired bool     `json:"isShippingRequired"`
	ShippingAddress    *Address `json:"shippingAddress"`
	BillingAddress     *Address `json:"billingAddress"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

type CheckoutCreateInput struct {
	Email              *string       `json:"email,omitempty"`
	LanguageCode       *string       `json:"languageCode,omitempty"`
	IsShippingRequired *bool         `json:"isShippingRequired,omitempty"`
	ShippingAddress    *AddressInput `json:"shippingAddress,omitempty"`
	BillingAddress     *AddressInput `json:"billingAddress,omitempty"`
}

type CheckoutCreate struct {
	Checkout *Checkout       `json:"checkout"`
	Errors   []CheckoutError `json:"errors"`
}

type CheckoutBillingAddressUpdate struct {
	Checkout *Checkout       `json:"checkout"`
	Errors   []CheckoutError `json:"errors"`
}

type CheckoutShippingAddressUpdate struct {
	Checkout *Checkout       `json:"checkout"`
	Errors   []CheckoutError `json:"errors"`
}

type User struct {
	ID                     string     `json:"id"`
	Email                  string     `json:"email"`
	Addresses              []*Address `json:"addresses"`
	DefaultBillingAddress  *Address   `json:"defaultBillingAddress"`
	DefaultShippingAddress *Address   `json:"defaultShippingAddress"`
}

type Alert struct {
	Scope   string  `json:"scope"`
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    string  `json:"code"`
}

type BillingAddressForm struct {
	Title                    string          `json:"title"`
	Type                     AddressTypeEnum `json:"type"`
	Authenticated            bool            `json:"authenticated"`
	DefaultAddress           *Address        `json:"defaultAddress"`
	Addresses                []*Address      `json:"addresses"`
	CheckAddressAvailability bool            `json:"checkAddressAvailability"`
	Errors                   []CheckoutError `json:"errors"`
}

type BillingAddressSection struct {
	CheckoutID               string              `json:"checkoutId"`
	ShowSameAsShippingToggle bool                `json:"showSameAsShippingToggle"`
	ToggleLabel              string              `json:"toggleLabel"`
	SameAsShipping           bool                `json:"sameAsShipping"`
	SaveState                SaveState           `json:"saveState"`
	Alerts                   []*Alert            `json:"alerts"`
	Form                     *BillingAddressForm `json:"form"`
}

type BillingAddressSectionUpdate struct {
	Section *BillingAddressSection `json:"section"`
	Action  *SyncAction            `json:"action"`
	Errors  []CheckoutError        `json:"errors"`
}
