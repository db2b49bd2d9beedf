package address

import (
	"github.com/google/uuid"
)

type AddressType string

const (
	TypeBilling  AddressType = "BILLING"
	TypeShipping AddressType = "SHIPPING"
)

func (t AddressType) Valid() bool {
	return t == TypeBilling || t == TypeShipping
}

// Address is the set of fields a checkout stores for billing or shipping.
// Two addresses are the same address when every field matches.
type Address struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	CompanyName    string `json:"companyName"`
	StreetAddress1 string `json:"streetAddress1"`
	StreetAddress2 string `json:"streetAddress2"`
	City           string `json:"city"`
	CityArea       string `json:"cityArea"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	CountryArea    string `json:"countryArea"`
	Phone          string `json:"phone"`
}

// SavedAddress is an entry of a user's address book.
type SavedAddress struct {
	ID     uuid.UUID
	UserID uint

	Address

	IsDefaultBilling  bool
	IsDefaultShipping bool
	IsActive          bool
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

const (
	CodeRequired = "REQUIRED"
	CodeInvalid  = "INVALID"
	CodeGraphQL  = "GRAPHQL_ERROR"
)

// FieldErrors is a list of field-keyed validation failures.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no field errors"
	}
	msg := e[0].Message
	if e[0].Field != "" {
		msg = e[0].Field + ": " + msg
	}
	if len(e) > 1 {
		return msg + " (and more)"
	}
	return msg
}

// Map returns the errors keyed by field. Errors without a field are dropped.
func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if fe.Field == "" {
			continue
		}
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
