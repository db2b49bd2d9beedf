package address

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationRules switches the checks applied by Validate.
type ValidationRules struct {
	CheckRequiredFields       bool
	CheckFieldsFormat         bool
	EnableFieldsNormalization bool
}

func DefaultRules() ValidationRules {
	return ValidationRules{
		CheckRequiredFields:       true,
		CheckFieldsFormat:         true,
		EnableFieldsNormalization: true,
	}
}

// RulesFor returns the rules for a submission. Auto-saved addresses are
// written by the system and may be partial, so required fields are not
// enforced for them.
func RulesFor(autoSave bool) ValidationRules {
	rules := DefaultRules()
	if autoSave {
		rules.CheckRequiredFields = false
	}
	return rules
}

// checkedAddress mirrors Address and carries the validation tags:
// "validate" holds required and format rules, "required" only presence,
// "format" only the format rules.
type checkedAddress struct {
	FirstName      string `json:"firstName" validate:"required,max=256" required:"required" format:"max=256"`
	LastName       string `json:"lastName" validate:"required,max=256" required:"required" format:"max=256"`
	CompanyName    string `json:"companyName" validate:"max=256" format:"max=256"`
	StreetAddress1 string `json:"streetAddress1" validate:"required,max=256" required:"required" format:"max=256"`
	StreetAddress2 string `json:"streetAddress2" validate:"max=256" format:"max=256"`
	City           string `json:"city" validate:"required,max=256" required:"required" format:"max=256"`
	CityArea       string `json:"cityArea" validate:"max=128" format:"max=128"`
	PostalCode     string `json:"postalCode" validate:"required,max=20" required:"required" format:"max=20"`
	Country        string `json:"country" validate:"required,iso3166_1_alpha2" required:"required" format:"omitempty,iso3166_1_alpha2"`
	CountryArea    string `json:"countryArea" validate:"max=128" format:"max=128"`
	Phone          string `json:"phone" validate:"omitempty,e164" format:"omitempty,e164"`
}

var postalCodePatterns = map[string]*regexp.Regexp{
	"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"CA": regexp.MustCompile(`^[A-Z]\d[A-Z] ?\d[A-Z]\d$`),
	"GB": regexp.MustCompile(`^[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}$`),
	"PL": regexp.MustCompile(`^\d{2}-\d{3}$`),
	"DE": regexp.MustCompile(`^\d{5}$`),
	"FR": regexp.MustCompile(`^\d{5}$`),
	"NL": regexp.MustCompile(`^\d{4} ?[A-Z]{2}$`),
	"ID": regexp.MustCompile(`^\d{5}$`),
}

var (
	fullValidator     = newValidator("validate", true)
	requiredValidator = newValidator("required", false)
	formatValidator   = newValidator("format", true)
)

func newValidator(tagName string, withFormat bool) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tagName)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if withFormat {
		v.RegisterStructValidation(validatePostalCode, checkedAddress{})
	}
	return v
}

func validatePostalCode(sl validator.StructLevel) {
	a := sl.Current().Interface().(checkedAddress)
	if a.PostalCode == "" {
		return
	}
	pattern, ok := postalCodePatterns[strings.ToUpper(a.Country)]
	if !ok {
		return
	}
	if !pattern.MatchString(strings.ToUpper(a.PostalCode)) {
		sl.ReportError(a.PostalCode, "postalCode", "PostalCode", "postal_code", a.Country)
	}
}

func validatorFor(rules ValidationRules) *validator.Validate {
	switch {
	case rules.CheckRequiredFields && rules.CheckFieldsFormat:
		return fullValidator
	case rules.CheckRequiredFields:
		return requiredValidator
	case rules.CheckFieldsFormat:
		return formatValidator
	default:
		return nil
	}
}

// Normalize trims every field and upper-cases country and postal code.
func Normalize(a Address) Address {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.CompanyName = strings.TrimSpace(a.CompanyName)
	a.StreetAddress1 = strings.TrimSpace(a.StreetAddress1)
	a.StreetAddress2 = strings.TrimSpace(a.StreetAddress2)
	a.City = strings.TrimSpace(a.City)
	a.CityArea = strings.TrimSpace(a.CityArea)
	a.PostalCode = strings.ToUpper(strings.TrimSpace(a.PostalCode))
	a.Country = strings.ToUpper(strings.TrimSpace(a.Country))
	a.CountryArea = strings.TrimSpace(a.CountryArea)
	a.Phone = strings.TrimSpace(a.Phone)
	return a
}

// Validate applies rules to a and returns the (possibly normalized)
// address together with the field errors found.
func Validate(a Address, rules ValidationRules) (Address, FieldErrors) {
	if rules.EnableFieldsNormalization {
		a = Normalize(a)
	}

	v := validatorFor(rules)
	if v == nil {
		return a, nil
	}

	err := v.Struct(checkedAddress(a))
	if err == nil {
		return a, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return a, FieldErrors{{Message: err.Error(), Code: CodeInvalid}}
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Code:    codeForTag(fe),
		})
	}
	return a, out
}

func codeForTag(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return CodeRequired
	}
	return CodeInvalid
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "iso3166_1_alpha2":
		return "Invalid country code"
	case "e164":
		return "Invalid phone number"
	case "postal_code":
		return fmt.Sprintf("Invalid postal code for %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on '%s' validation", fe.Tag())
	}
}
