package billing

import (
	"sort"

	"checkout-be/internal/address"
)

// ValidationErrors is what a failed billing submission returns.
type ValidationErrors = address.FieldErrors

// FieldErrorState holds the per-field messages shown next to form inputs.
type FieldErrorState struct {
	byField map[string]address.FieldError
}

func (s *FieldErrorState) SetAPIErrors(errs address.FieldErrors) {
	s.byField = make(map[string]address.FieldError, len(errs))
	for _, fe := range errs {
		if fe.Field == "" {
			continue
		}
		if _, seen := s.byField[fe.Field]; !seen {
			s.byField[fe.Field] = fe
		}
	}
}

func (s *FieldErrorState) Clear() {
	s.byField = nil
}

func (s *FieldErrorState) Get(field string) (string, bool) {
	fe, ok := s.byField[field]
	return fe.Message, ok
}

// List returns the errors ordered by field name.
func (s *FieldErrorState) List() address.FieldErrors {
	out := make(address.FieldErrors, 0, len(s.byField))
	for _, fe := range s.byField {
		out = append(out, fe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
