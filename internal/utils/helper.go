package utils

import (
	"encoding/json"
	"net/http"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BoolOr dereferences an optional GraphQL boolean argument.
func BoolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// WriteJSONError answers non-GraphQL failures (auth, rate limit, bad
// transport requests) with a small JSON body.
func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Status: code})
}
