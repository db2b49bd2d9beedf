package middleware

import (
	"net/http"
	"slices"

	"checkout-be/internal/logger"
)

// CORS allows browser calls from the configured storefront origins. The
// first origin is used for requests that send none.
func CORS(origins ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
			case origin == "" && len(origins) > 0:
				w.Header().Set("Access-Control-Allow-Origin", origins[0])
			}
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language, "+logger.RequestIDHeader+", X-Device-ID, X-Client-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Language, "+logger.RequestIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
