package transport

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	requestKey        ctxKey = "httpRequest"
	responseWriterKey ctxKey = "httpResponseWriter"
)

// WithHTTP exposes the HTTP exchange to resolvers running under ctx.
func WithHTTP(ctx context.Context, r *http.Request, w http.ResponseWriter) context.Context {
	ctx = context.WithValue(ctx, requestKey, r)
	ctx = context.WithValue(ctx, responseWriterKey, w)
	return ctx
}

func GetRequest(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey).(*http.Request)
	return r
}

func GetResponseWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(responseWriterKey).(http.ResponseWriter)
	return w
}

// AcceptLanguage returns the Accept-Language header of the request, if
// ctx carries one.
func AcceptLanguage(ctx context.Context) string {
	if r := GetRequest(ctx); r != nil {
		return r.Header.Get("Accept-Language")
	}
	return ""
}

// SetResponseHeader sets a header on the pending response. It reports
// false outside an HTTP exchange.
func SetResponseHeader(ctx context.Context, key, value string) bool {
	w := GetResponseWriter(ctx)
	if w == nil {
		return false
	}
	w.Header().Set(key, value)
	return true
}

// Middleware exposes each request and its response writer to the handlers
// below it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithHTTP(r.Context(), r, w)))
	})
}
