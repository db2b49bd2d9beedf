package graph

import (
	"context"
	"errors"
	"runtime/debug"

	"checkout-be/internal/address"
	"checkout-be/internal/billing"
	"checkout-be/internal/checkout"
	"checkout-be/internal/logger"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	errInternal              = errors.New("internal system error")
	errNullValue             = errors.New("the requested element is null which the schema does not allow")
	errInvalidInput          = errors.New("invalid input")
	errIntrospectionDisabled = errors.New("introspection disabled")
)

const (
	codeNotFound        = "NOT_FOUND"
	codeForbidden       = "FORBIDDEN"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeBadUserInput    = "BAD_USER_INPUT"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

// presentError is the server's error presenter. Resolver errors get a
// machine-readable code in their extensions; errors gqlgen raised itself
// (parsing, validation) pass through untouched.
func presentError(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)
	if gqlErr.Err == nil {
		return gqlErr
	}

	code := errorCode(err)
	if code == "" || code == codeInternal {
		logger.FromCtx(ctx).Error("resolver failed",
			zap.Error(err),
			zap.String("path", gqlErr.Path.String()),
		)
	}
	if code != "" {
		if gqlErr.Extensions == nil {
			gqlErr.Extensions = map[string]any{}
		}
		gqlErr.Extensions["code"] = code
	}
	return gqlErr
}

// recoverResolver logs a resolver panic and hides it from the client.
func recoverResolver(ctx context.Context, p any) error {
	logger.FromCtx(ctx).Error("resolver panic",
		zap.Any("panic", p),
		zap.ByteString("stack", debug.Stack()),
	)
	return errInternal
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, checkout.ErrCheckoutNotFound),
		errors.Is(err, address.ErrAddressNotFound):
		return codeNotFound
	case errors.Is(err, checkout.ErrForbidden):
		return codeForbidden
	case errors.Is(err, address.ErrUnauthenticated),
		errors.Is(err, billing.ErrUnauthenticated):
		return codeUnauthenticated
	case errors.Is(err, checkout.ErrInvalidCheckoutID),
		errors.Is(err, address.ErrInvalidAddressID),
		errors.Is(err, address.ErrInvalidType),
		errors.Is(err, errInvalidInput),
		errors.Is(err, errIntrospectionDisabled):
		return codeBadUserInput
	case errors.Is(err, errInternal),
		errors.Is(err, errNullValue),
		errors.Is(err, checkout.ErrFailedCreateCheckout),
		errors.Is(err, checkout.ErrFailedUpdateCheckout):
		return codeInternal
	}
	return ""
}
