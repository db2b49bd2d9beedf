package utils

import "context"

// Identity is the caller resolved by the auth middleware. Guests carry none.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

type ctxKey int

const (
	identityKey ctxKey = iota
	internalRequestKey
)

// SetUserContext stores the authenticated caller on ctx.
func SetUserContext(ctx context.Context, id uint, email string, role string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{UserID: id, Email: email, Role: role})
}

// IdentityFromContext reports the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.Email
}

func GetUserRoleFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.Role
}

// WithInternalRequest marks ctx as coming from a trusted internal caller.
func WithInternalRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalRequestKey, true)
}

func IsInternalRequest(ctx context.Context) bool {
	v, _ := ctx.Value(internalRequestKey).(bool)
	return v
}
