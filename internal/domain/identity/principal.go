package identity

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request context after
// token verification. Handlers and services read it instead of re-parsing
// credentials.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom extracts the principal from the context, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
