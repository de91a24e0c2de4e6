// Package auth carries the authenticated principal through request contexts.
package auth

import "context"

type principalKey struct{}

// WithPrincipal returns a context carrying the given principal id.
func WithPrincipal(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, userID)
}

// PrincipalID returns the principal attached to ctx, if any.
func PrincipalID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalKey{}).(string)
	return id, ok && id != ""
}
