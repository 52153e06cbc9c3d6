// Package identity carries the authenticated caller through a request
// context. The server's authentication middleware parses the session
// token once and stores the claims here; endpoints retrieve them
// without re-parsing.
package identity

import (
	"context"

	"github.com/ciphermind/ciphermind/pkg/token"
)

type contextKey struct{}

// Set stores the caller's claims in the context.
func Set(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// Get retrieves the caller's claims from the context. ok is false when
// the request never passed authentication.
func Get(ctx context.Context) (claims *token.Claims, ok bool) {
	claims, ok = ctx.Value(contextKey{}).(*token.Claims)
	return claims, ok
}
