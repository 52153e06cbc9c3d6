// Package middleware holds the HTTP middleware shared by the vault's
// authenticated routes.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ciphermind/ciphermind/pkg/identity"
	"github.com/ciphermind/ciphermind/pkg/token"
)

// BearerToken extracts the session token from the Authorization
// header. Returns the empty string when no bearer credentials are
// present.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	scheme, credentials, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(credentials)
}

// Authenticator rejects requests without a valid session token and
// stores the verified claims in the request context.
type Authenticator struct {
	Tokens *token.Manager
}

// NewAuthenticator creates the authentication middleware.
func NewAuthenticator(tokens *token.Manager) *Authenticator {
	return &Authenticator{Tokens: tokens}
}

// Middleware returns the http middleware function.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			unauthorized(w, "Authorization missing")
			return
		}

		claims, err := a.Tokens.Parse(raw)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), claims)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
