package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphermind/ciphermind/pkg/identity"
	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "well-formed", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "case-insensitive scheme", header: "bearer abc", expected: "abc"},
		{name: "missing header", header: "", expected: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", expected: ""},
		{name: "scheme only", header: "Bearer", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/secrets", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.expected, BearerToken(r))
		})
	}
}

func TestAuthenticatorMiddleware(t *testing.T) {
	tokens := token.NewManager([]byte("middleware-test-key"), time.Hour)
	auth := NewAuthenticator(tokens)

	var gotClaims *token.Claims
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := identity.Get(r.Context())
		require.True(t, ok)
		gotClaims = claims
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token passes through", func(t *testing.T) {
		signed, err := tokens.Issue("alice", model.RoleAdmin)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/secrets", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "alice", gotClaims.Username())
		assert.Equal(t, model.RoleAdmin, gotClaims.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/secrets", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/secrets", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := token.NewManager([]byte("some-other-key"), time.Hour)
		signed, err := other.Issue("mallory", model.RoleAdmin)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/secrets", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
