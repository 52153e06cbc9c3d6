package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// DefaultTTL is the policy default session lifetime.
const DefaultTTL = 8 * time.Hour

// Claims is the self-contained claim set carried by a session token.
// Tokens are stateless: verification is a signature and expiry check
// only, so logout and revocation are out of scope.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// Username returns the subject the token was issued to.
func (c *Claims) Username() string {
	return c.Subject
}

// Manager issues and verifies signed, time-limited session tokens.
type Manager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewManager creates a token manager signing with the given key. A zero
// ttl falls back to DefaultTTL.
func NewManager(secretKey []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// WithClock replaces the clock source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Issue creates a signed token carrying the username and role.
func (m *Manager) Issue(username string, role model.Role) (string, error) {
	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: role,
	})

	signed, err := tok.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token's signature and expiry and returns its claims.
// Malformed, tampered and expired tokens all yield model.ErrAuth.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAuth, err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("%w: token is invalid", model.ErrAuth)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: token carries no usable identity", model.ErrAuth)
	}
	return claims, nil
}
