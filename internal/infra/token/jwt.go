// internal/infra/token/jwt.go
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ScopeHistoryRead is the capability granted to an authenticated admin: read
// access to the screening history and dashboard.
const ScopeHistoryRead = "history:read"

// Claims are the capability-token claims.
type Claims struct {
	Subject string `json:"sub_name"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

// Manager signs and verifies capability tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Sign issues a token for subject with the history-read capability.
func (m *Manager) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject: subject,
		Scope:   ScopeHistoryRead,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses a token and returns its claims when valid.
func (m *Manager) Verify(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
