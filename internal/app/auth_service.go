// internal/app/auth_service.go
package app

import (
	"crypto/subtle"
	"fmt"
	"time"
)

// ErrBadCredentials is returned for any failed login attempt.
var ErrBadCredentials = fmt.Errorf("invalid username or password")

// TokenSigner issues a capability token for the given subject.
type TokenSigner func(subject string, ttl time.Duration) (string, error)

// Authenticator exchanges credentials for a capability token that gates the
// history and dashboard views.
type Authenticator interface {
	Authenticate(username, password string) (string, error)
}

// StaticAuthenticator checks a single configured admin credential. The
// credential comes from configuration, and the token signer is injected, so
// both are swappable without touching callers.
type StaticAuthenticator struct {
	username  string
	password  string
	signToken TokenSigner
	tokenTTL  time.Duration
}

func NewStaticAuthenticator(username, password string, signer TokenSigner) *StaticAuthenticator {
	return &StaticAuthenticator{
		username:  username,
		password:  password,
		signToken: signer,
		tokenTTL:  12 * time.Hour,
	}
}

func (a *StaticAuthenticator) Authenticate(username, password string) (string, error) {
	if a.username == "" || a.password == "" {
		return "", ErrBadCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK {
		return "", ErrBadCredentials
	}
	return a.signToken(username, a.tokenTTL)
}
