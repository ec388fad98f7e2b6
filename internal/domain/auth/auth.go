// Package auth verifies request tokens for the two caller scopes.
//
// Regular callers present a SHA-512 digest of account+login+salt. The admin
// scope instead digests the current hour and the admin salt, which makes
// admin tokens valid for a one-hour rolling window; the clock is injectable
// so that window stays testable.
package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// AdminLogin is the login that selects the admin scope.
const AdminLogin = "admin"

// Default shared secrets, overridable through configuration.
const (
	DefaultSalt      = "Otus"
	DefaultAdminSalt = "42"
)

// hourLayout truncates the clock to the hour for admin digests.
const hourLayout = "2006010215"

// Authenticator computes and verifies request tokens.
type Authenticator struct {
	salt      string
	adminSalt string
	now       func() time.Time
}

// Option applies a configuration option to the Authenticator.
type Option func(*Authenticator)

// WithSalt overrides the shared secret for regular tokens.
func WithSalt(salt string) Option {
	return func(a *Authenticator) {
		if salt != "" {
			a.salt = salt
		}
	}
}

// WithAdminSalt overrides the admin secret.
func WithAdminSalt(salt string) Option {
	return func(a *Authenticator) {
		if salt != "" {
			a.adminSalt = salt
		}
	}
}

// WithClock replaces the wall clock used for admin digests.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an authenticator with the default secrets and wall clock.
func New(opts ...Option) *Authenticator {
	a := &Authenticator{
		salt:      DefaultSalt,
		adminSalt: DefaultAdminSalt,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func digest(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// AdminDigest returns the token expected from the admin scope for the
// current hour, using the authenticator's local clock.
func (a *Authenticator) AdminDigest() string {
	return digest(a.now().Format(hourLayout) + a.adminSalt)
}

// UserDigest returns the token expected from a regular caller.
func (a *Authenticator) UserDigest(account, login string) string {
	return digest(account + login + a.salt)
}

// Verify reports whether the supplied token matches the expected digest for
// the caller's scope. There is no retry semantic: a mismatch is terminal for
// the request.
func (a *Authenticator) Verify(account, login, token string) bool {
	var expected string
	if login == AdminLogin {
		expected = a.AdminDigest()
	} else {
		expected = a.UserDigest(account, login)
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
