// Package auth holds the credential primitives of the server: password
// hashing and session token issuance.
package auth

import (
	"strconv"
	"time"
)

// TokenIssuer mints the opaque session token returned on register and login.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// PlaceholderIssuer returns "demo-token-<unix millis>". The token carries no
// identity and nothing verifies it.
type PlaceholderIssuer struct {
	now func() time.Time
}

func NewPlaceholderIssuer() *PlaceholderIssuer {
	return &PlaceholderIssuer{now: time.Now}
}

func (i *PlaceholderIssuer) Issue(string) (string, error) {
	return "demo-token-" + strconv.FormatInt(i.now().UnixMilli(), 10), nil
}

// NewTokenIssuer picks the JWT issuer when a secret is configured and the
// placeholder otherwise.
func NewTokenIssuer(secretKey string, validityDuration time.Duration) TokenIssuer {
	if secretKey == "" {
		return NewPlaceholderIssuer()
	}
	return NewJWTIssuer([]byte(secretKey), validityDuration)
}
