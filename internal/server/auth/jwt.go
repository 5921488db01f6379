package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims of an issued token; Subject holds
// the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens with a shared secret.
type JWTIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

func NewJWTIssuer(secretKey []byte, validityDuration time.Duration) *JWTIssuer {
	return &JWTIssuer{secretKey: secretKey, validityDuration: validityDuration, now: time.Now}
}

func (i *JWTIssuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validityDuration)),
		},
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
