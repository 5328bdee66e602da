// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotInitialized = errors.New("auth keys are not initialized")

// privateKey and publicKey are used for signing and verifying session tokens.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenTTL is how long a token stays valid; zero means no exp claim.
	tokenTTL time.Duration
)

// Init generates a fresh ed25519 key pair at runtime and sets the token lifetime.
func Init(ttl time.Duration) error {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	privateKey, publicKey, tokenTTL = priv, pub, ttl
	return nil
}

// CreateJWT creates a signed token with "sub" = userID, the identity a player acts under
// when creating or joining rooms.
func CreateJWT(userID string) (string, error) {
	if privateKey == nil {
		return "", ErrNotInitialized
	}
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	if tokenTTL != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(tokenTTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// AuthenticateJWT verifies a token string and returns its subject.
func AuthenticateJWT(tokenString string) (string, error) {
	if publicKey == nil {
		return "", ErrNotInitialized
	}
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("missing sub in jwt")
	}
	return claims.Subject, nil
}
