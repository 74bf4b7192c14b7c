// Package auth mints and verifies session tokens handed out at provisioning.
package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies HS256 session tokens carrying the wallet
// identity key as the subject claim.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a new TokenIssuer
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// NewTokenIssuerFromEnv builds an issuer from the SESSION_SECRET environment
// variable, falling back to a development-only secret.
func NewTokenIssuerFromEnv() *TokenIssuer {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-session-secret"
	}
	return NewTokenIssuer([]byte(secret), 24*time.Hour)
}

// Issue returns a signed token for the given identity key
func (i *TokenIssuer) Issue(identityKey string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   identityKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ExtractIdentityKey verifies tokenString and returns its subject.
func (i *TokenIssuer) ExtractIdentityKey(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("no sub claim in token")
	}

	return sub, nil
}

// ValidateToken is a middleware-friendly helper: given an Authorization
// header value it returns the identity key and whether it verified.
func (i *TokenIssuer) ValidateToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}

	identityKey, err := i.ExtractIdentityKey(authHeader)
	if err != nil {
		return "", false
	}

	return identityKey, true
}
