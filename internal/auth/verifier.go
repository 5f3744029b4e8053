// Package auth gates admission: it validates the credential a client
// presents at handshake time and extracts its identity claims.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkeye/Chat/internal/domain"
)

// ErrInvalidOrExpired covers every verification failure: structure,
// signature, expiry, missing claims. A failed handshake is terminal
// for the attempt; the client reconnects with a fresh credential.
var ErrInvalidOrExpired = errors.New("invalid or expired token")

// userMetadata mirrors the identity claims issued alongside the token.
type userMetadata struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserMetadata userMetadata `json:"user_metadata"`
}

// Verifier checks HS256 tokens against a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the credential and returns the identity
// it carries. Expiry is required: a token without exp is rejected.
func (v *Verifier) Verify(token string) (domain.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrInvalidOrExpired, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, ErrInvalidOrExpired
	}

	identity, err := domain.NewIdentity(claims.UserMetadata.FullName, claims.UserMetadata.AvatarURL)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrInvalidOrExpired, err)
	}
	return identity, nil
}
