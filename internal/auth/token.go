package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/nmt-console/internal/domain"
)

var (
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMissingClaims = errors.New("token missing subject, role or expiry")
	ErrUnknownRole        = errors.New("token carries unknown role")
)

// Claims is the payload the release backend embeds in its bearer tokens.
type Claims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// DecodeToken reads the token payload without verifying its signature.
// The decoded role only gates the console UI; the backend enforces authorization.
func DecodeToken(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return claims, nil
}

// Validate checks expiry against now and the presence of subject and role.
func (c *Claims) Validate(now time.Time) error {
	if c.Subject == "" || c.Role == "" || c.ExpiresAt == nil {
		return ErrTokenMissingClaims
	}
	if !c.ExpiresAt.Time.After(now) {
		return ErrTokenExpired
	}
	if !domain.Role(c.Role).Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}
	return nil
}

// Identity converts validated claims into the console identity.
func (c *Claims) Identity() domain.Identity {
	identity := domain.Identity{
		UserID:   c.Subject,
		Username: c.Username,
		Role:     domain.Role(c.Role),
	}
	if identity.Username == "" {
		identity.Username = c.Subject
	}
	if c.ExpiresAt != nil {
		identity.ExpiresAt = c.ExpiresAt.Time
	}
	return identity
}

// ParseIdentity decodes and validates raw in one step. Claims are returned
// whenever decoding succeeded, even if validation did not.
func ParseIdentity(raw string, now time.Time) (domain.Identity, *Claims, error) {
	claims, err := DecodeToken(raw)
	if err != nil {
		return domain.Identity{}, nil, err
	}
	if err := claims.Validate(now); err != nil {
		return domain.Identity{}, claims, err
	}
	return claims.Identity(), claims, nil
}
