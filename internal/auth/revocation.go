package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "console:revoked:"

// Revocations remembers tokens signed out of the console until they expire.
type Revocations struct {
	client *redis.Client
}

// NewRevocations returns nil when no client is configured.
func NewRevocations(client *redis.Client) *Revocations {
	if client == nil {
		return nil
	}
	return &Revocations{client: client}
}

// Revoke records token until expiresAt. Already expired tokens are skipped.
func (r *Revocations) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if r == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKey(token), "1", ttl).Err()
}

// IsRevoked reports whether token was signed out.
func (r *Revocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r == nil {
		return false, nil
	}
	err := r.client.Get(ctx, revocationKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revocationPrefix + hex.EncodeToString(sum[:])
}
