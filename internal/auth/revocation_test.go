package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRevocationsTest(t *testing.T) (*Revocations, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRevocations(rdb), mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRevokeUntilExpiry(t *testing.T) {
	revs, mr, done := newRevocationsTest(t)
	defer done()
	ctx := context.Background()

	if err := revs.Revoke(ctx, "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := revs.IsRevoked(ctx, "tok-1")
	if err != nil {
		t.Fatalf("is revoked: %v", err)
	}
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	other, err := revs.IsRevoked(ctx, "tok-2")
	if err != nil || other {
		t.Fatalf("expected unrelated token not revoked, got %v err=%v", other, err)
	}

	mr.FastForward(2 * time.Hour)
	revoked, err = revs.IsRevoked(ctx, "tok-1")
	if err != nil || revoked {
		t.Fatalf("expected revocation to lapse with token expiry, got %v err=%v", revoked, err)
	}
}

func TestRevokeSkipsExpiredTokens(t *testing.T) {
	revs, mr, done := newRevocationsTest(t)
	defer done()

	if err := revs.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}
}

func TestNilRevocationsIsNoop(t *testing.T) {
	var revs *Revocations
	if err := revs.Revoke(context.Background(), "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := revs.IsRevoked(context.Background(), "tok")
	if err != nil || revoked {
		t.Fatalf("expected nil list to report nothing revoked, got %v err=%v", revoked, err)
	}
	if NewRevocations(nil) != nil {
		t.Fatal("expected nil revocations without a client")
	}
}
