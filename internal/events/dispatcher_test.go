package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	var calls []string
	d.Subscribe(EventSessionLogin, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return boom
	})
	d.Subscribe(EventSessionLogin, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventSessionLogout, func(_ context.Context, e Event) error {
		calls = append(calls, "logout")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventSessionLogin, Actor{UserID: "u-1"}, nil))
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to surface, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestNewEventStampsID(t *testing.T) {
	a := NewEvent(EventSessionExpired, Actor{}, SessionExpiredPayload{Trigger: "api"})
	b := NewEvent(EventSessionExpired, Actor{}, nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}
