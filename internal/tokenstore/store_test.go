package tokenstore

import "testing"

func newMemoryStore() (*Store, *MemoryBackend, *MemoryBackend) {
	durable := NewMemoryBackend()
	ephemeral := NewMemoryBackend()
	return New(durable, ephemeral), durable, ephemeral
}

func TestSetTokenRemembered(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()

	store.SetToken("tok-1", true)

	if !store.IsRemembered() {
		t.Fatal("expected token to be remembered")
	}
	if ephemeral.Len() != 0 {
		t.Fatalf("expected empty ephemeral backend, got %d keys", ephemeral.Len())
	}
	if val, _ := durable.Get(Key); val != "tok-1" {
		t.Fatalf("unexpected durable value %q", val)
	}
}

func TestSetTokenNotRemembered(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()

	store.SetToken("tok-1", false)

	if store.IsRemembered() {
		t.Fatal("expected token not to be remembered")
	}
	if durable.Len() != 0 {
		t.Fatalf("expected empty durable backend, got %d keys", durable.Len())
	}
	if val, _ := ephemeral.Get(Key); val != "tok-1" {
		t.Fatalf("unexpected ephemeral value %q", val)
	}
}

func TestSetTokenSwitchesBackends(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()

	store.SetToken("tok-1", true)
	store.SetToken("tok-2", false)

	if durable.Len() != 0 || ephemeral.Len() != 1 {
		t.Fatalf("expected only ephemeral to hold a token, durable=%d ephemeral=%d", durable.Len(), ephemeral.Len())
	}

	store.SetToken("tok-3", true)
	if durable.Len() != 1 || ephemeral.Len() != 0 {
		t.Fatalf("expected only durable to hold a token, durable=%d ephemeral=%d", durable.Len(), ephemeral.Len())
	}
	if tok, _ := store.Token(); tok != "tok-3" {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestTokenPrefersDurable(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()
	durable.Set(Key, "durable")
	ephemeral.Set(Key, "ephemeral")

	tok, ok := store.Token()
	if !ok || tok != "durable" {
		t.Fatalf("expected durable token, got %q ok=%v", tok, ok)
	}

	durable.Remove(Key)
	tok, ok = store.Token()
	if !ok || tok != "ephemeral" {
		t.Fatalf("expected ephemeral token, got %q ok=%v", tok, ok)
	}
}

func TestClearTokenIdempotent(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()
	store.SetToken("tok-1", true)

	store.ClearToken()
	store.ClearToken()

	if _, ok := store.Token(); ok {
		t.Fatal("expected no token after clear")
	}
	if durable.Len() != 0 || ephemeral.Len() != 0 {
		t.Fatal("expected both backends empty")
	}
}
