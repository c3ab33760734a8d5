// Package tokenstore keeps the console bearer token in exactly one of two
// backends: a durable one used when the user asked to be remembered, and an
// ephemeral one that lives for the browser session only.
package tokenstore

// Key is the fixed name the token is stored under in both backends.
const Key = "nmt_token"

// Backend is a string key/value area such as a cookie jar.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Store wraps the durable and ephemeral backends behind one interface.
type Store struct {
	durable   Backend
	ephemeral Backend
}

// New builds a Store over the two backends.
func New(durable, ephemeral Backend) *Store {
	return &Store{durable: durable, ephemeral: ephemeral}
}

// Token returns the durable token if present, else the ephemeral one.
func (s *Store) Token() (string, bool) {
	if token, ok := s.durable.Get(Key); ok && token != "" {
		return token, true
	}
	if token, ok := s.ephemeral.Get(Key); ok && token != "" {
		return token, true
	}
	return "", false
}

// SetToken writes the token to one backend and clears the other.
func (s *Store) SetToken(token string, remember bool) {
	if remember {
		s.durable.Set(Key, token)
		s.ephemeral.Remove(Key)
		return
	}
	s.ephemeral.Set(Key, token)
	s.durable.Remove(Key)
}

// ClearToken removes the token from both backends.
func (s *Store) ClearToken() {
	s.durable.Remove(Key)
	s.ephemeral.Remove(Key)
}

// IsRemembered reports whether the durable backend holds a token.
func (s *Store) IsRemembered() bool {
	token, ok := s.durable.Get(Key)
	return ok && token != ""
}
