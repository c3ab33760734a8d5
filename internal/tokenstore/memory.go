package tokenstore

// MemoryBackend is a map-backed Backend. It is not safe for concurrent use,
// matching the one-request-one-store lifecycle of the console.
type MemoryBackend struct {
	values map[string]string
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool) {
	val, ok := m.values[key]
	return val, ok
}

func (m *MemoryBackend) Set(key, value string) {
	m.values[key] = value
}

func (m *MemoryBackend) Remove(key string) {
	delete(m.values, key)
}

// Len returns the number of stored keys.
func (m *MemoryBackend) Len() int {
	return len(m.values)
}
