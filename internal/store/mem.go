package store

// MemStore is an in-memory Store. Nothing survives the process; it backs
// tests and throwaway sessions.
type MemStore struct {
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set overwrites the value stored under key.
func (s *MemStore) Set(key string, value []byte) error {
	s.values[key] = append([]byte(nil), value...)
	return nil
}
