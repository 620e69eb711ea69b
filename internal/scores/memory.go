package scores

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryKV is an in-process KV backend, used when no database is available
// and in tests.
type MemoryKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	updated map[string]time.Time
}

// NewMemoryKV returns an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:    make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// Get returns a copy of the value under key.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (m *MemoryKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	m.updated[key] = time.Now()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	delete(m.updated, key)
	return nil
}

// UpdatedAt returns when key was last written, or the zero time.
func (m *MemoryKV) UpdatedAt(key string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updated[key], nil
}

// Keys returns the sorted keys starting with prefix.
func (m *MemoryKV) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
