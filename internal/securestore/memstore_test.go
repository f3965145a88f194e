package securestore

import (
	"sync"
)

// memStore is an in-memory store.Store for tests.
type memStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
	closed  bool
}

func newMemStore() *memStore {
	return &memStore{buckets: make(map[string]map[string][]byte)}
}

func (m *memStore) Get(bucket, key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.buckets[string(bucket)][string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (m *memStore) Has(bucket, key []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.buckets[string(bucket)][string(key)]
	return ok, nil
}

func (m *memStore) Set(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[string(bucket)]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[string(bucket)] = b
	}
	b[string(key)] = append([]byte{}, value...)
	return nil
}

func (m *memStore) Delete(bucket, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buckets[string(bucket)], string(key))
	return nil
}

func (m *memStore) Clear(bucket []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[string(bucket)] = make(map[string][]byte)
	return nil
}

func (m *memStore) ForEach(bucket []byte, fn func(key, value []byte) error) error {
	m.mu.Lock()
	snapshot := make(map[string][]byte, len(m.buckets[string(bucket)]))
	for k, v := range m.buckets[string(bucket)] {
		snapshot[k] = v
	}
	m.mu.Unlock()
	for k, v := range snapshot {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
