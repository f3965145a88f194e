package prefs

import (
	"errors"
	"sort"
	"sync"
)

var errWrongKind = errors.New("wrong kind")

// mapStore is an in-memory NativeStore keeping Go values as-is.
type mapStore struct {
	mu     sync.Mutex
	values map[string]any
	closed bool
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]any)}
}

func (s *mapStore) put(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = v
	return nil
}

func get[T any](s *mapStore, name string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	raw, ok := s.values[name]
	if !ok {
		return zero, false, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false, errWrongKind
	}
	return v, true, nil
}

func (s *mapStore) PutString(name, v string) error              { return s.put(name, v) }
func (s *mapStore) GetString(name string) (string, bool, error) { return get[string](s, name) }
func (s *mapStore) PutInt(name string, v int32) error           { return s.put(name, v) }
func (s *mapStore) GetInt(name string) (int32, bool, error)     { return get[int32](s, name) }
func (s *mapStore) PutBool(name string, v bool) error           { return s.put(name, v) }
func (s *mapStore) GetBool(name string) (bool, bool, error)     { return get[bool](s, name) }
func (s *mapStore) PutFloat(name string, v float32) error       { return s.put(name, v) }
func (s *mapStore) GetFloat(name string) (float32, bool, error) { return get[float32](s, name) }
func (s *mapStore) PutLong(name string, v int64) error          { return s.put(name, v) }
func (s *mapStore) GetLong(name string) (int64, bool, error)    { return get[int64](s, name) }

func (s *mapStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	return nil
}

func (s *mapStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	return nil
}

func (s *mapStore) Contains(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[name]
	return ok, nil
}

func (s *mapStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *mapStore) Close() error {
	s.closed = true
	return nil
}
