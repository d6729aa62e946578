// Package store is the durable key-value store behind the slot map and
// the persistent sticky caches. Values are opaque blobs; every writer
// does whole-value read-modify-write once per cycle, so there is no
// transactional surface beyond Get and Set.
package store

import "sync"

// Store is the persistence contract the engine and caches depend on.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
}

// Memory is an in-process Store for tests and for running without a
// database file; contents vanish on exit.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
