// Package memory provides an in-memory KeyValueStore.
//
// It is meant for tests and throwaway servers: nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/sagarc03/kvtodo"
)

// Store implements kvtodo.KeyValueStore with a map guarded by a RWMutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// ListKeys returns all keys. Order follows map iteration and is not stable.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Get returns a copy of the value so callers cannot mutate stored bytes.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, kvtodo.ErrNotFound
	}

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = stored
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return kvtodo.ErrNotFound
	}
	delete(s.data, key)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
