package kvstore

import (
	"context"
	"encoding/json"
	"sync"
)

type memoryStore struct {
	sync.RWMutex
	table map[string][]byte
}

var _ Store = (*memoryStore)(nil)

// NewMemory returns an in-process Store. Contents are lost on restart; it is
// the backend of choice for tests.
func NewMemory() Store {
	return &memoryStore{table: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.RLock()
	raw, ok := s.table[key]
	s.RUnlock()

	if !ok {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrMalformed
	}
	return nil
}

func (s *memoryStore) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.Lock()
	s.table[key] = raw
	s.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.Lock()
	delete(s.table, key)
	s.Unlock()
	return nil
}
