package artifact

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	data   map[string][]byte
}

func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{
		prefix: normalizePrefix(prefix),
		data:   make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(_ context.Context, name string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	key := objectKey(s.prefix, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	key := objectKey(s.prefix, name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	keyPrefix := objectKey(s.prefix, "")
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for key := range s.data {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		out = append(out, strings.TrimPrefix(key, keyPrefix))
	}
	sort.Strings(out)
	return out, nil
}
