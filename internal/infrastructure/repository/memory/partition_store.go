package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// PartitionStore keeps blobs in process. Used for dry runs and tests.
type PartitionStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewPartitionStore() *PartitionStore {
	return &PartitionStore{blobs: make(map[string][]byte)}
}

func (s *PartitionStore) Put(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *PartitionStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, blob...), true, nil
}

// Keys lists stored keys with the given prefix in lexical order.
func (s *PartitionStore) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.blobs))
	for key := range s.blobs {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
