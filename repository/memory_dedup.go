package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryDedupStore is the single-process fallback used when Valkey is disabled.
type MemoryDedupStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	seen  map[string]time.Time
	now   func() time.Time
	calls int
}

func NewMemoryDedupStore(ttl time.Duration) *MemoryDedupStore {
	return &MemoryDedupStore{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *MemoryDedupStore) MarkSeen(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.calls++
	// sweep expired keys every 256 calls
	if s.calls%256 == 0 {
		for k, exp := range s.seen {
			if now.After(exp) {
				delete(s.seen, k)
			}
		}
	}

	if exp, ok := s.seen[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.seen[key] = now.Add(s.ttl)
	return true, nil
}

func (s *MemoryDedupStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, key)
	return nil
}
