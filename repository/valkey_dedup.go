package repository

import (
	"context"
	"time"

	"github.com/TrueSelph/ultramsg-action/infrastructure/valkey"
)

// ValkeyDedupStore shares seen message ids between action server replicas.
// Keys expire on their own through SET NX EX.
type ValkeyDedupStore struct {
	client *valkey.Client
	prefix string
	ttl    time.Duration
}

func NewValkeyDedupStore(client *valkey.Client, ttl time.Duration) *ValkeyDedupStore {
	if ttl < time.Second {
		ttl = time.Second
	}
	return &ValkeyDedupStore{
		client: client,
		prefix: client.Key("dedup") + ":",
		ttl:    ttl,
	}
}

func (s *ValkeyDedupStore) MarkSeen(ctx context.Context, key string) (bool, error) {
	cmd := s.client.Inner().B().Set().
		Key(s.prefix + key).
		Value("1").
		Nx().
		ExSeconds(int64(s.ttl / time.Second)).
		Build()

	err := s.client.Inner().Do(ctx, cmd).Error()
	if err != nil {
		if valkey.IsNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ValkeyDedupStore) Forget(ctx context.Context, key string) error {
	inner := s.client.Inner()
	return inner.Do(ctx, inner.B().Del().Key(s.prefix+key).Build()).Error()
}
