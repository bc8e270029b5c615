package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PartitionStore keeps blobs as plain redis strings under a key prefix.
type PartitionStore struct {
	client redis.UniversalClient
	prefix string
}

func NewPartitionStore(client redis.UniversalClient, prefix string) *PartitionStore {
	return &PartitionStore{client: client, prefix: prefix}
}

// NewClient builds a client for addr and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *PartitionStore) Put(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return fmt.Errorf("blob key is required")
	}
	if err := s.client.Set(ctx, s.prefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *PartitionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return blob, true, nil
}
