package kvstore

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*redisStore)(nil)

// NewRedis returns a Store backed by a redis instance, for deployments where
// several processes share the same state. Keys are namespaced with prefix.
// Multi-writer coordination stays last-writer-wins at whole-document
// granularity, same as the other backends.
func NewRedis(ctx context.Context, addr, password string, db int, prefix string) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "connecting to redis at %s", addr)
	}
	return &redisStore{client: client, prefix: prefix}, nil
}

func (s *redisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrKeyNotFound
		}
		return errors.Wrapf(err, "reading %s", key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrMalformed
	}
	return nil
}

func (s *redisStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return errors.Wrapf(s.client.Set(ctx, s.key(key), raw, 0).Err(), "writing %s", key)
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, s.key(key)).Err(), "deleting %s", key)
}
