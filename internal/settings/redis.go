package settings

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"shopbridge/pkg/shopify"
)

// RedisStore keeps the settings record as one JSON document under key.
type RedisStore struct {
	cli *redis.Client
	key string
}

func NewRedisStore(cli *redis.Client, key string) *RedisStore {
	return &RedisStore{cli: cli, key: key}
}

func (s *RedisStore) Settings(ctx context.Context) (shopify.Settings, error) {
	out := s.cli.Get(ctx, s.key)
	if errors.Is(out.Err(), redis.Nil) {
		return shopify.Settings{}, notFound("redis")
	}
	if out.Err() != nil {
		return shopify.Settings{}, storeError(out.Err(), "redis")
	}

	var rec shopify.Settings
	if err := json.Unmarshal([]byte(out.Val()), &rec); err != nil {
		return shopify.Settings{}, storeError(err, "redis")
	}
	rec.AppType = normalizeAppType(string(rec.AppType))
	return rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec shopify.Settings) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cli.Set(ctx, s.key, string(b), 0).Err()
}
