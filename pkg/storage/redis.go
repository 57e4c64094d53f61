package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "slaskdash:filters:"

type RedisFilterStore struct {
	client     *redis.Client
	Expiration time.Duration
}

func NewRedisFilterStore(addr, password string, db int) *RedisFilterStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisFilterStoreWithClient(rdb)
}

func NewRedisFilterStoreWithClient(rdb *redis.Client) *RedisFilterStore {
	return &RedisFilterStore{client: rdb, Expiration: 30 * 24 * time.Hour}
}

func (s *RedisFilterStore) Save(ctx context.Context, sessionId string, spec types.FilterSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sessionId, data, s.Expiration).Err()
}

func (s *RedisFilterStore) Load(ctx context.Context, sessionId string) (types.FilterSpec, error) {
	spec := types.FilterSpec{}
	data, err := s.client.Get(ctx, keyPrefix+sessionId).Bytes()
	if errors.Is(err, redis.Nil) {
		return spec, ErrNotFound
	}
	if err != nil {
		return spec, err
	}
	err = json.Unmarshal(data, &spec)
	return spec, err
}

func (s *RedisFilterStore) Close() error {
	return s.client.Close()
}
