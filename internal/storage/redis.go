package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "treinalab-storage||"

// RedisStore keeps key/value pairs in redis, for deployments where the
// mock backend state should survive service restarts on another host.
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (rs *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := rs.redisClient.Get(ctx, redisKeyPrefix+key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get [%s]: %w", key, err)
	}
	return cmd.Val(), true, nil
}

func (rs *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := rs.redisClient.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set [%s]: %w", key, err)
	}
	return nil
}

func (rs *RedisStore) Remove(ctx context.Context, key string) error {
	if err := rs.redisClient.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del [%s]: %w", key, err)
	}
	return nil
}

// Close is a no-op, the redis client is owned and closed by the caller.
func (rs *RedisStore) Close() error {
	return nil
}
