package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"timelog/internal/shared/configs"
)

const (
	redisKeyPrefix   = "timelog:"
	redisPingTimeout = 2 * time.Second
)

// NewRedisClient connects to redis and pings it once so a bad address fails at startup.
func NewRedisClient(ctx context.Context, cfg configs.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type redisLocker struct {
	client redis.Cmdable
}

func NewRedisLocker(client redis.Cmdable) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, name string) (bool, error) {
	// no expiry: a crashed holder keeps the lock until an operator clears it
	ok, err := l.client.SetNX(ctx, redisKeyPrefix+name, time.Now().UTC().Format(time.RFC3339Nano), 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set lock: %w", err)
	}
	return ok, nil
}

func (l *redisLocker) Release(ctx context.Context, name string) error {
	if err := l.client.Del(ctx, redisKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("failed to delete lock: %w", err)
	}
	return nil
}

type redisCheckpointStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisCheckpointStore(client redis.Cmdable, name string) CheckpointStore {
	return &redisCheckpointStore{client: client, key: redisKeyPrefix + name}
}

func (s *redisCheckpointStore) Get(ctx context.Context) (*time.Time, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	checkpoint, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %q: %w", value, err)
	}
	return &checkpoint, nil
}

func (s *redisCheckpointStore) Set(ctx context.Context, checkpoint time.Time) error {
	if err := s.client.Set(ctx, s.key, checkpoint.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("failed to set checkpoint: %w", err)
	}
	return nil
}
