package ratelimit

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

// RedisStore 把计数放在 Redis 中，多个实例共享同一份窗口
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, expiresAt time.Time) (int64, error) {
	var incr *redis.IntCmd

	// INCR 与 EXPIREAT 放在同一个事务里，避免留下不会过期的计数
	if _, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireAt(ctx, key, expiresAt)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}

	return incr.Val(), nil
}
