package ratelimit

import (
	"context"
	"fmt"
	"github.com/patrickmn/go-cache"
	"time"
)

const (
	memoryCleanupInterval = time.Minute
	memoryMinTTL          = time.Millisecond
	memoryIncrAttempts    = 3
)

// MemoryStore 把计数放在进程内存里，重启后丢失，也不能在多个实例间共享
type MemoryStore struct {
	c   *cache.Cache
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		c:   cache.New(cache.NoExpiration, memoryCleanupInterval),
		now: time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, expiresAt time.Time) (int64, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl < memoryMinTTL {
		ttl = memoryMinTTL
	}

	var err error
	for i := 0; i < memoryIncrAttempts; i++ {
		// 不存在或已过期时从 0 开始，已存在时 Add 失败并沿用原有计数
		_ = s.c.Add(key, int64(0), ttl)

		var count int64
		if count, err = s.c.IncrementInt64(key, 1); err == nil {
			return count, nil
		}
		// Add 与 IncrementInt64 之间刚好过期，重试
	}

	return 0, fmt.Errorf("memory incr %s: %w", key, err)
}

// Len 返回当前保存的窗口数量
func (s *MemoryStore) Len() int {
	s.c.DeleteExpired()
	return s.c.ItemCount()
}
