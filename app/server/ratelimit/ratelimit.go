// Package ratelimit 实现固定窗口的请求计数：每个客户端在每个分组、每个窗口内单独计数，
// 超过上限后同一窗口内的请求都会被拒绝，窗口切换后重新计数。
package ratelimit

import (
	"college-portal/app/server/constants"
	"context"
	"errors"
	"fmt"
	"time"
)

// Store 保存窗口计数。Incr 必须是原子的，并发请求不能少算。
type Store interface {
	// Incr 给 key 的计数加一并返回新值，计数在 expiresAt 之后可以丢弃
	Incr(ctx context.Context, key string, expiresAt time.Time) (int64, error)
}

type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time // 当前窗口结束时间
	RetryIn   int64     // 距窗口结束的秒数，向上取整，至少为 1
}

type Limiter struct {
	store  Store
	group  string
	max    int64
	window time.Duration
	now    func() time.Time
}

func New(store Store, group string, max int64, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if group == "" {
		return nil, errors.New("group is empty")
	}
	if max <= 0 || window <= 0 {
		return nil, fmt.Errorf("invalid limit %d per %s", max, window)
	}

	return &Limiter{
		store:  store,
		group:  group,
		max:    max,
		window: window,
		now:    time.Now,
	}, nil
}

// SetClock 替换时间来源，测试用
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

func (l *Limiter) Group() string {
	return l.group
}

// Allow 为 client 计一次请求，并判断是否仍在上限内
func (l *Limiter) Allow(ctx context.Context, client string) (*Result, error) {
	now := l.now()

	// 窗口按 Unix 时间对齐
	index := now.UnixNano() / int64(l.window)
	resetAt := time.Unix(0, (index+1)*int64(l.window))

	key := fmt.Sprintf(constants.CacheKeyRateLimit, l.group, client, index)
	count, err := l.store.Incr(ctx, key, resetAt)
	if err != nil {
		return nil, fmt.Errorf("incr %s: %w", key, err)
	}

	res := &Result{
		Allowed:   count <= l.max,
		Limit:     l.max,
		Remaining: l.max - count,
		ResetAt:   resetAt,
		RetryIn:   int64((resetAt.Sub(now) + time.Second - 1) / time.Second),
	}
	if res.RetryIn < 1 {
		res.RetryIn = 1
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}

	return res, nil
}
