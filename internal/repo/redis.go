package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter is a fixed-window counter in redis, keyed per caller. A nil
// limiter allows everything, so the service runs fine without redis.
type RateLimiter struct {
	cli    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(ctx context.Context, addr string, perMinute int) (*RateLimiter, error) {
	cli := redis.NewClient(&redis.Options{Addr: addr})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RateLimiter{cli: cli, limit: perMinute, window: time.Minute}, nil
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	k := "rl:" + key

	n, err := l.cli.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := l.cli.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *RateLimiter) Close() error {
	if l == nil {
		return nil
	}
	return l.cli.Close()
}
