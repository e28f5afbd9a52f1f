package ratelimit

import (
	"context"
	"fmt"
	"time"

	"riverdeals.backend/pkg/redis"
)

// RedisThrottle throttles sources across processes using SET NX with a
// TTL equal to the window.
type RedisThrottle struct {
	window time.Duration
}

// NewRedisThrottle creates a Redis-backed throttle with the given window
func NewRedisThrottle(window time.Duration) *RedisThrottle {
	return &RedisThrottle{window: window}
}

// Allow reports whether source may click now. The key only exists while
// a prior click is still inside the window.
func (t *RedisThrottle) Allow(ctx context.Context, source string) (bool, error) {
	key := fmt.Sprintf("throttle:click:%s", source)
	ok, err := redis.SetNX(ctx, key, "1", t.window)
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return ok, nil
}
