package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "lifescope:ratelimit:"

// RateCounter is a fixed-window request counter shared by every API replica.
type RateCounter struct {
	client redis.UniversalClient
}

// NewRateCounter creates a counter on client.
func NewRateCounter(client redis.UniversalClient) *RateCounter {
	return &RateCounter{client: client}
}

// Hit increments key and starts its window when the key has no expiry yet.
func (r *RateCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	fullKey := rateKeyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fullKey)
		ttl = pipe.PTTL(ctx, fullKey)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count request: %w", err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		if err := r.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to start rate window: %w", err)
		}
		remaining = window
	}
	return incr.Val(), remaining, nil
}
