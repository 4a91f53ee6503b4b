// Package cache implements Redis-backed caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
)

const reportKeyPrefix = "lifescope:ai:report:"

type reportCache struct {
	client redis.UniversalClient
}

// NewReportCache creates a life report cache on client.
func NewReportCache(client redis.UniversalClient) adapter.ReportCache {
	return &reportCache{client: client}
}

func reportKey(userID uuid.UUID, day string) string {
	return reportKeyPrefix + userID.String() + ":" + day
}

// Get returns the cached report, or nil on a miss.
func (c *reportCache) Get(ctx context.Context, userID uuid.UUID, day string) (*entity.LifeReport, error) {
	raw, err := c.client.Get(ctx, reportKey(userID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report entity.LifeReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// Set stores report under the user and day for ttl.
func (c *reportCache) Set(ctx context.Context, userID uuid.UUID, day string, report *entity.LifeReport, ttl time.Duration) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, reportKey(userID, day), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}
