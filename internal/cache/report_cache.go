// Package cache provides Redis-backed caching for computed report data and
// a deduplication key for classifier callbacks. Both are best-effort: cache
// failures degrade to recomputation, never to request errors.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cradlewatch/cradlewatch/internal/domain"
	"github.com/cradlewatch/cradlewatch/internal/pkg/logger"
)

// ReportCache stores computed ReportData as JSON with a TTL, keyed by
// infant and window.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a report cache.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func reportKey(infantID int64, start, end string) string {
	return fmt.Sprintf("report:%d:%s:%s", infantID, start, end)
}

// Get returns the cached report data for a window, if present.
func (c *ReportCache) Get(ctx context.Context, infantID int64, start, end string) (*domain.ReportData, bool) {
	raw, err := c.client.Get(ctx, reportKey(infantID, start, end)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("report cache get failed", "error", err.Error())
		return nil, false
	}

	var data domain.ReportData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logger.Warn("report cache decode failed", "error", err.Error())
		return nil, false
	}
	return &data, true
}

// Set stores report data for a window. Failures are logged and ignored.
func (c *ReportCache) Set(ctx context.Context, infantID int64, start, end string, data *domain.ReportData) {
	raw, err := json.Marshal(data)
	if err != nil {
		logger.Warn("report cache encode failed", "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, reportKey(infantID, start, end), raw, c.ttl).Err(); err != nil {
		logger.Warn("report cache set failed", "error", err.Error())
	}
}

// Dedup guards against duplicate classifier callbacks for the same event.
type Dedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedup creates a callback deduplicator.
func NewDedup(client *redis.Client, ttl time.Duration) *Dedup {
	return &Dedup{client: client, ttl: ttl}
}

// FirstDelivery reports whether this is the first callback seen for the
// event within the TTL. On Redis failure it returns true: a duplicate
// notification beats a silently dropped one.
func (d *Dedup) FirstDelivery(ctx context.Context, eventID int64) bool {
	key := fmt.Sprintf("notify:dedup:%d", eventID)
	ok, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		logger.Warn("dedup check failed", "eventId", eventID, "error", err.Error())
		return true
	}
	return ok
}
