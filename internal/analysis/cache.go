package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"readiness-service/internal/common/database"
	"readiness-service/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// ReportCache is a best-effort Redis cache for finished reports, keyed by the
// profile fingerprint. A cold or unreachable cache never blocks analysis.
type ReportCache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

// NewReportCache builds a cache with the given TTL. A nil redis client yields
// a cache that always misses, which keeps wiring simple when caching is
// disabled.
func NewReportCache(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *ReportCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ReportCache{redis: redis, ttl: ttl, log: log}
}

func (c *ReportCache) key(fingerprint string) string {
	return "analysis:report:" + fingerprint
}

// Get returns the cached report for a profile fingerprint, or false on miss.
// Degraded reports are never served from cache; they are stored so operators
// can inspect them, but a retry should get a fresh analysis attempt.
func (c *ReportCache) Get(ctx context.Context, fingerprint string) (ReadinessReport, bool) {
	if c == nil || c.redis == nil {
		return ReadinessReport{}, false
	}

	raw, err := c.redis.Get(ctx, c.key(fingerprint))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("report cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return ReadinessReport{}, false
	}

	var report ReadinessReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		c.log.Warn("report cache entry was corrupt, evicting", map[string]interface{}{"error": err.Error()})
		_ = c.redis.Del(ctx, c.key(fingerprint))
		return ReadinessReport{}, false
	}

	if report.Source == SourceDegraded {
		return ReadinessReport{}, false
	}
	return report, true
}

// Put stores a report under the profile fingerprint. Failures are logged and
// swallowed.
func (c *ReportCache) Put(ctx context.Context, fingerprint string, report ReadinessReport) {
	if c == nil || c.redis == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		c.log.Warn("report cache encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.redis.Set(ctx, c.key(fingerprint), string(raw), c.ttl); err != nil {
		c.log.Warn("report cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
