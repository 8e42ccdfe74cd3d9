package ratelimit

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/vetcita/vetcita/internal/config"
)

// AnalyticsLimiter sheds analytics ingest load per tenant. A nil limiter
// lets every request through, which is the right behavior when the
// limiter is disabled or redis is not configured.
type AnalyticsLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewAnalyticsLimiter(cfg config.Config) *AnalyticsLimiter {
	rl := cfg.RateLimit
	if !rl.Enabled || rl.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rl.RedisAddr,
		Password: rl.RedisPassword,
		DB:       rl.RedisDB,
	})

	rate := rl.AnalyticsTenantRate
	if rate <= 0 {
		rate = 20
	}
	burst := rl.AnalyticsTenantBurst
	if burst <= 0 {
		burst = 40
	}

	return &AnalyticsLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}
}

func (l *AnalyticsLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// Allow reports whether the tenant may ingest another analytics event.
// Errors fail open: a redis outage must never take down event ingest.
func (l *AnalyticsLimiter) Allow(ctx context.Context, tenantID string) bool {
	if !l.Enabled() {
		return true
	}
	key := fmt.Sprintf("analytics:ingest:tenant:%s", tenantID)
	res, err := l.bucket.Allow(ctx, key, l.rate, l.burst)
	if err != nil {
		return true
	}
	return res.Allowed
}
