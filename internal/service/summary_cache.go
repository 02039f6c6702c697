package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-practice-management/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const summaryCachePrefix = "dashboard:summary:"

// SummaryCache caches assembled dashboard summaries. Entries are keyed by
// period and expire after a short TTL; any session transition or payment
// recording invalidates the whole keyspace so a cached summary never
// survives the write that made it stale.
type SummaryCache interface {
	Get(ctx context.Context, start, end time.Time) (*dto.DashboardSummaryResponse, bool)
	Set(ctx context.Context, start, end time.Time, summary *dto.DashboardSummaryResponse)
	Invalidate(ctx context.Context)
}

type summaryCache struct {
	log         *logrus.Logger
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSummaryCache(log *logrus.Logger, redisClient *redis.Client, ttl time.Duration) SummaryCache {
	return &summaryCache{
		log:         log,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func summaryKey(start, end time.Time) string {
	return fmt.Sprintf("%s%s:%s", summaryCachePrefix, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *summaryCache) Get(ctx context.Context, start, end time.Time) (*dto.DashboardSummaryResponse, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	raw, err := c.redisClient.Get(ctx, summaryKey(start, end)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read summary cache: %+v", err)
		}
		return nil, false
	}

	var summary dto.DashboardSummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.log.Warnf("Failed to decode cached summary, dropping it: %+v", err)
		c.redisClient.Del(ctx, summaryKey(start, end))
		return nil, false
	}
	return &summary, true
}

func (c *summaryCache) Set(ctx context.Context, start, end time.Time, summary *dto.DashboardSummaryResponse) {
	if c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		c.log.Warnf("Failed to encode summary for cache: %+v", err)
		return
	}

	if err := c.redisClient.Set(ctx, summaryKey(start, end), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write summary cache: %+v", err)
	}
}

func (c *summaryCache) Invalidate(ctx context.Context) {
	if c.ttl <= 0 {
		return
	}

	iter := c.redisClient.Scan(ctx, 0, summaryCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warnf("Failed to invalidate summary cache key %s: %+v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan summary cache keys: %+v", err)
	}
}
