package client

import (
	"context"
	"fmt"
	"time"

	"chartview/internal/metrics"
	"chartview/internal/model"

	gocache "github.com/patrickmn/go-cache"
)

// CachedClient memoizes successful fetches for a TTL, so paging back and
// forth within a session does not refetch every visible symbol. Failures
// are never cached.
type CachedClient struct {
	inner MarketData
	cache *gocache.Cache
}

// NewCachedClient creates a new caching market-data decorator.
func NewCachedClient(inner MarketData, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// FetchDailySeries returns the cached series when present, otherwise
// delegates and stores the result.
func (c *CachedClient) FetchDailySeries(ctx context.Context, symbol string, window WindowPolicy) ([]model.Bar, error) {
	key := fmt.Sprintf("%s|%s", symbol, window)
	if v, ok := c.cache.Get(key); ok {
		metrics.CacheHit()
		return v.([]model.Bar), nil
	}
	metrics.CacheMiss()

	bars, err := c.inner.FetchDailySeries(ctx, symbol, window)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, bars)
	return bars, nil
}
