package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/maghams62/launcher/client"
)

// DefaultCacheTTL bounds how long an identical query reuses its response.
const DefaultCacheTTL = 30 * time.Second

// Cached wraps a Searcher with a short-lived response cache and a request
// limiter. Failed searches are never cached.
type Cached struct {
	next    Searcher
	cache   *cache.Cache
	limiter *rate.Limiter
}

// CachedOption configures a Cached searcher.
type CachedOption func(*Cached)

// WithTTL sets the response cache TTL.
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		// Expired entries are skipped on Get; no janitor goroutine.
		c.cache = cache.New(ttl, 0)
	}
}

// WithLimiter replaces the default limiter. A nil limiter disables limiting.
func WithLimiter(l *rate.Limiter) CachedOption {
	return func(c *Cached) { c.limiter = l }
}

// NewCached wraps next. The default limiter allows 8 requests per second
// with a burst of 4.
func NewCached(next Searcher, opts ...CachedOption) *Cached {
	c := &Cached{
		next:    next,
		cache:   cache.New(DefaultCacheTTL, 0),
		limiter: rate.NewLimiter(rate.Limit(8), 4),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search serves from cache when possible; otherwise it waits for the limiter
// and forwards. A context cancelled while waiting returns its error.
func (c *Cached) Search(ctx context.Context, query string, limit int) ([]client.SearchResultItem, error) {
	key := cacheKey(query, limit)
	if v, ok := c.cache.Get(key); ok {
		return v.([]client.SearchResultItem), nil
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search limiter: %w", err)
		}
	}
	items, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, items, cache.DefaultExpiration)
	return items, nil
}

// Flush drops every cached response.
func (c *Cached) Flush() {
	c.cache.Flush()
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(query)), limit)
}
