package menu

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mocno/bandex/pkg/defaults"
)

// Cache memoizes a Fetcher per restaurant.
// Successful fetches are kept for the TTL and failures for the negative TTL,
// but no entry survives the start of the next menu week.
// Concurrent lookups of the same restaurant share a single fetch.
type Cache struct {
	fetcher     Fetcher
	ttl         time.Duration
	negativeTTL time.Duration
	concurrency int
	now         func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[RestaurantID]cacheEntry
}

type cacheEntry struct {
	restaurant *Restaurant
	err        error
	expires    time.Time
}

// CacheOption is a functional option for configuring Cache instances.
type CacheOption func(*Cache)

// WithTTL sets how long successful fetches are reused.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithNegativeTTL sets how long failed fetches are remembered.
func WithNegativeTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.negativeTTL = ttl
	}
}

// WithConcurrency sets the number of parallel fetches used by Prefetch.
func WithConcurrency(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a Cache in front of f.
func NewCache(f Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher:     f,
		ttl:         defaults.MenuCacheTTL,
		negativeTTL: defaults.NegativeCacheTTL,
		concurrency: defaults.FetchConcurrency,
		now:         time.Now,
		entries:     make(map[RestaurantID]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the restaurant with the given id, fetching it when it is not
// cached or its entry expired.
func (c *Cache) Get(ctx context.Context, id RestaurantID) (*Restaurant, error) {
	if e, ok := c.lookup(id); ok {
		cacheLookupTotal.WithLabelValues("hit").Inc()
		return e.restaurant, e.err
	}
	cacheLookupTotal.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(strconv.Itoa(int(id)), func() (any, error) {
		// A previous flight may have finished after our lookup.
		if e, ok := c.lookup(id); ok {
			return e.restaurant, e.err
		}
		slog.Debug("fetching restaurant", "restaurant", int(id))
		r, err := c.fetcher.Fetch(ctx, id)
		c.store(id, r, err)
		return r, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*Restaurant), nil
}

// Prefetch loads all ids in parallel and returns the failures by id.
// Individual failures do not stop the other fetches.
func (c *Cache) Prefetch(ctx context.Context, ids []RestaurantID) map[RestaurantID]error {
	start := time.Now()
	defer func() {
		prefetchDuration.Observe(time.Since(start).Seconds())
	}()

	var mu sync.Mutex
	failures := make(map[RestaurantID]error)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if _, err := c.Get(gctx, id); err != nil {
				slog.Debug("prefetch failed", "restaurant", int(id), "error", err)
				mu.Lock()
				failures[id] = err
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; failures are collected above.
	_ = g.Wait()

	return failures
}

// Invalidate drops the cached entry for id.
func (c *Cache) Invalidate(id RestaurantID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

func (c *Cache) lookup(id RestaurantID) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok || !c.now().Before(e.expires) {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) store(id RestaurantID, r *Restaurant, err error) {
	// A canceled caller says nothing about the restaurant itself.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}

	ttl := c.ttl
	if err != nil {
		ttl = c.negativeTTL
	}
	if ttl <= 0 {
		return
	}

	// Menus are weekly; nothing fetched before Sunday midnight outlives it.
	now := c.now()
	expires := now.Add(ttl)
	if next := WeekStart(now).AddDate(0, 0, 7); expires.After(next) {
		expires = next
	}

	c.mu.Lock()
	c.entries[id] = cacheEntry{restaurant: r, err: err, expires: expires}
	c.mu.Unlock()
}
