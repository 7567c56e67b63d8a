package hub

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedPage is a page with the time it was fetched.
type cachedPage struct {
	page    *Page
	fetched time.Time
}

// PageCache memoizes pages from a Fetcher for a fixed TTL.
// Concurrent requests for the same URL share a single fetch.
type PageCache struct {
	next Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	pages map[string]cachedPage
	sf    singleflight.Group
}

// NewPageCache wraps next. A zero TTL disables caching.
func NewPageCache(next Fetcher, ttl time.Duration) *PageCache {
	return &PageCache{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]cachedPage),
	}
}

func (c *PageCache) expired(p cachedPage) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(p.fetched) > c.ttl
}

// Fetch returns a cached page for url or fetches it.
func (c *PageCache) Fetch(ctx context.Context, url string) (*Page, error) {
	c.mu.RLock()
	cached, ok := c.pages[url]
	c.mu.RUnlock()

	if ok && !c.expired(cached) {
		return cached.page, nil
	}

	result, err, _ := c.sf.Do(url, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.pages[url]
		c.mu.RUnlock()

		if ok && !c.expired(cached) {
			return cached.page, nil
		}

		page, err := c.next.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.pages[url] = cachedPage{page: page, fetched: c.now()}
			c.mu.Unlock()
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Page), nil
}

// Invalidate drops every cached page.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = make(map[string]cachedPage)
	c.mu.Unlock()
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
