package cache

import (
	"context"
	"time"
)

// PageCache stores rendered page HTML keyed by slug. It sits in front
// of the public HTML route; any edit to a page must invalidate its slug.
type PageCache struct {
	cache Cache
	ttl   time.Duration
}

// NewPageCache wraps a Cache with page-specific key handling.
func NewPageCache(c Cache, ttl time.Duration) *PageCache {
	return &PageCache{cache: c, ttl: ttl}
}

func pageKey(slug string) string {
	return "page:html:" + slug
}

// GetHTML returns the cached rendered HTML for a slug, or ok=false on a miss.
// Backend errors degrade to a miss: a broken cache must not break rendering.
func (p *PageCache) GetHTML(ctx context.Context, slug string) (string, bool) {
	val, err := p.cache.Get(ctx, pageKey(slug))
	if err != nil {
		return "", false
	}
	return string(val), true
}

// SetHTML stores rendered HTML for a slug.
func (p *PageCache) SetHTML(ctx context.Context, slug, html string) {
	_ = p.cache.Set(ctx, pageKey(slug), []byte(html), p.ttl)
}

// Invalidate drops the cached HTML for a slug.
func (p *PageCache) Invalidate(ctx context.Context, slug string) {
	_ = p.cache.Delete(ctx, pageKey(slug))
}

// Close closes the underlying cache.
func (p *PageCache) Close() error {
	return p.cache.Close()
}
