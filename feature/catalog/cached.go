package catalog

import (
	"context"
	"strings"
	"time"

	"game-tracker/core/cache"
	"game-tracker/feature/library/models"
)

// Lookup is the catalog surface used by the identity matcher.
type Lookup interface {
	LookupByExternalIDs(ctx context.Context, platform models.Platform, ids []string) (map[string]Entry, error)
	SearchByName(ctx context.Context, query string) ([]Entry, error)
}

// CachedClient memoizes name searches. External id lookups pass through.
type CachedClient struct {
	next     Lookup
	searches *cache.Cache[[]Entry]
}

// NewCachedClient wraps next with a search cache of the given TTL.
func NewCachedClient(next Lookup, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, searches: cache.New[[]Entry](ttl)}
}

func (c *CachedClient) LookupByExternalIDs(ctx context.Context, platform models.Platform, ids []string) (map[string]Entry, error) {
	return c.next.LookupByExternalIDs(ctx, platform, ids)
}

func (c *CachedClient) SearchByName(ctx context.Context, query string) ([]Entry, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	return c.searches.GetOrLoad(key, func() ([]Entry, error) {
		return c.next.SearchByName(ctx, query)
	})
}
