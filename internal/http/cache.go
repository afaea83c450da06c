package http

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// summaryCache memoizes month summary responses per (user, period). Entries
// expire on their own; a write by the user drops all of that user's entries
// immediately so a fresh read never sees a stale balance.
type summaryCache struct {
	cache *gocache.Cache
}

func newSummaryCache(ttl time.Duration) *summaryCache {
	return &summaryCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func summaryKey(userKey, period string) string {
	return userKey + "|" + period
}

func (c *summaryCache) Get(userKey, period string) (summaryResponse, bool) {
	v, found := c.cache.Get(summaryKey(userKey, period))
	if !found {
		return summaryResponse{}, false
	}
	resp, ok := v.(summaryResponse)
	return resp, ok
}

func (c *summaryCache) Set(userKey, period string, resp summaryResponse) {
	c.cache.SetDefault(summaryKey(userKey, period), resp)
}

// InvalidateUser drops every cached period for one user.
func (c *summaryCache) InvalidateUser(userKey string) {
	prefix := userKey + "|"
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}
