package expr

import (
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed expressions a Cache keeps.
const DefaultCacheSize = 128

// Cache memoizes Parse by trimmed source text. Failed parses are not stored.
// It is safe for concurrent use.
type Cache struct {
	lru    *lru.Cache[string, *Expression]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache returns a cache holding up to size expressions. A size below one
// selects DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *Expression](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Cache{lru: c}
}

func (c *Cache) Parse(src string) (*Expression, error) {
	key := strings.TrimSpace(src)
	if e, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return e, nil
	}
	c.misses.Add(1)
	e, err := Parse(key)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, e)
	return e, nil
}

func (c *Cache) Len() int { return c.lru.Len() }

// Stats returns the hit and miss counts since the cache was created.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
