package world

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cache is a key-value store whose entries never expire unless given a TTL.
type cache struct {
	cacheInstance *gocache.Cache
}

func newCache() *cache {
	return &cache{cacheInstance: gocache.New(gocache.NoExpiration, 10*time.Second)}
}

// put sets a key/value pair. Passing 0 for ttl will cause the default
// expiration to be used and -1 will not set a ttl.
func (c *cache) put(key string, value interface{}, ttl time.Duration) {
	c.cacheInstance.Set(key, value, ttl)
}

// get fetches a value, returning the value as well as whether or not the
// value was found (semantics similar to map).
func (c *cache) get(key string) (interface{}, bool) {
	return c.cacheInstance.Get(key)
}

func (c *cache) remove(key string) {
	c.cacheInstance.Delete(key)
}

func (c *cache) values() []interface{} {
	items := c.cacheInstance.Items()
	values := make([]interface{}, 0, len(items))
	for _, item := range items {
		values = append(values, item.Object)
	}
	return values
}
