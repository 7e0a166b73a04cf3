package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory ... TTL cache shared by concurrent aggregation calls
type Memory struct {
	Cache *gocache.Cache
}

// Initialize ... Creates a memory cache with the given default expiry
func Initialize(expiry time.Duration, purgeInterval time.Duration) *Memory {
	newCache := gocache.New(expiry, purgeInterval)
	memoryCache := Memory{
		Cache: newCache,
	}
	return &memoryCache
}

// Set ... Stores a value, expiring after the default duration when expiry is true
func (memory *Memory) Set(key string, value interface{}, expiry bool) {
	if expiry {
		memory.Cache.Set(key, value, gocache.DefaultExpiration)
	} else {
		memory.Cache.Set(key, value, gocache.NoExpiration)
	}
}

// Get ... Fetches a value, nil when absent or expired
func (memory *Memory) Get(key string) interface{} {
	cacheValue, _ := memory.Cache.Get(key)
	return cacheValue
}
