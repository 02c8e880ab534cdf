package providers

import (
	"snappy/internal/structures"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds snapshot headers for the lifetime of one process.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Stats() CacheStats
}

type CacheStats struct {
	Entries int64
	Hits    int64
	Misses  int64
}

// freecache rounds anything smaller up to this.
const minCacheBytes = 512 * 1024

// HeaderCache is a fixed-size freecache. Entries larger than 1/1024 of the
// cache are silently not stored.
type HeaderCache struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Debugf(TypeApp, "Header cache disabled")
		return &noopCache{}
	}

	size := max(conf.Cache.Size<<20, minCacheBytes)
	logger.Debugf(TypeApp, "Header cache enabled: %d bytes, ttl %ds", size, conf.Cache.TTL)

	return &HeaderCache{
		cache: freecache.NewCache(size),
		ttl:   conf.Cache.TTL,
	}
}

func (h *HeaderCache) Get(key string) ([]byte, bool) {
	val, err := h.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (h *HeaderCache) Set(key string, value []byte) {
	_ = h.cache.Set([]byte(key), value, h.ttl)
}

func (h *HeaderCache) Stats() CacheStats {
	return CacheStats{
		Entries: h.cache.EntryCount(),
		Hits:    h.cache.HitCount(),
		Misses:  h.cache.MissCount(),
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Stats() CacheStats           { return CacheStats{} }
