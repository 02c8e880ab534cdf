package providers

import "snappy/internal/structures"

// InstrumentedCache reports every header lookup to the metrics provider.
type InstrumentedCache struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *InstrumentedCache) Get(key string) ([]byte, bool) {
	val, hit := c.CacheProviderInterface.Get(key)
	if !hit {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

// NewInstrumentedCacheProvider leaves a disabled cache unwrapped so that it
// never reports misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	cache := NewCacheProvider(conf, logger)
	if _, enabled := cache.(*HeaderCache); !enabled {
		return cache
	}
	return &InstrumentedCache{CacheProviderInterface: cache, metrics: metrics}
}
