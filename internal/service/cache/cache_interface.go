package cache

import "github.com/palletform/binpack3d/internal/packing"

// Cache defines the interface for cache operations. Keys are content
// hashes of a packing request, computed by the caller.
type Cache interface {
	Get(key string) (packing.PackedBoxList, bool)
	Set(key string, value packing.PackedBoxList)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
