package forecast

import (
	"math"
	"sync"
	"time"

	"roadcast/internal/types"
)

// Key identifies a cached point forecast. Coordinates are rounded to two
// decimals (roughly a kilometer) so nearby probes share an entry; the cache
// is an approximation by design, not exact-coordinate memoization.
type Key struct {
	Lat  float64
	Lon  float64
	Hour int
}

// NewKey builds the cache key for a coordinate and target time.
func NewKey(coord types.Coords, target time.Time) Key {
	return Key{
		Lat:  round2(coord.Latitude),
		Lon:  round2(coord.Longitude),
		Hour: target.UTC().Hour(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cache memoizes point forecasts for the life of the process. It is safe for
// concurrent use by in-flight evaluations; entries are never evicted, which
// is acceptable because keys are coarse and sessions are short-lived.
// Overwriting an entry with an equivalent freshly-fetched value is harmless,
// so last-write-wins needs no further coordination.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]types.WeatherSample
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]types.WeatherSample),
	}
}

func (c *Cache) Get(key Key) (types.WeatherSample, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sample, ok := c.entries[key]
	return sample, ok
}

func (c *Cache) Put(key Key, sample types.WeatherSample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = sample
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
