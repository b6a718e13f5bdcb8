// Package cache memoizes report decoding. Feeds re-send unchanged reports
// every cycle, so most lookups are hits.
package cache

import (
	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/internal/observability"
	"github.com/couchcryptid/metar-etl/pkg/metar"
)

// CachedDecoder wraps a Decoder with an in-memory LRU cache keyed by report
// text. Cached reports are shared between callers and must not be mutated.
type CachedDecoder struct {
	inner   domain.Decoder
	cache   *lruCache[metar.Report]
	metrics *observability.Metrics
}

// NewCachedDecoder creates a cache decorator around a decoder. metrics may
// be nil.
func NewCachedDecoder(inner domain.Decoder, maxEntries int, metrics *observability.Metrics) *CachedDecoder {
	return &CachedDecoder{
		inner:   inner,
		cache:   newLRUCache[metar.Report](maxEntries),
		metrics: metrics,
	}
}

// Decode returns the cached report for text, decoding it on a miss.
func (c *CachedDecoder) Decode(text string) (metar.Report, error) {
	if report, ok := c.cache.get(text); ok {
		c.record("hit")
		return report, nil
	}
	c.record("miss")

	report, err := c.inner.Decode(text)
	if err != nil {
		return report, err
	}
	c.cache.put(text, report)
	return report, nil
}

// Len returns the number of cached reports.
func (c *CachedDecoder) Len() int {
	return c.cache.len()
}

func (c *CachedDecoder) record(result string) {
	if c.metrics != nil {
		c.metrics.DecodeCache.WithLabelValues(result).Inc()
	}
}
