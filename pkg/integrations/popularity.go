package integrations

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yair/concert-finder/pkg/observability"
)

// PopularityProvider reports listener counts for artist names.
type PopularityProvider interface {
	GetArtistPopularity(ctx context.Context, artistName string) (int, error)
}

// CachedPopularity wraps a PopularityProvider with a TTL cache keyed by
// lower-cased artist name, so events sharing an artist within one session
// cost a single lookup. The clock is injected so tests control expiry.
type CachedPopularity struct {
	inner   PopularityProvider
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]popularityEntry
}

type popularityEntry struct {
	listeners int
	expires   time.Time
}

// NewCachedPopularity creates a cache decorator around a popularity provider.
// A zero ttl defaults to one hour; a nil clock defaults to real time.
func NewCachedPopularity(inner PopularityProvider, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedPopularity {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedPopularity{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
		entries: make(map[string]popularityEntry),
	}
}

func (c *CachedPopularity) GetArtistPopularity(ctx context.Context, artistName string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(artistName))
	if key == "" {
		return 0, nil
	}

	now := c.clock.Now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && now.Before(entry.expires) {
		c.countCache("hit")
		return entry.listeners, nil
	}
	c.countCache("miss")

	listeners, err := c.inner.GetArtistPopularity(ctx, artistName)
	if err != nil {
		// Failures are not cached so the next lookup retries.
		return 0, err
	}

	c.mu.Lock()
	c.entries[key] = popularityEntry{listeners: listeners, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return listeners, nil
}

func (c *CachedPopularity) countCache(result string) {
	if c.metrics != nil {
		c.metrics.PopularityCache.WithLabelValues(result).Inc()
	}
}
