package availability

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// MetricsRecorder counts cache hits and misses.
type MetricsRecorder interface {
	ObserveCacheHit()
	ObserveCacheMiss()
}

type entry struct {
	result    domain.AvailabilityResult
	expiresAt time.Time
}

// Cache memoizes availability verdicts per request signature with a TTL.
// Writes invalidate per unit and date, so a committed booking drops exactly
// the keys whose capacity it changed.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	byUnitDate map[string][]string

	ttl        time.Duration
	maxEntries int
	metrics    MetricsRecorder
	clock      func() time.Time
}

// New creates a cache with the given TTL and entry bound.
func New(ttl time.Duration, maxEntries int, metrics MetricsRecorder) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		byUnitDate: make(map[string][]string),
		ttl:        ttl,
		maxEntries: maxEntries,
		metrics:    metrics,
		clock:      time.Now,
	}
}

// WithClock swaps the time source. Used by tests.
func (c *Cache) WithClock(clock func() time.Time) *Cache {
	c.clock = clock
	return c
}

// Key builds the request signature.
func Key(unitID string, date time.Time, window types.TimeWindow, partySize int) string {
	return strings.Join([]string{
		unitID,
		date.Format(domain.DateFormat),
		window.String(),
		strconv.Itoa(partySize),
	}, "|")
}

// Get returns the cached verdict for the key, if fresh.
func (c *Cache) Get(key string) (domain.AvailabilityResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.clock().After(e.expiresAt) {
		if ok {
			delete(c.entries, key)
		}
		if c.metrics != nil {
			c.metrics.ObserveCacheMiss()
		}
		return domain.AvailabilityResult{}, false
	}

	if c.metrics != nil {
		c.metrics.ObserveCacheHit()
	}
	return e.result, true
}

// Put stores a verdict under the key. When the cache is full the oldest
// expiring entries are dropped first.
func (c *Cache) Put(unitID string, date time.Time, key string, result domain.AvailabilityResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	// Refreshing an existing key must not duplicate its index entry.
	if _, exists := c.entries[key]; !exists {
		unitDate := unitDateKey(unitID, date)
		c.byUnitDate[unitDate] = append(c.byUnitDate[unitDate], key)
	}

	c.entries[key] = entry{result: result, expiresAt: c.clock().Add(c.ttl)}
}

// InvalidateUnitDate drops every cached verdict for one unit on one date.
// Called after a booking commit or any lifecycle change touching the date.
func (c *Cache) InvalidateUnitDate(unitID string, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	unitDate := unitDateKey(unitID, date)
	for _, key := range c.byUnitDate[unitDate] {
		delete(c.entries, key)
	}
	delete(c.byUnitDate, unitDate)
}

// Len returns the number of live entries (stale ones included until read or
// evicted).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked removes expired entries, then the soonest-expiring ones until a
// quarter of the capacity is free.
func (c *Cache) evictLocked() {
	now := c.clock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}

	target := c.maxEntries - c.maxEntries/4
	for len(c.entries) > target {
		var oldestKey string
		var oldestAt time.Time
		for key, e := range c.entries {
			if oldestKey == "" || e.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = e.expiresAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.pruneIndexLocked()
}

// pruneIndexLocked drops index keys whose entries were evicted or expired,
// so hot unit/dates do not accumulate stale key strings.
func (c *Cache) pruneIndexLocked() {
	for unitDate, keys := range c.byUnitDate {
		kept := keys[:0]
		for _, key := range keys {
			if _, ok := c.entries[key]; ok {
				kept = append(kept, key)
			}
		}
		if len(kept) == 0 {
			delete(c.byUnitDate, unitDate)
		} else {
			c.byUnitDate[unitDate] = kept
		}
	}
}

func unitDateKey(unitID string, date time.Time) string {
	return fmt.Sprintf("%s|%s", unitID, date.Format(domain.DateFormat))
}
