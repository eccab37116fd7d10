// Package query is a keyed request cache: fetches are deduplicated per key,
// results carry a staleness window, and entries can be invalidated so the
// next read goes back to the network.
package query

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrDisabled is returned by Fetch when the enablement gate is closed and
// no cached data exists for the key.
var ErrDisabled = errors.New("query disabled")

// Options control a single Fetch.
type Options struct {
	// StaleTime is how long a cached value stays fresh. Zero means a value
	// is stale as soon as it lands, so every Fetch refetches.
	StaleTime time.Duration
	// Enabled gates the fetch; a disabled Fetch returns cached data only.
	Enabled bool
}

// Result is a point-in-time view of a cache entry.
type Result struct {
	Data      any
	Err       error
	HasData   bool
	IsLoading bool
	FetchedAt time.Time
}

// FetchFunc loads the value for a key. The context is canceled by
// CancelInFlight.
type FetchFunc func(ctx context.Context) (any, error)

type inflight struct {
	done    chan struct{}
	data    any
	err     error
	cancel  context.CancelFunc
	discard bool
}

type entry struct {
	data      any
	hasData   bool
	err       error
	fetchedAt time.Time
	stale     bool
	inflight  *inflight
}

// Cache is the shared client-side request cache. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  *log.Logger
}

// New creates an empty cache. logger may be nil.
func New(logger *log.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Fetch returns the cached value for key when fresh, otherwise runs fn and
// caches its result. Concurrent Fetches for one key share a single call.
// A fetch error keeps the previous data and leaves the entry stale, so the
// next Fetch retries.
func (c *Cache) Fetch(ctx context.Context, key string, opts Options, fn FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)

	if !opts.Enabled {
		defer c.mu.Unlock()
		if e.hasData {
			return e.data, nil
		}
		return nil, ErrDisabled
	}

	if e.hasData && !e.stale && opts.StaleTime > 0 && time.Since(e.fetchedAt) < opts.StaleTime {
		defer c.mu.Unlock()
		return e.data, nil
	}

	if e.inflight != nil {
		fl := e.inflight
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.data, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	fctx, cancel := context.WithCancel(ctx)
	fl := &inflight{done: make(chan struct{}), cancel: cancel}
	e.inflight = fl
	c.mu.Unlock()

	data, err := fn(fctx)
	cancel()
	fl.data, fl.err = data, err

	c.mu.Lock()
	if e.inflight == fl {
		e.inflight = nil
	}
	// A canceled fetch must not clobber the entry; an optimistic Write may
	// have landed while it was in flight.
	if !fl.discard && !errors.Is(err, context.Canceled) {
		if err != nil {
			e.err = err
			c.logf("query %s: %v", key, err)
		} else {
			e.data = data
			e.hasData = true
			e.err = nil
			e.fetchedAt = time.Now()
			e.stale = false
		}
	}
	c.mu.Unlock()

	close(fl.done)
	return data, err
}

// Read returns the current state of a key without fetching.
func (c *Cache) Read(key string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}
	}
	return Result{
		Data:      e.data,
		Err:       e.err,
		HasData:   e.hasData,
		IsLoading: e.inflight != nil,
		FetchedAt: e.fetchedAt,
	}
}

// Write replaces the cached value for a key without touching the network.
func (c *Cache) Write(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	e.data = value
	e.hasData = true
	e.err = nil
	e.fetchedAt = time.Now()
	e.stale = false
}

// Invalidate marks a key stale so the next Fetch refetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
}

// CancelInFlight cancels any fetch running for the key and discards its
// result when it lands.
func (c *Cache) CancelInFlight(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.inflight == nil {
		return
	}
	e.inflight.discard = true
	e.inflight.cancel()
}

func (c *Cache) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Printf(format, args...)
}

// Data reads a typed value from the cache; ok is false when the entry is
// absent or holds a different type.
func Data[T any](c *Cache, key string) (T, bool) {
	var zero T
	result := c.Read(key)
	if !result.HasData {
		return zero, false
	}
	value, ok := result.Data.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
