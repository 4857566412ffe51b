// Package cache holds server data fetched by the client, keyed by the REST
// path it came from.
//
// At most one fetch per key is in flight at a time. Every key carries a
// generation that is bumped by Write, Invalidate and Clear; a fetch that
// completes after its generation moved on hands the result to its waiters
// but does not store it, so an invalidated value is never resurrected.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
)

// FetchFunc loads the value of a key from the server.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value any
	stale bool
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	loading map[string]int
	epoch   uint64

	group  singleflight.Group
	logger *logger.Logger
}

func New(logger *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		loading: make(map[string]int),
		logger:  logger,
	}
}

// Read returns the value stored under key if it is present and not stale.
func (c *Cache) Read(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	return e.value, true
}

// IsLoading reports whether a fetch for key is in flight.
func (c *Cache) IsLoading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading[key] > 0
}

// Write stores value under key unconditionally. A fetch for key that is in
// flight will not overwrite it.
func (c *Cache) Write(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{value: value}
	c.gens[key]++
}

// Invalidate marks key stale so that the next Fetch goes to the server.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked(key)
}

// InvalidatePrefix invalidates every stored or loading key starting with
// prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.invalidateLocked(key)
		}
	}
	for key, n := range c.loading {
		if n > 0 && strings.HasPrefix(key, prefix) {
			if _, stored := c.entries[key]; !stored {
				c.gens[key]++
			}
		}
	}
}

func (c *Cache) invalidateLocked(key string) {
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
	c.gens[key]++
}

// Clear drops every entry. Fetches in flight finish for their waiters but
// store nothing.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.gens = make(map[string]uint64)
	c.epoch++
	c.logger.Debug().Str("func", "Cache.Clear").Msg("cache cleared")
}

// Fetch returns the fresh value of key, calling fn when there is none.
// Concurrent callers for the same key and generation share one call of fn.
//
// fn runs detached from the cancellation of ctx so that one caller giving up
// does not fail the others; the caller itself stops waiting when ctx is done.
// Errors are returned to every waiter and never stored.
func (c *Cache) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		c.mu.Unlock()
		return e.value, nil
	}
	gen, epoch := c.gens[key], c.epoch
	c.mu.Unlock()

	flightKey := fmt.Sprintf("%s#%d.%d", key, epoch, gen)
	fetchCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		c.mu.Lock()
		// a flight of the same generation may have stored its result after
		// the check above
		if e, ok := c.entries[key]; ok && !e.stale && c.epoch == epoch && c.gens[key] == gen {
			c.mu.Unlock()
			return e.value, nil
		}
		c.loading[key]++
		c.mu.Unlock()

		value, err := fn(fetchCtx)

		c.mu.Lock()
		defer c.mu.Unlock()

		c.loading[key]--
		if c.loading[key] <= 0 {
			delete(c.loading, key)
		}

		if err != nil {
			return nil, err
		}

		if c.epoch == epoch && c.gens[key] == gen {
			c.entries[key] = &entry{value: value}
		} else {
			c.logger.Debug().
				Str("func", "Cache.Fetch").
				Str("key", key).
				Msg("discarding result of invalidated fetch")
		}
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Fetch is the typed form of [Cache.Fetch].
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, key, value)
	}
	return typed, nil
}

// Read is the typed form of [Cache.Read]. A value of another type reads as
// absent.
func Read[T any](c *Cache, key string) (T, bool) {
	var zero T

	value, ok := c.Read(key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
