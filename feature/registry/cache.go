package registry

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry is the loaded team and event registry of one year.
// It is read-only once returned by a Cache.
type Registry struct {
	Year   string
	Teams  []TeamRecord
	Events []EventRecord

	// TeamsMissing and EventsMissing report absent registry files.
	TeamsMissing  bool
	EventsMissing bool
}

// Cache loads each year's registry at most once.
type Cache struct {
	source Source

	mu      sync.RWMutex
	entries map[string]*Registry
	sf      singleflight.Group
}

// NewCache creates a cache over source.
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string]*Registry),
	}
}

// Get returns the registry for year, loading it on first use.
// A missing registry file yields an empty registry, not an error.
func (c *Cache) Get(ctx context.Context, year string) (*Registry, error) {
	c.mu.RLock()
	reg, ok := c.entries[year]
	c.mu.RUnlock()
	if ok {
		return reg, nil
	}

	v, err, _ := c.sf.Do(year, func() (any, error) {
		c.mu.RLock()
		reg, ok := c.entries[year]
		c.mu.RUnlock()
		if ok {
			return reg, nil
		}

		reg, err := c.load(ctx, year)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[year] = reg
		c.mu.Unlock()
		return reg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Registry), nil
}

// Invalidate drops the cached registry for year.
func (c *Cache) Invalidate(year string) {
	c.mu.Lock()
	delete(c.entries, year)
	c.mu.Unlock()
}

func (c *Cache) load(ctx context.Context, year string) (*Registry, error) {
	reg := &Registry{Year: year}

	teams, err := c.source.Teams(ctx, year)
	switch {
	case errors.Is(err, ErrNotFound):
		reg.TeamsMissing = true
	case err != nil:
		return nil, err
	default:
		reg.Teams = teams
	}

	events, err := c.source.Events(ctx, year)
	switch {
	case errors.Is(err, ErrNotFound):
		reg.EventsMissing = true
	case err != nil:
		return nil, err
	default:
		reg.Events = events
	}
	return reg, nil
}
