// Package plancache provides a bounded in-memory cache of ideal
// plans.
//
// Plans are keyed by the input graph's content fingerprint combined
// with the resolved config, so watch-style hosts that re-plan an
// unchanged graph get the previous plan back without rerunning the
// pipeline.
package plancache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/bundler"
	"github.com/piyush168713/parcel/internal/config"
)

// DefaultSize is the default number of cached plans.
const DefaultSize = 32

// Cache is a bounded LRU of ideal plans.
type Cache struct {
	lru *lru.Cache[string, *bundler.IdealPlan]
}

// New creates a cache holding up to size plans.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	inner, err := lru.New[string, *bundler.IdealPlan](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan cache: %w", err)
	}
	return &Cache{lru: inner}, nil
}

// Key derives the cache key for a graph and config combination.
func Key(fp assetgraph.Fingerprint, cfg config.Resolved) string {
	return fmt.Sprintf("%s|%d|%d|%d", fp, cfg.MinBundles, cfg.MinBundleSize, cfg.MaxParallelRequests)
}

// Get returns the cached plan for key, if any.
func (c *Cache) Get(key string) (*bundler.IdealPlan, bool) {
	return c.lru.Get(key)
}

// Put stores a plan under key.
func (c *Cache) Put(key string, plan *bundler.IdealPlan) {
	c.lru.Add(key, plan)
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	return c.lru.Len()
}
