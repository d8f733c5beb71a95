// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import (
	"sync"

	"github.com/dblokhin/cuckoo-consensus/blockindex"
)

// Cache memoizes the ThresholdState computed at each period boundary
// for one deployment. Callers that already hold a chain-wide lock when
// validating may use the Unlocked variants below to avoid double
// locking; everyone else should use the locking methods.
type Cache struct {
	mu      sync.Mutex
	byIndex map[*blockindex.BlockIndex]ThresholdState
	byHash  *hashOverlay
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		byIndex: make(map[*blockindex.BlockIndex]ThresholdState),
		byHash:  newHashOverlay(),
	}
}

// get reports the memoized state for bi, if any. A nil bi (the parent
// of genesis) is a valid, distinct cache key.
func (c *Cache) get(bi *blockindex.BlockIndex) (ThresholdState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getUnlocked(bi)
}

func (c *Cache) getUnlocked(bi *blockindex.BlockIndex) (ThresholdState, bool) {
	if s, ok := c.byIndex[bi]; ok {
		return s, true
	}
	if bi == nil {
		return 0, false
	}
	return c.byHash.get(bi.Hash)
}

func (c *Cache) set(bi *blockindex.BlockIndex, s ThresholdState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setUnlocked(bi, s)
}

func (c *Cache) setUnlocked(bi *blockindex.BlockIndex, s ThresholdState) {
	c.byIndex[bi] = s
	if bi != nil {
		c.byHash.set(bi.Hash, s)
	}
}

// Clear discards every memoized state, forcing the next query to
// recompute from genesis.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byIndex = make(map[*blockindex.BlockIndex]ThresholdState)
	c.byHash = newHashOverlay()
}

// Caches holds one Cache per deployment, keyed by deployment name.
type Caches struct {
	mu   sync.Mutex
	byID map[string]*Cache
}

// NewCaches returns an empty Caches.
func NewCaches() *Caches {
	return &Caches{byID: make(map[string]*Cache)}
}

// For returns the Cache for deployment name, creating it on first use.
func (c *Caches) For(name string) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()

	cache, ok := c.byID[name]
	if !ok {
		cache = NewCache()
		c.byID[name] = cache
	}
	return cache
}

// Clear resets every deployment's cache.
func (c *Caches) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cache := range c.byID {
		cache.Clear()
	}
}
