// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import (
	"testing"

	"github.com/dblokhin/cuckoo-consensus/blockindex"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

// fakeChecker is a ConditionChecker whose Condition is an arbitrary
// predicate, letting tests drive the state machine without depending on
// the version-bit signalling convention deploymentChecker uses.
type fakeChecker struct {
	beginTime, endTime       int64
	period, threshold        int32
	beginBlock, endBlock     int32
	condition                func(*blockindex.BlockIndex) bool
}

func (c fakeChecker) BeginTime() int64  { return c.beginTime }
func (c fakeChecker) EndTime() int64    { return c.endTime }
func (c fakeChecker) Period() int32     { return c.period }
func (c fakeChecker) Threshold() int32  { return c.threshold }
func (c fakeChecker) BeginBlock() int32 { return c.beginBlock }
func (c fakeChecker) EndBlock() int32   { return c.endBlock }
func (c fakeChecker) Condition(bi *blockindex.BlockIndex) bool {
	if c.condition == nil {
		return false
	}
	return c.condition(bi)
}

func hashOfHeight(h int32) chainhash.Hash {
	return chainhash.HashH([]byte{byte(h), byte(h >> 8), byte(h >> 16), byte(h >> 24)})
}

// buildTimeChain builds a linear chain of n blocks whose median time
// past equals its own height, so tests can reason about time thresholds
// directly in height units.
func buildTimeChain(n int32) []*blockindex.BlockIndex {
	chain := make([]*blockindex.BlockIndex, n)
	var parent *blockindex.BlockIndex
	for h := int32(0); h < n; h++ {
		chain[h] = blockindex.NewBlockIndex(hashOfHeight(h), h, 1, int64(h), parent)
		parent = chain[h]
	}
	return chain
}

func TestBlockHeightBranch(t *testing.T) {
	checker := fakeChecker{
		beginBlock: 100,
		endBlock:   200,
		condition: func(bi *blockindex.BlockIndex) bool {
			return bi.Height == 149
		},
	}
	cache := NewCache()
	chain := buildTimeChain(250)

	require.Equal(t, Defined, State(nil, checker, cache), "genesis parent")
	require.Equal(t, Defined, State(chain[50], checker, cache), "height 51 is before begin_block")
	require.Equal(t, Started, State(chain[149], checker, cache), "height 150 signals via condition(parent)")
	require.Equal(t, LockedIn, State(chain[150], checker, cache), "height 151 does not signal")
	require.Equal(t, Failed, State(chain[199], checker, cache), "height 200 is not < end_block")
}

func TestTimeBasedBranchFullActivation(t *testing.T) {
	const period = 144
	const threshold = 108
	const startTime = 150

	checker := fakeChecker{
		beginTime: startTime,
		endTime:   startTime + 10*period,
		period:    period,
		threshold: threshold,
		condition: func(bi *blockindex.BlockIndex) bool {
			return bi.Height >= 288 && bi.Height <= 431
		},
	}
	cache := NewCache()
	chain := buildTimeChain(650)

	require.Equal(t, Defined, State(chain[143], checker, cache), "first boundary is before start_time")
	require.Equal(t, Started, State(chain[287], checker, cache), "second boundary crosses start_time")
	require.Equal(t, LockedIn, State(chain[431], checker, cache), "every block of the window signalled")
	require.Equal(t, Active, State(chain[600], checker, cache), "locked in always advances to active")

	since := StateSinceHeight(chain[600], checker, cache)
	require.Equal(t, int32(576), since, "active was entered at the first block after the lock-in boundary")
}

func TestTimeBasedBranchInsufficientSignalling(t *testing.T) {
	const period = 144
	const threshold = 108

	checker := fakeChecker{
		beginTime: 0,
		endTime:   1_000_000,
		period:    period,
		threshold: threshold,
		condition: func(bi *blockindex.BlockIndex) bool {
			// Only ever 1 in 4 blocks signal: never reaches 108/144.
			return bi.Height%4 == 0
		},
	}
	cache := NewCache()
	chain := buildTimeChain(650)

	require.Equal(t, Started, State(chain[143], checker, cache))
	require.Equal(t, Started, State(chain[431], checker, cache), "stays started, never enough signalling")
}

func TestTimeBasedBranchTimeout(t *testing.T) {
	checker := fakeChecker{
		beginTime: 100,
		endTime:   200,
		period:    144,
		threshold: 108,
	}
	cache := NewCache()
	chain := buildTimeChain(650)

	require.Equal(t, Failed, State(chain[287], checker, cache), "median time past exceeded timeout")

	// Failed is a terminal fixed point.
	require.Equal(t, Failed, State(chain[600], checker, cache))
}

func TestStateSinceHeightDefinedIsZero(t *testing.T) {
	checker := fakeChecker{beginTime: 1_000_000, endTime: 2_000_000, period: 144, threshold: 108}
	cache := NewCache()
	chain := buildTimeChain(300)

	require.Equal(t, int32(0), StateSinceHeight(chain[287], checker, cache))
}

func TestStatisticsWithinCurrentPeriod(t *testing.T) {
	checker := fakeChecker{
		period:    144,
		threshold: 108,
		condition: func(bi *blockindex.BlockIndex) bool {
			return bi.Height%2 == 0
		},
	}
	chain := buildTimeChain(300)

	stats := Statistics(chain[150], checker)
	require.Equal(t, int32(144), stats.Period)
	require.Equal(t, int32(108), stats.Threshold)
	require.True(t, stats.Elapsed > 0)
	require.True(t, stats.Count <= stats.Elapsed)
}

func TestStatisticsNilIndex(t *testing.T) {
	checker := fakeChecker{period: 144, threshold: 108}
	stats := Statistics(nil, checker)
	require.Equal(t, int32(144), stats.Period)
	require.Equal(t, int32(0), stats.Elapsed)
}

func TestCacheClear(t *testing.T) {
	checker := fakeChecker{
		beginTime: 50,
		endTime:   1_000_000,
		period:    144,
		threshold: 108,
	}
	cache := NewCache()
	chain := buildTimeChain(300)

	first := State(chain[287], checker, cache)
	cache.Clear()

	// After Clear, a fresh computation must still produce the same
	// answer (Clear only discards memoization, not correctness).
	require.Equal(t, first, State(chain[287], checker, cache))
	require.Equal(t, Started, first)
}

func TestCachesFor(t *testing.T) {
	caches := NewCaches()
	a := caches.For("deployment-a")
	b := caches.For("deployment-a")
	require.Same(t, a, b, "same deployment name returns the same cache")

	c := caches.For("deployment-b")
	require.NotSame(t, a, c)
}
