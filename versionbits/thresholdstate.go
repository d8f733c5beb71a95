// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import "github.com/dblokhin/cuckoo-consensus/blockindex"

// BIP9Stats reports the signalling tally of the current, unfinished
// period as of some block.
type BIP9Stats struct {
	Period    int32
	Threshold int32
	Elapsed   int32
	Count     int32
	Possible  bool
}

// getStateFor computes the ThresholdState for the block that follows
// parent, consulting and populating cache for the time-based branch.
// parent is the block whose successor's state is being asked about, not
// the block itself; a nil parent means genesis.
func getStateFor(parent *blockindex.BlockIndex, checker ConditionChecker, cache *Cache) ThresholdState {
	beginBlock := checker.BeginBlock()
	endBlock := checker.EndBlock()

	if beginBlock != 0 && endBlock != 0 {
		if parent == nil {
			return Defined
		}

		height := parent.Height + 1
		if height < beginBlock {
			return Defined
		}
		if height >= beginBlock && height < endBlock {
			if checker.Condition(parent) {
				return Started
			}
			return LockedIn
		}
		return Failed
	}

	period := checker.Period()
	startTime := checker.BeginTime()
	timeout := checker.EndTime()

	// A block's state is always that of the first block of its period,
	// so everything below pins parent to the last block of its own
	// period before walking.
	if parent != nil {
		parent = parent.Ancestor(parent.Height - ((parent.Height + 1) % period))
	}

	var toCompute []*blockindex.BlockIndex
	var state ThresholdState
	for {
		if cached, ok := cache.get(parent); ok {
			state = cached
			break
		}
		if parent == nil {
			state = Defined
			cache.set(parent, state)
			break
		}
		if parent.MedianTimePast < startTime {
			// Every earlier period is before the start time too.
			state = Defined
			cache.set(parent, state)
			break
		}
		toCompute = append(toCompute, parent)
		parent = parent.Ancestor(parent.Height - period)
	}

	for i := len(toCompute) - 1; i >= 0; i-- {
		next := state
		bi := toCompute[i]

		switch state {
		case Defined:
			if bi.MedianTimePast >= timeout {
				next = Failed
			} else if bi.MedianTimePast >= startTime {
				next = Started
			}
		case Started:
			if bi.MedianTimePast >= timeout {
				next = Failed
			} else if tallySignals(bi, period, checker) >= checker.Threshold() {
				next = LockedIn
			}
		case LockedIn:
			next = Active
		case Active, Failed:
			// Terminal: nothing to do.
		}

		cache.set(bi, next)
		state = next
	}

	return state
}

// tallySignals counts how many of the period blocks ending at and
// including bi satisfy checker's signalling condition.
func tallySignals(bi *blockindex.BlockIndex, period int32, checker ConditionChecker) int32 {
	count := int32(0)
	walk := bi
	for i := int32(0); i < period; i++ {
		if checker.Condition(walk) {
			count++
		}
		walk = walk.Parent()
	}
	return count
}

// getStatisticsFor reports the signalling tally of the period
// containing index, which need not have ended yet.
func getStatisticsFor(index *blockindex.BlockIndex, checker ConditionChecker) BIP9Stats {
	stats := BIP9Stats{
		Period:    checker.Period(),
		Threshold: checker.Threshold(),
	}

	if index == nil {
		return stats
	}

	endOfPrevPeriod := index.Ancestor(index.Height - ((index.Height + 1) % stats.Period))
	stats.Elapsed = index.Height - endOfPrevPeriod.Height

	count := int32(0)
	walk := index
	for walk.Height != endOfPrevPeriod.Height {
		if checker.Condition(walk) {
			count++
		}
		walk = walk.Parent()
	}

	stats.Count = count
	stats.Possible = (stats.Period - stats.Threshold) >= (stats.Elapsed - count)

	return stats
}

// getStateSinceHeightFor returns the height of the first block at which
// the state returned for parent's successor was entered.
func getStateSinceHeightFor(parent *blockindex.BlockIndex, checker ConditionChecker, cache *Cache) int32 {
	initial := getStateFor(parent, checker, cache)

	// The genesis block is, by definition, Defined for every
	// deployment.
	if initial == Defined {
		return 0
	}

	period := checker.Period()
	parent = parent.Ancestor(parent.Height - ((parent.Height + 1) % period))

	prevPeriodParent := parent.Ancestor(parent.Height - period)
	for prevPeriodParent != nil && getStateFor(prevPeriodParent, checker, cache) == initial {
		parent = prevPeriodParent
		prevPeriodParent = parent.Ancestor(parent.Height - period)
	}

	return parent.Height + 1
}
