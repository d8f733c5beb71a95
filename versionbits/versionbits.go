// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import "github.com/dblokhin/cuckoo-consensus/blockindex"

const (
	// TopMask isolates the top three bits of a block version field.
	TopMask = 0xE0000000

	// TopBits is the fixed versionbits marker pattern (top three bits
	// == 001) a signalling version must carry.
	TopBits = 0x20000000
)

// Signals reports whether version signals deployment bit under the
// versionbits marker convention.
func Signals(version uint32, bit uint8) bool {
	return version&TopMask == TopBits && version&(uint32(1)<<bit) != 0
}

// State returns the ThresholdState for the block following parent,
// under checker's deployment parameters, consulting and populating
// cache.
func State(parent *blockindex.BlockIndex, checker ConditionChecker, cache *Cache) ThresholdState {
	return getStateFor(parent, checker, cache)
}

// Statistics reports the current period's signalling tally as of index.
func Statistics(index *blockindex.BlockIndex, checker ConditionChecker) BIP9Stats {
	return getStatisticsFor(index, checker)
}

// StateSinceHeight returns the height of the first block at which the
// state returned by State(parent, checker, cache) was entered.
func StateSinceHeight(parent *blockindex.BlockIndex, checker ConditionChecker, cache *Cache) int32 {
	return getStateSinceHeightFor(parent, checker, cache)
}

// Mask is the version-field bit mask a deployment's checker signals
// with.
func Mask(params DeploymentParams) uint32 {
	return params.Mask()
}
