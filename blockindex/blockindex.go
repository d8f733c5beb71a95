// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package blockindex provides a minimal, in-memory chain-of-headers
// structure: the concrete BlockIndex collaborator the versionbits state
// machine walks to inspect a block's version, median time past and
// ancestry. It carries no serialization or persistence; those remain the
// job of a real node's chain database.
package blockindex

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// BlockIndex is one node of a chain of block headers. It is immutable
// after construction: NewBlockIndex takes the finished parent link and
// computes the skip pointer once, so a BlockIndex never needs to be
// patched up after the fact.
type BlockIndex struct {
	Hash           chainhash.Hash
	Height         int32
	Version        int32
	MedianTimePast int64

	parent *BlockIndex
	skip   *BlockIndex
}

// NewBlockIndex builds a BlockIndex linked to parent (nil for genesis)
// and computes its ancestor skip pointer, following the same
// amortized-logarithmic scheme as btcd/bitcoind's block index.
func NewBlockIndex(hash chainhash.Hash, height, version int32, medianTimePast int64, parent *BlockIndex) *BlockIndex {
	bi := &BlockIndex{
		Hash:           hash,
		Height:         height,
		Version:        version,
		MedianTimePast: medianTimePast,
		parent:         parent,
	}
	if parent != nil {
		bi.skip = parent.Ancestor(skipHeight(height))
	}
	return bi
}

// Parent returns the previous block in the chain, or nil at genesis.
func (bi *BlockIndex) Parent() *BlockIndex {
	if bi == nil {
		return nil
	}
	return bi.parent
}

// Ancestor returns the BlockIndex at height on the chain leading to bi,
// or nil if height is out of [0, bi.Height]. It walks the skip-pointer
// lattice rather than following Parent links one at a time, so repeated
// ancestor queries over a long chain stay cheap.
func (bi *BlockIndex) Ancestor(height int32) *BlockIndex {
	if bi == nil || height > bi.Height || height < 0 {
		return nil
	}

	walk := bi
	walkHeight := bi.Height
	for walkHeight > height {
		skipH := skipHeight(walkHeight)
		skipPrevH := skipHeight(walkHeight - 1)

		if walk.skip != nil &&
			(skipH == height ||
				(skipH > height && !(skipPrevH < skipH-2 && skipPrevH >= height))) {
			walk = walk.skip
			walkHeight = skipH
		} else {
			walk = walk.parent
			walkHeight--
		}
	}
	return walk
}

// skipHeight picks the height a block's skip pointer should jump back
// to. Any height strictly below the block's own height is correct; this
// expression keeps the worst-case walk to roughly log2(height) steps.
func skipHeight(height int32) int32 {
	if height < 2 {
		return 0
	}
	if height&1 != 0 {
		return invertLowestOne(invertLowestOne(height-1)) + 1
	}
	return invertLowestOne(height)
}

// invertLowestOne clears the lowest set bit of n.
func invertLowestOne(n int32) int32 {
	return n & (n - 1)
}
