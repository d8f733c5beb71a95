// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package blockindex

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dchest/siphash"
)

// HashIndex is a lookup table from block hash to BlockIndex, keyed with a
// process-random SipHash seed rather than used as a raw map[chainhash.Hash],
// the same DoS-resistant keying Go's own runtime applies to map[string]
// lookups: an adversary choosing block hashes to collide against a fixed
// key can't do so here, since the key is generated fresh per process.
type HashIndex struct {
	k0, k1 uint64
	byHash map[uint64][]*BlockIndex
}

// NewHashIndex builds an empty HashIndex with a freshly generated key.
func NewHashIndex() *HashIndex {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; nothing downstream can run safely either.
		panic("blockindex: crypto/rand unavailable: " + err.Error())
	}

	return &HashIndex{
		k0:     binary.LittleEndian.Uint64(seed[0:8]),
		k1:     binary.LittleEndian.Uint64(seed[8:16]),
		byHash: make(map[uint64][]*BlockIndex),
	}
}

func (hi *HashIndex) bucket(hash chainhash.Hash) uint64 {
	return siphash.Hash(hi.k0, hi.k1, hash[:])
}

// Insert records bi under its hash, tolerating (rare) bucket collisions
// by chaining.
func (hi *HashIndex) Insert(bi *BlockIndex) {
	key := hi.bucket(bi.Hash)
	bucket := hi.byHash[key]
	for _, existing := range bucket {
		if existing.Hash == bi.Hash {
			return
		}
	}
	hi.byHash[key] = append(bucket, bi)
}

// Lookup returns the BlockIndex for hash, or nil if not present.
func (hi *HashIndex) Lookup(hash chainhash.Hash) *BlockIndex {
	for _, bi := range hi.byHash[hi.bucket(hash)] {
		if bi.Hash == hash {
			return bi
		}
	}
	return nil
}
