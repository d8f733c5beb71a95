// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dchest/siphash"
)

// hashOverlay is a process-random-keyed SipHash map from block hash to
// ThresholdState. It backs Cache's hash-keyed lookups the same way
// blockindex.HashIndex backs hash lookups for BlockIndex: a fixed key
// per process makes the bucket an adversary can't predict or collide
// against across runs.
type hashOverlay struct {
	k0, k1 uint64
	byHash map[uint64][]hashOverlayEntry
}

type hashOverlayEntry struct {
	hash  chainhash.Hash
	state ThresholdState
}

func newHashOverlay() *hashOverlay {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("versionbits: crypto/rand unavailable: " + err.Error())
	}

	return &hashOverlay{
		k0:     binary.LittleEndian.Uint64(seed[0:8]),
		k1:     binary.LittleEndian.Uint64(seed[8:16]),
		byHash: make(map[uint64][]hashOverlayEntry),
	}
}

func (h *hashOverlay) bucket(hash chainhash.Hash) uint64 {
	return siphash.Hash(h.k0, h.k1, hash[:])
}

func (h *hashOverlay) get(hash chainhash.Hash) (ThresholdState, bool) {
	for _, e := range h.byHash[h.bucket(hash)] {
		if e.hash == hash {
			return e.state, true
		}
	}
	return 0, false
}

func (h *hashOverlay) set(hash chainhash.Hash, state ThresholdState) {
	key := h.bucket(hash)
	bucket := h.byHash[key]
	for i, e := range bucket {
		if e.hash == hash {
			bucket[i].state = state
			return
		}
	}
	h.byHash[key] = append(bucket, hashOverlayEntry{hash: hash, state: state})
}
