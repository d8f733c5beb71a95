// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// VerifyResult is the outcome of VerifyCycle. Ordinal order is stable and
// matches the reference implementation's errstr table, for use in logs.
type VerifyResult int

const (
	Ok VerifyResult = iota
	// HeaderLength is never returned by VerifyCycle: chainhash.Hash is a
	// fixed-size array, so the reference implementation's variable-length
	// header check has no analogue here. Kept so VerifyResult's ordinals
	// still line up with the reference errstr table for logging.
	HeaderLength
	TooBig
	TooSmall
	NonMatching
	Branch
	DeadEnd
	ShortCycle
)

var verifyResultNames = [...]string{
	"OK",
	"wrong header length",
	"nonce too big",
	"nonces not ascending",
	"endpoints don't match up",
	"branch in cycle",
	"cycle dead ends",
	"cycle too short",
}

// String implements fmt.Stringer.
func (r VerifyResult) String() string {
	if r < 0 || int(r) >= len(verifyResultNames) {
		return "unknown pow verify result"
	}
	return verifyResultNames[r]
}

// VerifyCycle deterministically checks that cycle is a canonical,
// valid-length proof-of-work cycle in the graph keyed by hash and nonce.
// It never mutates the forest of FindCycle and allocates only
// O(proofSize) scratch space.
func VerifyCycle(hash chainhash.Hash, nonce uint32, nodesBits, proofSize uint8, cycle []uint32) VerifyResult {
	if len(cycle) != int(proofSize) {
		return ShortCycle
	}

	params := GraphParams{NodesBits: nodesBits, ProofSize: proofSize}
	nonceBound := params.nonceBound()
	mask := params.hashMask()
	keys := deriveKeys(hash, nonce)

	size := 2 * int(proofSize)
	uvs := make([]uint32, size)
	var xor0, xor1 uint32

	for n := 0; n < int(proofSize); n++ {
		if uint64(cycle[n]) > nonceBound {
			return TooBig
		}
		if n > 0 && cycle[n] <= cycle[n-1] {
			return TooSmall
		}

		u := endpoint(keys, mask, uint64(cycle[n]), 0)
		v := endpoint(keys, mask, uint64(cycle[n]), 1)
		uvs[2*n] = u
		uvs[2*n+1] = v
		xor0 ^= u
		xor1 ^= v
	}

	// A simple cycle visits every vertex an even number of times, so the
	// XOR of all U-endpoints and of all V-endpoints must each vanish.
	if xor0|xor1 != 0 {
		return NonMatching
	}

	n := 0
	i := 0
	for {
		j := i
		for k := (i + 2) % size; k != i; k = (k + 2) % size {
			if uvs[k] == uvs[i] {
				if j != i {
					return Branch
				}
				j = k
			}
		}
		if j == i {
			return DeadEnd
		}

		i = j ^ 1
		n++
		if i == 0 {
			break
		}
	}

	if n == int(proofSize) {
		return Ok
	}
	return ShortCycle
}
