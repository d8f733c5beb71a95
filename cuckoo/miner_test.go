// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// tinyParams matches the fixed-point walked through a worked example: a
// graph small enough that FindCycle reliably turns up a 4-cycle within a
// handful of header nonces, but still exercises the full union-find path
// all the way through harvest.
var tinyParams = GraphParams{NodesBits: 6, EdgesRatio: 50, ProofSize: 4}

// findTinyCycle scans header nonces until FindCycle reports a cycle,
// returning the winning header nonce and the cycle itself.
func findTinyCycle(t *testing.T, hash chainhash.Hash) (uint32, []uint32) {
	t.Helper()

	for nonce := uint32(0); nonce < 10000; nonce++ {
		cycle, err := FindCycle(hash, nonce, tinyParams)
		if err != nil {
			t.Fatalf("FindCycle(%d): %v", nonce, err)
		}
		if cycle != nil {
			return nonce, cycle
		}
	}

	t.Fatal("no 4-cycle found in 10000 header nonces, graph parameters may have drifted")
	return 0, nil
}

func TestFindCycleProducesValidCycle(t *testing.T) {
	var hash chainhash.Hash
	copy(hash[:], []byte("the quick brown fox jumps over!"))

	nonce, cycle := findTinyCycle(t, hash)

	if len(cycle) != int(tinyParams.ProofSize) {
		t.Fatalf("cycle length = %d, want %d", len(cycle), tinyParams.ProofSize)
	}

	result := VerifyCycle(hash, nonce, tinyParams.NodesBits, tinyParams.ProofSize, cycle)
	if result != Ok {
		t.Fatalf("VerifyCycle = %s, want Ok", result)
	}

	for i := 1; i < len(cycle); i++ {
		if cycle[i] <= cycle[i-1] {
			t.Fatalf("cycle nonces not strictly ascending: %v", cycle)
		}
	}
}

func TestFindCycleRejectsBadParams(t *testing.T) {
	var hash chainhash.Hash
	_, err := FindCycle(hash, 0, GraphParams{NodesBits: 0, EdgesRatio: 50, ProofSize: 4})
	if err == nil {
		t.Fatal("expected an error for invalid graph parameters")
	}
}

func TestFindCycleDeterministic(t *testing.T) {
	var hash chainhash.Hash
	copy(hash[:], []byte("determinism check, same inputs!"))

	nonce, first := findTinyCycle(t, hash)
	second, err := FindCycle(hash, nonce, tinyParams)
	if err != nil {
		t.Fatalf("FindCycle: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("repeated FindCycle calls disagree: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated FindCycle calls disagree: %v vs %v", first, second)
		}
	}
}
