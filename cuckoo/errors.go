// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import "errors"

var (
	// ErrBadNodesBits is returned when NodesBits falls outside [1, 32].
	ErrBadNodesBits = errors.New("cuckoo: nodes_bits out of range")

	// ErrBadEdgesRatio is returned when EdgesRatio falls outside [0, 100].
	ErrBadEdgesRatio = errors.New("cuckoo: edges_ratio out of range")

	// ErrBadProofSize is returned when ProofSize is odd or less than 2.
	ErrBadProofSize = errors.New("cuckoo: proof_size must be even and >= 2")

	// ErrPathOverflow is returned when a union-find path exceeds
	// maxPathLen while mining. The reference Cuckoo Cycle implementation
	// treats this as a fatal parameter error and exits the process;
	// this implementation surfaces it as an error on the mining path
	// instead, per spec.md's Design Notes.
	ErrPathOverflow = errors.New("cuckoo: path length exceeds maximum")

	// errHarvestIncomplete is an internal invariant error: it should
	// never be observed, since it would mean a cycle length computed
	// during the forest walk didn't actually correspond to that many
	// distinct edge nonces.
	errHarvestIncomplete = errors.New("cuckoo: harvest did not recover the full cycle")
)
