// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package versionbits implements a BIP9-style versioned soft-fork
// activation state machine: per-deployment threshold states computed
// over a chain of blockindex.BlockIndex, either from an explicit block
// height range or from a miner-confirmation-window tally over median
// time past.
package versionbits

// ThresholdState is a deployment's activation state as of some block.
// Active and Failed are terminal: once reached, later blocks never
// leave them.
type ThresholdState int

const (
	Defined ThresholdState = iota
	Started
	LockedIn
	Active
	Failed
)

var thresholdStateNames = [...]string{
	"defined",
	"started",
	"locked_in",
	"active",
	"failed",
}

// String implements fmt.Stringer.
func (s ThresholdState) String() string {
	if s < 0 || int(s) >= len(thresholdStateNames) {
		return "unknown threshold state"
	}
	return thresholdStateNames[s]
}
