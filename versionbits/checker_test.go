// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package versionbits

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dblokhin/cuckoo-consensus/blockindex"
	"github.com/stretchr/testify/require"
)

func zeroHash() chainhash.Hash {
	return chainhash.Hash{}
}

func TestNewDeploymentCheckerRejectsBadParams(t *testing.T) {
	_, err := NewDeploymentChecker(DeploymentParams{Period: 0})
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewDeploymentChecker(DeploymentParams{Period: 100, Threshold: 200})
	require.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewDeploymentChecker(DeploymentParams{Period: 100, Threshold: 50, BeginBlock: 200, EndBlock: 100})
	require.ErrorIs(t, err, ErrInvalidBlockRange)
}

func TestDeploymentCheckerCondition(t *testing.T) {
	checker, err := NewDeploymentChecker(DeploymentParams{
		Name:      "test-deployment",
		Bit:       3,
		Period:    144,
		Threshold: 108,
	})
	require.NoError(t, err)

	signalling := blockindex.NewBlockIndex(zeroHash(), 1, int32(TopBits)|(1<<3), 0, nil)
	require.True(t, checker.Condition(signalling))

	wrongBit := blockindex.NewBlockIndex(zeroHash(), 1, int32(TopBits)|(1<<7), 0, nil)
	require.False(t, checker.Condition(wrongBit))

	noTopBits := blockindex.NewBlockIndex(zeroHash(), 1, 1<<3, 0, nil)
	require.False(t, checker.Condition(noTopBits))
}
