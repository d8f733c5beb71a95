// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Command versionstate evaluates a version-bits deployment's threshold
// state over a synthetic chain, for exercising and demonstrating the
// versionbits package without a real node behind it.
package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dblokhin/cuckoo-consensus/blockindex"
	"github.com/dblokhin/cuckoo-consensus/versionbits"
	"github.com/jessevdk/go-flags"
	"github.com/jrick/logrotate/rotator"
	"github.com/sirupsen/logrus"
)

type options struct {
	Name       string `long:"name" description:"deployment name, for logging" default:"example"`
	Bit        uint8  `long:"bit" description:"version bit index" default:"1"`
	Period     int32  `long:"period" description:"miner confirmation window" default:"144"`
	Threshold  int32  `long:"threshold" description:"blocks per period required to lock in" default:"108"`
	StartTime  int64  `long:"start-time" description:"median time past at which signalling begins counting"`
	Timeout    int64  `long:"timeout" description:"median time past after which the deployment fails"`
	BeginBlock int32  `long:"begin-block" description:"explicit activation start height (0 disables)"`
	EndBlock   int32  `long:"end-block" description:"explicit activation end height (0 disables)"`
	Height     int32  `long:"height" description:"synthetic chain tip height" default:"1000"`
	BlockTime  int64  `long:"block-time" description:"seconds between blocks, for median time past" default:"600"`
	SignalOf   int32  `long:"signal-of" description:"signal 1 block out of every N (0 disables signalling)" default:"1"`
	LogFile    string `long:"logfile" description:"optional rotated log file path; logs to stdout when unset"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	setupLogging(opts.LogFile)

	params := versionbits.DeploymentParams{
		Name:       opts.Name,
		Bit:        opts.Bit,
		Period:     opts.Period,
		Threshold:  opts.Threshold,
		StartTime:  opts.StartTime,
		Timeout:    opts.Timeout,
		BeginBlock: opts.BeginBlock,
		EndBlock:   opts.EndBlock,
	}

	checker, err := versionbits.NewDeploymentChecker(params)
	if err != nil {
		logrus.WithError(err).Fatal("invalid deployment parameters")
	}

	tip := buildSyntheticChain(opts.Height, opts.BlockTime, opts.SignalOf, versionbits.Mask(params))
	cache := versionbits.NewCache()

	state := versionbits.State(tip, checker, cache)
	stats := versionbits.Statistics(tip, checker)
	since := versionbits.StateSinceHeight(tip, checker, cache)

	logrus.WithFields(logrus.Fields{
		"deployment": opts.Name,
		"height":     opts.Height,
		"state":      state,
		"since":      since,
	}).Info("evaluated deployment state")

	fmt.Printf("state:      %s\n", state)
	fmt.Printf("since:      %d\n", since)
	fmt.Printf("period:     %d\n", stats.Period)
	fmt.Printf("threshold:  %d\n", stats.Threshold)
	fmt.Printf("elapsed:    %d\n", stats.Elapsed)
	fmt.Printf("count:      %d\n", stats.Count)
	fmt.Printf("possible:   %t\n", stats.Possible)
}

// buildSyntheticChain builds a linear chain up to height, signalling
// deploymentMask on one block out of every signalOf (0 disables
// signalling entirely), with median time past advancing blockTime
// seconds per block. Returns the tip's parent, since State/Statistics
// evaluate the block that FOLLOWS the index they're given.
func buildSyntheticChain(height int32, blockTime int64, signalOf int32, deploymentMask uint32) *blockindex.BlockIndex {
	var parent *blockindex.BlockIndex
	var tip *blockindex.BlockIndex

	for h := int32(0); h <= height; h++ {
		version := int32(versionbits.TopBits)
		if signalOf > 0 && h%signalOf == 0 {
			version |= int32(deploymentMask)
		}

		hash := chainhash.HashH([]byte{byte(h), byte(h >> 8), byte(h >> 16), byte(h >> 24)})
		tip = blockindex.NewBlockIndex(hash, h, version, int64(h)*blockTime, parent)
		parent = tip
	}

	return tip.Parent()
}

func setupLogging(logFile string) {
	logrus.SetLevel(logrus.InfoLevel)

	if logFile == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open log rotator")
	}
	logrus.SetOutput(r)
}
