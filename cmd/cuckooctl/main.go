// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Command cuckooctl mines or verifies a Cuckoo Cycle proof of work for a
// given header hash and nonce.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dblokhin/cuckoo-consensus/cuckoo"
	"github.com/jessevdk/go-flags"
	"github.com/jrick/logrotate/rotator"
	"github.com/sirupsen/logrus"
)

type options struct {
	Mode       string `short:"m" long:"mode" description:"mine or verify" choice:"mine" choice:"verify" required:"true"`
	Hash       string `long:"hash" description:"hex-encoded 32-byte block hash" required:"true"`
	Nonce      uint32 `long:"nonce" description:"header nonce"`
	NodesBits  uint8  `long:"nodes-bits" description:"log2 of nodes per partition" default:"20"`
	EdgesRatio uint8  `long:"edges-ratio" description:"percent of edge space to scan" default:"50"`
	ProofSize  uint8  `long:"proof-size" description:"required cycle length" default:"42"`
	Cycle      string `long:"cycle" description:"comma-separated ascending edge nonces, required for --mode=verify"`
	LogFile    string `long:"logfile" description:"optional rotated log file path; logs to stdout when unset"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	setupLogging(opts.LogFile)

	hash, err := parseHash(opts.Hash)
	if err != nil {
		logrus.WithError(err).Fatal("invalid --hash")
	}

	params := cuckoo.GraphParams{
		NodesBits:  opts.NodesBits,
		EdgesRatio: opts.EdgesRatio,
		ProofSize:  opts.ProofSize,
	}

	switch opts.Mode {
	case "mine":
		runMine(hash, opts.Nonce, params)
	case "verify":
		runVerify(hash, opts.Nonce, params, opts.Cycle)
	}
}

func runMine(hash chainhash.Hash, nonce uint32, params cuckoo.GraphParams) {
	logrus.WithFields(logrus.Fields{
		"nodes_bits":  params.NodesBits,
		"edges_ratio": params.EdgesRatio,
		"proof_size":  params.ProofSize,
	}).Info("searching for a cycle")

	cycle, err := cuckoo.FindCycle(hash, nonce, params)
	if err != nil {
		logrus.WithError(err).Fatal("mining failed")
	}
	if cycle == nil {
		fmt.Println("no cycle found")
		os.Exit(1)
	}

	fmt.Println(formatCycle(cycle))
}

func runVerify(hash chainhash.Hash, nonce uint32, params cuckoo.GraphParams, cycleFlag string) {
	cycle, err := parseCycle(cycleFlag)
	if err != nil {
		logrus.WithError(err).Fatal("invalid --cycle")
	}

	result := cuckoo.VerifyCycle(hash, nonce, params.NodesBits, params.ProofSize, cycle)
	logrus.WithField("result", result).Debug("verification complete")

	fmt.Println(result)
	if result != cuckoo.Ok {
		os.Exit(1)
	}
}

func parseHash(s string) (chainhash.Hash, error) {
	var hash chainhash.Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return hash, fmt.Errorf("decoding hex: %w", err)
	}
	if len(raw) != chainhash.HashSize {
		return hash, fmt.Errorf("hash must be %d bytes, got %d", chainhash.HashSize, len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}

func parseCycle(s string) ([]uint32, error) {
	if s == "" {
		return nil, fmt.Errorf("empty --cycle")
	}

	parts := strings.Split(s, ",")
	cycle := make([]uint32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("edge nonce %q: %w", p, err)
		}
		cycle[i] = uint32(n)
	}
	return cycle, nil
}

func formatCycle(cycle []uint32) string {
	parts := make([]string, len(cycle))
	for i, n := range cycle {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ",")
}

func setupLogging(logFile string) {
	logrus.SetLevel(logrus.DebugLevel)

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
