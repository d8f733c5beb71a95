// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"
)

// maxPathLen bounds the union-find path stacks. Exceeding it during a
// walk means the parameters describe a pathologically dense graph; the
// reference implementation exits the process on this condition, this one
// returns ErrPathOverflow instead.
const maxPathLen = 8192

// edgePair is a graph edge normalized so U (even) always comes first,
// letting the harvest step match edges without tracking which array
// position produced which endpoint.
type edgePair struct {
	u, v uint32
}

func normalizeEdge(a, b uint32) edgePair {
	if a%2 == 0 {
		return edgePair{a, b}
	}
	return edgePair{b, a}
}

// FindCycle searches for a simple cycle of length params.ProofSize in the
// Cuckoo Cycle graph keyed by hash and nonce, examining params.Difficulty()
// candidate edge nonces. It returns the cycle's edge nonces in ascending
// order, or nil with a nil error if the search finds none. An edge that
// would close a cycle of any other length is discarded, so a cycle of
// the required length that runs through a discarded edge is not found.
func FindCycle(hash chainhash.Hash, nonce uint32, params GraphParams) ([]uint32, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	logrus.Debugf("cuckoo: searching for %d-cycle on nodes_bits=%d edges_ratio=%d",
		params.ProofSize, params.NodesBits, params.EdgesRatio)

	keys := deriveKeys(hash, nonce)
	mask := params.hashMask()
	difficulty := params.Difficulty()

	// forest[u] is the directed parent pointer of node u toward a root;
	// 0 means nil. Sized to cover every possible (shifted, partition-bit
	// encoded) endpoint value.
	forest := make([]uint32, 2*params.NodesCount()+1)
	us := make([]uint32, maxPathLen)
	vs := make([]uint32, maxPathLen)

	for n := uint64(0); n < difficulty; n++ {
		u0 := endpoint(keys, mask, n, 0)
		if u0 == 0 {
			continue // reserve 0 as nil; v0 is guaranteed non-zero
		}
		v0 := endpoint(keys, mask, n, 1)

		us[0] = u0
		vs[0] = v0

		nu, err := walkPath(forest, forest[u0], us)
		if err != nil {
			return nil, err
		}
		nv, err := walkPath(forest, forest[v0], vs)
		if err != nil {
			return nil, err
		}

		if us[nu] == vs[nv] {
			// The new edge would close a cycle. Walk both paths back
			// from their (shared) root to find where they actually
			// join, since one side's tree may be deeper than the
			// other's.
			min := nu
			if nv < min {
				min = nv
			}
			nu -= min
			nv -= min
			for us[nu] != vs[nv] {
				nu++
				nv++
			}

			length := nu + nv + 1
			if length == int(params.ProofSize) {
				return harvest(keys, mask, difficulty, us[:nu+1], vs[:nv+1], int(params.ProofSize))
			}
			// Wrong length: discard the edge, leave the forest intact.
			continue
		}

		// Disjoint roots: attach the shallower tree as a subtree of the
		// deeper one by reversing its path, then link the new edge.
		if nu < nv {
			for k := nu; k >= 1; k-- {
				forest[us[k]] = us[k-1]
			}
			forest[u0] = v0
		} else {
			for k := nv; k >= 1; k-- {
				forest[vs[k]] = vs[k-1]
			}
			forest[v0] = u0
		}
	}

	return nil, nil
}

// walkPath follows parent pointers from start to the forest root,
// recording each node (start included) into path starting at index 1
// (index 0 is reserved for the caller's own edge endpoint). It returns
// the depth reached, i.e. the index of the root in path.
func walkPath(forest []uint32, start uint32, path []uint32) (int, error) {
	nu := 0
	u := start
	for u != 0 {
		nu++
		if nu >= maxPathLen {
			return 0, fmt.Errorf("%w: exceeded %d while walking to root", ErrPathOverflow, maxPathLen)
		}
		path[nu] = u
		u = forest[u]
	}
	return nu, nil
}

// harvest reconstructs the set of unordered endpoint pairs that make up
// the closed cycle from the two path stacks, then rescans edge nonces
// 0..difficulty, recording and removing each nonce whose endpoints match
// a cycle edge. The returned nonces are naturally ascending since the
// rescan is in nonce order.
func harvest(keys sipKeys, mask uint64, difficulty uint64, us []uint32, vs []uint32, proofSize int) ([]uint32, error) {
	nu := len(us) - 1
	nv := len(vs) - 1

	edges := make(map[edgePair]struct{}, proofSize)
	edges[normalizeEdge(us[0], vs[0])] = struct{}{}
	for i := 0; i < nu; i++ {
		edges[normalizeEdge(us[i], us[i+1])] = struct{}{}
	}
	for i := 0; i < nv; i++ {
		edges[normalizeEdge(vs[i], vs[i+1])] = struct{}{}
	}

	nonces := make([]uint32, 0, proofSize)
	for n := uint64(0); n < difficulty && len(edges) > 0; n++ {
		key := edgePair{
			u: endpoint(keys, mask, n, 0),
			v: endpoint(keys, mask, n, 1),
		}
		if _, ok := edges[key]; ok {
			delete(edges, key)
			nonces = append(nonces, uint32(n))
		}
	}

	if len(nonces) != proofSize {
		return nil, fmt.Errorf("%w: recovered %d of %d", errHarvestIncomplete, len(nonces), proofSize)
	}

	return nonces, nil
}
