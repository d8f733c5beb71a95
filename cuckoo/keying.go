// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
)

// deriveKeys derives the pair of SipHash keys used as the Cuckoo Cycle
// edge generator for a block hash and header nonce: the nonce is placed
// little-endian into the last four bytes of a mutable copy of the hash,
// and a Blake2b-256 digest of the result is read back as two
// little-endian uint64 keys. Identical inputs yield identical keys on
// every platform regardless of host endianness.
func deriveKeys(hash chainhash.Hash, nonce uint32) sipKeys {
	var keyed [chainhash.HashSize]byte
	copy(keyed[:], hash[:])
	binary.LittleEndian.PutUint32(keyed[len(keyed)-4:], nonce)

	digest := blake2b.Sum256(keyed[:])

	return sipKeys{
		k0: binary.LittleEndian.Uint64(digest[0:8]),
		k1: binary.LittleEndian.Uint64(digest[8:16]),
	}
}
