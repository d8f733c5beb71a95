// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import (
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
)

func TestDeriveKeysZeroVector(t *testing.T) {
	var zero chainhash.Hash

	digest := blake2b.Sum256(zero[:])
	want := sipKeys{
		k0: binary.LittleEndian.Uint64(digest[0:8]),
		k1: binary.LittleEndian.Uint64(digest[8:16]),
	}

	got := deriveKeys(zero, 0)
	if got != want {
		t.Fatalf("deriveKeys(zero, 0) = %+v, want %+v", got, want)
	}
}

func TestDeriveKeysNonceChangesKeys(t *testing.T) {
	var hash chainhash.Hash
	copy(hash[:], []byte("some deterministic test hash..."))

	a := deriveKeys(hash, 0)
	b := deriveKeys(hash, 1)
	if a == b {
		t.Fatalf("different nonces produced identical keys")
	}
}

func TestDeriveKeysHashChangesKeys(t *testing.T) {
	var a, b chainhash.Hash
	copy(a[:], []byte("some deterministic test hash..."))
	copy(b[:], []byte("another deterministic test hash"))

	if deriveKeys(a, 5) == deriveKeys(b, 5) {
		t.Fatalf("different hashes produced identical keys")
	}
}
