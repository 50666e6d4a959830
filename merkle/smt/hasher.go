// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Hasher is the injected digest contract: write raw bytes, then finish to a
// 32-byte H256. It's exactly the standard library's hash.Hash -- Write,
// Sum(nil) truncated to 32 bytes, Reset -- so any hash.Hash with a 32-byte
// output already satisfies it.
type Hasher interface {
	hash.Hash
}

// NewHasher returns the default digest: Blake2b-256. All proof
// compatibility in this package assumes this hasher (or one with identical
// 32-byte output) unless an embedder explicitly swaps it for both the
// writer and the verifier.
func NewHasher() Hasher {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256(nil) only errors for a key longer than 64 bytes;
		// nil never triggers that.
		panic("smt: blake2b.New256(nil): " + err.Error())
	}
	return h
}

// hashBytes resets h, writes each part in turn with no separator or length
// prefix, and returns the 32-byte digest. Proof compatibility depends on
// this being exact: no domain separation tag, no framing.
func hashBytes(h Hasher, parts ...[]byte) H256 {
	h.Reset()
	for _, p := range parts {
		// hash.Hash.Write never returns an error.
		h.Write(p)
	}
	var out H256
	copy(out[:], h.Sum(nil))
	return out
}
