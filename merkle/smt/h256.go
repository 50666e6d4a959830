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

// Package smt implements a fixed-height (256 level) sparse Merkle tree: a
// key/value authenticated dictionary that commits an arbitrarily large
// assignment of 32-byte keys to 32-byte values to a single 32-byte root, and
// produces/verifies compact multi-leaf membership proofs against that root.
//
// Concurrency: the package has no internal synchronization. Tree.Update
// must not run concurrently with any other call on the same Tree or Store.
// Tree.Get and Tree.MerkleProof only read, so they may run concurrently
// with each other while nothing updates the tree, provided the Store
// allows concurrent reads. A Hasher is stateful and must not be shared
// between concurrent calls.
package smt

// Height is the number of levels in the tree above the leaves. Keys are
// 256-bit, so there are 256 branch heights, 0 (just above the leaves)
// through 255 (just below the root).
const Height = 256

// H256 is an opaque 32-byte value: a key, a value, or a node hash. Bit i (0
// <= i < 256) is (byte[i/8] >> (i%8)) & 1 -- bit 0 is the least-significant
// bit of the first byte.
type H256 [32]byte

// Zero is the all-zero H256, used to mean "absent" for values and "empty
// subtree" for node hashes.
var Zero = H256{}

// IsZero reports whether every byte of h is zero.
func (h H256) IsZero() bool {
	return h == Zero
}

// GetBit returns bit i of h (0 <= i < 256).
func (h H256) GetBit(i int) uint8 {
	return (h[i/8] >> uint(i%8)) & 1
}

// SetBit returns h with bit i set to 1.
func (h H256) SetBit(i int) H256 {
	h[i/8] |= 1 << uint(i%8)
	return h
}

// ClearBit returns h with bit i set to 0.
func (h H256) ClearBit(i int) H256 {
	h[i/8] &^= 1 << uint(i%8)
	return h
}

// ParentPath clears every bit at index <= height, identifying the subtree
// root at that height which h's path passes through.
func (h H256) ParentPath(height int) H256 {
	for i := 0; i <= height; i++ {
		h = h.ClearBit(i)
	}
	return h
}

// ForkHeight returns the height at which the paths to h and other diverge:
// the highest bit index at which their bits differ, scanned from bit 255
// (the root end of the path) down to bit 0 (the leaf end). Above this
// height the two keys share every bit and so share every branch node; at
// and below it they fall into different children. If h == other the
// result is 0 and meaningless -- callers only invoke ForkHeight on distinct
// keys.
func (h H256) ForkHeight(other H256) int {
	for height := 255; height >= 0; height-- {
		if h.GetBit(height) != other.GetBit(height) {
			return height
		}
	}
	return 0
}

// Bytes returns the 32 raw bytes of h.
func (h H256) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, h[:])
	return out
}

// compareByteReversed orders a and b the way smt_state.Normalize requires:
// by key, comparing from the last byte down to the first. Byte 31 carries
// bits 255..248, the ones nearest the root, so this is exactly a big-endian
// comparison of the path the key encodes.
func compareByteReversed(a, b H256) int {
	for i := 31; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
