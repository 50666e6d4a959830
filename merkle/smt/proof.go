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

import "fmt"

// Proof opcodes. No framing header, no length prefix, no version byte --
// the byte stream is the whole wire contract.
const (
	opPushLeaf   byte = 0x4C // 'L': push (key, L(key,value)) for the next leaf
	opSibling    byte = 0x50 // 'P': merge top with an explicit sibling hash
	opMergeStack byte = 0x48 // 'H': merge the top two stack entries together
)

// KeyValue is a key/value pair proven (or to be checked) by a MerkleProof.
type KeyValue struct {
	Key   H256
	Value H256
}

// MerkleProof is an owned byte program plus the ordered leaf list it was
// compiled for. Replaying Program against Leaves reconstructs a root; see
// Verify.
type MerkleProof struct {
	Leaves  []KeyValue
	Program []byte
}

// MerkleProof compiles a compact membership proof for keys against the
// tree's current content. keys must already be deduplicated and sorted
// ascending by key (see State.Normalize) -- the compiler trusts this order
// to find cheap H merges and does not re-sort.
func (t *Tree) MerkleProof(keys []H256) (*MerkleProof, error) {
	n := len(keys)
	if n == 0 {
		return &MerkleProof{}, nil
	}

	forkHeights := make([]int, n)
	for i := 0; i < n-1; i++ {
		if compareByteReversed(keys[i], keys[i+1]) >= 0 {
			return nil, newError(CodeInvalidProof, "Tree.MerkleProof",
				fmt.Errorf("keys[%d..%d] not strictly ascending", i, i+1))
		}
		forkHeights[i] = keys[i].ForkHeight(keys[i+1])
	}
	forkHeights[n-1] = 255

	leaves := make([]KeyValue, n)
	var program []byte
	// pending holds the fork heights of the subtrees left on the verifier's
	// stack, innermost last; each is merged in with an H once reached.
	var pending []int
	for i := 0; i < n; i++ {
		_, siblings, leaf, err := t.walk(keys[i])
		if err != nil {
			return nil, err
		}
		value := Zero
		if !leaf.IsZero() {
			value, _, err = t.store.GetLeaf(keys[i])
			if err != nil {
				return nil, fmt.Errorf("GetLeaf(%x): %w", keys[i], err)
			}
		}
		leaves[i] = KeyValue{Key: keys[i], Value: value}
		program = append(program, opPushLeaf)

		for h := 0; h <= forkHeights[i]; h++ {
			if h == forkHeights[i] && i < n-1 {
				break // a later leaf merges this subtree in at h
			}
			if len(pending) > 0 && pending[len(pending)-1] == h {
				pending = pending[:len(pending)-1]
				program = append(program, opMergeStack, byte(h))
				continue
			}
			sib := siblings[h]
			program = append(program, opSibling, byte(h))
			program = append(program, sib[:]...)
		}
		pending = append(pending, forkHeights[i])
	}
	return &MerkleProof{Leaves: leaves, Program: program}, nil
}
