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
	"fmt"

	"github.com/golang/glog"
)

// Tree is a sparse Merkle tree over height-256 paths: (root, store). The
// empty tree is (Zero, <empty store>). Every non-zero node reachable from
// root has its (lhs, rhs) pair in store; zero nodes are never stored.
//
// Note on leaves: the value stored at a leaf's position in the branch walk
// is L(key, value), the leaf hash -- not the raw value. The tree keeps the
// raw pre-image in store's separate leaf map (Store.GetLeaf/InsertLeaf) so
// that Get can hand callers back what they put in, not its digest.
//
// Tree exclusively owns its Store: a single Tree should not share one
// Store instance with another live Tree, and Update must not be called
// concurrently with itself or with Get/MerkleProof against the same
// mutating tree (see package doc on concurrency).
type Tree struct {
	hasher Hasher
	store  Store
	root   H256
}

// New returns a Tree rooted at root, backed by store. Pass Zero for an
// empty tree. The hasher is used for both leaf hashing and branch merging;
// it must match the hasher used to produce any existing content in store.
func New(hasher Hasher, store Store, root H256) *Tree {
	return &Tree{hasher: hasher, store: store, root: root}
}

// Root returns the tree's current root hash.
func (t *Tree) Root() H256 { return t.root }

// Hasher returns the Hasher the tree was constructed with, for callers
// (the RPC service) that need to pass it on to Verify/Reconstruct.
func (t *Tree) Hasher() Hasher { return t.hasher }

// walk descends from the root to key's leaf position, recording, for each
// height 255 down to 0, the node that occupied that position before
// descending (nodes[h]) and its sibling (siblings[h]). leaf is the value
// found at the leaf position -- the current leaf hash, zero if absent.
func (t *Tree) walk(key H256) (nodes [Height]H256, siblings [Height]H256, leaf H256, err error) {
	current := t.root
	for h := Height - 1; h >= 0; h-- {
		nodes[h] = current
		if current.IsZero() {
			continue
		}
		branch, ok, err := t.store.GetBranch(uint8(h), current)
		if err != nil {
			return nodes, siblings, Zero, fmt.Errorf("GetBranch(%d, %x): %w", h, current, err)
		}
		if !ok {
			return nodes, siblings, Zero, newError(CodeNotFound, "Tree.walk",
				fmt.Errorf("missing branch (%d, %x) reachable from root %x", h, current, t.root))
		}
		var child, sibling H256
		if key.GetBit(h) == 0 {
			child, sibling = branch.Lhs, branch.Rhs
		} else {
			child, sibling = branch.Rhs, branch.Lhs
		}
		siblings[h] = sibling
		current = child
	}
	return nodes, siblings, current, nil
}

// Get returns the value stored for key, or Zero if key has no value. It
// walks the path from the root; if any intermediate node is zero the
// subtree is empty and the result is Zero without consulting the leaf map.
func (t *Tree) Get(key H256) (H256, error) {
	_, _, leaf, err := t.walk(key)
	if err != nil {
		return Zero, err
	}
	if leaf.IsZero() {
		return Zero, nil
	}
	value, ok, err := t.store.GetLeaf(key)
	if err != nil {
		return Zero, fmt.Errorf("GetLeaf(%x): %w", key, err)
	}
	if !ok {
		return Zero, newError(CodeNotFound, "Tree.Get",
			fmt.Errorf("leaf hash %x present on path for key %x but store has no pre-image", leaf, key))
	}
	return value, nil
}

// Update sets key to value (Zero deletes key) and returns the new root.
// Updating with the value key already has is idempotent: the root and the
// store's content are unchanged (the same (height, node) entries are
// written, not new ones).
func (t *Tree) Update(key, value H256) (H256, error) {
	nodes, siblings, _, err := t.walk(key)
	if err != nil {
		return Zero, err
	}

	if value.IsZero() {
		if err := t.store.RemoveLeaf(key); err != nil {
			return Zero, fmt.Errorf("RemoveLeaf(%x): %w", key, err)
		}
	} else {
		if err := t.store.InsertLeaf(key, value); err != nil {
			return Zero, fmt.Errorf("InsertLeaf(%x): %w", key, err)
		}
	}

	current := LeafHash(t.hasher, key, value)
	for h := 0; h < Height; h++ {
		sibling := siblings[h]
		var lhs, rhs H256
		if key.GetBit(h) == 0 {
			lhs, rhs = current, sibling
		} else {
			lhs, rhs = sibling, current
		}
		parent := Merge(t.hasher, lhs, rhs)
		old := nodes[h]

		if parent.IsZero() {
			if !old.IsZero() {
				if err := t.store.RemoveBranch(uint8(h), old); err != nil {
					return Zero, fmt.Errorf("RemoveBranch(%d, %x): %w", h, old, err)
				}
			}
		} else if err := t.store.InsertBranch(uint8(h), parent, Branch{Lhs: lhs, Rhs: rhs}); err != nil {
			return Zero, fmt.Errorf("InsertBranch(%d, %x): %w", h, parent, err)
		}
		current = parent
	}

	glog.V(2).Infof("smt: Update(%x, %x): root %x -> %x", key, value, t.root, current)
	t.root = current
	return current, nil
}
