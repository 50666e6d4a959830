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

// Branch is the ordered pair of child hashes stored for a branch node.
type Branch struct {
	Lhs, Rhs H256
}

// Store is the persistence contract the tree engine requires of an
// embedder. It holds branch nodes keyed by (height, node hash) and leaf
// pre-images keyed by key -- see the Tree engine's doc comment for why the
// two are kept apart. Implementations need not be safe for concurrent use
// by more than one writer at a time; the tree engine does no locking of its
// own, so callers must not run Updates concurrently (see package doc).
type Store interface {
	// GetBranch returns the children stored for (height, node), or
	// ok == false if nothing is stored there. Zero nodes are never stored,
	// so callers should special-case a zero node hash before calling this.
	GetBranch(height uint8, node H256) (children Branch, ok bool, err error)

	// InsertBranch stores (height, node) -> children, overwriting any
	// existing entry. node must equal Merge(lhs, rhs) for the tree's
	// hasher; the store does not re-derive or verify this.
	InsertBranch(height uint8, node H256, children Branch) error

	// RemoveBranch deletes the (height, node) entry if present. Removing a
	// node that isn't stored is not an error.
	RemoveBranch(height uint8, node H256) error

	// GetLeaf returns the pre-image value stored for key, or ok == false
	// if key has no value (or was deleted).
	GetLeaf(key H256) (value H256, ok bool, err error)

	// InsertLeaf stores the pre-image value for key, overwriting any
	// existing entry.
	InsertLeaf(key, value H256) error

	// RemoveLeaf deletes the pre-image entry for key if present.
	RemoveLeaf(key H256) error
}
