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

// Merge combines two child node hashes into their parent, absorbing zero
// children so that an all-zero subtree costs nothing to represent:
//
//	merge(lhs, rhs) = rhs          if lhs is zero
//	                = lhs          if rhs is zero
//	                = H(lhs||rhs)  otherwise
func Merge(h Hasher, lhs, rhs H256) H256 {
	switch {
	case lhs.IsZero():
		return rhs
	case rhs.IsZero():
		return lhs
	default:
		return hashBytes(h, lhs[:], rhs[:])
	}
}

// LeafHash computes the value stored at a leaf's position: zero if value is
// zero (absence), else H(key||value). Combined with Merge's zero-absorption
// this keeps merge(x, 0) and merge(0, x) from colliding with an unrelated
// leaf hash -- every non-zero node at any height is either a real digest of
// two non-zero children or a leaf hash that embeds its own key.
func LeafHash(h Hasher, key, value H256) H256 {
	if value.IsZero() {
		return Zero
	}
	return hashBytes(h, key[:], value[:])
}
