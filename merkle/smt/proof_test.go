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
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// S4: a multi-leaf proof round-trips through Verify.
func TestMerkleProofRoundTrip(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	r := rand.New(rand.NewSource(7))
	const n = 20
	kvs := make([]KeyValue, n)
	for i := range kvs {
		kvs[i] = KeyValue{Key: randomH256(r), Value: randomH256(r)}
	}
	var root H256
	for _, kv := range kvs {
		var err error
		root, err = tree.Update(kv.Key, kv.Value)
		if err != nil {
			t.Fatal(err)
		}
	}

	sort.Slice(kvs, func(i, j int) bool { return compareByteReversed(kvs[i].Key, kvs[j].Key) < 0 })
	keys := make([]H256, n)
	for i, kv := range kvs {
		keys[i] = kv.Key
	}

	proof, err := tree.MerkleProof(keys)
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(hasher, root, proof.Leaves, proof.Program); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if diff := cmp.Diff(kvs, proof.Leaves); diff != "" {
		t.Errorf("proof.Leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestMerkleProofSingleLeaf(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	var key, value H256
	key[5] = 0x42
	value[0] = 9
	root, err := tree.Update(key, value)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := tree.MerkleProof([]H256{key})
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(hasher, root, proof.Leaves, proof.Program); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestMerkleProofRejectsUnsortedKeys(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	var a, b H256
	a[0] = 1
	b[0] = 2
	if _, err := tree.Update(a, H256{1}); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Update(b, H256{1}); err != nil {
		t.Fatal(err)
	}

	// b sorts after a under compareByteReversed since it differs only in
	// the low byte; feeding them in descending order must be rejected.
	keys := []H256{b, a}
	if compareByteReversed(keys[0], keys[1]) < 0 {
		t.Fatal("test fixture invariant violated: keys[0] should sort after keys[1]")
	}
	_, err := tree.MerkleProof(keys)
	if code, ok := CodeOf(err); !ok || code != CodeInvalidProof {
		t.Fatalf("MerkleProof(unsorted) error = %v, want CodeInvalidProof", err)
	}
}

// Tampering with a single sibling hash byte must flip the reconstructed
// root, so Verify rejects it.
func TestVerifyDetectsTamperedProof(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	r := rand.New(rand.NewSource(99))
	for i := 0; i < 8; i++ {
		if _, err := tree.Update(randomH256(r), randomH256(r)); err != nil {
			t.Fatal(err)
		}
	}
	var key, value H256
	key[0] = 0xFE
	value[0] = 0xED
	root, err := tree.Update(key, value)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := tree.MerkleProof([]H256{key})
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Program) == 0 {
		t.Fatal("expected a non-empty program for a non-trivial tree")
	}

	tampered := make([]byte, len(proof.Program))
	copy(tampered, proof.Program)
	// Flip the last byte of the program: a single-leaf program ends with
	// the opSibling for height 255, so that byte lies inside its 32-byte
	// sibling hash.
	tampered[len(tampered)-1] ^= 0xFF

	if err := Verify(hasher, root, proof.Leaves, tampered); err == nil {
		t.Fatal("Verify accepted a tampered proof")
	}
}

func TestVerifyDetectsWrongValue(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	var key, value, wrongValue H256
	key[0] = 1
	value[0] = 1
	wrongValue[0] = 2

	root, err := tree.Update(key, value)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := tree.MerkleProof([]H256{key})
	if err != nil {
		t.Fatal(err)
	}
	badLeaves := []KeyValue{{Key: key, Value: wrongValue}}
	if err := Verify(hasher, root, badLeaves, proof.Program); err == nil {
		t.Fatal("Verify accepted a proof replayed against the wrong value")
	}
}

func TestVerifyRejectsTruncatedProgram(t *testing.T) {
	hasher := NewHasher()
	tree := New(hasher, newTestStore(), Zero)

	var key, value H256
	key[0] = 1
	value[0] = 1
	for i := 0; i < 4; i++ {
		r := rand.New(rand.NewSource(int64(i + 1)))
		if _, err := tree.Update(randomH256(r), randomH256(r)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := tree.Update(key, value); err != nil {
		t.Fatal(err)
	}

	proof, err := tree.MerkleProof([]H256{key})
	if err != nil {
		t.Fatal(err)
	}
	if len(proof.Program) < 2 {
		t.Fatal("expected a multi-byte program")
	}
	truncated := proof.Program[:len(proof.Program)-2]
	if _, err := Reconstruct(hasher, proof.Leaves, truncated); err == nil {
		t.Fatal("Reconstruct accepted a truncated program")
	}
}

func TestVerifyRejectsUnknownOpcode(t *testing.T) {
	hasher := NewHasher()
	program := []byte{0xFF}
	_, err := Reconstruct(hasher, []KeyValue{{}}, program)
	if code, ok := CodeOf(err); !ok || code != CodeInvalidProof {
		t.Fatalf("error = %v, want CodeInvalidProof", err)
	}
}

func TestVerifyRejectsStackUnderflow(t *testing.T) {
	hasher := NewHasher()
	// opMergeStack with nothing pushed first.
	program := []byte{opMergeStack, 0}
	_, err := Reconstruct(hasher, nil, program)
	if code, ok := CodeOf(err); !ok || code != CodeInvalidStack {
		t.Fatalf("error = %v, want CodeInvalidStack", err)
	}
}
