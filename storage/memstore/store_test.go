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

package memstore

import (
	"testing"

	"github.com/google/smt/merkle/smt"
)

func TestBranchRoundTrip(t *testing.T) {
	s := New()
	var node, lhs, rhs smt.H256
	node[0] = 1
	lhs[0] = 2
	rhs[0] = 3

	if _, ok, _ := s.GetBranch(7, node); ok {
		t.Fatal("expected miss before insert")
	}
	if err := s.InsertBranch(7, node, smt.Branch{Lhs: lhs, Rhs: rhs}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetBranch(7, node)
	if err != nil || !ok {
		t.Fatalf("GetBranch after insert: got %v, %v, %v", got, ok, err)
	}
	if got.Lhs != lhs || got.Rhs != rhs {
		t.Fatalf("GetBranch = %+v, want {%x %x}", got, lhs, rhs)
	}
	if err := s.RemoveBranch(7, node); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetBranch(7, node); ok {
		t.Fatal("expected miss after remove")
	}
}

func TestBranchHeightIsPartOfTheKey(t *testing.T) {
	s := New()
	var node, a, b smt.H256
	node[0] = 9
	a[0], b[0] = 1, 2
	if err := s.InsertBranch(3, node, smt.Branch{Lhs: a, Rhs: a}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertBranch(4, node, smt.Branch{Lhs: b, Rhs: b}); err != nil {
		t.Fatal(err)
	}
	got3, _, _ := s.GetBranch(3, node)
	got4, _, _ := s.GetBranch(4, node)
	if got3.Lhs == got4.Lhs {
		t.Fatal("entries at different heights for the same node hash collided")
	}
}

func TestLeafRoundTrip(t *testing.T) {
	s := New()
	var key, value smt.H256
	key[0], value[0] = 5, 6

	if _, ok, _ := s.GetLeaf(key); ok {
		t.Fatal("expected miss before insert")
	}
	if err := s.InsertLeaf(key, value); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetLeaf(key)
	if err != nil || !ok || got != value {
		t.Fatalf("GetLeaf = %x, %v, %v, want %x, true, nil", got, ok, err, value)
	}
	if err := s.RemoveLeaf(key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetLeaf(key); ok {
		t.Fatal("expected miss after remove")
	}
}
