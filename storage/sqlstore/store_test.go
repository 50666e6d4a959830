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

package sqlstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/smt/merkle/smt"
)

// These tests need a real MySQL instance; they're skipped unless one is
// configured via SMT_TEST_MYSQL_DSN, the same way trillian's integration
// tests are gated behind an external database rather than faked out.
func testDSN(t *testing.T) string {
	dsn := os.Getenv("SMT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("SMT_TEST_MYSQL_DSN not set; skipping sqlstore integration test")
	}
	return dsn
}

func TestBranchRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, testDSN(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	var node, lhs, rhs smt.H256
	node[0], lhs[0], rhs[0] = 1, 2, 3
	if err := s.InsertBranch(9, node, smt.Branch{Lhs: lhs, Rhs: rhs}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetBranch(9, node)
	if err != nil || !ok || got.Lhs != lhs || got.Rhs != rhs {
		t.Fatalf("GetBranch = %+v, %v, %v", got, ok, err)
	}
	if err := s.RemoveBranch(9, node); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetBranch(9, node); ok {
		t.Fatal("expected miss after RemoveBranch")
	}
}

func TestLeafRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, testDSN(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatal(err)
	}

	var key, value smt.H256
	key[0], value[0] = 5, 6
	if err := s.InsertLeaf(key, value); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetLeaf(key)
	if err != nil || !ok || got != value {
		t.Fatalf("GetLeaf = %x, %v, %v", got, ok, err)
	}
	if err := s.RemoveLeaf(key); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetLeaf(key); ok {
		t.Fatal("expected miss after RemoveLeaf")
	}
}
