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

package cachestore

import (
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis"

	"github.com/google/smt/merkle/smt"
	"github.com/google/smt/storage/memstore"
)

// These tests need a real Redis instance; they're skipped unless one is
// configured via SMT_TEST_REDIS_ADDR.
func newTestClient(t *testing.T) *redis.Client {
	addr := os.Getenv("SMT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SMT_TEST_REDIS_ADDR not set; skipping cachestore integration test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	return client
}

func TestGetBranchFillsCacheOnMiss(t *testing.T) {
	client := newTestClient(t)
	inner := memstore.New()
	s := New(inner, client, time.Minute)

	var node, lhs, rhs smt.H256
	node[0], lhs[0], rhs[0] = 1, 2, 3
	if err := inner.InsertBranch(4, node, smt.Branch{Lhs: lhs, Rhs: rhs}); err != nil {
		t.Fatal(err)
	}

	// First GetBranch misses the cache and fills it from inner.
	got, ok, err := s.GetBranch(4, node)
	if err != nil || !ok || got.Lhs != lhs {
		t.Fatalf("GetBranch (fill) = %+v, %v, %v", got, ok, err)
	}

	raw, err := client.Get(cacheKey(4, node)).Bytes()
	if err != nil || len(raw) != 64 {
		t.Fatalf("expected cache to be filled after miss: %v, len=%d", err, len(raw))
	}
}

func TestRemoveBranchEvictsCache(t *testing.T) {
	client := newTestClient(t)
	inner := memstore.New()
	s := New(inner, client, time.Minute)

	var node, lhs, rhs smt.H256
	node[0], lhs[0], rhs[0] = 9, 2, 3
	if err := s.InsertBranch(1, node, smt.Branch{Lhs: lhs, Rhs: rhs}); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveBranch(1, node); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Get(cacheKey(1, node)).Bytes(); err != redis.Nil {
		t.Fatalf("expected cache entry to be evicted, got err = %v", err)
	}
	if _, ok, _ := inner.GetBranch(1, node); ok {
		t.Fatal("expected inner store entry to be removed too")
	}
}

func TestLeafMethodsPassThrough(t *testing.T) {
	client := newTestClient(t)
	inner := memstore.New()
	s := New(inner, client, time.Minute)

	var key, value smt.H256
	key[0], value[0] = 5, 6
	if err := s.InsertLeaf(key, value); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetLeaf(key)
	if err != nil || !ok || got != value {
		t.Fatalf("GetLeaf = %x, %v, %v", got, ok, err)
	}
}
