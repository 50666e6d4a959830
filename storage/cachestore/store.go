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

// Package cachestore wraps an smt.Store with a Redis read-through cache for
// branch nodes: a cache hit is served directly, a miss falls through to the
// inner store and fills the cache before returning, and writes/removals go
// to both layers. It generalizes the teacher's per-subtree protobuf cache
// (storage/cache's fill-on-miss discipline) down to one branch node per
// cache entry, since this tree has no subtree sharding to batch around.
package cachestore

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"github.com/google/smt/merkle/smt"
)

// Store wraps an inner smt.Store with a Redis cache of branch nodes. Leaf
// pre-images are small and read once per Get, so they aren't cached --
// only branches, which are read repeatedly while walking different keys
// through shared upper levels of the tree.
type Store struct {
	inner  smt.Store
	client *redis.Client
	ttl    time.Duration
}

// New wraps inner with a cache reachable through client. A ttl of zero
// means cache entries never expire on their own (eviction only happens via
// RemoveBranch).
func New(inner smt.Store, client *redis.Client, ttl time.Duration) *Store {
	return &Store{inner: inner, client: client, ttl: ttl}
}

func cacheKey(height uint8, node smt.H256) string {
	return fmt.Sprintf("smt:branch:%d:%x", height, node[:])
}

func (s *Store) GetBranch(height uint8, node smt.H256) (smt.Branch, bool, error) {
	key := cacheKey(height, node)
	raw, err := s.client.Get(key).Bytes()
	if err == nil && len(raw) == 64 {
		var b smt.Branch
		copy(b.Lhs[:], raw[:32])
		copy(b.Rhs[:], raw[32:])
		return b, true, nil
	}
	if err != nil && err != redis.Nil {
		return smt.Branch{}, false, fmt.Errorf("cachestore: redis GET: %w", err)
	}

	b, ok, err := s.inner.GetBranch(height, node)
	if err != nil || !ok {
		return b, ok, err
	}
	if setErr := s.fill(key, b); setErr != nil {
		return b, true, fmt.Errorf("cachestore: fill after store hit: %w", setErr)
	}
	return b, true, nil
}

func (s *Store) fill(key string, b smt.Branch) error {
	buf := make([]byte, 64)
	copy(buf[:32], b.Lhs[:])
	copy(buf[32:], b.Rhs[:])
	return s.client.Set(key, buf, s.ttl).Err()
}

func (s *Store) InsertBranch(height uint8, node smt.H256, children smt.Branch) error {
	if err := s.inner.InsertBranch(height, node, children); err != nil {
		return err
	}
	if err := s.fill(cacheKey(height, node), children); err != nil {
		return fmt.Errorf("cachestore: redis SET: %w", err)
	}
	return nil
}

func (s *Store) RemoveBranch(height uint8, node smt.H256) error {
	if err := s.inner.RemoveBranch(height, node); err != nil {
		return err
	}
	if err := s.client.Del(cacheKey(height, node)).Err(); err != nil {
		return fmt.Errorf("cachestore: redis DEL: %w", err)
	}
	return nil
}

func (s *Store) GetLeaf(key smt.H256) (smt.H256, bool, error) {
	return s.inner.GetLeaf(key)
}

func (s *Store) InsertLeaf(key, value smt.H256) error {
	return s.inner.InsertLeaf(key, value)
}

func (s *Store) RemoveLeaf(key smt.H256) error {
	return s.inner.RemoveLeaf(key)
}

var _ smt.Store = (*Store)(nil)
