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

// Package memstore is an in-process smt.Store backed by plain Go maps. It
// is the default store for tests and small embedders; it keeps nothing on
// disk and is wiped when the process exits.
package memstore

import (
	"sync"

	"github.com/google/smt/merkle/smt"
)

type branchKey struct {
	height uint8
	node   smt.H256
}

// Store is a sync.RWMutex-guarded smt.Store. The zero value is not usable;
// construct with New.
type Store struct {
	mu       sync.RWMutex
	branches map[branchKey]smt.Branch
	leaves   map[smt.H256]smt.H256
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		branches: make(map[branchKey]smt.Branch),
		leaves:   make(map[smt.H256]smt.H256),
	}
}

// Len reports how many branch nodes are currently stored, mostly useful in
// tests asserting that deletions actually happened.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.branches)
}

func (s *Store) GetBranch(height uint8, node smt.H256) (smt.Branch, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.branches[branchKey{height, node}]
	return b, ok, nil
}

func (s *Store) InsertBranch(height uint8, node smt.H256, children smt.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[branchKey{height, node}] = children
	return nil
}

func (s *Store) RemoveBranch(height uint8, node smt.H256) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.branches, branchKey{height, node})
	return nil
}

func (s *Store) GetLeaf(key smt.H256) (smt.H256, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.leaves[key]
	return v, ok, nil
}

func (s *Store) InsertLeaf(key, value smt.H256) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[key] = value
	return nil
}

func (s *Store) RemoveLeaf(key smt.H256) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leaves, key)
	return nil
}

var _ smt.Store = (*Store)(nil)
