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
	"sort"
)

type stateEntry struct {
	kv  KeyValue
	seq uint64
}

// State is a fixed-capacity, mutable, ordered overlay of key/value pairs --
// "smt_state" in the proof-compiler literature this package follows. It
// exists to normalize a batch of proposed leaves (dedupe, sort by key)
// before handing them to MerkleProof or to Tree.Update in a loop.
type State struct {
	capacity int
	entries  []stateEntry
	nextSeq  uint64
}

// NewState returns an empty State that holds at most capacity entries
// before falling back to in-place overwrites.
func NewState(capacity int) *State {
	return &State{capacity: capacity, entries: make([]stateEntry, 0, capacity)}
}

// Insert adds or updates key's value. If the buffer has room the pair is
// always appended, even if key is already present (this is what lets
// Fetch's "most recent insert wins" rule, and Normalize's dedupe, mean
// something). Once the buffer is full, Insert looks for an existing entry
// for key and overwrites it in place; if none is found it fails with
// CodeInsufficientCapacity.
func (s *State) Insert(key, value H256) error {
	if len(s.entries) < s.capacity {
		s.entries = append(s.entries, stateEntry{kv: KeyValue{Key: key, Value: value}, seq: s.nextSeq})
		s.nextSeq++
		return nil
	}
	for i := range s.entries {
		if s.entries[i].kv.Key == key {
			s.entries[i].kv.Value = value
			s.entries[i].seq = s.nextSeq
			s.nextSeq++
			return nil
		}
	}
	return newError(CodeInsufficientCapacity, "State.Insert",
		fmt.Errorf("buffer full at capacity %d", s.capacity))
}

// Fetch returns the most recently inserted value for key, and whether key
// is present at all.
func (s *State) Fetch(key H256) (H256, bool) {
	found := false
	var best stateEntry
	for _, e := range s.entries {
		if e.kv.Key == key && (!found || e.seq > best.seq) {
			best = e
			found = true
		}
	}
	return best.kv.Value, found
}

// Len returns the number of entries currently held (before Normalize's
// dedupe).
func (s *State) Len() int { return len(s.entries) }

// Normalize returns the entries sorted ascending by key -- compared from
// the last byte down to the first, per the tree's bit-255-first path
// order -- deduplicated to the most recently inserted value per key. It
// does not mutate s, and calling it twice in a row returns the same
// result both times.
func (s *State) Normalize() []KeyValue {
	sorted := make([]stateEntry, len(s.entries))
	copy(sorted, s.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := compareByteReversed(sorted[i].kv.Key, sorted[j].kv.Key); c != 0 {
			return c < 0
		}
		return sorted[i].seq < sorted[j].seq
	})

	out := make([]KeyValue, 0, len(sorted))
	for i := range sorted {
		if i+1 < len(sorted) && sorted[i+1].kv.Key == sorted[i].kv.Key {
			continue // a later entry in this run is the most recent; skip this one
		}
		out = append(out, sorted[i].kv)
	}
	return out
}
