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

package smtrpc

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/google/smt/merkle/smt"
)

// server implements TreeServer over a single in-process *smt.Tree. The
// tree engine itself has no internal synchronization (see smt's package
// doc), so Update takes mu for writing while Get and MerkleProof take it
// for reading: reads run concurrently with each other but never while an
// Update is changing the tree. Verify does not touch the tree and takes no
// lock.
type server struct {
	mu   sync.RWMutex
	tree *smt.Tree
}

// NewServer returns a TreeServer backed by tree.
func NewServer(tree *smt.Tree) TreeServer {
	return &server{tree: tree}
}

func toH256(b []byte) smt.H256 {
	var h smt.H256
	copy(h[:], b)
	return h
}

func (s *server) Update(ctx context.Context, in *UpdateRequest) (*UpdateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	root, err := s.tree.UpdateContext(ctx, toH256(in.Key), toH256(in.Value))
	if err != nil {
		glog.Errorf("smtrpc: Update(%x): %v", in.Key, err)
		return nil, err
	}
	return &UpdateResponse{Root: root.Bytes()}, nil
}

func (s *server) Get(ctx context.Context, in *GetRequest) (*GetResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, err := s.tree.GetContext(ctx, toH256(in.Key))
	if err != nil {
		glog.Errorf("smtrpc: Get(%x): %v", in.Key, err)
		return nil, err
	}
	return &GetResponse{Value: value.Bytes()}, nil
}

func (s *server) MerkleProof(ctx context.Context, in *MerkleProofRequest) (*MerkleProofResponse, error) {
	keys := make([]smt.H256, len(in.Keys))
	for i, k := range in.Keys {
		keys[i] = toH256(k)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	proof, err := s.tree.MerkleProofContext(ctx, keys)
	if err != nil {
		glog.Errorf("smtrpc: MerkleProof(%d keys): %v", len(keys), err)
		return nil, err
	}
	leaves := make([]KeyValue, len(proof.Leaves))
	for i, kv := range proof.Leaves {
		leaves[i] = KeyValue{Key: kv.Key.Bytes(), Value: kv.Value.Bytes()}
	}
	return &MerkleProofResponse{Leaves: leaves, Program: proof.Program}, nil
}

func (s *server) Verify(ctx context.Context, in *VerifyRequest) (*VerifyResponse, error) {
	leaves := make([]smt.KeyValue, len(in.Leaves))
	for i, kv := range in.Leaves {
		leaves[i] = smt.KeyValue{Key: toH256(kv.Key), Value: toH256(kv.Value)}
	}
	// A fresh Hasher per call: hash.Hash is stateful and concurrent Verify
	// RPCs must not share one, unlike Update which this server already
	// serializes with mu.
	err := smt.VerifyContext(ctx, smt.NewHasher(), toH256(in.Root), leaves, in.Program)
	if err != nil {
		return &VerifyResponse{Valid: false, Error: err.Error()}, nil
	}
	return &VerifyResponse{Valid: true}, nil
}

var _ TreeServer = (*server)(nil)
