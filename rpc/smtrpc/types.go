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

// KeyValue is the wire shape of an smt.KeyValue: 32-byte key and value,
// base64-encoded by encoding/json's default []byte handling.
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// UpdateRequest sets Key to Value (Zero deletes it).
type UpdateRequest struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// UpdateResponse carries the tree's new root after the update.
type UpdateResponse struct {
	Root []byte `json:"root"`
}

// GetRequest asks for the value currently stored at Key.
type GetRequest struct {
	Key []byte `json:"key"`
}

// GetResponse carries the value for the requested key, or 32 zero bytes if
// absent.
type GetResponse struct {
	Value []byte `json:"value"`
}

// MerkleProofRequest asks for a compact multi-leaf proof for Keys, which
// must already be sorted ascending and deduplicated (see smt.State).
type MerkleProofRequest struct {
	Keys [][]byte `json:"keys"`
}

// MerkleProofResponse is the compiled proof: the ordered leaves it was
// built for, plus the opcode byte program that reconstructs a root from
// them.
type MerkleProofResponse struct {
	Leaves  []KeyValue `json:"leaves"`
	Program []byte     `json:"program"`
}

// VerifyRequest asks the server to replay Program against Leaves and
// report whether the reconstructed root equals Root. The proof program
// bytes are carried opaquely -- this RPC layer never interprets them
// beyond handing them to smt.Verify.
type VerifyRequest struct {
	Root    []byte     `json:"root"`
	Leaves  []KeyValue `json:"leaves"`
	Program []byte     `json:"program"`
}

// VerifyResponse reports whether the proof in the request was valid. A
// verification failure is reported here, not as a gRPC error status, so
// that "proof doesn't check out" and "server had a problem" stay distinct.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
