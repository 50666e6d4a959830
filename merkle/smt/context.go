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
	"context"

	"go.opencensus.io/trace"
)

// UpdateContext is Update with an OpenCensus span and Prometheus
// instrumentation wrapped around it, for callers (the RPC service, the
// server binary) that want observability. The tree's own semantics -- a
// pure function of key, value, and store contents -- are unaffected by
// ctx; it carries only cancellation-agnostic tracing metadata, since
// update itself never blocks or suspends.
func (t *Tree) UpdateContext(ctx context.Context, key, value H256) (H256, error) {
	_, done := startSpan(ctx, "Update")
	root, err := t.Update(key, value)
	done(err)
	return root, err
}

// GetContext is Get with tracing/metrics, for the same reason as
// UpdateContext.
func (t *Tree) GetContext(ctx context.Context, key H256) (H256, error) {
	_, done := startSpan(ctx, "Get")
	value, err := t.Get(key)
	done(err)
	return value, err
}

// MerkleProofContext is MerkleProof with tracing/metrics, annotated with
// the batch size.
func (t *Tree) MerkleProofContext(ctx context.Context, keys []H256) (*MerkleProof, error) {
	_, done := startSpan(ctx, "MerkleProof", trace.Int64Attribute("batch_size", int64(len(keys))))
	proof, err := t.MerkleProof(keys)
	done(err)
	return proof, err
}

// VerifyContext is Verify with tracing/metrics.
func VerifyContext(ctx context.Context, hasher Hasher, expectedRoot H256, leaves []KeyValue, proof []byte) error {
	_, done := startSpan(ctx, "Verify", trace.Int64Attribute("leaf_count", int64(len(leaves))))
	err := Verify(hasher, expectedRoot, leaves, proof)
	done(err)
	return err
}
