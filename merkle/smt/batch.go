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
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds how many goroutines BatchGet runs at once, so a
// caller asking for ten thousand keys doesn't open ten thousand concurrent
// Store calls.
const maxConcurrentReads = 32

// BatchGet fetches every key in keys against tree concurrently and returns
// the results keyed by H256. It's only safe to call against an immutable
// snapshot -- a tree (and its Store) that no concurrent Update is
// mutating; the package provides no internal synchronization to enforce
// this (see package doc on concurrency).
func BatchGet(ctx context.Context, tree *Tree, keys []H256) (map[H256]H256, error) {
	results := make(map[H256]H256, len(keys))
	var mu sync.Mutex
	sem := make(chan struct{}, maxConcurrentReads)

	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			value, err := tree.GetContext(ctx, key)
			if err != nil {
				return err
			}
			mu.Lock()
			results[key] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
