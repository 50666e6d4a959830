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

import "fmt"

// maxStackDepth bounds the verifier's stack. A proof produced by
// MerkleProof for n leaves never exceeds this; it suffices for any batch
// up to 2^31 leaves (spec budget).
const maxStackDepth = 32

type stackEntry struct {
	key   H256
	value H256
}

// stackMachine replays a MerkleProof's byte program, reconstructing a root.
type stackMachine struct {
	hasher Hasher
	stack  [maxStackDepth]stackEntry
	depth  int
}

func (m *stackMachine) push(e stackEntry) error {
	if m.depth >= maxStackDepth {
		return newError(CodeInvalidStack, "Verify", fmt.Errorf("stack overflow (depth %d)", maxStackDepth))
	}
	m.stack[m.depth] = e
	m.depth++
	return nil
}

func (m *stackMachine) top() *stackEntry {
	return &m.stack[m.depth-1]
}

// run replays program against leaves and returns the reconstructed root.
func (m *stackMachine) run(program []byte, leaves []KeyValue) (H256, error) {
	if len(leaves) == 0 && len(program) == 0 {
		// The empty tree's proof: no leaves to prove, nothing to replay,
		// root is the empty-tree root by definition.
		return Zero, nil
	}

	pc := 0
	leafIndex := 0

	readByte := func() (byte, error) {
		if pc >= len(program) {
			return 0, newError(CodeInvalidProof, "Verify", fmt.Errorf("truncated program at offset %d", pc))
		}
		b := program[pc]
		pc++
		return b, nil
	}
	readHeight := func() (int, error) {
		b, err := readByte()
		return int(b), err
	}
	readHash := func() (H256, error) {
		if pc+32 > len(program) {
			return Zero, newError(CodeInvalidProof, "Verify", fmt.Errorf("truncated sibling hash at offset %d", pc))
		}
		var h H256
		copy(h[:], program[pc:pc+32])
		pc += 32
		return h, nil
	}

	for pc < len(program) {
		op, err := readByte()
		if err != nil {
			return Zero, err
		}
		switch op {
		case opPushLeaf:
			if leafIndex >= len(leaves) {
				return Zero, newError(CodeInvalidProof, "Verify", fmt.Errorf("push-leaf with no leaves remaining"))
			}
			kv := leaves[leafIndex]
			leafIndex++
			if err := m.push(stackEntry{key: kv.Key, value: LeafHash(m.hasher, kv.Key, kv.Value)}); err != nil {
				return Zero, err
			}

		case opSibling:
			if m.depth < 1 {
				return Zero, newError(CodeInvalidStack, "Verify", fmt.Errorf("sibling-merge on empty stack"))
			}
			height, err := readHeight()
			if err != nil {
				return Zero, err
			}
			sibling, err := readHash()
			if err != nil {
				return Zero, err
			}
			top := m.top()
			if top.key.GetBit(height) == 1 {
				top.value = Merge(m.hasher, sibling, top.value)
			} else {
				top.value = Merge(m.hasher, top.value, sibling)
			}
			top.key = top.key.ParentPath(height)

		case opMergeStack:
			if m.depth < 2 {
				return Zero, newError(CodeInvalidStack, "Verify", fmt.Errorf("stack-merge needs 2 entries, has %d", m.depth))
			}
			height, err := readHeight()
			if err != nil {
				return Zero, err
			}
			a := m.stack[m.depth-2]
			b := m.stack[m.depth-1]

			siblingKeyOfA := a.key.ClearBit(height)
			if a.key.GetBit(height) == 0 {
				siblingKeyOfA = siblingKeyOfA.SetBit(height)
			}
			siblingKeyOfA = siblingKeyOfA.ParentPath(height)
			if siblingKeyOfA != b.key.ParentPath(height) || a.key.GetBit(height) == b.key.GetBit(height) {
				return Zero, newError(CodeInvalidSibling, "Verify",
					fmt.Errorf("stack entries at depth %d/%d are not siblings at height %d", m.depth-2, m.depth-1, height))
			}

			var combined H256
			if a.key.GetBit(height) == 0 {
				combined = Merge(m.hasher, a.value, b.value)
			} else {
				combined = Merge(m.hasher, b.value, a.value)
			}
			m.depth -= 2
			if err := m.push(stackEntry{key: a.key.ParentPath(height), value: combined}); err != nil {
				return Zero, err
			}

		default:
			return Zero, newError(CodeInvalidProof, "Verify", fmt.Errorf("unknown opcode 0x%02x at offset %d", op, pc-1))
		}
	}

	if leafIndex != len(leaves) {
		return Zero, newError(CodeInvalidProof, "Verify",
			fmt.Errorf("program used %d of %d leaves", leafIndex, len(leaves)))
	}
	if m.depth != 1 {
		return Zero, newError(CodeInvalidStack, "Verify", fmt.Errorf("program left stack depth %d, want 1", m.depth))
	}
	return m.stack[0].value, nil
}

// Verify replays proof against leaves and reports whether the reconstructed
// root matches expectedRoot. leaves must be in the same order MerkleProof
// was compiled with.
func Verify(hasher Hasher, expectedRoot H256, leaves []KeyValue, proof []byte) error {
	got, err := Reconstruct(hasher, leaves, proof)
	if err != nil {
		return err
	}
	if got != expectedRoot {
		return newError(CodeInvalidProof, "Verify", fmt.Errorf("reconstructed root %x != expected %x", got, expectedRoot))
	}
	return nil
}

// Reconstruct replays proof against leaves and returns the resulting root
// without comparing it to anything; Verify is Reconstruct plus that
// comparison.
func Reconstruct(hasher Hasher, leaves []KeyValue, proof []byte) (H256, error) {
	m := &stackMachine{hasher: hasher}
	return m.run(proof, leaves)
}
