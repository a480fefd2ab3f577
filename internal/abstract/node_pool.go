// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package abstract

import (
	"github.com/ajwerner/ordtree"
	"github.com/cockroachdb/errors"
)

// Arena owns the storage for the nodes of one or more trees. Nodes are
// addressed by index so that restructuring only rewrites integer links.
// Freed slots are kept on a free list and reused by later allocations.
//
// Pointers returned by At are invalidated by Alloc, which may grow the
// backing slice. Code which allocates must re-fetch nodes afterwards.
type Arena[K, V, A any] struct {
	nodes []Node[K, V, A]
	free  []NodeID
	live  int
	max   int
	gen   uint64
}

// NewArena constructs an Arena which refuses to hold more than max live
// nodes. A max of zero means unbounded.
func NewArena[K, V, A any](max int) *Arena[K, V, A] {
	return &Arena[K, V, A]{max: max}
}

// Alloc stores a new unlinked node and returns its ID. The only failure is
// ErrOutOfMemory, in which case the arena is unchanged.
func (a *Arena[K, V, A]) Alloc(k K, v V, aug A) (NodeID, error) {
	if a.max > 0 && a.live >= a.max {
		return Nil, errors.Wrapf(ordtree.ErrOutOfMemory, "arena holds %d nodes", a.live)
	}
	n := Node[K, V, A]{Key: k, Value: v, Parent: Nil, Left: Nil, Right: Nil, Aug: aug}
	var id NodeID
	if l := len(a.free); l > 0 {
		id = a.free[l-1]
		a.free = a.free[:l-1]
		a.nodes[id] = n
	} else {
		id = NodeID(len(a.nodes))
		a.nodes = append(a.nodes, n)
	}
	a.live++
	a.gen++
	return id, nil
}

// Free releases a node's slot and returns the pair it held.
func (a *Arena[K, V, A]) Free(id NodeID) (k K, v V) {
	n := &a.nodes[id]
	k, v = n.Key, n.Value
	*n = Node[K, V, A]{Parent: Nil, Left: Nil, Right: Nil}
	a.free = append(a.free, id)
	a.live--
	a.gen++
	return k, v
}

// At returns the node with the given ID. It is illegal to call with Nil.
func (a *Arena[K, V, A]) At(id NodeID) *Node[K, V, A] {
	return &a.nodes[id]
}

// Live returns the number of allocated nodes.
func (a *Arena[K, V, A]) Live() int { return a.live }

// Gen returns the structural generation of the arena. It changes whenever
// a node is allocated, freed or relinked.
func (a *Arena[K, V, A]) Gen() uint64 { return a.gen }

// Touch records a structural change.
func (a *Arena[K, V, A]) Touch() { a.gen++ }

// Fits returns whether n more nodes can be allocated.
func (a *Arena[K, V, A]) Fits(n int) bool {
	return a.max == 0 || a.live+n <= a.max
}
