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

// Tree is the state shared by the tree variants: the node storage, the
// root, the number of entries, the comparator and the descriptor.
type Tree[K, V, A any] struct {
	Arena *Arena[K, V, A]
	Root  NodeID
	Size  int

	less ordtree.Less[K]
	desc *ordtree.Descriptor[K, V]
	up   Updater[K, V, A]
}

// MakeTree constructs an empty tree. If less is nil the descriptor's
// comparator is used; it is a programming error for both to be nil. The
// tree takes its own reference on desc.
func MakeTree[K, V, A any](
	less ordtree.Less[K], desc *ordtree.Descriptor[K, V], up Updater[K, V, A],
) Tree[K, V, A] {
	if less == nil {
		less = desc.Less()
	}
	if less == nil {
		panic(errors.AssertionFailedf("ordered map constructed without a comparator"))
	}
	return Tree[K, V, A]{
		Arena: NewArena[K, V, A](desc.MaxNodes()),
		Root:  Nil,
		less:  less,
		desc:  desc.Acquire(),
		up:    up,
	}
}

// Less compares two keys with the tree's comparator.
func (t *Tree[K, V, A]) Less(a, b K) bool { return t.less(a, b) }

// Equal reports whether two keys are equal under the tree's comparator.
func (t *Tree[K, V, A]) Equal(a, b K) bool { return t.less.Equal(a, b) }

// Comparator returns the tree's comparator.
func (t *Tree[K, V, A]) Comparator() ordtree.Less[K] { return t.less }

// Descriptor returns the tree's descriptor, which may be nil.
func (t *Tree[K, V, A]) Descriptor() *ordtree.Descriptor[K, V] { return t.desc }

// N returns the node with the given ID.
func (t *Tree[K, V, A]) N(id NodeID) *Node[K, V, A] { return t.Arena.At(id) }

// Alloc allocates an unlinked node.
func (t *Tree[K, V, A]) Alloc(k K, v V, aug A) (NodeID, error) {
	return t.Arena.Alloc(k, v, aug)
}

// Release frees a node which has already been unlinked, handing its pair
// to the descriptor.
func (t *Tree[K, V, A]) Release(id NodeID) {
	k, v := t.Arena.Free(id)
	t.desc.Dispose(k, v)
}

// ReleaseAll frees every node of the subtree rooted at id.
func (t *Tree[K, V, A]) ReleaseAll(id NodeID) { t.freeAll(id, true /* dispose */) }

// Forget frees every node without handing the pairs to the descriptor and
// leaves the tree empty. It is used when ownership of the pairs has moved
// elsewhere.
func (t *Tree[K, V, A]) Forget() {
	t.freeAll(t.Root, false /* dispose */)
	t.Root = Nil
	t.Size = 0
}

func (t *Tree[K, V, A]) freeAll(id NodeID, dispose bool) {
	if id == Nil {
		return
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.N(cur)
		if n.Left != Nil {
			stack = append(stack, n.Left)
		}
		if n.Right != Nil {
			stack = append(stack, n.Right)
		}
		if dispose {
			t.Release(cur)
		} else {
			t.Arena.Free(cur)
		}
	}
}

// Reset frees every node and leaves the tree empty.
func (t *Tree[K, V, A]) Reset() {
	t.ReleaseAll(t.Root)
	t.Root = Nil
	t.Size = 0
}

// Close resets the tree and drops its reference on the descriptor. The
// tree is left empty and usable, without a descriptor.
func (t *Tree[K, V, A]) Close() {
	t.Reset()
	d := t.desc
	t.desc = nil
	d.Release()
}

// Swap exchanges the contents of two trees in constant time.
func (t *Tree[K, V, A]) Swap(o *Tree[K, V, A]) {
	*t, *o = *o, *t
	t.Arena.Touch()
	o.Arena.Touch()
}

// Sibling returns an empty tree which shares t's arena, comparator and
// descriptor. Nodes may be moved between siblings by relinking.
func (t *Tree[K, V, A]) Sibling() Tree[K, V, A] {
	return Tree[K, V, A]{
		Arena: t.Arena,
		Root:  Nil,
		less:  t.less,
		desc:  t.desc.Acquire(),
		up:    t.up,
	}
}
