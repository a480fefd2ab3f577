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

import "github.com/cockroachdb/errors"

// Iterator is a cursor over a Tree. It records the node it is positioned at
// and the in-order predecessor of that position so that it can step
// backwards from the end of the tree.
//
// The end position has cur == Nil and prev equal to the maximum node. The
// position before the first node has cur == Nil, prev == Nil and rend set.
//
// An Iterator is invalidated by any structural change to its tree other
// than the one which produced it. Using an invalidated Iterator panics.
type Iterator[K, V, A any] struct {
	t     *Tree[K, V, A]
	arena *Arena[K, V, A]
	gen   uint64
	cur   NodeID
	prev  NodeID
	rend  bool
}

func (t *Tree[K, V, A]) makeIter(cur, prev NodeID) Iterator[K, V, A] {
	return Iterator[K, V, A]{
		t:     t,
		arena: t.Arena,
		gen:   t.Arena.Gen(),
		cur:   cur,
		prev:  prev,
	}
}

// IterAt returns an Iterator positioned at id. Passing Nil yields the end
// position.
func (t *Tree[K, V, A]) IterAt(id NodeID) Iterator[K, V, A] {
	if id == Nil {
		return t.End()
	}
	return t.makeIter(id, t.Predecessor(id))
}

// Begin returns an Iterator positioned at the smallest key, or at the end
// if the tree is empty.
func (t *Tree[K, V, A]) Begin() Iterator[K, V, A] {
	if t.Root == Nil {
		return t.End()
	}
	return t.makeIter(t.Min(t.Root), Nil)
}

// End returns the Iterator positioned one past the largest key.
func (t *Tree[K, V, A]) End() Iterator[K, V, A] {
	return t.makeIter(Nil, t.Max(t.Root))
}

func (i *Iterator[K, V, A]) check() {
	if i.t == nil {
		panic(errors.AssertionFailedf("use of zero Iterator"))
	}
	if i.arena != i.t.Arena || i.gen != i.t.Arena.Gen() {
		panic(errors.AssertionFailedf("use of Iterator invalidated by a mutation"))
	}
}

// Valid returns whether the Iterator is positioned at an entry.
func (i *Iterator[K, V, A]) Valid() bool {
	i.check()
	return i.cur != Nil
}

// Next moves to the following entry. Advancing the end position leaves it
// unchanged; advancing the position before the first entry moves to it.
func (i *Iterator[K, V, A]) Next() {
	i.check()
	switch {
	case i.cur != Nil:
		i.prev = i.cur
		i.cur = i.t.Successor(i.cur)
	case i.rend:
		i.rend = false
		i.cur = i.t.Min(i.t.Root)
		i.prev = Nil
		if i.cur == Nil {
			i.prev = i.t.Max(i.t.Root)
		}
	}
}

// Prev moves to the preceding entry. Stepping back from the first entry
// moves to the position before it, where Prev has no further effect.
func (i *Iterator[K, V, A]) Prev() {
	i.check()
	if i.rend {
		return
	}
	if i.prev == Nil {
		i.cur = Nil
		i.rend = true
		return
	}
	i.cur = i.prev
	i.prev = i.t.Predecessor(i.cur)
}

// Node returns the ID of the current node, Nil when not Valid.
func (i *Iterator[K, V, A]) Node() NodeID {
	i.check()
	return i.cur
}

func (i *Iterator[K, V, A]) node() *Node[K, V, A] {
	i.check()
	if i.cur == Nil {
		panic(errors.AssertionFailedf("dereference of an Iterator which is not Valid"))
	}
	return i.t.N(i.cur)
}

// Key returns the key at the current position. It is illegal to call Key
// if the Iterator is not valid.
func (i *Iterator[K, V, A]) Key() K { return i.node().Key }

// Value returns the value at the current position. It is illegal to call
// Value if the Iterator is not valid.
func (i *Iterator[K, V, A]) Value() V { return i.node().Value }

// SetValue replaces the value at the current position. The key is left
// untouched and the Iterator remains valid.
func (i *Iterator[K, V, A]) SetValue(v V) { i.node().Value = v }

// Equal returns whether two Iterators over the same tree are at the same
// position.
func (i *Iterator[K, V, A]) Equal(o *Iterator[K, V, A]) bool {
	return i.t == o.t && i.cur == o.cur && i.rend == o.rend
}
