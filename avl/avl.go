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

// Package avl implements an ordered map as an AVL tree: a binary search tree
// in which the heights of the two subtrees of every node differ by at most
// one. Lookups, insertions and removals take O(log n) time in the worst
// case.
//
// Each node additionally records the size of its subtree, which makes
// positional access (Nth) and Rank logarithmic as well.
package avl

import (
	"github.com/ajwerner/ordtree"
	"github.com/ajwerner/ordtree/internal/abstract"
	"github.com/cockroachdb/errors"
)

// Map is an ordered map from K to V with unique keys.
//
// A Map is not safe for concurrent use.
type Map[K, V any] struct {
	t abstract.Tree[K, V, aug]
}

// New returns an empty Map ordered by less. If less is nil, the comparator
// of desc is used. The Map takes its own reference on desc, which may be
// nil.
func New[K, V any](less ordtree.Less[K], desc *ordtree.Descriptor[K, V]) *Map[K, V] {
	return &Map[K, V]{t: abstract.MakeTree[K, V, aug](less, desc, updater[K, V]{})}
}

// NewFromPairs returns a Map populated by inserting pairs in order. Later
// duplicates of a key are ignored. If an insertion fails, the Map built so
// far is returned along with the error; it must still be closed.
func NewFromPairs[K, V any](
	less ordtree.Less[K], desc *ordtree.Descriptor[K, V], pairs []ordtree.Pair[K, V],
) (*Map[K, V], error) {
	m := New(less, desc)
	for i, p := range pairs {
		if _, _, err := m.Insert(p.Key, p.Value); err != nil {
			return m, errors.Wrapf(err, "inserting pair %d", i)
		}
	}
	return m, nil
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Size }

// Empty returns true if the Map has no entries.
func (m *Map[K, V]) Empty() bool { return m.t.Size == 0 }

// Height returns the height of the tree; zero when empty.
func (m *Map[K, V]) Height() int {
	if m.t.Root == abstract.Nil {
		return 0
	}
	return int(m.t.N(m.t.Root).Aug.height)
}

// Descriptor returns the Map's descriptor. Callers which want to construct
// another Map sharing it should pass it to New; the new Map takes its own
// reference.
func (m *Map[K, V]) Descriptor() *ordtree.Descriptor[K, V] { return m.t.Descriptor() }

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (v V, ok bool) {
	if id := m.t.Find(key); id != abstract.Nil {
		return m.t.N(id).Value, true
	}
	return v, false
}

// Lookup is like Get but reports a missing key as ErrNotFound.
func (m *Map[K, V]) Lookup(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.Wrapf(ordtree.ErrNotFound, "%v", key)
	}
	return v, nil
}

// Count returns the number of entries with the given key, 0 or 1.
func (m *Map[K, V]) Count(key K) int {
	if m.t.Find(key) != abstract.Nil {
		return 1
	}
	return 0
}

// Contains returns true if key is in the Map.
func (m *Map[K, V]) Contains(key K) bool { return m.Count(key) == 1 }

// Find returns an Iterator positioned at key, or the end Iterator if the
// key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{m.t.IterAt(m.t.Find(key))}
}

// EqualRange returns the range of entries with the given key. Because keys
// are unique the range is either empty, in which case both Iterators are
// at the end, or holds exactly one entry.
func (m *Map[K, V]) EqualRange(key K) (first, last Iterator[K, V]) {
	first = m.Find(key)
	if !first.Valid() {
		return first, first
	}
	last = first
	last.Next()
	return first, last
}

// Insert adds key with value if key is not already present. It returns an
// Iterator positioned at the entry for key and whether an insertion took
// place; an existing value is never overwritten. On error the Map is
// unchanged.
func (m *Map[K, V]) Insert(key K, value V) (_ Iterator[K, V], inserted bool, _ error) {
	return m.insert(key, value, false /* assign */)
}

// InsertOrAssign is like Insert but overwrites the value of an existing
// entry. The stored key is left untouched.
func (m *Map[K, V]) InsertOrAssign(key K, value V) (_ Iterator[K, V], inserted bool, _ error) {
	return m.insert(key, value, true /* assign */)
}

func (m *Map[K, V]) insert(key K, value V, assign bool) (Iterator[K, V], bool, error) {
	t := &m.t
	if t.Root == abstract.Nil {
		id, err := t.Alloc(key, value, leafAug)
		if err != nil {
			return Iterator[K, V]{t.End()}, false, err
		}
		t.Root = id
		t.Size++
		return Iterator[K, V]{t.IterAt(id)}, true, nil
	}
	parent := t.Root
	var left bool
	for {
		n := t.N(parent)
		var next abstract.NodeID
		switch {
		case t.Less(key, n.Key):
			next, left = n.Left, true
		case t.Less(n.Key, key):
			next, left = n.Right, false
		default:
			if assign {
				n.Value = value
			}
			return Iterator[K, V]{t.IterAt(parent)}, false, nil
		}
		if next == abstract.Nil {
			break
		}
		parent = next
	}
	id, err := t.Alloc(key, value, leafAug)
	if err != nil {
		return Iterator[K, V]{t.End()}, false, err
	}
	if p := t.N(parent); left {
		p.Left = id
	} else {
		p.Right = id
	}
	t.N(id).Parent = parent
	t.Root = m.rebalance(parent)
	t.Size++
	return Iterator[K, V]{t.IterAt(id)}, true, nil
}

// rebalance walks from id up to the root, restoring heights, sizes and the
// balance of every node on the way, and returns the root.
func (m *Map[K, V]) rebalance(id abstract.NodeID) abstract.NodeID {
	t := &m.t
	for {
		t.Update(id)
		switch b := balanceOf(t, id); {
		case b == 2:
			if r := t.N(id).Right; balanceOf(t, r) < 0 {
				t.RotateRight(r)
			}
			id = t.RotateLeft(id)
		case b == -2:
			if l := t.N(id).Left; balanceOf(t, l) > 0 {
				t.RotateLeft(l)
			}
			id = t.RotateRight(id)
		}
		p := t.N(id).Parent
		if p == abstract.Nil {
			return id
		}
		id = p
	}
}

// Erase removes key and returns the number of entries removed, 0 or 1.
func (m *Map[K, V]) Erase(key K) int {
	id := m.t.Find(key)
	if id == abstract.Nil {
		return 0
	}
	m.eraseNode(id)
	return 1
}

func (m *Map[K, V]) eraseNode(id abstract.NodeID) {
	t := &m.t
	n := t.N(id)
	// start is the lowest node which lost a descendant.
	var start, repl abstract.NodeID
	if n.Left == abstract.Nil || n.Right == abstract.Nil {
		repl = n.Left
		if repl == abstract.Nil {
			repl = n.Right
		}
		start = n.Parent
	} else {
		repl = t.Min(n.Right)
		rn := t.N(repl)
		start = rn.Parent
		if start == id {
			start = repl
		} else {
			// Splice the successor out, its right child taking its place,
			// then give it the removed node's right subtree.
			t.ReplaceChild(rn.Parent, repl, rn.Right)
			t.SetParent(rn.Right, rn.Parent)
			rn.Right = n.Right
			t.SetParent(rn.Right, repl)
		}
		rn.Left = n.Left
		t.SetParent(rn.Left, repl)
	}
	t.ReplaceChild(n.Parent, id, repl)
	t.SetParent(repl, n.Parent)
	if n.Parent == abstract.Nil {
		t.Root = repl
	}
	t.Release(id)
	t.Size--
	if start != abstract.Nil {
		t.Root = m.rebalance(start)
	}
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() { m.t.Reset() }

// Close removes every entry and drops the Map's reference on its
// descriptor. The Map may still be used afterwards, without a descriptor.
func (m *Map[K, V]) Close() { m.t.Close() }

// Swap exchanges the contents of m and o, including their comparators and
// descriptors. It runs in constant time.
func (m *Map[K, V]) Swap(o *Map[K, V]) { m.t.Swap(&o.t) }

// Begin returns an Iterator positioned at the smallest key.
func (m *Map[K, V]) Begin() Iterator[K, V] { return Iterator[K, V]{m.t.Begin()} }

// End returns an Iterator positioned one past the largest key.
func (m *Map[K, V]) End() Iterator[K, V] { return Iterator[K, V]{m.t.End()} }

// Verify checks the structural invariants of the tree and returns an
// assertion failure describing the first violation found.
func (m *Map[K, V]) Verify() error {
	return m.t.Verify(func(id abstract.NodeID) error { return checkNode(&m.t, id) })
}

// String returns a string description of the tree. The format is
// similar to the https://en.wikipedia.org/wiki/Newick_format.
func (m *Map[K, V]) String() string { return m.t.String() }
