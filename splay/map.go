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

// Package splay implements an ordered map as a splay tree: a self-adjusting
// binary search tree which moves every accessed entry to the root. Operations
// take O(log n) amortized time and repeated access to a small set of keys is
// cheap.
//
// Because lookups restructure the tree, Get, Lookup, Count, Contains and
// Find are mutating operations: they invalidate outstanding Iterators.
package splay

import (
	"github.com/ajwerner/ordtree"
	"github.com/ajwerner/ordtree/internal/abstract"
	"github.com/cockroachdb/errors"
)

// Map is an ordered map from K to V with unique keys.
//
// A Map is not safe for concurrent use, including concurrent reads.
type Map[K, V any] struct {
	t abstract.Tree[K, V, aug]
}

// New returns an empty Map ordered by less. If less is nil, the comparator
// of desc is used. The Map takes its own reference on desc, which may be
// nil.
func New[K, V any](less ordtree.Less[K], desc *ordtree.Descriptor[K, V]) *Map[K, V] {
	return &Map[K, V]{t: abstract.MakeTree[K, V, aug](less, desc, nil)}
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

// Height returns the current height of the tree. It takes linear time.
func (m *Map[K, V]) Height() int { return m.t.Height() }

// Descriptor returns the Map's descriptor.
func (m *Map[K, V]) Descriptor() *ordtree.Descriptor[K, V] { return m.t.Descriptor() }

// Root returns the key at the root of the tree, which is the most recently
// accessed or inserted key.
func (m *Map[K, V]) Root() (k K, ok bool) {
	if m.t.Root == abstract.Nil {
		return k, false
	}
	return m.t.N(m.t.Root).Key, true
}

// access searches for key and splays the node holding it to the root. On a
// miss the last node visited is splayed instead and Nil is returned.
func (m *Map[K, V]) access(key K) abstract.NodeID {
	t := &m.t
	id := t.FindNearest(key)
	if id == abstract.Nil {
		return abstract.Nil
	}
	t.Root = splay(t, id)
	if !t.Equal(t.N(id).Key, key) {
		return abstract.Nil
	}
	return id
}

// Get returns the value stored for key and splays it to the root.
func (m *Map[K, V]) Get(key K) (v V, ok bool) {
	if id := m.access(key); id != abstract.Nil {
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
	if m.access(key) != abstract.Nil {
		return 1
	}
	return 0
}

// Contains returns true if key is in the Map.
func (m *Map[K, V]) Contains(key K) bool { return m.Count(key) == 1 }

// Find returns an Iterator positioned at key, or the end Iterator if the
// key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{m.t.IterAt(m.access(key))}
}

// EqualRange returns the range of entries with the given key: either empty,
// with both Iterators at the end, or exactly one entry.
func (m *Map[K, V]) EqualRange(key K) (first, last Iterator[K, V]) {
	first = m.Find(key)
	if !first.Valid() {
		return first, first
	}
	last = first
	last.Next()
	return first, last
}

// Insert adds key with value if key is not already present and makes it
// the root. It returns an Iterator positioned at the entry for key and
// whether an insertion took place; an existing value is never overwritten.
// On error the Map is unchanged.
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
	nearest := t.FindNearest(key)
	if nearest != abstract.Nil {
		if n := t.N(nearest); t.Equal(n.Key, key) {
			if assign {
				n.Value = value
			}
			return Iterator[K, V]{t.IterAt(nearest)}, false, nil
		}
	}
	id, err := t.Alloc(key, value, aug{})
	if err != nil {
		return Iterator[K, V]{t.End()}, false, err
	}
	if nearest != abstract.Nil {
		l, r := split(t, nearest, key)
		n := t.N(id)
		n.Left, n.Right = l, r
		t.SetParent(l, id)
		t.SetParent(r, id)
	}
	t.Root = id
	t.Size++
	return Iterator[K, V]{t.IterAt(id)}, true, nil
}

// Erase removes key and returns the number of entries removed, 0 or 1. A
// miss leaves the tree untouched.
func (m *Map[K, V]) Erase(key K) int {
	t := &m.t
	id := t.Find(key)
	if id == abstract.Nil {
		return 0
	}
	splay(t, id)
	n := t.N(id)
	l, r := n.Left, n.Right
	n.Left, n.Right = abstract.Nil, abstract.Nil
	t.SetParent(l, abstract.Nil)
	t.SetParent(r, abstract.Nil)
	t.Root = merge(t, l, r)
	t.Release(id)
	t.Size--
	return 1
}

// SplitAt moves every entry with a key greater than key into a new Map,
// which is returned. The new Map shares m's node storage, comparator and
// descriptor; it takes its own reference on the descriptor. SplitAt takes
// amortized logarithmic time plus time linear in the size of the returned
// Map.
func (m *Map[K, V]) SplitAt(key K) *Map[K, V] {
	t := &m.t
	o := &Map[K, V]{t: t.Sibling()}
	if t.Root == abstract.Nil {
		return o
	}
	l, r := split(t, t.FindNearest(key), key)
	t.Root, o.t.Root = l, r
	o.t.Size = t.CountNodes(r)
	t.Size -= o.t.Size
	return o
}

// Merge moves every entry of o into m and leaves o empty. Every key in m
// must be less than every key in o; this is not checked. When o shares m's
// node storage, as Maps produced by SplitAt do, the merge takes amortized
// logarithmic time. Otherwise the entries are copied, which fails with
// ErrOutOfMemory, leaving both Maps unchanged, if m cannot hold them.
//
// Entries moved from o are thereafter released through m's descriptor.
func (m *Map[K, V]) Merge(o *Map[K, V]) error {
	if m == o || o.t.Root == abstract.Nil {
		return nil
	}
	t := &m.t
	if o.t.Arena == t.Arena {
		t.Root = merge(t, t.Root, o.t.Root)
		t.Size += o.t.Size
		o.t.Root, o.t.Size = abstract.Nil, 0
		return nil
	}
	if !t.Arena.Fits(o.t.Size) {
		return errors.Wrapf(ordtree.ErrOutOfMemory, "merging %d entries", o.t.Size)
	}
	for id := o.t.Min(o.t.Root); id != abstract.Nil; id = o.t.Successor(id) {
		n := o.t.N(id)
		if _, _, err := m.Insert(n.Key, n.Value); err != nil {
			return errors.NewAssertionErrorWithWrappedErrf(err, "merge failed after capacity check")
		}
	}
	o.t.Forget()
	return nil
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() { m.t.Reset() }

// Close removes every entry and drops the Map's reference on its
// descriptor.
func (m *Map[K, V]) Close() { m.t.Close() }

// Swap exchanges the contents of m and o in constant time.
func (m *Map[K, V]) Swap(o *Map[K, V]) { m.t.Swap(&o.t) }

// Begin returns an Iterator positioned at the smallest key.
func (m *Map[K, V]) Begin() Iterator[K, V] { return Iterator[K, V]{m.t.Begin()} }

// End returns an Iterator positioned one past the largest key.
func (m *Map[K, V]) End() Iterator[K, V] { return Iterator[K, V]{m.t.End()} }

// Verify checks the structural invariants of the tree.
func (m *Map[K, V]) Verify() error { return m.t.Verify(nil) }

func (m *Map[K, V]) String() string { return m.t.String() }
