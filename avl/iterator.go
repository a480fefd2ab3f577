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

package avl

import "github.com/ajwerner/ordtree/internal/abstract"

// Iterator is a cursor over a Map. It may be positioned at an entry, one
// past the largest entry (the end), or one before the smallest.
//
// Any insertion or removal performed on the Map, other than the one which
// returned the Iterator, invalidates it; using an invalidated Iterator
// panics.
type Iterator[K, V any] struct {
	it abstract.Iterator[K, V, aug]
}

// Next moves to the following entry.
func (it *Iterator[K, V]) Next() { it.it.Next() }

// Prev moves to the preceding entry. Prev on the end Iterator moves to the
// largest entry.
func (it *Iterator[K, V]) Prev() { it.it.Prev() }

// Valid returns whether the Iterator is positioned at an entry.
func (it *Iterator[K, V]) Valid() bool { return it.it.Valid() }

// Key returns the current key. It is illegal to call if not Valid.
func (it *Iterator[K, V]) Key() K { return it.it.Key() }

// Value returns the current value. It is illegal to call if not Valid.
func (it *Iterator[K, V]) Value() V { return it.it.Value() }

// SetValue overwrites the current value.
func (it *Iterator[K, V]) SetValue(v V) { it.it.SetValue(v) }

// Equal returns whether both Iterators are at the same position.
func (it *Iterator[K, V]) Equal(o Iterator[K, V]) bool { return it.it.Equal(&o.it) }
