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

// Nth returns an Iterator positioned at the entry with the i-th smallest
// key, counting from zero. If i is out of range the end Iterator is
// returned.
func (m *Map[K, V]) Nth(i int) Iterator[K, V] {
	t := &m.t
	if i < 0 || i >= t.Size {
		return m.End()
	}
	id := t.Root
	for {
		n := t.N(id)
		l := augOf(t, n.Left).size
		switch {
		case i < l:
			id = n.Left
		case i > l:
			i -= l + 1
			id = n.Right
		default:
			return Iterator[K, V]{t.IterAt(id)}
		}
	}
}

// Rank returns the number of keys in the Map which are less than key.
func (m *Map[K, V]) Rank(key K) int {
	t := &m.t
	var rank int
	for id := t.Root; id != abstract.Nil; {
		n := t.N(id)
		switch {
		case t.Less(key, n.Key):
			id = n.Left
		case t.Less(n.Key, key):
			rank += augOf(t, n.Left).size + 1
			id = n.Right
		default:
			return rank + augOf(t, n.Left).size
		}
	}
	return rank
}
