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

import (
	"testing"

	"github.com/ajwerner/ordtree"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	build := func(keys []int) *Map[int, int] {
		m := New[int, int](ordtree.LessOf[int](), nil)
		for _, k := range keys {
			if _, _, err := m.Insert(k, k); err != nil {
				panic(err)
			}
		}
		return m
	}

	properties.Property("inserts and erases keep the tree ordered and balanced", prop.ForAll(
		func(ins, del []int) bool {
			m := build(ins)
			if m.Verify() != nil {
				return false
			}
			for _, k := range del {
				m.Erase(k)
				if m.Verify() != nil {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 200)),
		gen.SliceOf(gen.IntRange(0, 200)),
	))

	properties.Property("insert never overwrites", prop.ForAll(
		func(keys []int, k, v int) bool {
			m := build(keys)
			before, had := m.Get(k)
			_, inserted, err := m.Insert(k, v)
			after, _ := m.Get(k)
			if err != nil || inserted == had {
				return false
			}
			if had {
				return after == before
			}
			return after == v
		},
		gen.SliceOf(gen.IntRange(0, 50)),
		gen.IntRange(0, 50),
		gen.Int(),
	))

	properties.Property("erase removes exactly the key", prop.ForAll(
		func(keys []int, k int) bool {
			m := build(keys)
			n := m.Len()
			had := m.Contains(k)
			before := m.String()
			removed := m.Erase(k)
			if !had {
				return removed == 0 && m.String() == before && m.Len() == n
			}
			_, ok := m.Get(k)
			return removed == 1 && !ok && m.Len() == n-1
		},
		gen.SliceOf(gen.IntRange(0, 50)),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}
