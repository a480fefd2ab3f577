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
	"math"
	"math/rand"
	"testing"

	"github.com/ajwerner/ordtree"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/btree"
)

func newIntMap() *Map[int, int] {
	return New[int, int](ordtree.LessOf[int](), nil)
}

func collect[K, V any](m *Map[K, V]) (keys []K, values []V) {
	for it := m.Begin(); it.Valid(); it.Next() {
		keys = append(keys, it.Key())
		values = append(values, it.Value())
	}
	return keys, values
}

func collectReverse[K, V any](m *Map[K, V]) (keys []K) {
	it := m.End()
	for it.Prev(); it.Valid(); it.Prev() {
		keys = append(keys, it.Key())
	}
	return keys
}

func TestInsertSequential(t *testing.T) {
	m := newIntMap()
	for i := 1; i <= 7; i++ {
		_, inserted, err := m.Insert(i, i)
		require.NoError(t, err)
		require.True(t, inserted)
		require.NoError(t, m.Verify())
		bound := int(math.Ceil(math.Log2(float64(i + 1))))
		require.LessOrEqual(t, m.Height(), bound, "after inserting %d", i)
	}
	require.Equal(t, "((1:1,3:3)2:2,(5:5,7:7)6:6)4:4", m.String())

	require.Equal(t, 1, m.Erase(4))
	require.NoError(t, m.Verify())
	keys, _ := collect(m)
	require.Equal(t, []int{1, 2, 3, 5, 6, 7}, keys)
	require.Equal(t, "((1:1,3:3)2:2,(,7:7)6:6)5:5", m.String())
	require.Equal(t, 3, m.Height())
}

func TestInsertDoesNotOverwrite(t *testing.T) {
	m := newIntMap()
	_, _, err := m.Insert(1, 10)
	require.NoError(t, err)

	it, inserted, err := m.Insert(1, 20)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, 10, it.Value())
	require.Equal(t, 1, m.Len())

	it, inserted, err = m.InsertOrAssign(1, 30)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, 30, it.Value())

	it, inserted, err = m.InsertOrAssign(2, 40)
	require.NoError(t, err)
	require.True(t, inserted)
	require.Equal(t, 2, it.Key())
	require.Equal(t, 2, m.Len())

	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, 30, v)
}

func TestInsertOrAssignKeepsKey(t *testing.T) {
	type key struct {
		id   int
		name string
	}
	less := func(a, b key) bool { return a.id < b.id }
	m := New[key, int](less, nil)
	_, _, err := m.Insert(key{1, "first"}, 1)
	require.NoError(t, err)
	it, inserted, err := m.InsertOrAssign(key{1, "second"}, 2)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, "first", it.Key().name)
	require.Equal(t, 2, it.Value())
}

func TestGetAndLookup(t *testing.T) {
	m, err := NewFromPairs(ordtree.LessOf[string](), nil, []ordtree.Pair[string, int]{
		{Key: "b", Value: 2}, {Key: "a", Value: 1}, {Key: "c", Value: 3}, {Key: "a", Value: 100},
	})
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	_, ok = m.Get("z")
	require.False(t, ok)

	v, err = m.Lookup("c")
	require.NoError(t, err)
	require.Equal(t, 3, v)
	_, err = m.Lookup("z")
	require.True(t, ordtree.IsNotFound(err))

	require.Equal(t, 1, m.Count("b"))
	require.Equal(t, 0, m.Count("d"))
	require.True(t, m.Contains("b"))
}

func TestFindAndEqualRange(t *testing.T) {
	m := newIntMap()
	for _, k := range []int{10, 20, 30, 40} {
		_, _, err := m.Insert(k, k*10)
		require.NoError(t, err)
	}

	it := m.Find(20)
	require.True(t, it.Valid())
	require.Equal(t, 200, it.Value())
	it.Prev()
	require.Equal(t, 10, it.Key())

	it = m.Find(25)
	end := m.End()
	require.True(t, it.Equal(end))

	first, last := m.EqualRange(30)
	require.Equal(t, 30, first.Key())
	require.Equal(t, 40, last.Key())
	first.Next()
	require.True(t, first.Equal(last))

	first, last = m.EqualRange(40)
	require.Equal(t, 40, first.Key())
	require.True(t, last.Equal(end))

	first, last = m.EqualRange(35)
	require.True(t, first.Equal(end))
	require.True(t, last.Equal(end))
}

func TestIterateBothWays(t *testing.T) {
	m := newIntMap()
	begin := m.Begin()
	require.False(t, begin.Valid())
	perm := rand.Perm(100)
	for _, k := range perm {
		_, _, err := m.Insert(k, -k)
		require.NoError(t, err)
	}
	keys, values := collect(m)
	require.Len(t, keys, 100)
	for i := range keys {
		require.Equal(t, i, keys[i])
		require.Equal(t, -i, values[i])
	}
	rev := collectReverse(m)
	for i := range rev {
		require.Equal(t, 99-i, rev[i])
	}

	it := m.Begin()
	it.SetValue(1000)
	v, _ := m.Get(0)
	require.Equal(t, 1000, v)
}

func TestEraseAbsentLeavesTreeUnchanged(t *testing.T) {
	m := newIntMap()
	for _, k := range []int{5, 3, 8, 1, 4} {
		_, _, err := m.Insert(k, k)
		require.NoError(t, err)
	}
	before := m.String()
	it := m.Begin()
	require.Equal(t, 0, m.Erase(6))
	require.Equal(t, before, m.String())
	require.Equal(t, 5, m.Len())
	// No structural change, so outstanding iterators remain usable.
	require.Equal(t, 1, it.Key())
}

func TestEraseShapes(t *testing.T) {
	for _, tc := range []struct {
		name   string
		insert []int
		erase  int
		exp    string
	}{
		{"only node", []int{1}, 1, ";"},
		{"root with left child", []int{2, 1}, 2, "1:1"},
		{"root with right child", []int{1, 2}, 1, "2:2"},
		{"leaf", []int{2, 1, 3}, 3, "(1:1,)2:2"},
		{"inner with one child", []int{3, 2, 4, 1}, 2, "(1:1,4:4)3:3"},
		{"successor is right child", []int{2, 1, 3, 4}, 2, "(1:1,4:4)3:3"},
		{"successor deeper with right child", []int{4, 2, 7, 1, 3, 5, 8, 6}, 4, "((1:1,3:3)2:2,(6:6,8:8)7:7)5:5"},
		{"rebalance after erase", []int{2, 1, 3, 4}, 1, "(2:2,4:4)3:3"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := newIntMap()
			for _, k := range tc.insert {
				_, _, err := m.Insert(k, k)
				require.NoError(t, err)
			}
			require.Equal(t, 1, m.Erase(tc.erase))
			require.NoError(t, m.Verify())
			require.Equal(t, tc.exp, m.String())
			require.Equal(t, len(tc.insert)-1, m.Len())
			_, ok := m.Get(tc.erase)
			require.False(t, ok)
		})
	}
}

func TestClear(t *testing.T) {
	var released int
	desc := ordtree.NewDescriptor(ordtree.Info[int, int]{
		Release: func(int, int) { released++ },
	})
	defer desc.Release()
	m := New[int, int](ordtree.LessOf[int](), desc)
	for i := 0; i < 10; i++ {
		_, _, err := m.Insert(i, i)
		require.NoError(t, err)
	}
	m.Clear()
	require.Equal(t, 10, released)
	require.True(t, m.Empty())
	require.Equal(t, 0, m.Height())
	require.Equal(t, ";", m.String())
	require.NoError(t, m.Verify())

	_, _, err := m.Insert(1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
	m.Close()
}

func TestSwap(t *testing.T) {
	a := newIntMap()
	b := New[int, int](func(x, y int) bool { return x > y }, nil)
	for i := 0; i < 5; i++ {
		_, _, err := a.Insert(i, i)
		require.NoError(t, err)
	}
	_, _, err := b.Insert(100, 100)
	require.NoError(t, err)
	_, _, err = b.Insert(200, 200)
	require.NoError(t, err)

	it := a.Begin()
	a.Swap(b)
	require.Panics(t, func() { it.Key() })
	require.Equal(t, 2, a.Len())
	require.Equal(t, 5, b.Len())

	// The comparators travel with the contents.
	keys, _ := collect(a)
	require.Equal(t, []int{200, 100}, keys)
	keys, _ = collect(b)
	require.Equal(t, []int{0, 1, 2, 3, 4}, keys)
	_, _, err = a.Insert(150, 150)
	require.NoError(t, err)
	keys, _ = collect(a)
	require.Equal(t, []int{200, 150, 100}, keys)
	require.NoError(t, a.Verify())
	require.NoError(t, b.Verify())
}

func TestSharedDescriptor(t *testing.T) {
	var released, closed int
	desc := ordtree.NewDescriptor(ordtree.Info[int, int]{
		Less:    ordtree.LessOf[int](),
		Release: func(int, int) { released++ },
		OnClose: func() { closed++ },
	})
	a := New[int, int](nil, desc)
	b := New[int, int](nil, a.Descriptor())
	desc.Release()
	require.Equal(t, 2, desc.Refs())

	for i := 0; i < 3; i++ {
		_, _, err := a.Insert(i, i)
		require.NoError(t, err)
		_, _, err = b.Insert(i, i)
		require.NoError(t, err)
	}
	require.Equal(t, 1, a.Erase(1))
	require.Equal(t, 1, released)

	a.Close()
	require.Equal(t, 3, released)
	require.Equal(t, 0, closed)
	b.Close()
	require.Equal(t, 6, released)
	require.Equal(t, 1, closed)
	require.Equal(t, 0, desc.Refs())
}

func TestOutOfMemory(t *testing.T) {
	desc := ordtree.NewDescriptor(ordtree.Info[int, int]{MaxNodes: 3})
	defer desc.Release()

	m, err := NewFromPairs(ordtree.LessOf[int](), desc, []ordtree.Pair[int, int]{
		{Key: 1, Value: 1}, {Key: 2, Value: 2}, {Key: 3, Value: 3}, {Key: 4, Value: 4}, {Key: 5, Value: 5},
	})
	require.True(t, ordtree.IsOutOfMemory(err))
	require.Equal(t, 3, m.Len())
	require.NoError(t, m.Verify())

	before := m.String()
	it, inserted, err := m.InsertOrAssign(0, 0)
	require.True(t, ordtree.IsOutOfMemory(err))
	require.False(t, inserted)
	require.False(t, it.Valid())
	require.Equal(t, before, m.String())

	// Existing keys can still be assigned.
	_, inserted, err = m.InsertOrAssign(2, 20)
	require.NoError(t, err)
	require.False(t, inserted)

	require.Equal(t, 1, m.Erase(1))
	_, inserted, err = m.Insert(0, 0)
	require.NoError(t, err)
	require.True(t, inserted)
	m.Close()
}

func TestNilComparator(t *testing.T) {
	require.Panics(t, func() { New[int, int](nil, nil) })
}

// TestRandomOps compares the Map against a B-tree under a random mix of
// operations, verifying the invariants after each one.
func TestRandomOps(t *testing.T) {
	t.Parallel()
	const (
		numOps  = 5000
		keySpan = 300
	)
	rng := rand.New(rand.NewSource(rand.Int63()))
	m := newIntMap()
	var oracle btree.Map[int, int]
	for i := 0; i < numOps; i++ {
		k, v := rng.Intn(keySpan), rng.Int()
		switch rng.Intn(4) {
		case 0:
			_, had := oracle.Get(k)
			_, inserted, err := m.Insert(k, v)
			require.NoError(t, err)
			require.Equal(t, !had, inserted)
			if !had {
				oracle.Set(k, v)
			}
		case 1:
			_, had := oracle.Set(k, v)
			_, inserted, err := m.InsertOrAssign(k, v)
			require.NoError(t, err)
			require.Equal(t, !had, inserted)
		case 2:
			_, had := oracle.Delete(k)
			exp := 0
			if had {
				exp = 1
			}
			require.Equal(t, exp, m.Erase(k))
		case 3:
			exp, expOK := oracle.Get(k)
			got, ok := m.Get(k)
			require.Equal(t, expOK, ok)
			require.Equal(t, exp, got)
		}
		require.NoError(t, m.Verify())
		require.Equal(t, oracle.Len(), m.Len())
	}
	it := m.Begin()
	oracle.Scan(func(k, v int) bool {
		require.True(t, it.Valid())
		require.Equal(t, k, it.Key())
		require.Equal(t, v, it.Value())
		it.Next()
		return true
	})
	require.False(t, it.Valid())
	bound := 1.45 * math.Log2(float64(m.Len()+2))
	require.LessOrEqual(t, float64(m.Height()), bound)
}
