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
	"math/rand"
	"testing"

	"github.com/ajwerner/ordtree"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/btree"
)

func TestNth(t *testing.T) {
	m := newIntMap()
	for _, k := range []int{2, 3, 5, 4} {
		_, _, err := m.Insert(k, k)
		require.NoError(t, err)
	}
	it := m.Nth(2)
	require.Equal(t, 4, it.Key())
	it.Next()
	require.Equal(t, 5, it.Key())
	it = m.Nth(0)
	require.Equal(t, 2, it.Key())
	it.Prev()
	require.False(t, it.Valid())

	it = m.Nth(4)
	require.False(t, it.Valid())
	it = m.Nth(-1)
	require.False(t, it.Valid())

	require.Equal(t, 0, m.Rank(1))
	require.Equal(t, 0, m.Rank(2))
	require.Equal(t, 2, m.Rank(4))
	require.Equal(t, 4, m.Rank(6))
}

func TestOrderStatRandom(t *testing.T) {
	t.Parallel()
	const maxN = 1000
	N := rand.Intn(maxN)
	m := New[int, struct{}](ordtree.LessOf[int](), nil)
	oracle := btree.NewMap[int, struct{}](0)
	for _, k := range rand.Perm(N) {
		_, _, err := m.Insert(k*2, struct{}{})
		require.NoError(t, err)
		oracle.Set(k*2, struct{}{})
	}
	retainAll := rand.Float64() < .25
	for _, k := range rand.Perm(N) {
		if !retainAll && rand.Float64() < .05 {
			continue
		}
		m.Erase(k * 2)
		oracle.Delete(k * 2)
	}
	require.NoError(t, m.Verify())
	require.Equal(t, oracle.Len(), m.Len())
	t.Logf("retained %d/%d", m.Len(), N)

	for _, i := range rand.Perm(m.Len()) {
		exp, _, ok := oracle.GetAt(i)
		require.True(t, ok)
		it := m.Nth(i)
		require.Equal(t, exp, it.Key())
		require.Equal(t, i, m.Rank(exp))
		// Odd keys are absent; their rank is the rank of the next key.
		require.Equal(t, i, m.Rank(exp-1))
	}
}
