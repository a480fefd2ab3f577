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

// Package ordtree contains the pieces shared by the ordered maps in the avl
// and splay subpackages: the comparator contract, the key-value pair used to
// seed a map, the reference-counted Descriptor and the error values returned
// by map operations.
//
// The maps are not safe for concurrent use. Callers which need to share a
// map between goroutines must provide their own locking.
package ordtree

import "golang.org/x/exp/constraints"

// Less is a strict less-than over keys. It must define a total order which
// does not change for the lifetime of the map using it. Two keys are
// considered equal when neither is less than the other.
type Less[K any] func(a, b K) bool

// LessOf returns the natural ordering of an ordered type.
func LessOf[K constraints.Ordered]() Less[K] {
	return func(a, b K) bool { return a < b }
}

// Equal reports whether a and b are equal under less.
func (less Less[K]) Equal(a, b K) bool {
	return !less(a, b) && !less(b, a)
}

// Pair is a key and its value. A slice of pairs is used to populate a map
// at construction time.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// MakePair constructs a Pair.
func MakePair[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}
