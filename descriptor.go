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

package ordtree

import "sync/atomic"

// Info describes how a map treats the pairs it stores.
type Info[K, V any] struct {

	// Less is used as the comparator when a map is constructed without
	// one.
	Less Less[K]

	// Release, if set, is called with every pair which leaves the map
	// through Erase, Clear or Close. It is not called for a value which
	// is overwritten by InsertOrAssign.
	Release func(K, V)

	// OnClose, if set, is called once, when the last map holding a
	// reference to the Descriptor built from this Info is closed.
	OnClose func()

	// MaxNodes bounds the number of live nodes in a map's arena. Inserts
	// which would exceed it fail with ErrOutOfMemory. Zero means no
	// bound.
	MaxNodes int
}

// Descriptor is a shared, immutable handle to an Info. Each map constructed
// with a Descriptor holds a reference to it and drops that reference when it
// is closed. The Descriptor is torn down, running Info.OnClose, when the last
// reference is dropped.
type Descriptor[K, V any] struct {
	ref  int32
	info Info[K, V]
}

// NewDescriptor copies info into a new Descriptor. The caller owns the
// single reference to the returned value.
func NewDescriptor[K, V any](info Info[K, V]) *Descriptor[K, V] {
	return &Descriptor[K, V]{ref: 1, info: info}
}

// Acquire takes a new reference to the Descriptor and returns it. It is
// safe to call on a nil Descriptor.
func (d *Descriptor[K, V]) Acquire() *Descriptor[K, V] {
	if d != nil {
		atomic.AddInt32(&d.ref, 1)
	}
	return d
}

// Release drops a reference. When the last one is dropped, OnClose runs.
func (d *Descriptor[K, V]) Release() {
	if d == nil {
		return
	}
	if atomic.AddInt32(&d.ref, -1) > 0 {
		return
	}
	if d.info.OnClose != nil {
		d.info.OnClose()
	}
}

// Refs returns the number of live references.
func (d *Descriptor[K, V]) Refs() int {
	if d == nil {
		return 0
	}
	return int(atomic.LoadInt32(&d.ref))
}

// Less returns the fallback comparator, which may be nil.
func (d *Descriptor[K, V]) Less() Less[K] {
	if d == nil {
		return nil
	}
	return d.info.Less
}

// MaxNodes returns the node limit, zero meaning unbounded.
func (d *Descriptor[K, V]) MaxNodes() int {
	if d == nil {
		return 0
	}
	return d.info.MaxNodes
}

// Dispose hands a pair which is leaving a map to Info.Release.
func (d *Descriptor[K, V]) Dispose(k K, v V) {
	if d != nil && d.info.Release != nil {
		d.info.Release(k, v)
	}
}
