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

package main

import (
	"github.com/ajwerner/ordtree"
	"github.com/ajwerner/ordtree/avl"
	"github.com/ajwerner/ordtree/splay"
)

// target adapts one of the ordered maps to the operations the workload
// issues.
type target struct {
	name   string
	insert func(k, v int) (bool, error)
	assign func(k, v int) (bool, error)
	erase  func(k int) int
	get    func(k int) (int, bool)
	clear  func()
	len    func() int
	height func() int
	verify func() error
	scan   func(func(k, v int) bool)
	close  func()
}

func newAVLTarget(desc *ordtree.Descriptor[int, int]) *target {
	m := avl.New[int, int](ordtree.LessOf[int](), desc)
	return &target{
		name: "avl",
		insert: func(k, v int) (bool, error) {
			_, ok, err := m.Insert(k, v)
			return ok, err
		},
		assign: func(k, v int) (bool, error) {
			_, ok, err := m.InsertOrAssign(k, v)
			return ok, err
		},
		erase:  m.Erase,
		get:    m.Get,
		clear:  m.Clear,
		len:    m.Len,
		height: m.Height,
		verify: m.Verify,
		scan: func(f func(k, v int) bool) {
			for it := m.Begin(); it.Valid(); it.Next() {
				if !f(it.Key(), it.Value()) {
					return
				}
			}
		},
		close: m.Close,
	}
}

func newSplayTarget(desc *ordtree.Descriptor[int, int]) *target {
	m := splay.New[int, int](ordtree.LessOf[int](), desc)
	return &target{
		name: "splay",
		insert: func(k, v int) (bool, error) {
			_, ok, err := m.Insert(k, v)
			return ok, err
		},
		assign: func(k, v int) (bool, error) {
			_, ok, err := m.InsertOrAssign(k, v)
			return ok, err
		},
		erase:  m.Erase,
		get:    m.Get,
		clear:  m.Clear,
		len:    m.Len,
		height: m.Height,
		verify: m.Verify,
		scan: func(f func(k, v int) bool) {
			for it := m.Begin(); it.Valid(); it.Next() {
				if !f(it.Key(), it.Value()) {
					return
				}
			}
		},
		close: m.Close,
	}
}
