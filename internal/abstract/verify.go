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

package abstract

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Verify checks the invariants common to every tree variant: parent links
// agree with child links, an in-order walk yields strictly increasing keys
// and Size equals the number of reachable nodes. The check func, if
// non-nil, is run on every node to validate variant-specific state.
func (t *Tree[K, V, A]) Verify(check func(NodeID) error) error {
	if t.Root == Nil {
		if t.Size != 0 {
			return errors.AssertionFailedf("empty tree has size %d", t.Size)
		}
		return nil
	}
	if p := t.N(t.Root).Parent; p != Nil {
		return errors.AssertionFailedf("root %d has parent %d", t.Root, p)
	}
	var count int
	stack := []NodeID{t.Root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		if count > t.Arena.Live() {
			return errors.AssertionFailedf("cycle: visited more nodes than are allocated")
		}
		n := t.N(cur)
		for _, c := range [2]NodeID{n.Left, n.Right} {
			if c == Nil {
				continue
			}
			if p := t.N(c).Parent; p != cur {
				return errors.AssertionFailedf(
					"node %v: child %v has parent link to %d", n.Key, t.N(c).Key, p)
			}
			stack = append(stack, c)
		}
		if check != nil {
			if err := check(cur); err != nil {
				return err
			}
		}
	}
	if count != t.Size {
		return errors.AssertionFailedf("size is %d but %d nodes are reachable", t.Size, count)
	}
	prev := t.Min(t.Root)
	for cur := t.Successor(prev); cur != Nil; prev, cur = cur, t.Successor(cur) {
		if !t.less(t.N(prev).Key, t.N(cur).Key) {
			return errors.AssertionFailedf(
				"keys out of order: %v precedes %v", t.N(prev).Key, t.N(cur).Key)
		}
	}
	return nil
}

// String returns a string description of the tree. The format is
// similar to the https://en.wikipedia.org/wiki/Newick_format.
func (t *Tree[K, V, A]) String() string {
	if t.Root == Nil {
		return ";"
	}
	var b strings.Builder
	t.writeString(&b, t.Root)
	return b.String()
}

func (t *Tree[K, V, A]) writeString(b *strings.Builder, id NodeID) {
	n := t.N(id)
	if n.Left != Nil || n.Right != Nil {
		b.WriteString("(")
		if n.Left != Nil {
			t.writeString(b, n.Left)
		}
		b.WriteString(",")
		if n.Right != Nil {
			t.writeString(b, n.Right)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(b, "%v:%v", n.Key, n.Value)
}
