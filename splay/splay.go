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

package splay

import "github.com/ajwerner/ordtree/internal/abstract"

// Splay trees keep no per-node state; the shape of the tree alone reflects
// the order of recent accesses.
type aug = struct{}

// splay moves x to the root of the subtree it belongs to by a sequence of
// zig, zig-zig and zig-zag steps, and returns it.
//
// zig-zig (x and its parent are both left children):
//
//         g            x
//        / \          / \
//       p   d        a   p
//      / \     =>       / \
//     x   c            b   g
//    / \                  / \
//   a   b                c   d
//
// zig-zag (x is a right child of a left child):
//
//       g              x
//      / \           /   \
//     p   d         p     g
//    / \      =>   / \   / \
//   a   x         a   b c   d
//      / \
//     b   c
//
func splay[K, V any](t *abstract.Tree[K, V, aug], x abstract.NodeID) abstract.NodeID {
	for {
		p := t.N(x).Parent
		if p == abstract.Nil {
			return x
		}
		pn := t.N(p)
		xLeft := pn.Left == x
		g := pn.Parent
		if g == abstract.Nil {
			// zig
			if xLeft {
				t.RotateRight(p)
			} else {
				t.RotateLeft(p)
			}
			continue
		}
		pLeft := t.N(g).Left == p
		switch {
		case xLeft && pLeft:
			t.RotateRight(g)
			t.RotateRight(p)
		case !xLeft && !pLeft:
			t.RotateLeft(g)
			t.RotateLeft(p)
		case xLeft:
			t.RotateRight(p)
			t.RotateLeft(g)
		default:
			t.RotateLeft(p)
			t.RotateRight(g)
		}
	}
}

// split splays x, which must be reachable from a parentless root, and cuts
// the result into the keys ordered before key and the rest. If key is less
// than x's key, x heads the right part; otherwise x heads the left part.
// Both results are parentless.
func split[K, V any](t *abstract.Tree[K, V, aug], x abstract.NodeID, key K) (l, r abstract.NodeID) {
	x = splay(t, x)
	xn := t.N(x)
	if t.Less(key, xn.Key) {
		l, r = xn.Left, x
		xn.Left = abstract.Nil
		t.SetParent(l, abstract.Nil)
	} else {
		l, r = x, xn.Right
		xn.Right = abstract.Nil
		t.SetParent(r, abstract.Nil)
	}
	t.Arena.Touch()
	return l, r
}

// merge joins two parentless subtrees, every key of a being less than every
// key of b, and returns the root of the result. The maximum of a is splayed
// to the top of a and b becomes its right child.
func merge[K, V any](t *abstract.Tree[K, V, aug], a, b abstract.NodeID) abstract.NodeID {
	if a == abstract.Nil {
		return b
	}
	if b == abstract.Nil {
		return a
	}
	a = splay(t, t.Max(a))
	t.N(a).Right = b
	t.N(b).Parent = a
	t.Arena.Touch()
	return a
}
