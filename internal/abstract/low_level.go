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

// Find returns the node holding key, or Nil.
func (t *Tree[K, V, A]) Find(key K) NodeID {
	id, _ := t.search(key)
	return id
}

// FindNearest returns the node holding key if there is one. Otherwise it
// returns the last node visited by the search, which is the in-order
// predecessor or successor of key. It returns Nil only for an empty tree.
func (t *Tree[K, V, A]) FindNearest(key K) NodeID {
	id, last := t.search(key)
	if id != Nil {
		return id
	}
	return last
}

func (t *Tree[K, V, A]) search(key K) (found, last NodeID) {
	last = Nil
	for cur := t.Root; cur != Nil; {
		last = cur
		n := t.N(cur)
		switch {
		case t.less(key, n.Key):
			cur = n.Left
		case t.less(n.Key, key):
			cur = n.Right
		default:
			return cur, last
		}
	}
	return Nil, last
}

// Min returns the leftmost node of the subtree rooted at id.
func (t *Tree[K, V, A]) Min(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	for l := t.N(id).Left; l != Nil; l = t.N(id).Left {
		id = l
	}
	return id
}

// Max returns the rightmost node of the subtree rooted at id.
func (t *Tree[K, V, A]) Max(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	for r := t.N(id).Right; r != Nil; r = t.N(id).Right {
		id = r
	}
	return id
}

// Successor returns the in-order successor of id, or Nil.
func (t *Tree[K, V, A]) Successor(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	if r := t.N(id).Right; r != Nil {
		return t.Min(r)
	}
	p := t.N(id).Parent
	for p != Nil && t.N(p).Right == id {
		id, p = p, t.N(p).Parent
	}
	return p
}

// Predecessor returns the in-order predecessor of id, or Nil.
func (t *Tree[K, V, A]) Predecessor(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	if l := t.N(id).Left; l != Nil {
		return t.Max(l)
	}
	p := t.N(id).Parent
	for p != Nil && t.N(p).Left == id {
		id, p = p, t.N(p).Parent
	}
	return p
}

// ReplaceChild points whichever child link of parent referred to old at
// repl instead. It does nothing when parent is Nil; callers which replace
// a root must update it themselves.
func (t *Tree[K, V, A]) ReplaceChild(parent, old, repl NodeID) {
	if parent == Nil {
		return
	}
	t.Arena.Touch()
	if p := t.N(parent); p.Left == old {
		p.Left = repl
	} else {
		p.Right = repl
	}
}

// SetParent sets the parent link of id, which may be Nil.
func (t *Tree[K, V, A]) SetParent(id, parent NodeID) {
	if id != Nil {
		t.N(id).Parent = parent
	}
}

// RotateLeft lifts the right child of x into x's position and returns it.
//
//     x               q
//    / \             / \
//   a   q    =>     x   c
//      / \         / \
//     b   c       a   b
//
func (t *Tree[K, V, A]) RotateLeft(x NodeID) NodeID {
	xn := t.N(x)
	q := xn.Right
	qn := t.N(q)
	t.ReplaceChild(xn.Parent, x, q)
	qn.Parent = xn.Parent
	xn.Right = qn.Left
	t.SetParent(xn.Right, x)
	qn.Left = x
	xn.Parent = q
	t.Arena.Touch()
	t.update(x)
	t.update(q)
	return q
}

// RotateRight lifts the left child of x into x's position and returns it.
//
//       x           q
//      / \         / \
//     q   c  =>   a   x
//    / \             / \
//   a   b           b   c
//
func (t *Tree[K, V, A]) RotateRight(x NodeID) NodeID {
	xn := t.N(x)
	q := xn.Left
	qn := t.N(q)
	t.ReplaceChild(xn.Parent, x, q)
	qn.Parent = xn.Parent
	xn.Left = qn.Right
	t.SetParent(xn.Left, x)
	qn.Right = x
	xn.Parent = q
	t.Arena.Touch()
	t.update(x)
	t.update(q)
	return q
}

// Update recomputes the augmentation of id from its children.
func (t *Tree[K, V, A]) Update(id NodeID) { t.update(id) }

func (t *Tree[K, V, A]) update(id NodeID) {
	if t.up != nil {
		t.up.Update(t, id)
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V, A]) Height() int {
	type frame struct {
		id    NodeID
		depth int
	}
	var max int
	if t.Root == Nil {
		return 0
	}
	stack := []frame{{t.Root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > max {
			max = f.depth
		}
		n := t.N(f.id)
		if n.Left != Nil {
			stack = append(stack, frame{n.Left, f.depth + 1})
		}
		if n.Right != Nil {
			stack = append(stack, frame{n.Right, f.depth + 1})
		}
	}
	return max
}

// CountNodes returns the number of nodes in the subtree rooted at id.
func (t *Tree[K, V, A]) CountNodes(id NodeID) int {
	if id == Nil {
		return 0
	}
	var c int
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c++
		n := t.N(cur)
		if n.Left != Nil {
			stack = append(stack, n.Left)
		}
		if n.Right != Nil {
			stack = append(stack, n.Right)
		}
	}
	return c
}
