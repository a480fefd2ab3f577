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
	"github.com/ajwerner/ordtree/internal/abstract"
	"github.com/cockroachdb/errors"
)

// aug is the per-node state of the AVL tree.
type aug struct {
	// height is the number of nodes on the longest path from this node down
	// to a leaf; a leaf has height 1 and the absent node height 0.
	height int32
	// size is the number of entries in the subtree rooted at this node.
	size int
}

var leafAug = aug{height: 1, size: 1}

type updater[K, V any] struct{}

// Update recomputes the height and size of a node from its children.
func (updater[K, V]) Update(t *abstract.Tree[K, V, aug], id abstract.NodeID) {
	n := t.N(id)
	l, r := augOf(t, n.Left), augOf(t, n.Right)
	n.Aug.height = 1 + max(l.height, r.height)
	n.Aug.size = 1 + l.size + r.size
}

func augOf[K, V any](t *abstract.Tree[K, V, aug], id abstract.NodeID) aug {
	if id == abstract.Nil {
		return aug{}
	}
	return t.N(id).Aug
}

// balanceOf returns height(right) - height(left).
func balanceOf[K, V any](t *abstract.Tree[K, V, aug], id abstract.NodeID) int32 {
	n := t.N(id)
	return augOf(t, n.Right).height - augOf(t, n.Left).height
}

// checkNode validates the stored height, size and balance of a node.
func checkNode[K, V any](t *abstract.Tree[K, V, aug], id abstract.NodeID) error {
	n := t.N(id)
	l, r := augOf(t, n.Left), augOf(t, n.Right)
	if h := 1 + max(l.height, r.height); n.Aug.height != h {
		return errors.AssertionFailedf("node %v: height is %d, expected %d", n.Key, n.Aug.height, h)
	}
	if s := 1 + l.size + r.size; n.Aug.size != s {
		return errors.AssertionFailedf("node %v: size is %d, expected %d", n.Key, n.Aug.size, s)
	}
	if d := r.height - l.height; d > 1 || d < -1 {
		return errors.AssertionFailedf("node %v: unbalanced by %d", n.Key, d)
	}
	return nil
}
