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

// NodeID addresses a node within an Arena. IDs are stable for the lifetime
// of the node; once a node is freed its ID may be handed out again.
type NodeID int32

// Nil is the NodeID of the absent node.
const Nil NodeID = -1

// Node is a binary search tree node. Parent is a back-reference used for
// traversal and restructuring; Left and Right are owned by the node.
//
// The augmentation A carries whatever per-node state a tree variant needs
// to maintain its shape invariant.
type Node[K, V, A any] struct {
	Key    K
	Value  V
	Parent NodeID
	Left   NodeID
	Right  NodeID
	Aug    A
}

// Updater recomputes the augmentation of a node from its children. It is
// invoked by the rotation primitives on the two nodes whose subtrees
// changed, lower node first.
type Updater[K, V, A any] interface {
	Update(t *Tree[K, V, A], n NodeID)
}
