// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "container/heap"

const noChild = -1

type node[S comparable] struct {
	sym         S
	cnt         int
	left, right int32 // Child indexes, or noChild for leaves
}

func (n *node[S]) isLeaf() bool { return n.left == noChild }

// Tree is an immutable Huffman tree.
//
// Nodes are stored in an arena; the leaves occupy the first Leaves() slots in
// histogram order and the root is the last node.
type Tree[S comparable] struct {
	nodes  []node[S]
	leaves int
}

// NewTree builds a Huffman tree from the histogram.
//
// The two least frequent nodes are repeatedly merged, with the first one
// popped becoming the left child. Ties are broken by arrival order: leaves
// arrive in histogram order and every merged node arrives after all nodes
// that precede it. A histogram with a single entry yields a single leaf tree.
func NewTree[S comparable](h *Histogram[S]) (*Tree[S], error) {
	if h == nil || h.Len() == 0 {
		return nil, ErrEmptyTrainingSet
	}

	var b treeBuilder[S]
	b.nodes = make([]node[S], 0, 2*h.Len()-1)
	b.queue = make(nodeQueue, 0, h.Len())
	for _, e := range h.entries {
		b.push(node[S]{sym: e.Sym, cnt: e.Cnt, left: noChild, right: noChild})
	}
	heap.Init(&b.queue)
	for b.queue.Len() > 1 {
		l := heap.Pop(&b.queue).(queueItem)
		r := heap.Pop(&b.queue).(queueItem)
		b.push(node[S]{cnt: l.cnt + r.cnt, left: l.idx, right: r.idx})
		heap.Fix(&b.queue, b.queue.Len()-1)
	}
	return &Tree[S]{nodes: b.nodes, leaves: h.Len()}, nil
}

// Leaves reports the number of leaf nodes.
func (t *Tree[S]) Leaves() int { return t.leaves }

// Weight reports the aggregate count held by the root.
func (t *Tree[S]) Weight() int { return t.nodes[t.root()].cnt }

// Depth reports the length of the longest root to leaf path.
func (t *Tree[S]) Depth() int {
	depths := make([]int, len(t.nodes))
	var deepest int
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.isLeaf() {
			deepest = max(deepest, depths[i])
			continue
		}
		depths[n.left] = depths[i] + 1
		depths[n.right] = depths[i] + 1
	}
	return deepest
}

func (t *Tree[S]) root() int32 { return int32(len(t.nodes) - 1) }

// treeBuilder is the mutable phase of tree construction.
// Since every merged node is appended after its children, the arena is
// topologically ordered and the last node is the root.
type treeBuilder[S comparable] struct {
	nodes []node[S]
	queue nodeQueue
}

func (b *treeBuilder[S]) push(n node[S]) {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, n)
	b.queue = append(b.queue, queueItem{cnt: n.cnt, idx: idx})
}

type queueItem struct {
	cnt int
	idx int32 // Arena index, which is also the arrival order
}

// nodeQueue is a min-heap ordered by count and then by arrival order.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].cnt != q[j].cnt {
		return q[i].cnt < q[j].cnt
	}
	return q[i].idx < q[j].idx
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	n := len(*q) - 1
	x := (*q)[n]
	*q = (*q)[:n]
	return x
}
