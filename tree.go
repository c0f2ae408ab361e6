package huff

import "container/heap"

// maxTreeDepth bounds the depth of any tree over 256 symbols.
const maxTreeDepth = 255

// Node is a Huffman tree node. A node with nil children is a leaf carrying
// Symbol; otherwise both children are set and Weight is the sum of theirs.
// Trees are never mutated after construction.
type Node struct {
	Weight uint64
	Symbol byte
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Depth returns the length of the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// Leaves returns the number of leaves under n.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// Equal reports whether a and b have the same shape and the same symbols at
// the same leaves. Weights are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return a.Symbol == b.Symbol
	}
	return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}

// BuildTree builds the Huffman tree for ft.
//
// The two lightest nodes are merged repeatedly, the first popped becoming the
// left child. Equal weights pop in insertion order: leaves are inserted in
// ascending symbol order and every merged node after all earlier ones, so the
// result depends only on the counts.
//
// A single distinct symbol yields a lone leaf; an empty table yields nil.
func BuildTree(ft *FrequencyTable) *Node {
	h := newNodeHeap(ft)
	if h.Len() == 0 {
		return nil
	}
	seq := h.Len()
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeItem)
		b := heap.Pop(&h).(nodeItem)
		heap.Push(&h, nodeItem{
			node: &Node{
				Weight: a.node.Weight + b.node.Weight,
				Left:   a.node,
				Right:  b.node,
			},
			seq: seq,
		})
		seq++
	}
	return heap.Pop(&h).(nodeItem).node
}

// Priority queue of tree nodes used during construction.

type nodeItem struct {
	node *Node
	seq  int
}

type nodeHeap []nodeItem

func newNodeHeap(ft *FrequencyTable) nodeHeap {
	h := make(nodeHeap, 0, 256)
	for _, sym := range ft.Symbols() {
		h = append(h, nodeItem{
			node: &Node{Weight: ft.Count(sym), Symbol: sym},
			seq:  len(h),
		})
	}
	heap.Init(&h)
	return h
}

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Weight != h[j].node.Weight {
		return h[i].node.Weight < h[j].node.Weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(nodeItem))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
