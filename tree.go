package paramo

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// noChild marks the child links of a leaf Node.
const noChild = -1

// Node is one record of a Tree's arena.  Leaves carry a Symbol; internal
// nodes carry the arena indices of exactly two children.  Every node's
// Weight is the sum of the counts of the leaves below it.
type Node struct {
	Weight uint64
	Symbol Symbol
	Left   int
	Right  int
}

// IsLeaf returns true iff this Node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == noChild
}

// Tree is a Huffman code tree stored as a flat arena of Nodes.
//
// Leaves occupy indices [0, NumLeaves()) in frequency table order, and
// internal nodes follow in the order they were created.  The root is always
// the last node.
type Tree struct {
	nodes     []Node
	numLeaves int
}

// BuildTree constructs the Huffman tree for a frequency table.
//
// Nodes are merged lowest weight first.  Equal weights are ordered by arena
// index: leaves tie-break by their position in the table and come out ahead
// of any merged node, and merged nodes tie-break by creation order.
// The first node extracted becomes the left child.  The same table
// therefore always yields the same tree.
//
// The table must be non-empty; callers holding untrusted tables should call
// Validate first.
func BuildTree(table FrequencyTable) *Tree {
	numLeaves := len(table)
	assert.Assertf(numLeaves > 0, "BuildTree called with an empty frequency table")
	assert.Assertf(numLeaves <= NumSymbols, "numLeaves %d > NumSymbols %d", numLeaves, NumSymbols)

	nodes := make([]Node, 0, 2*numLeaves-1)
	h := nodeHeap{nodes: &nodes, list: make([]int, 0, numLeaves)}
	for _, entry := range table {
		h.list = append(h.list, len(nodes))
		nodes = append(nodes, Node{
			Weight: entry.Count,
			Symbol: entry.Symbol,
			Left:   noChild,
			Right:  noChild,
		})
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int)
		b := heap.Pop(&h).(int)

		merged := len(nodes)
		nodes = append(nodes, Node{
			Weight: addSaturating(nodes[a].Weight, nodes[b].Weight),
			Left:   a,
			Right:  b,
		})
		heap.Push(&h, merged)
	}

	root := heap.Pop(&h).(int)
	assert.Assertf(root == len(nodes)-1, "root %d is not the last node %d", root, len(nodes)-1)
	assert.Assertf(len(nodes) == 2*numLeaves-1, "tree has %d nodes for %d leaves", len(nodes), numLeaves)

	return &Tree{nodes: nodes, numLeaves: numLeaves}
}

// Root returns the arena index of the root node.
func (t *Tree) Root() int {
	return len(t.nodes) - 1
}

// Node returns the node at the given arena index.
func (t *Tree) Node(index int) Node {
	return t.nodes[index]
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the alphabet size.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// Cost returns the weighted path length of the tree: the sum over all
// leaves of weight × depth.  This is the payload size in bits, except for a
// single-leaf tree, whose one symbol is still coded with one bit.
func (t *Tree) Cost() uint64 {
	if t.numLeaves == 1 {
		return t.nodes[0].Weight
	}

	// Every internal node contributes its weight once per level below it,
	// so the sum of internal weights equals the weighted path length.
	var cost uint64
	for _, node := range t.nodes[t.numLeaves:] {
		cost = addSaturating(cost, node.Weight)
	}
	return cost
}

// Dump writes a programmer-readable debugging dump of the Tree's arena to
// the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.Root())
	for index, node := range t.nodes {
		if node.IsLeaf() {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf {symbol %d, weight %d}\n", index, node.Symbol, node.Weight)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {left %d, right %d, weight %d}\n", index, node.Left, node.Right, node.Weight)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

// nodeHeap is a min-heap of arena indices ordered by (Weight, index).
type nodeHeap struct {
	nodes *[]Node
	list  []int
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := (*h.nodes)[a].Weight, (*h.nodes)[b].Weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
