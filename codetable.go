package paramo

import (
	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol of a Tree to its Code.
type CodeTable struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	symbols []Symbol
	minSize byte
	maxSize byte
}

// BuildCodeTable derives the code of every leaf by walking the tree from the
// root, appending a 0 bit for each left edge and a 1 bit for each right edge.
//
// A single-leaf tree has no edges at all, so its lone symbol is assigned the
// one-bit code "0" instead of the empty code.
func BuildCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{symbols: make([]Symbol, 0, t.NumLeaves())}

	root := t.Node(t.Root())
	if root.IsLeaf() {
		ct.add(root.Symbol, Code{}.Append(false))
		return ct
	}

	// The walk uses an explicit stack, so maximally skewed trees (depth up
	// to NumSymbols-1) cost nothing extra.
	//
	// stackItem.x tracks where we are at each internal node:
	//   x=0 → We just arrived at this node for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index int
		code  Code
		x     byte
	}

	stack := make([]stackItem, 0, 2*log2int(t.NumLeaves()))
	stack = append(stack, stackItem{index: t.Root()})

	processChild := func(child int, code Code) {
		node := t.Node(child)
		if node.IsLeaf() {
			ct.add(node.Symbol, code)
			return
		}
		stack = append(stack, stackItem{index: child, code: code})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		node := t.Node(top.index)
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(node.Left, top.code.Append(false))
		case 1:
			processChild(node.Right, top.code.Append(true))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}

	assert.Assertf(len(ct.symbols) == t.NumLeaves(), "code table has %d symbols, tree has %d leaves", len(ct.symbols), t.NumLeaves())
	return ct
}

func (ct *CodeTable) add(symbol Symbol, code Code) {
	assert.Assertf(!ct.present[symbol], "symbol %d appears in more than one leaf", symbol)
	ct.codes[symbol] = code
	ct.present[symbol] = true
	ct.symbols = append(ct.symbols, symbol)
	if len(ct.symbols) == 1 {
		ct.minSize = code.Size
		ct.maxSize = code.Size
	} else if ct.minSize > code.Size {
		ct.minSize = code.Size
	} else if ct.maxSize < code.Size {
		ct.maxSize = code.Size
	}
}

// Lookup returns the Code for a Symbol, and false if the Symbol has none.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	return ct.codes[symbol], ct.present[symbol]
}

// Len returns the number of Symbols with a Code.
func (ct *CodeTable) Len() int {
	return len(ct.symbols)
}

// Symbols returns the coded Symbols in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ct.symbols))
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ct.present[symbol] {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}
