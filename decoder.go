package paramo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Decoder unpacks bit streams produced by an Encoder built from the same
// frequency table.
type Decoder struct {
	table FrequencyTable
	tree  *Tree
	total uint64
}

// NewDecoder rebuilds the Huffman tree for a frequency table.
//
// The table is typically read from an untrusted container header, so it is
// validated first and rejected with ErrMalformedHeader if unusable.
func NewDecoder(table FrequencyTable) (*Decoder, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		table: table,
		tree:  BuildTree(table),
		total: table.Total(),
	}, nil
}

// Decode walks the tree once per payload bit, going left on 0 and right on 1,
// and emits a symbol each time a leaf is reached.  The padding bits of the
// final byte are never walked.
//
// The walk must end exactly at the root, and must produce exactly as many
// symbols as the frequency table counts.
func (d *Decoder) Decode(p EncodedPayload) ([]byte, error) {
	if p.Padding > 7 {
		return nil, fmt.Errorf("%w: got %d, max 7", ErrInvalidPadding, p.Padding)
	}
	if len(p.Data) == 0 && p.Padding != 0 {
		return nil, fmt.Errorf("%w: got %d with an empty payload", ErrInvalidPadding, p.Padding)
	}

	numBits := p.NumBits()

	// Every symbol takes at least one bit, so numBits bounds the output
	// regardless of what the table claims.
	capacity := d.total
	if capacity > numBits {
		capacity = numBits
	}
	out := make([]byte, 0, capacity)

	r := bitio.NewReader(bytes.NewReader(p.Data))
	root := d.tree.Root()
	current := root
	for pos := uint64(0); pos < numBits; pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, err
		}

		node := d.tree.Node(current)
		if node.IsLeaf() {
			// Single-leaf tree: its symbol is coded as a lone 0 bit.
			if bit {
				return nil, fmt.Errorf("%w: bit 1 at position %d, only \"0\" is coded", ErrInvalidCode, pos)
			}
			out = append(out, byte(node.Symbol))
			continue
		}

		if bit {
			current = node.Right
		} else {
			current = node.Left
		}

		if next := d.tree.Node(current); next.IsLeaf() {
			out = append(out, byte(next.Symbol))
			current = root
		}
	}

	if current != root {
		return nil, fmt.Errorf("%w: payload ends inside a code after %d bits", ErrTruncatedPayload, numBits)
	}
	if uint64(len(out)) != d.total {
		return nil, fmt.Errorf("%w: decoded %d symbols, header accounts for %d", ErrSymbolCount, len(out), d.total)
	}
	return out, nil
}

// Table returns the frequency table this Decoder was built from.
func (d *Decoder) Table() FrequencyTable {
	return d.table
}

// Tree returns the rebuilt Huffman tree.
func (d *Decoder) Tree() *Tree {
	return d.tree
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", d.total)
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", d.tree.NumLeaves())
	buf.WriteString("}\n")
	n, err := buf.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := d.tree.Dump(w)
	return n + m, err
}
