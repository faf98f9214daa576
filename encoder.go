package paramo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// EncodedPayload is a packed bit stream.  Padding counts the zero filler bits
// in the low end of the final byte of Data.
type EncodedPayload struct {
	Data    []byte
	Padding uint8
}

// NumBits returns the number of meaningful bits in the payload.
func (p EncodedPayload) NumBits() uint64 {
	if len(p.Data) == 0 {
		return 0
	}
	return 8*uint64(len(p.Data)) - uint64(p.Padding)
}

// Encoder packs bytes using the Huffman code of a frequency table.
type Encoder struct {
	table FrequencyTable
	tree  *Tree
	codes *CodeTable
}

// NewEncoder builds the tree and code table for a frequency table.
func NewEncoder(table FrequencyTable) (*Encoder, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	tree := BuildTree(table)
	return &Encoder{
		table: table,
		tree:  tree,
		codes: BuildCodeTable(tree),
	}, nil
}

// Encode packs data into a bit stream, most significant bit first.  The final
// byte is zero-filled and the number of filler bits is reported as Padding.
//
// Every byte of data must have a code.  This always holds when the
// Encoder's table was computed by CountFrequencies over the same data.
func (e *Encoder) Encode(data []byte) (EncodedPayload, error) {
	var buf bytes.Buffer
	buf.Grow(int(e.estimateSize(data)))

	w := bitio.NewWriter(&buf)
	for index, b := range data {
		hc, found := e.codes.Lookup(Symbol(b))
		if !found {
			return EncodedPayload{}, fmt.Errorf("%w: byte %d at offset %d", ErrUnknownSymbol, b, index)
		}
		if err := hc.writeTo(w); err != nil {
			return EncodedPayload{}, err
		}
	}

	padding, err := w.Align()
	if err != nil {
		return EncodedPayload{}, err
	}
	if err := w.Close(); err != nil {
		return EncodedPayload{}, err
	}

	return EncodedPayload{Data: buf.Bytes(), Padding: padding}, nil
}

// estimateSize returns the payload size in bytes when data matches the
// Encoder's table, which is the usual case.
func (e *Encoder) estimateSize(data []byte) uint64 {
	if uint64(len(data)) != e.table.Total() {
		return uint64(len(data))
	}
	return (e.tree.Cost() + 7) / 8
}

// Table returns the frequency table this Encoder was built from.
func (e *Encoder) Table() FrequencyTable {
	return e.table
}

// Tree returns the Huffman tree.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

// Codes returns the code table.
func (e *Encoder) Codes() *CodeTable {
	return e.codes
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", e.codes.Len())
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.codes.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.codes.MaxSize())
	for _, symbol := range e.codes.Symbols() {
		hc, _ := e.codes.Lookup(symbol)
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
