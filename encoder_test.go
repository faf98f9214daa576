package paramo

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func makeTestTable(counts ...uint64) FrequencyTable {
	table := make(FrequencyTable, len(counts))
	for index, count := range counts {
		table[index] = FrequencyEntry{Symbol(index), count}
	}
	return table
}

func makeTestEncoder(t *testing.T, table FrequencyTable) *Encoder {
	t.Helper()
	e, err := NewEncoder(table)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	return e
}

func TestEncoder(t *testing.T) {
	e := makeTestEncoder(t, makeTestTable(5, 9, 12, 13, 16, 45))

	expectDump := strings.Join([]string{
		"Encoder{\n",
		"\tLen() = 6\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = e.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestEncoder_Encode(t *testing.T) {
	e := makeTestEncoder(t, makeTestTable(5, 9, 12, 13, 16, 45))

	type testRow struct {
		name    string
		input   []byte
		data    []byte
		padding uint8
	}

	testData := [...]testRow{
		{name: "aligned", input: []byte{5, 0, 4}, data: []byte{0x67}, padding: 0},
		{name: "padded", input: []byte{5, 5, 3}, data: []byte{0x28}, padding: 3},
		{name: "two-bytes", input: []byte{0, 1, 2, 3}, data: []byte{0xcd, 0x94}, padding: 2},
		{name: "one-bit", input: []byte{5}, data: []byte{0x00}, padding: 7},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			p, err := e.Encode(row.input)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(row.data, p.Data) {
				t.Errorf("wrong data:\n\texpect: %#v\n\tactual: %#v", row.data, p.Data)
			}
			if row.padding != p.Padding {
				t.Errorf("wrong padding: expect %d, actual %d", row.padding, p.Padding)
			}
		})
	}
}

func TestEncoder_UnknownSymbol(t *testing.T) {
	e := makeTestEncoder(t, makeTestTable(1, 2))

	_, err := e.Encode([]byte{0, 1, 7})
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestEncoder_InvalidTable(t *testing.T) {
	_, err := NewEncoder(nil)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestEncoder_LongCodes(t *testing.T) {
	// Fibonacci counts produce a fully skewed tree.
	const numLeaves = 88
	counts := make([]uint64, numLeaves)
	counts[0], counts[1] = 1, 1
	for i := 2; i < numLeaves; i++ {
		counts[i] = counts[i-1] + counts[i-2]
	}
	e := makeTestEncoder(t, makeTestTable(counts...))

	if actual := e.Codes().MaxSize(); actual != numLeaves-1 {
		t.Errorf("expected MaxSize %d, got %d", numLeaves-1, actual)
	}
	if actual := e.Codes().MinSize(); actual != 1 {
		t.Errorf("expected MinSize 1, got %d", actual)
	}

	hc, _ := e.Codes().Lookup(1)
	if expect := strings.Repeat("1", numLeaves-1); hc.String() != "\""+expect+"\"" {
		t.Errorf("wrong code for symbol 1:\n\texpect: %q\n\tactual: %s", expect, hc)
	}

	p, err := e.Encode([]byte{1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expectData := append(bytes.Repeat([]byte{0xff}, 10), 0xfe)
	if !bytes.Equal(expectData, p.Data) {
		t.Errorf("wrong data:\n\texpect: %#v\n\tactual: %#v", expectData, p.Data)
	}
	if p.Padding != 1 {
		t.Errorf("wrong padding: expect 1, actual %d", p.Padding)
	}
}
