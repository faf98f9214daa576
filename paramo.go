package paramo

import (
	"bytes"
)

// Compress encodes data into a complete container.  extension is stored in
// the header as-is and may be empty; one that Header.Validate rejects fails
// with ErrMalformedHeader.
//
// Nothing is returned unless every step succeeds.
func Compress(data []byte, extension string) ([]byte, error) {
	out, _, err := compress(data, extension)
	return out, err
}

// Decompress decodes a complete container, returning the original bytes and
// the header they were stored with.
func Decompress(stream []byte) ([]byte, Header, error) {
	h, payload, err := ReadContainer(stream)
	if err != nil {
		return nil, Header{}, err
	}

	d, err := NewDecoder(h.Frequencies)
	if err != nil {
		return nil, Header{}, err
	}

	data, err := d.Decode(EncodedPayload{Data: payload, Padding: uint8(h.Padding)})
	if err != nil {
		return nil, Header{}, err
	}
	return data, h, nil
}

// Stats summarizes one compression.
type Stats struct {
	InputSize      int
	NumSymbols     int
	MinCodeSize    byte
	MaxCodeSize    byte
	PayloadBits    uint64
	Padding        uint8
	HeaderSize     int
	CompressedSize int
}

// Ratio returns InputSize / CompressedSize.
func (s Stats) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.InputSize) / float64(s.CompressedSize)
}

// Analyze compresses data and reports its Stats.  The compressed container is
// returned as well so that callers need not compress twice.
func Analyze(data []byte, extension string) ([]byte, Stats, error) {
	return compress(data, extension)
}

func compress(data []byte, extension string) ([]byte, Stats, error) {
	table, err := CountFrequencies(data)
	if err != nil {
		return nil, Stats{}, err
	}

	e, err := NewEncoder(table)
	if err != nil {
		return nil, Stats{}, err
	}

	payload, err := e.Encode(data)
	if err != nil {
		return nil, Stats{}, err
	}

	h := Header{
		Frequencies: table,
		Padding:     int(payload.Padding),
		Extension:   extension,
	}

	var buf bytes.Buffer
	n, err := WriteContainer(&buf, h, payload.Data)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		InputSize:      len(data),
		NumSymbols:     len(table),
		MinCodeSize:    e.Codes().MinSize(),
		MaxCodeSize:    e.Codes().MaxSize(),
		PayloadBits:    payload.NumBits(),
		Padding:        payload.Padding,
		HeaderSize:     int(n) - lengthPrefixSize - len(payload.Data),
		CompressedSize: int(n),
	}
	return buf.Bytes(), stats, nil
}
