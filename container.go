package paramo

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Container layout:
//
//	hdrLen  = uint32 big-endian
//	header  = hdrLen bytes of JSON (see Header)
//	payload = all remaining bytes

const (
	// lengthPrefixSize is the size of the header length field.
	lengthPrefixSize = 4

	// MaxHeaderSize bounds the header length on both sides: WriteContainer
	// refuses to produce a longer header and ReadContainer refuses to parse
	// one.  A full 256-entry table with 64-bit counts is well under 16 KiB.
	MaxHeaderSize = 1 << 20
)

// WriteContainer writes the length-prefixed header followed by the payload.
func WriteContainer(w io.Writer, h Header, payload []byte) (int64, error) {
	raw, err := MarshalHeader(h)
	if err != nil {
		return 0, err
	}
	if len(raw) > MaxHeaderSize {
		return 0, fmt.Errorf("%w: header length %d exceeds max %d", ErrMalformedHeader, len(raw), MaxHeaderSize)
	}

	var total int64
	var prefix [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(raw)))
	for _, chunk := range [][]byte{prefix[:], raw, payload} {
		n, err := writeBytes(w, chunk)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadContainer splits a container into its validated Header and payload.
// The returned payload aliases stream.
func ReadContainer(stream []byte) (Header, []byte, error) {
	if len(stream) < lengthPrefixSize {
		return Header{}, nil, fmt.Errorf("%w: stream is %d bytes, too short for the length prefix", ErrMalformedHeader, len(stream))
	}

	hdrLen := uint64(binary.BigEndian.Uint32(stream[:lengthPrefixSize]))
	rest := stream[lengthPrefixSize:]
	if hdrLen > MaxHeaderSize {
		return Header{}, nil, fmt.Errorf("%w: header length %d exceeds max %d", ErrMalformedHeader, hdrLen, MaxHeaderSize)
	}
	if hdrLen > uint64(len(rest)) {
		return Header{}, nil, fmt.Errorf("%w: header length %d exceeds remaining %d bytes", ErrMalformedHeader, hdrLen, len(rest))
	}

	h, err := UnmarshalHeader(rest[:hdrLen])
	if err != nil {
		return Header{}, nil, err
	}
	return h, rest[hdrLen:], nil
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}
