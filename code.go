package paramo

import (
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// maxCodeSize is the longest possible code: a fully skewed tree over the
// whole byte alphabet.
const maxCodeSize = NumSymbols - 1

const wordBits = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant bit of Bits[0], and bits continue into Bits[1] and so on.
	// Bits past Size are always zero.
	Bits [4]uint64
}

// ParseCode constructs a Code from a string of '0' and '1' characters.
func ParseCode(str string) (Code, error) {
	if len(str) > maxCodeSize {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, maxCodeSize)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, fmt.Errorf("code %q contains %q; want only '0' and '1'", str, ch)
		}
	}
	return hc, nil
}

// Append returns this Code extended by one bit.
func (hc Code) Append(bit bool) Code {
	if bit {
		hc.Bits[hc.Size/wordBits] |= 1 << (wordBits - 1 - hc.Size%wordBits)
	}
	hc.Size++
	return hc
}

// Bit returns the i'th bit of this Code, counting from 0.
func (hc Code) Bit(i int) bool {
	return hc.Bits[i/wordBits]&(1<<(wordBits-1-i%wordBits)) != 0
}

// HasPrefix returns true iff prefix is a prefix of (or equal to) this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := 0; i < int(prefix.Size); i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	var buf strings.Builder
	buf.Grow(int(hc.Size) + 2)
	buf.WriteByte('"')
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// writeTo appends the bits of this Code to w, most significant bit first.
func (hc Code) writeTo(w *bitio.Writer) error {
	remaining := int(hc.Size)
	for _, word := range hc.Bits {
		if remaining <= 0 {
			break
		}
		n := remaining
		if n > wordBits {
			n = wordBits
		}
		if err := w.WriteBits(word>>(wordBits-n), uint8(n)); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

var _ fmt.Stringer = Code{}
