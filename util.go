package paramo

import (
	"math"
	mathbits "math/bits"
)

// log2int returns the number of bits needed to represent x, with a floor of
// 1.  It is used to size stacks whose depth is about log2 of the alphabet.
func log2int(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}

// addSaturating returns a+b, or math.MaxUint64 if the sum overflows.
func addSaturating(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
