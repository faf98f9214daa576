// Package paramo implements a self-describing Huffman file compressor.
//
// Compress counts byte frequencies, builds an optimal prefix-code tree,
// packs the input most-significant-bit first, and frames the result as:
//
//	[4-byte big-endian header length L][L bytes of JSON header][payload]
//
// The header carries the frequency table, the number of filler bits in the
// final payload byte, and optionally the original file extension.  The tree
// itself is never stored: Decompress rebuilds it from the frequency table,
// which is why tree construction breaks ties deterministically.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package paramo
