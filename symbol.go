package paramo

// Symbol represents one byte value of the input alphabet.
type Symbol byte

// NumSymbols is the size of the byte alphabet.
const NumSymbols = 256
