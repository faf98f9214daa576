package paramo

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when asked to compress zero bytes.
	ErrEmptyInput = errors.New("paramo: empty input")

	// ErrUnknownSymbol is returned when a byte has no code in the table.
	// Tables built from the data being encoded never trigger it.
	ErrUnknownSymbol = errors.New("paramo: unknown symbol")

	// ErrMalformedHeader is returned when the container header cannot be
	// framed or parsed, or carries an unusable frequency table.
	ErrMalformedHeader = errors.New("paramo: malformed header")

	// ErrInvalidPadding is returned when the padding count is not in 0..7.
	ErrInvalidPadding = errors.New("paramo: invalid padding")

	// ErrTruncatedPayload is returned when the payload ends in the middle
	// of a code.
	ErrTruncatedPayload = errors.New("paramo: truncated payload")

	// ErrInvalidCode is returned when the payload contains a bit sequence
	// that no symbol is coded as.
	ErrInvalidCode = errors.New("paramo: invalid code")

	// ErrSymbolCount is returned when the payload decodes to a different
	// number of symbols than the frequency table accounts for.
	ErrSymbolCount = errors.New("paramo: symbol count mismatch")
)
