package paramo

import (
	"encoding/json"
	"fmt"
)

// FrequencyEntry records how many times a Symbol occurs in the input.
//
// In JSON, a FrequencyEntry is the two-element array [symbol, count].
type FrequencyEntry struct {
	Symbol Symbol
	Count  uint64
}

// FrequencyTable lists every observed Symbol once.  The order of the entries
// is significant: it is the secondary key BuildTree uses to break ties, so a
// table must be persisted and restored verbatim.
type FrequencyTable []FrequencyEntry

// CountFrequencies computes the FrequencyTable of data.  Entries are listed
// in ascending Symbol order.
func CountFrequencies(data []byte) (FrequencyTable, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	var counts [NumSymbols]uint64
	for _, b := range data {
		counts[b]++
	}

	var numUnique int
	for _, count := range counts {
		if count != 0 {
			numUnique++
		}
	}

	table := make(FrequencyTable, 0, numUnique)
	for symbol, count := range counts {
		if count != 0 {
			table = append(table, FrequencyEntry{Symbol(symbol), count})
		}
	}
	return table, nil
}

// Validate checks that the table is usable for building a tree: it must be
// non-empty, every count must be at least 1, and no Symbol may repeat.
func (table FrequencyTable) Validate() error {
	if len(table) == 0 {
		return fmt.Errorf("%w: empty frequency table", ErrMalformedHeader)
	}
	if len(table) > NumSymbols {
		return fmt.Errorf("%w: frequency table has %d entries, max %d", ErrMalformedHeader, len(table), NumSymbols)
	}

	var seen [NumSymbols]bool
	for index, entry := range table {
		if entry.Count == 0 {
			return fmt.Errorf("%w: entry %d (symbol %d) has a zero count", ErrMalformedHeader, index, entry.Symbol)
		}
		if seen[entry.Symbol] {
			return fmt.Errorf("%w: entry %d repeats symbol %d", ErrMalformedHeader, index, entry.Symbol)
		}
		seen[entry.Symbol] = true
	}
	return nil
}

// Total returns the sum of all counts, i.e. the length of the original
// input.  The sum saturates at math.MaxUint64.
func (table FrequencyTable) Total() uint64 {
	var total uint64
	for _, entry := range table {
		total = addSaturating(total, entry.Count)
	}
	return total
}

// MarshalJSON fulfills json.Marshaler.
func (entry FrequencyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint64{uint64(entry.Symbol), entry.Count})
}

// UnmarshalJSON fulfills json.Unmarshaler.
func (entry *FrequencyEntry) UnmarshalJSON(raw []byte) error {
	var pair []uint64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("frequency entry must have 2 elements, got %d", len(pair))
	}
	if pair[0] >= NumSymbols {
		return fmt.Errorf("frequency entry symbol %d out of range", pair[0])
	}
	*entry = FrequencyEntry{Symbol(pair[0]), pair[1]}
	return nil
}

var (
	_ json.Marshaler   = FrequencyEntry{}
	_ json.Unmarshaler = (*FrequencyEntry)(nil)
)
