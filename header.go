package paramo

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Header is the metadata block stored ahead of the payload.  It carries
// everything a decoder needs to rebuild the tree, plus the original file
// extension so a decompressed file can get its suffix back.
type Header struct {
	Frequencies FrequencyTable `json:"frequencies"`
	Padding     int            `json:"padding"`
	Extension   string         `json:"extension,omitempty"`
}

// Validate checks the padding range, the extension and the frequency table.
//
// The extension ends up in a file name, so it must be valid UTF-8 and may not
// contain a path separator, a NUL byte or "..".
func (h Header) Validate() error {
	if h.Padding < 0 || h.Padding > 7 {
		return fmt.Errorf("%w: got %d, want 0..7", ErrInvalidPadding, h.Padding)
	}
	if err := validateExtension(h.Extension); err != nil {
		return err
	}
	return h.Frequencies.Validate()
}

func validateExtension(ext string) error {
	if !utf8.ValidString(ext) {
		return fmt.Errorf("%w: extension %q is not valid UTF-8", ErrMalformedHeader, ext)
	}
	if strings.ContainsAny(ext, "/\\\x00") || strings.Contains(ext, "..") {
		return fmt.Errorf("%w: extension %q is not a plain file suffix", ErrMalformedHeader, ext)
	}
	return nil
}

// MarshalHeader serializes a Header to its JSON wire form.
func MarshalHeader(h Header) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(h)
}

// UnmarshalHeader parses and validates a Header from its JSON wire form.
func UnmarshalHeader(raw []byte) (Header, error) {
	var h Header
	if err := json.Unmarshal(raw, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
