package paramo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func frame(header string, payload ...byte) []byte {
	out := make([]byte, lengthPrefixSize, lengthPrefixSize+len(header)+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(header)))
	out = append(out, header...)
	return append(out, payload...)
}

func TestWriteContainer(t *testing.T) {
	h := Header{
		Frequencies: FrequencyTable{{Symbol: 'A', Count: 3}, {Symbol: 'B', Count: 1}},
		Padding:     4,
		Extension:   "txt",
	}

	var buf bytes.Buffer
	n, err := WriteContainer(&buf, h, []byte{0xe0})
	if err != nil {
		t.Fatalf("WriteContainer failed: %v", err)
	}

	expect := frame(`{"frequencies":[[65,3],[66,1]],"padding":4,"extension":"txt"}`, 0xe0)
	if !bytes.Equal(expect, buf.Bytes()) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", expect, buf.Bytes())
	}
	if n != int64(len(expect)) {
		t.Errorf("expected %d bytes written, got %d", len(expect), n)
	}
	if prefix := buf.Bytes()[:4]; !bytes.Equal(prefix, []byte{0, 0, 0, 0x3d}) {
		t.Errorf("wrong length prefix: %#v", prefix)
	}
}

func TestContainer_RoundTrip(t *testing.T) {
	type testRow struct {
		name    string
		header  Header
		payload []byte
	}

	testData := [...]testRow{
		{
			name:    "with-extension",
			header:  Header{Frequencies: makeTestTable(5, 9, 12, 13, 16, 45), Padding: 3, Extension: "tar.gz"},
			payload: []byte{1, 2, 3},
		},
		{
			name:    "no-extension",
			header:  Header{Frequencies: FrequencyTable{{Symbol: 200, Count: 1}, {Symbol: 7, Count: 99}}},
			payload: []byte{0xff},
		},
		{
			name:    "non-ascii-extension",
			header:  Header{Frequencies: makeTestTable(2, 1), Padding: 1, Extension: "t\u00ebxt"},
			payload: []byte{0x80},
		},
		{
			name:   "no-payload",
			header: Header{Frequencies: FrequencyTable{{Symbol: 'z', Count: 1}}, Extension: "md"},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := WriteContainer(&buf, row.header, row.payload); err != nil {
				t.Fatalf("WriteContainer failed: %v", err)
			}

			h, payload, err := ReadContainer(buf.Bytes())
			if err != nil {
				t.Fatalf("ReadContainer failed: %v", err)
			}
			if !reflect.DeepEqual(row.header, h) {
				t.Errorf("wrong header:\n\texpect: %+v\n\tactual: %+v", row.header, h)
			}
			if !bytes.Equal(row.payload, payload) {
				t.Errorf("wrong payload:\n\texpect: %#v\n\tactual: %#v", row.payload, payload)
			}
		})
	}
}

func TestReadContainer_Errors(t *testing.T) {
	type testRow struct {
		name   string
		stream []byte
		err    error
	}

	testData := [...]testRow{
		{name: "short", stream: []byte{0, 0, 0}, err: ErrMalformedHeader},
		{name: "length-exceeds-stream", stream: append([]byte{0, 0, 0, 10}, "{}"...), err: ErrMalformedHeader},
		{name: "length-exceeds-max", stream: []byte{0x00, 0x10, 0x00, 0x01}, err: ErrMalformedHeader},
		{name: "bad-json", stream: frame(`{"frequencies":[[65,3]`), err: ErrMalformedHeader},
		{name: "empty-table", stream: frame(`{"frequencies":[],"padding":0}`), err: ErrMalformedHeader},
		{name: "missing-table", stream: frame(`{"padding":0}`), err: ErrMalformedHeader},
		{name: "zero-count", stream: frame(`{"frequencies":[[65,0]],"padding":0}`), err: ErrMalformedHeader},
		{name: "duplicate", stream: frame(`{"frequencies":[[65,1],[65,2]],"padding":0}`), err: ErrMalformedHeader},
		{name: "symbol-range", stream: frame(`{"frequencies":[[300,1]],"padding":0}`), err: ErrMalformedHeader},
		{name: "padding-type", stream: frame(`{"frequencies":[[65,1]],"padding":"x"}`), err: ErrMalformedHeader},
		{name: "padding-8", stream: frame(`{"frequencies":[[65,1]],"padding":8}`, 0), err: ErrInvalidPadding},
		{name: "padding-negative", stream: frame(`{"frequencies":[[65,1]],"padding":-1}`, 0), err: ErrInvalidPadding},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, _, err := ReadContainer(row.stream)
			if !errors.Is(err, row.err) {
				t.Errorf("expected %v, got %v", row.err, err)
			}
		})
	}
}

func TestWriteContainer_InvalidHeader(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteContainer(&buf, Header{Frequencies: makeTestTable(1), Padding: 9}, nil)
	if !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("expected ErrInvalidPadding, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestWriteContainer_BadExtension(t *testing.T) {
	for _, ext := range []string{
		"t\xffxt",
		"/../../escaped",
		"..",
		"a/b",
		"a\\b",
		"txt\x00",
	} {
		var buf bytes.Buffer
		_, err := WriteContainer(&buf, Header{Frequencies: makeTestTable(1), Extension: ext}, nil)
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("%q: expected ErrMalformedHeader, got %v", ext, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%q: expected nothing written, got %d bytes", ext, buf.Len())
		}
	}
}

func TestReadContainer_BadExtension(t *testing.T) {
	for _, ext := range []string{`/../../escaped`, `..`, `a\\b`, `txt\u0000`} {
		stream := frame(`{"frequencies":[[65,1]],"padding":7,"extension":"`+ext+`"}`, 0)
		if _, _, err := ReadContainer(stream); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("%s: expected ErrMalformedHeader, got %v", ext, err)
		}
	}
}

func TestWriteContainer_HeaderTooLarge(t *testing.T) {
	h := Header{Frequencies: makeTestTable(1), Extension: strings.Repeat("x", MaxHeaderSize)}

	var buf bytes.Buffer
	_, err := WriteContainer(&buf, h, nil)
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestUnmarshalHeader_NullFields(t *testing.T) {
	h, err := UnmarshalHeader([]byte(`{"frequencies":[[65,2]],"padding":null,"extension":null}`))
	if err != nil {
		t.Fatalf("UnmarshalHeader failed: %v", err)
	}
	expect := Header{Frequencies: FrequencyTable{{Symbol: 'A', Count: 2}}}
	if !reflect.DeepEqual(expect, h) {
		t.Errorf("wrong header:\n\texpect: %+v\n\tactual: %+v", expect, h)
	}
}
