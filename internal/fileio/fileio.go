// Package fileio resolves the input and output paths of the paramo command
// and performs its file reads and writes.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// CompressedExt is appended to the name of every compressed file.
const CompressedExt = ".paramo"

var (
	// ErrNoInput is returned by Resolve when Options.Input is empty.
	ErrNoInput = errors.New("fileio: no input path given")

	// ErrInputNotFound is returned by Resolve when the input does not exist.
	ErrInputNotFound = errors.New("fileio: input file does not exist")

	// ErrInputNotFile is returned by Resolve when the input is a directory
	// or some other non-regular file.
	ErrInputNotFile = errors.New("fileio: input must be a regular file")

	// ErrOutputIsInput is returned when the resolved output path would
	// overwrite the input.
	ErrOutputIsInput = errors.New("fileio: output path is the input path")

	// ErrBadExtension is returned by DecodedOutput when the stored extension
	// would escape the output folder.
	ErrBadExtension = errors.New("fileio: stored extension is not a plain file suffix")
)

// Options are the user's choices, as given on the command line.
type Options struct {
	Input        string
	OutputFolder string
	Filename     string
	Decode       bool
}

// Paths are the resolved input and output locations.
type Paths struct {
	Input  string
	Output string

	// Extension is the input's extension without the leading dot.  It is
	// only set when compressing, and is stored in the container header.
	// Bytes that are not valid UTF-8 are replaced with U+FFFD.
	Extension string

	// explicitExt is true when the user chose an output filename that
	// already has an extension.
	explicitExt bool
}

// Resolve checks the input path and derives the output path.
//
// The output goes next to the input unless OutputFolder is set.  Its name is
// Filename if set, else the input's name without its extension.  Compressed
// outputs also get CompressedExt.  A compressed output that would replace the
// input fails with ErrOutputIsInput.
func Resolve(opts Options) (Paths, error) {
	if opts.Input == "" {
		return Paths{}, ErrNoInput
	}

	fi, err := os.Stat(opts.Input)
	if errors.Is(err, os.ErrNotExist) {
		return Paths{}, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
	}
	if err != nil {
		return Paths{}, err
	}
	if !fi.Mode().IsRegular() {
		return Paths{}, fmt.Errorf("%w: %s", ErrInputNotFile, opts.Input)
	}

	var paths Paths
	paths.Input = opts.Input

	inputExt := filepath.Ext(opts.Input)
	if !opts.Decode {
		paths.Extension = strings.ToValidUTF8(strings.TrimPrefix(inputExt, "."), string(utf8.RuneError))
	}

	basename := strings.TrimSuffix(filepath.Base(opts.Input), inputExt)
	if basename == "" {
		if opts.Decode {
			basename = "decoded"
		} else {
			basename = "encoded"
		}
	}
	if opts.Filename != "" {
		basename = opts.Filename
		paths.explicitExt = opts.Decode && filepath.Ext(basename) != ""
	}
	if !opts.Decode {
		basename += CompressedExt
	}

	dir := filepath.Dir(opts.Input)
	if opts.OutputFolder != "" {
		dir = opts.OutputFolder
	}
	paths.Output = filepath.Join(dir, basename)
	if !opts.Decode && samePath(paths.Output, paths.Input) {
		return Paths{}, fmt.Errorf("%w: %s", ErrOutputIsInput, paths.Input)
	}
	return paths, nil
}

// DecodedOutput returns the output path for a decompressed file, restoring
// the extension stored in the container header.  An extension the user
// spelled out in the output filename takes precedence.
//
// storedExt comes from the container, so it is rejected with ErrBadExtension
// if it could name a file outside the output folder.
func (p Paths) DecodedOutput(storedExt string) (string, error) {
	output := p.Output
	if storedExt != "" && !p.explicitExt {
		if strings.ContainsAny(storedExt, "/\\\x00") || strings.Contains(storedExt, "..") {
			return "", fmt.Errorf("%w: %q", ErrBadExtension, storedExt)
		}
		output += "." + storedExt
	}
	if samePath(output, p.Input) {
		return "", fmt.Errorf("%w: %s", ErrOutputIsInput, p.Input)
	}
	return output, nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// ReadInput reads a whole input file.
func ReadInput(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteOutput writes a whole output file, creating missing parent directories
// and replacing any existing file.
func WriteOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
