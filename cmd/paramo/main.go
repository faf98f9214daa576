// paramo compresses and decompresses files with Huffman coding.
//
// Usage:
//
//	paramo [-d|--decode] [-o|--output-folder <dir>] [-f|--filename <name>] -i|--input <file>
//
// Compressing "notes.txt" writes "notes.paramo" next to it.  Decompressing
// "notes.paramo" writes "notes.txt", using the extension saved at compression
// time unless --filename names one.
//
// Options:
//
//	-i, --input          File to read
//	-o, --output-folder  Folder to write into (created if missing)
//	-f, --filename       Output file name
//	-d, --decode         Decompress instead of compress
//	-v, --verbose        Print code statistics
//	-h, --help           Print help message
//	    --version        Print version information
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chronos-tachyon/paramo"
	"github.com/chronos-tachyon/paramo/internal/fileio"
	"github.com/chronos-tachyon/paramo/internal/logger"
)

const version = "1.0.0"

func usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s [-d|--decode] [-o|--output-folder <dir>] [-f|--filename <name>] -i|--input <file>\n\n", name)
	fmt.Fprintf(w, "Compress or decompress a file with Huffman coding.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -i, --input          file to read\n")
	fmt.Fprintf(w, "  -o, --output-folder  folder to write into\n")
	fmt.Fprintf(w, "  -f, --filename       output file name\n")
	fmt.Fprintf(w, "  -d, --decode         decompress instead of compress\n")
	fmt.Fprintf(w, "  -v, --verbose        print code statistics\n")
	fmt.Fprintf(w, "  -h, --help           print this message\n")
	fmt.Fprintf(w, "      --version        print version information\n")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		opts     fileio.Options
		verbose  bool
		showHelp bool
		showVer  bool
	)

	fs := flag.NewFlagSet("paramo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr, "paramo") }
	fs.StringVar(&opts.Input, "i", "", "input file")
	fs.StringVar(&opts.Input, "input", "", "input file")
	fs.StringVar(&opts.OutputFolder, "o", "", "output folder")
	fs.StringVar(&opts.OutputFolder, "output-folder", "", "output folder")
	fs.StringVar(&opts.Filename, "f", "", "output file name")
	fs.StringVar(&opts.Filename, "filename", "", "output file name")
	fs.BoolVar(&opts.Decode, "d", false, "decompress")
	fs.BoolVar(&opts.Decode, "decode", false, "decompress")
	fs.BoolVar(&verbose, "v", false, "verbose mode")
	fs.BoolVar(&verbose, "verbose", false, "verbose mode")
	fs.BoolVar(&showHelp, "h", false, "print help message")
	fs.BoolVar(&showHelp, "help", false, "print help message")
	fs.BoolVar(&showVer, "version", false, "print version information")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showHelp {
		usage(stdout, "paramo")
		return 0
	}
	if showVer {
		fmt.Fprintf(stdout, "paramo %s\n", version)
		return 0
	}

	log := logger.New(stderr, verbose)

	var err error
	if opts.Decode {
		err = decode(opts, log)
	} else {
		err = encode(opts, log)
	}
	if errors.Is(err, fileio.ErrNoInput) {
		log.Errorf("%v", err)
		usage(stderr, "paramo")
		return 2
	}
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

func encode(opts fileio.Options, log logger.Logger) error {
	paths, err := fileio.Resolve(opts)
	if err != nil {
		return err
	}

	data, err := fileio.ReadInput(paths.Input)
	if err != nil {
		return err
	}
	log.Infof("read %s (%d bytes)", paths.Input, len(data))

	out, stats, err := paramo.Analyze(data, paths.Extension)
	if err != nil {
		return fmt.Errorf("compress %s: %w", paths.Input, err)
	}
	log.Debugf("%d distinct symbols, code lengths %d..%d bits", stats.NumSymbols, stats.MinCodeSize, stats.MaxCodeSize)
	log.Debugf("payload %d bits, %d padding bits, header %d bytes", stats.PayloadBits, stats.Padding, stats.HeaderSize)

	if err := fileio.WriteOutput(paths.Output, out); err != nil {
		return err
	}
	log.Infof("wrote %s (%d bytes, ratio %.2fx)", paths.Output, stats.CompressedSize, stats.Ratio())
	return nil
}

func decode(opts fileio.Options, log logger.Logger) error {
	paths, err := fileio.Resolve(opts)
	if err != nil {
		return err
	}

	stream, err := fileio.ReadInput(paths.Input)
	if err != nil {
		return err
	}
	log.Infof("read %s (%d bytes)", paths.Input, len(stream))

	data, h, err := paramo.Decompress(stream)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", paths.Input, err)
	}
	log.Debugf("%d distinct symbols, %d padding bits", len(h.Frequencies), h.Padding)

	output, err := paths.DecodedOutput(h.Extension)
	if err != nil {
		return err
	}
	if err := fileio.WriteOutput(output, data); err != nil {
		return err
	}
	log.Infof("wrote %s (%d bytes)", output, len(data))
	return nil
}
