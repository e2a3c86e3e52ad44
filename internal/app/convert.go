package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/lucid/internal/document"
)

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	out := fs.String("out", "", "Output file; its extension selects the output format")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "convert requires one input file")
		return 2
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		return 2
	}

	text, err := document.Import(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		if errors.Is(err, document.ErrUnsupportedFormat) {
			return 2
		}
		return 1
	}

	if err := document.Export(*out, text, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		if errors.Is(err, document.ErrUnsupportedFormat) {
			return 2
		}
		return 1
	}
	return 0
}
