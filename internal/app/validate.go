package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/lucid/internal/styleprofile"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "validate requires at least one style profile file")
		return 2
	}

	failures := 0
	for _, path := range fs.Args() {
		if _, err := styleprofile.LoadFile(path); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "INVALID %s: %v\n", path, err)
			continue
		}
		fmt.Printf("OK %s\n", path)
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d profiles failed validation\n", failures, fs.NArg())
		return 1
	}
	return 0
}
