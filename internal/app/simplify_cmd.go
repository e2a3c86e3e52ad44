package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/document"
	"horse.fit/lucid/internal/simplify"
)

func runSimplify(args []string) int {
	fs := flag.NewFlagSet("simplify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	out := fs.String("out", "", "Output file; empty writes plain text to stdout")
	style := addStyleFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "simplify requires one input file (or - for stdin)")
		return 2
	}

	params, err := style.params(visitedFlags(fs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid style parameters: %v\n", err)
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cfg.RequireOpenAI(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	text, source, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	simplifier := simplify.New(simplify.Config{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	})

	simplified, err := simplifier.Simplify(ctx, text, params)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Msg("simplification failed")
		fmt.Fprintf(os.Stderr, "Simplification failed: %v\n", err)
		return 1
	}

	if *out == "" {
		fmt.Println(simplified)
		return 0
	}
	if err := document.Export(*out, simplified, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}
