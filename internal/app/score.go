package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/fidelity"
	"horse.fit/lucid/internal/langdetect"
	"horse.fit/lucid/internal/language"
	"horse.fit/lucid/internal/translation"
)

func runScore(args []string) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	sourceLang := fs.String("source-lang", "", "Language of the original text; empty means auto-detect")
	provider := fs.String("provider", "", "Translation provider used for back-translation")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "score requires two arguments: <original file> <translated file>")
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	originalText, _, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read original: %v\n", err)
		return 1
	}
	translatedText, _, err := readInput(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read translation: %v\n", err)
		return 1
	}

	resolvedSource := language.NormalizeCode(*sourceLang)
	if *sourceLang != "" && resolvedSource == "" {
		fmt.Fprintf(os.Stderr, "--source-lang %q is not a valid language code\n", *sourceLang)
		return 2
	}
	if resolvedSource == "" {
		resolvedSource = langdetect.DetectOrFallback(originalText)
	}

	registry := translation.NewRegistryFromConfig(cfg)
	resolved, err := registry.Provider(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	score, err := fidelity.Score(ctx, originalText, translatedText, resolvedSource, resolved)
	if err != nil {
		logger.Error().Err(err).Str("provider", resolved.Name()).Msg("fidelity scoring failed")
		fmt.Fprintf(os.Stderr, "Fidelity scoring failed: %v\n", err)
		return 1
	}

	if err := printJSON(map[string]any{
		"fidelity":    score,
		"source_lang": resolvedSource,
		"provider":    resolved.Name(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}
