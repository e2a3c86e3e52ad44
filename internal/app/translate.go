package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/lucid/internal/cache"
	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/document"
	"horse.fit/lucid/internal/language"
	"horse.fit/lucid/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")
	lang := fs.String("lang", "", "Target language (ISO 639-1, for example: es, pt)")
	sourceLang := fs.String("source-lang", "", "Source language; empty means auto-detect")
	provider := fs.String("provider", "", "Translation provider name (for example: openai, local)")
	noCache := fs.Bool("no-cache", false, "Skip the translation memo cache")
	out := fs.String("out", "", "Output file; empty writes plain text to stdout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires one input file (or - for stdin)")
		return 2
	}

	targetLang := language.NormalizeCode(*lang)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--lang is required and must be a valid language code")
		return 2
	}
	resolvedSource := language.NormalizeCode(*sourceLang)
	if *sourceLang != "" && resolvedSource == "" {
		fmt.Fprintf(os.Stderr, "--source-lang %q is not a valid language code\n", *sourceLang)
		return 2
	}

	cfg, logger, err := bootstrap(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	text, source, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 1
	}

	registry := translation.NewRegistryFromConfig(cfg)
	resolved, err := registry.Provider(*provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var memo cache.Cache
	if !*noCache {
		memo = newTranslationCache(cfg, logger)
	}

	translated, cached, err := translateWithCache(ctx, memo, resolved, text, resolvedSource, targetLang)
	if err != nil {
		logger.Error().Err(err).Str("source", source).Str("target_lang", targetLang).Msg("translation failed")
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}

	logger.Info().
		Str("provider", resolved.Name()).
		Str("target_lang", targetLang).
		Bool("cache_hit", cached).
		Msg("translation completed")

	if *out == "" {
		fmt.Println(translated)
		return 0
	}
	if err := document.Export(*out, translated, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}

// translateWithCache memoizes forward translations. A nil memo disables
// caching entirely.
func translateWithCache(ctx context.Context, memo cache.Cache, provider translation.Provider, text, sourceLang, targetLang string) (string, bool, error) {
	var key string
	if memo != nil {
		key = cache.Key(text, provider.Name(), sourceLang, targetLang)
		if cached, ok := memo.Get(key); ok {
			return cached, true, nil
		}
	}

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		return "", false, err
	}

	if memo != nil {
		_ = memo.Set(key, resp.Text)
	}
	return resp.Text, false, nil
}
