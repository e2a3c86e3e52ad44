package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/langdetect"
	"horse.fit/lucid/internal/language"
)

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	lang := fs.String("lang", "", "Language override (ISO 639-1); empty means auto-detect")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "analyze requires one input file (or - for stdin)")
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

	resolvedLang := language.NormalizeCode(*lang)
	if *lang != "" && resolvedLang == "" {
		fmt.Fprintf(os.Stderr, "--lang %q is not a valid language code\n", *lang)
		return 2
	}
	if resolvedLang == "" {
		resolvedLang = langdetect.DetectOrFallback(text)
	} else {
		resolvedLang = language.ResolveMetricLanguage(resolvedLang)
	}

	analyzer := newAnalyzer(cfg, logger)
	report := analyzer.AnalyzeAs(text, resolvedLang)

	if err := printJSON(map[string]any{
		"source": source,
		"lang":   resolvedLang,
		"report": report,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}
