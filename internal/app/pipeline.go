package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/config"
	"horse.fit/lucid/internal/db"
	"horse.fit/lucid/internal/document"
	"horse.fit/lucid/internal/fidelity"
	"horse.fit/lucid/internal/langdetect"
	"horse.fit/lucid/internal/language"
	"horse.fit/lucid/internal/simplify"
	"horse.fit/lucid/internal/translation"
)

func runPipeline(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Minute, "Command timeout")
	lang := fs.String("lang", "", "Target language; empty skips the translation stage")
	provider := fs.String("provider", "", "Translation provider name")
	out := fs.String("out", "", "Output file for the simplified (or translated) document")
	appendix := fs.Bool("appendix", true, "Append the quality report to the exported document")
	save := fs.Bool("save", false, "Store the run in the history database")
	style := addStyleFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run requires one input file (or - for stdin)")
		return 2
	}

	targetLang := language.NormalizeCode(*lang)
	if *lang != "" && targetLang == "" {
		fmt.Fprintf(os.Stderr, "--lang %q is not a valid language code\n", *lang)
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
	if *save {
		if err := cfg.RequireDatabase(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	text, source, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	analyzer := newAnalyzer(cfg, logger)
	sourceLang := langdetect.DetectOrFallback(text)
	originalReport := analyzer.AnalyzeAs(text, sourceLang)

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
	simplifiedReport := analyzer.AnalyzeAs(simplified, sourceLang)

	var (
		translated   string
		providerName string
		score        *float64
	)
	if targetLang != "" {
		registry := translation.NewRegistryFromConfig(cfg)
		resolved, err := registry.Provider(*provider)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		providerName = resolved.Name()

		memo := newTranslationCache(cfg, logger)
		translated, _, err = translateWithCache(ctx, memo, resolved, simplified, sourceLang, targetLang)
		if err != nil {
			logger.Error().Err(err).Str("target_lang", targetLang).Msg("translation failed")
			fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
			return 1
		}

		fidelityScore, err := fidelity.Score(ctx, simplified, translated, sourceLang, resolved)
		if err != nil {
			logger.Error().Err(err).Msg("fidelity scoring failed")
			fmt.Fprintf(os.Stderr, "Fidelity scoring failed: %v\n", err)
			return 1
		}
		score = &fidelityScore
	}

	exported := simplified
	if translated != "" {
		exported = translated
	}

	if *out != "" {
		var quality *document.Appendix
		if *appendix {
			quality = &document.Appendix{
				SourceLang: sourceLang,
				TargetLang: targetLang,
				Original:   originalReport,
				Simplified: simplifiedReport,
			}
			if score != nil {
				quality.Fidelity = *score
			}
		}
		if err := document.Export(*out, exported, quality); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
			return 1
		}
	}

	summary := map[string]any{
		"source":            source,
		"source_lang":       sourceLang,
		"original_report":   originalReport,
		"simplified_report": simplifiedReport,
	}
	if targetLang != "" {
		summary["target_lang"] = targetLang
		summary["provider"] = providerName
		summary["fidelity"] = score
	}
	if *out != "" {
		summary["out"] = *out
	}

	if *save {
		runUUID, err := saveRun(ctx, cfg, saveRunParams{
			sourceName:       filepath.Base(source),
			sourceLang:       sourceLang,
			targetLang:       targetLang,
			providerName:     providerName,
			originalText:     text,
			simplifiedText:   simplified,
			translatedText:   translated,
			originalReport:   originalReport,
			simplifiedReport: simplifiedReport,
			fidelity:         score,
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to store run")
			fmt.Fprintf(os.Stderr, "Failed to store run: %v\n", err)
			return 1
		}
		summary["run_uuid"] = runUUID
	}

	if err := printJSON(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}

type saveRunParams struct {
	sourceName       string
	sourceLang       string
	targetLang       string
	providerName     string
	originalText     string
	simplifiedText   string
	translatedText   string
	originalReport   any
	simplifiedReport any
	fidelity         *float64
}

func saveRun(ctx context.Context, cfg *config.Config, params saveRunParams) (string, error) {
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	originalJSON, err := json.Marshal(params.originalReport)
	if err != nil {
		return "", fmt.Errorf("encode original report: %w", err)
	}
	simplifiedJSON, err := json.Marshal(params.simplifiedReport)
	if err != nil {
		return "", fmt.Errorf("encode simplified report: %w", err)
	}

	return pool.InsertRun(ctx, db.InsertRunParams{
		SourceName:       params.sourceName,
		SourceLang:       params.sourceLang,
		TargetLang:       params.targetLang,
		ProviderName:     params.providerName,
		OriginalText:     params.originalText,
		SimplifiedText:   params.simplifiedText,
		TranslatedText:   params.translatedText,
		OriginalReport:   originalJSON,
		SimplifiedReport: simplifiedJSON,
		Fidelity:         params.fidelity,
	})
}
