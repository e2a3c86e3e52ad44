package app

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/lucid/internal/cache"
	"horse.fit/lucid/internal/cli"
	"horse.fit/lucid/internal/config"
	"horse.fit/lucid/internal/document"
	"horse.fit/lucid/internal/langdetect"
	"horse.fit/lucid/internal/logging"
	"horse.fit/lucid/internal/readability"
	"horse.fit/lucid/internal/simplify"
	"horse.fit/lucid/internal/styleprofile"
)

// bootstrap loads env vars, config and the logger shared by every command.
func bootstrap(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("initialize logger: %w", err)
	}

	return cfg, logger, nil
}

func newAnalyzer(cfg *config.Config, logger zerolog.Logger) *readability.Analyzer {
	var wordlists fs.FS
	if dir := strings.TrimSpace(cfg.WordlistDir); dir != "" {
		wordlists = os.DirFS(dir)
	}
	return readability.NewAnalyzer(langdetect.DetectOrFallback, readability.NewEasyWords(wordlists, logger), logger)
}

// newTranslationCache picks the Redis cache when configured and falls
// back to the in-process cache otherwise.
func newTranslationCache(cfg *config.Config, logger zerolog.Logger) cache.Cache {
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour

	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		redisCache, err := cache.NewRedis(url, ttl)
		if err == nil {
			return redisCache
		}
		logger.Warn().Err(err).Msg("redis cache unavailable, falling back to in-memory cache")
	}

	return cache.NewMemory(ttl)
}

// readInput imports a document from path, or reads plain text from
// stdin when path is "-".
func readInput(path string) (string, string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		text := document.CleanText(string(raw))
		if text == "" {
			return "", "", fmt.Errorf("stdin is empty")
		}
		return text, "stdin", nil
	}

	text, err := document.Import(path)
	if err != nil {
		return "", "", err
	}
	if text == "" {
		return "", "", fmt.Errorf("document %s is empty", path)
	}
	return text, path, nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// styleFlags holds the style-related flag values shared by the simplify
// and run commands.
type styleFlags struct {
	profile     *string
	domain      *string
	tone        *string
	summarize   *bool
	model       *string
	complexity  *int
	focus       *string
	temperature *float64
	maxTokens   *int
}

func addStyleFlags(fs *flag.FlagSet) *styleFlags {
	return &styleFlags{
		profile:     fs.String("profile", "", "Path to a style profile JSON file"),
		domain:      fs.String("domain", "", "Technical domain of the text (for example: Medicine)"),
		tone:        fs.String("tone", "", "Tone: neutral, formal, informal or casual"),
		summarize:   fs.Bool("summarize", false, "Allow condensing the text"),
		model:       fs.String("model", "", "Model override for the simplifier"),
		complexity:  fs.Int("complexity", 0, "Target complexity level, 1 (simplest) to 5"),
		focus:       fs.String("focus", "", "Comma-separated focus aspects: clarity, conciseness, formality"),
		temperature: fs.Float64("temperature", 0, "Sampling temperature override"),
		maxTokens:   fs.Int("max-tokens", 0, "Completion token limit override"),
	}
}

func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	return visited
}

// params resolves the style profile file first and lets explicit flags
// override individual fields.
func (f *styleFlags) params(visited map[string]bool) (simplify.StyleParams, error) {
	var params simplify.StyleParams

	if path := strings.TrimSpace(*f.profile); path != "" {
		loaded, err := styleprofile.LoadFile(path)
		if err != nil {
			return simplify.StyleParams{}, err
		}
		params = loaded
	}

	if visited["domain"] {
		params.TechnicalDomain = strings.TrimSpace(*f.domain)
	}
	if visited["tone"] {
		tone, err := simplify.ParseTone(*f.tone)
		if err != nil {
			return simplify.StyleParams{}, err
		}
		params.Tone = tone
	}
	if visited["summarize"] {
		params.Summarize = *f.summarize
	}
	if visited["model"] {
		params.Model = strings.TrimSpace(*f.model)
	}
	if visited["complexity"] {
		params.Complexity = *f.complexity
	}
	if visited["focus"] {
		focus, err := simplify.ParseFocus(*f.focus)
		if err != nil {
			return simplify.StyleParams{}, err
		}
		params.Focus = focus
	}
	if visited["temperature"] {
		params.Temperature = float32(*f.temperature)
	}
	if visited["max-tokens"] {
		params.MaxTokens = *f.maxTokens
	}

	if err := params.Validate(); err != nil {
		return simplify.StyleParams{}, err
	}
	return params, nil
}
