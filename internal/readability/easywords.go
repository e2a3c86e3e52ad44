package readability

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

//go:embed wordlists
var embeddedWordlists embed.FS

const wordlistDir = "wordlists"

// defaultListLang backs every language without a bundled list of its own.
const defaultListLang = "en"

// EasyWords is the process-wide familiar-word cache. Each language's list is
// loaded at most once from the backing store and is read-only afterwards.
type EasyWords struct {
	fsys   fs.FS
	logger zerolog.Logger

	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

// NewEasyWords creates a cache over the given backing store. A nil store uses
// the word lists bundled with the binary.
func NewEasyWords(fsys fs.FS, logger zerolog.Logger) *EasyWords {
	if fsys == nil {
		sub, err := fs.Sub(embeddedWordlists, wordlistDir)
		if err != nil {
			// The embed directive guarantees the directory exists.
			panic(fmt.Sprintf("embedded wordlists missing: %v", err))
		}
		fsys = sub
	}
	return &EasyWords{
		fsys:   fsys,
		logger: logger,
		sets:   make(map[string]map[string]struct{}),
	}
}

// Set returns the familiar-word set for lang, loading it on first use.
// Languages without a bundled list, and bundles that fail to load, fall back
// to the default English list; a missing list is never fatal.
func (e *EasyWords) Set(lang string) map[string]struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setLocked(lang)
}

func (e *EasyWords) setLocked(lang string) map[string]struct{} {
	if set, ok := e.sets[lang]; ok {
		return set
	}

	set, err := loadWordlist(e.fsys, lang+".txt")
	if err != nil {
		if lang == defaultListLang {
			e.logger.Warn().Err(err).Msg("default easy-word list unavailable")
			empty := map[string]struct{}{}
			e.sets[lang] = empty
			return empty
		}
		e.logger.Warn().Err(err).Str("lang", lang).Msg("easy-word list unavailable, falling back to default")
		fallback := e.setLocked(defaultListLang)
		e.sets[lang] = fallback
		return fallback
	}

	e.sets[lang] = set
	return set
}

// loadWordlist reads one lowercase word per line, skipping blank lines.
func loadWordlist(fsys fs.FS, name string) (map[string]struct{}, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", name, err)
	}
	defer f.Close()

	set := make(map[string]struct{}, 1024)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", name, err)
	}
	return set, nil
}
