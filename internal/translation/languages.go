package translation

import (
	"sort"
	"strings"
)

var languageNames = map[string]string{
	"ar": "Arabic",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"tr": "Turkish",
	"zh": "Chinese",
}

// SupportedTranslationLanguageCodes lists the codes the bundled providers
// accept as translation targets.
func SupportedTranslationLanguageCodes() []string {
	codes := make([]string, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// languageName returns the English name of a language code, defaulting to the
// uppercased code for unknown entries.
func languageName(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if name, ok := languageNames[normalized]; ok {
		return name
	}
	if normalized == "" {
		return "English"
	}
	return strings.ToUpper(normalized)
}
