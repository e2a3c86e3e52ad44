package language

import "strings"

// FallbackCode is substituted when detection fails or a code is outside the metric set.
const FallbackCode = "en"

// metricLanguages is the fixed set of languages the readability engine is tuned for.
var metricLanguages = map[string]struct{}{
	"en": {},
	"es": {},
	"de": {},
	"fr": {},
	"it": {},
	"nl": {},
	"pt": {},
	"ru": {},
}

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// NormalizeCode returns the primary language subtag (for example, "en" from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		return tag[:dash]
	}
	return tag
}

// IsMetricLanguage reports whether the readability engine carries a tuned profile for code.
func IsMetricLanguage(code string) bool {
	_, ok := metricLanguages[NormalizeCode(code)]
	return ok
}

// ResolveMetricLanguage maps any language code onto the metric set. Codes outside the
// set resolve to English; this is deliberate policy, not a detection failure.
func ResolveMetricLanguage(code string) string {
	normalized := NormalizeCode(code)
	if _, ok := metricLanguages[normalized]; ok {
		return normalized
	}
	return FallbackCode
}

// MetricLanguages returns the supported metric language codes, unsorted.
func MetricLanguages() []string {
	codes := make([]string, 0, len(metricLanguages))
	for code := range metricLanguages {
		codes = append(codes, code)
	}
	return codes
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
