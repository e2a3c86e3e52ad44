package readability

import "strings"

// profile carries the per-language counting heuristics: which runes count as
// vowels for syllable estimation, and whether a trailing "e" is usually silent.
type profile struct {
	vowels  string
	silentE bool
}

var profiles = map[string]profile{
	"en": {vowels: "aeiouy", silentE: true},
	"es": {vowels: "aeiouáéíóúü", silentE: false},
	"de": {vowels: "aeiouyäöü", silentE: false},
	"fr": {vowels: "aeiouyàâéèêëîïôûùüœ", silentE: true},
	"it": {vowels: "aeiouàèéìíòóù", silentE: false},
	"nl": {vowels: "aeiouy", silentE: false},
	"pt": {vowels: "aeiouáéíóúâêôãõà", silentE: false},
	"ru": {vowels: "аеёиоуыэюя", silentE: false},
}

func profileFor(lang string) profile {
	if p, ok := profiles[lang]; ok {
		return p
	}
	return profiles["en"]
}

func (p profile) isVowel(r rune) bool {
	return strings.ContainsRune(p.vowels, r)
}
