package readability

import (
	"regexp"
	"strings"
	"unicode"
)

var sentenceEnders = regexp.MustCompile(`[.!?…]+`)

// counts holds the raw tallies the readability formulas are computed from.
type counts struct {
	words         int
	sentences     int
	syllables     int
	letters       int
	polysyllables int
}

func countText(text string, p profile) counts {
	var c counts

	for _, raw := range strings.Fields(text) {
		word := cleanWord(raw)
		if word == "" {
			continue
		}
		c.words++

		syllables := countSyllables(word, p)
		c.syllables += syllables
		if syllables >= 3 {
			c.polysyllables++
		}

		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				c.letters++
			}
		}
	}

	c.sentences = countSentences(text)
	return c
}

// countSentences counts terminal-punctuation-delimited sentences. Any non-blank
// text counts as at least one sentence so downstream ratios stay defined.
func countSentences(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	count := 0
	for _, part := range sentenceEnders.Split(trimmed, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

// countSyllables estimates syllables as vowel groups with language-specific
// vowel sets. Every word counts as at least one syllable.
func countSyllables(word string, p profile) int {
	groups := 0
	prevVowel := false
	var runes []rune

	for _, r := range strings.ToLower(word) {
		runes = append(runes, r)
		vowel := p.isVowel(r)
		if vowel && !prevVowel {
			groups++
		}
		prevVowel = vowel
	}

	if p.silentE && len(runes) > 2 && runes[len(runes)-1] == 'e' {
		groups--
		// consonant + "le" endings carry their own syllable
		if runes[len(runes)-2] == 'l' && !p.isVowel(runes[len(runes)-3]) {
			groups++
		}
	}

	if groups < 1 {
		groups = 1
	}
	return groups
}

func cleanWord(raw string) string {
	return strings.TrimFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumeric(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
