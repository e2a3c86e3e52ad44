// Package bleu computes sentence-level BLEU scores on a 0-100 scale.
//
// The scorer matches the usual sentence BLEU conventions: n-gram orders one
// through four, a brevity penalty for short candidates, an effective-order
// geometric mean, and exponential smoothing that halves the precision of each
// order with no matches instead of zeroing the whole score.
package bleu

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

const maxOrder = 4

// ErrDegenerateInput is returned when the candidate or reference has no tokens.
var ErrDegenerateInput = errors.New("bleu: empty candidate or reference")

// Options controls tokenization.
type Options struct {
	// Lowercase folds case before matching.
	Lowercase bool
}

// Sentence scores candidate against a single reference and returns a value in
// [0, 100].
func Sentence(candidate, reference string, opts Options) (float64, error) {
	cand := tokenize(candidate, opts.Lowercase)
	ref := tokenize(reference, opts.Lowercase)
	if len(cand) == 0 || len(ref) == 0 {
		return 0, ErrDegenerateInput
	}

	var (
		logSum    float64
		effOrders int
		smooth    = 1.0
	)

	for n := 1; n <= maxOrder; n++ {
		matched, total := matchNgrams(cand, ref, n)
		if total == 0 {
			// Candidate shorter than n tokens; drop the order entirely.
			continue
		}
		effOrders++

		var precision float64
		if matched == 0 {
			smooth *= 2
			precision = 1 / (smooth * float64(total))
		} else {
			precision = float64(matched) / float64(total)
		}
		logSum += math.Log(precision)
	}

	if effOrders == 0 {
		return 0, ErrDegenerateInput
	}

	score := math.Exp(logSum / float64(effOrders))
	score *= brevityPenalty(len(cand), len(ref))
	return score * 100, nil
}

func brevityPenalty(candLen, refLen int) float64 {
	if candLen >= refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(candLen))
}

// matchNgrams returns the clipped match count and the total candidate n-grams
// of order n.
func matchNgrams(cand, ref []string, n int) (matched, total int) {
	total = len(cand) - n + 1
	if total < 1 {
		return 0, 0
	}

	refCounts := make(map[string]int)
	for i := 0; i+n <= len(ref); i++ {
		refCounts[strings.Join(ref[i:i+n], "\x1f")]++
	}

	for i := 0; i < total; i++ {
		key := strings.Join(cand[i:i+n], "\x1f")
		if refCounts[key] > 0 {
			refCounts[key]--
			matched++
		}
	}
	return matched, total
}

// tokenize splits on whitespace and separates punctuation into its own tokens,
// so "mat." and "mat" share a unigram.
func tokenize(text string, lowercase bool) []string {
	if lowercase {
		text = strings.ToLower(text)
	}

	tokens := make([]string, 0, 32)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}
