// Package fidelity estimates translation fidelity without a human reference by
// translating the output back to its source language and measuring n-gram
// overlap against the original text.
//
// The score only approximates round-trip stability, not true translation
// quality; treat it as a directional signal.
package fidelity

import (
	"context"
	"errors"
	"fmt"

	"horse.fit/lucid/internal/bleu"
	"horse.fit/lucid/internal/language"
	"horse.fit/lucid/internal/translation"
)

// ErrScoring wraps every failure mode of a scoring pass so callers can treat
// them uniformly.
var ErrScoring = errors.New("fidelity scoring failed")

// Score back-translates translatedText into sourceLang and returns the
// smoothed sentence BLEU between the back-translation and originalText,
// normalized to [0, 1].
//
// Exactly one translation call is made per invocation and nothing is cached:
// the score always reflects the current provider behavior. Failures propagate
// wrapped in ErrScoring; a numeric placeholder is never returned, since 0.0
// would be indistinguishable from a genuinely poor translation.
func Score(ctx context.Context, originalText, translatedText, sourceLang string, provider translation.Provider) (float64, error) {
	target := language.NormalizeCode(sourceLang)
	if target == "" {
		return 0, fmt.Errorf("%w: invalid source language %q", ErrScoring, sourceLang)
	}

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       translatedText,
		TargetLang: target,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: back-translation: %w", ErrScoring, err)
	}

	raw, err := bleu.Sentence(resp.Text, originalText, bleu.Options{Lowercase: true})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScoring, err)
	}

	return raw / 100, nil
}
