package readability

import (
	"github.com/rs/zerolog"
)

// DetectFunc resolves a text to a metric language code. It must always return
// a usable code; fallbacks happen inside the function, not here.
type DetectFunc func(text string) string

// Analyzer computes the six readability scores for a text in its detected
// language. Analyze never fails: degenerate input produces zeroed scores and
// unknown languages run with the English profile.
type Analyzer struct {
	detect DetectFunc
	words  *EasyWords
	logger zerolog.Logger
}

func NewAnalyzer(detect DetectFunc, words *EasyWords, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		detect: detect,
		words:  words,
		logger: logger,
	}
}

// Analyze scores text with the counting profile and familiar-word list of its
// detected language.
func (a *Analyzer) Analyze(text string) Report {
	lang := a.detect(text)
	return a.AnalyzeAs(text, lang)
}

// AnalyzeAs scores text as the given metric language, bypassing detection.
func (a *Analyzer) AnalyzeAs(text, lang string) Report {
	p := profileFor(lang)
	c := countText(text, p)
	familiar := a.words.Set(lang)

	report := Report{
		FleschReadingEase:         fleschReadingEase(c),
		FleschKincaidGrade:        fleschKincaidGrade(c),
		SMOGIndex:                 smogIndex(c),
		ColemanLiauIndex:          colemanLiauIndex(c),
		AutomatedReadabilityIndex: automatedReadabilityIndex(c),
		DaleChallScore:            daleChallScore(text, c, familiar),
	}

	a.logger.Debug().
		Str("lang", lang).
		Int("words", c.words).
		Int("sentences", c.sentences).
		Float64("flesch_reading_ease", report.FleschReadingEase).
		Msg("readability analysis completed")

	return report
}
