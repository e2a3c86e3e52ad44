package readability

import (
	"math"
	"strings"
)

// Report maps each readability metric to its score. All six fields are always
// populated; degenerate input yields 0 rather than NaN or Inf.
type Report struct {
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	SMOGIndex                 float64 `json:"smog_index"`
	ColemanLiauIndex          float64 `json:"coleman_liau_index"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
	DaleChallScore            float64 `json:"dale_chall_readability_score"`
}

// Map returns the report keyed by metric name.
func (r Report) Map() map[string]float64 {
	return map[string]float64{
		"flesch_reading_ease":          r.FleschReadingEase,
		"flesch_kincaid_grade":         r.FleschKincaidGrade,
		"smog_index":                   r.SMOGIndex,
		"coleman_liau_index":           r.ColemanLiauIndex,
		"automated_readability_index":  r.AutomatedReadabilityIndex,
		"dale_chall_readability_score": r.DaleChallScore,
	}
}

func fleschReadingEase(c counts) float64 {
	if c.sentences == 0 || c.words == 0 {
		return 0
	}
	return round2(206.835 -
		1.015*(float64(c.words)/float64(c.sentences)) -
		84.6*(float64(c.syllables)/float64(c.words)))
}

func fleschKincaidGrade(c counts) float64 {
	if c.sentences == 0 || c.words == 0 {
		return 0
	}
	return round2(0.39*(float64(c.words)/float64(c.sentences)) +
		11.8*(float64(c.syllables)/float64(c.words)) -
		15.59)
}

// smogIndex follows the SMOG convention of requiring at least three sentences;
// shorter samples score 0.
func smogIndex(c counts) float64 {
	if c.sentences < 3 {
		return 0
	}
	return round2(1.0430*math.Sqrt(float64(c.polysyllables)*(30.0/float64(c.sentences))) + 3.1291)
}

func colemanLiauIndex(c counts) float64 {
	if c.words == 0 {
		return 0
	}
	lettersPer100 := float64(c.letters) / float64(c.words) * 100
	sentencesPer100 := float64(c.sentences) / float64(c.words) * 100
	return round2(0.058*lettersPer100 - 0.296*sentencesPer100 - 15.8)
}

func automatedReadabilityIndex(c counts) float64 {
	if c.sentences == 0 || c.words == 0 {
		return 0
	}
	return round2(4.71*(float64(c.letters)/float64(c.words)) +
		0.5*(float64(c.words)/float64(c.sentences)) -
		21.43)
}

// daleChallScore weights the share of words absent from the familiar-word set
// by average sentence length. Numbers always count as familiar.
func daleChallScore(text string, c counts, familiar map[string]struct{}) float64 {
	if c.sentences == 0 || c.words == 0 {
		return 0
	}

	difficult := 0
	for _, raw := range strings.Fields(text) {
		word := cleanWord(raw)
		if word == "" || isNumeric(word) {
			continue
		}
		if _, ok := familiar[word]; !ok {
			difficult++
		}
	}

	pctDifficult := float64(difficult) / float64(c.words) * 100
	score := 0.1579*pctDifficult + 0.0496*(float64(c.words)/float64(c.sentences))
	if pctDifficult > 5 {
		score += 3.6365
	}
	return round2(score)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
