package readability

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
)

func newTestAnalyzer(detect DetectFunc) *Analyzer {
	if detect == nil {
		detect = func(string) string { return "en" }
	}
	return NewAnalyzer(detect, NewEasyWords(nil, zerolog.Nop()), zerolog.Nop())
}

func assertFinite(t *testing.T, report Report) {
	t.Helper()

	m := report.Map()
	if len(m) != 6 {
		t.Fatalf("report has %d keys, want 6", len(m))
	}
	for key, value := range m {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Errorf("%s = %v, want finite", key, value)
		}
	}
}

func TestAnalyzeEnglishText(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(nil)
	report := a.Analyze("The cat sat on the mat. The dog ran to the park. They played together all day.")
	assertFinite(t, report)

	if report.FleschReadingEase < 60 {
		t.Errorf("FleschReadingEase = %v, want easy text to score above 60", report.FleschReadingEase)
	}
	if report.SMOGIndex == 0 {
		t.Errorf("SMOGIndex = 0 for a three-sentence text, want nonzero")
	}
}

func TestAnalyzeSingleWordNoSentencePunctuation(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(nil)
	assertFinite(t, a.Analyze("word"))
	assertFinite(t, a.Analyze("antidisestablishmentarianism"))
}

func TestAnalyzeEmptyText(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(nil)
	report := a.Analyze("")
	assertFinite(t, report)
	for key, value := range report.Map() {
		if value != 0 {
			t.Errorf("%s = %v for empty text, want 0", key, value)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(nil)
	text := "Reading is a habit worth keeping. Some books are hard. Others are not."

	first := a.Analyze(text)
	for i := 0; i < 3; i++ {
		if got := a.Analyze(text); got != first {
			t.Fatalf("Analyze is not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestAnalyzeUnsupportedLanguageFallsBack(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(nil)
	report := a.AnalyzeAs("Some plain text without anything special.", "xx")
	assertFinite(t, report)
}

func TestAnalyzePortugueseUsesBundledList(t *testing.T) {
	t.Parallel()

	text := "Este é um texto de exemplo para avaliar a legibilidade."
	detect := func(string) string { return "pt" }

	withList := NewAnalyzer(detect, NewEasyWords(nil, zerolog.Nop()), zerolog.Nop())

	// A backing store without pt.txt forces the English fallback list.
	missing := fstest.MapFS{
		"en.txt": &fstest.MapFile{Data: []byte("the\na\nof\n")},
	}
	withoutList := NewAnalyzer(detect, NewEasyWords(missing, zerolog.Nop()), zerolog.Nop())

	got := withList.Analyze(text)
	fallback := withoutList.Analyze(text)
	assertFinite(t, got)
	assertFinite(t, fallback)

	if got.DaleChallScore == fallback.DaleChallScore {
		t.Errorf("DaleChallScore = %v with and without the pt list, want a difference", got.DaleChallScore)
	}
	if got.DaleChallScore >= fallback.DaleChallScore {
		t.Errorf("pt list score %v should be below fallback score %v for Portuguese text", got.DaleChallScore, fallback.DaleChallScore)
	}
}

func TestEasyWordsLoadsOnce(t *testing.T) {
	t.Parallel()

	words := NewEasyWords(nil, zerolog.Nop())
	first := words.Set("pt")
	if len(first) == 0 {
		t.Fatal("bundled pt list is empty")
	}
	second := words.Set("pt")
	if len(second) != len(first) {
		t.Fatalf("second load returned %d words, want %d", len(second), len(first))
	}
}

func TestCountSyllables(t *testing.T) {
	t.Parallel()

	en := profileFor("en")
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"make", 1},
		{"banana", 3},
		{"rhythm", 1},
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word, en); got != tc.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestCountSentences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"One.", 1},
		{"One. Two! Three?", 3},
		{"no punctuation at all", 1},
		{"Trailing dots...", 1},
	}
	for _, tc := range cases {
		if got := countSentences(tc.text); got != tc.want {
			t.Errorf("countSentences(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
