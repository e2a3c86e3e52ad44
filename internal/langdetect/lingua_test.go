package langdetect

import "testing"

func TestDetectISO6391ShortInput(t *testing.T) {
	t.Parallel()

	// Inputs below the letter threshold never reach the detector.
	for _, text := range []string{"", "   ", "ok", "a b c", "123 456"} {
		if got := DetectISO6391(text); got != "" {
			t.Errorf("DetectISO6391(%q) = %q, want empty", text, got)
		}
	}
}

func TestDetectOrFallbackShortInput(t *testing.T) {
	t.Parallel()

	if got := DetectOrFallback("hi"); got != "en" {
		t.Errorf("DetectOrFallback(short) = %q, want en", got)
	}
	if got := DetectOrFallback(""); got != "en" {
		t.Errorf("DetectOrFallback(empty) = %q, want en", got)
	}
}
