package language

import "testing"

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"EN", "en"},
		{"pt_BR", "pt-br"},
		{"pt-BR", "pt-br"},
		{" fr ", "fr"},
		{"zh-Hans", "zh-hans"},
		{"en US", ""},
		{"12", ""},
	}

	for _, tc := range cases {
		if got := NormalizeTag(tc.raw); got != tc.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"pt-BR", "pt"},
		{"EN", "en"},
		{"", ""},
		{"de", "de"},
	}

	for _, tc := range cases {
		if got := NormalizeCode(tc.raw); got != tc.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveMetricLanguage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"pt", "pt"},
		{"pt-BR", "pt"},
		{"ru", "ru"},
		{"xx", "en"},
		{"ja", "en"},
		{"", "en"},
	}

	for _, tc := range cases {
		if got := ResolveMetricLanguage(tc.raw); got != tc.want {
			t.Errorf("ResolveMetricLanguage(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestIsMetricLanguage(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"en", "es", "de", "fr", "it", "nl", "pt", "ru"} {
		if !IsMetricLanguage(code) {
			t.Errorf("IsMetricLanguage(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"xx", "ja", "zh", ""} {
		if IsMetricLanguage(code) {
			t.Errorf("IsMetricLanguage(%q) = true, want false", code)
		}
	}
}
