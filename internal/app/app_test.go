package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDispatch(t *testing.T) {
	if code := Run(nil); code != 2 {
		t.Errorf("Run(nil) = %d, want 2", code)
	}
	if code := Run([]string{"bogus"}); code != 2 {
		t.Errorf("Run(bogus) = %d, want 2", code)
	}
	if code := Run([]string{"help"}); code != 0 {
		t.Errorf("Run(help) = %d, want 0", code)
	}
}

func TestConvertTextToMarkdown(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.md")
	if err := os.WriteFile(in, []byte("One paragraph.\n\nAnother paragraph.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"convert", "--out", out, in}); code != 0 {
		t.Fatalf("convert exit code = %d, want 0", code)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Another paragraph.") {
		t.Errorf("converted output missing content: %q", raw)
	}
}

func TestConvertRejectsUnsupportedOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"convert", "--out", filepath.Join(dir, "out.epub"), in}); code != 2 {
		t.Errorf("convert to epub exit code = %d, want 2", code)
	}
}

func TestValidateProfiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(`{"tone": "formal", "complexity": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"tone": "angry"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"validate", good}); code != 0 {
		t.Errorf("validate good profile = %d, want 0", code)
	}
	if code := Run([]string{"validate", good, bad}); code != 1 {
		t.Errorf("validate with bad profile = %d, want 1", code)
	}
	if code := Run([]string{"validate"}); code != 2 {
		t.Errorf("validate without args = %d, want 2", code)
	}
}
