package document

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"horse.fit/lucid/internal/readability"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want Format
	}{
		{"doc.txt", FormatText},
		{"doc.TEXT", FormatText},
		{"notes.md", FormatMarkdown},
		{"notes.markdown", FormatMarkdown},
		{"page.html", FormatHTML},
		{"page.htm", FormatHTML},
		{"book.epub", FormatEPUB},
	}
	for _, tc := range cases {
		got, err := Detect(tc.path)
		if err != nil {
			t.Errorf("Detect(%q): %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Detect(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	for _, path := range []string{"doc.pdf", "doc.docx", "doc"} {
		if _, err := Detect(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Detect(%q) = %v, want ErrUnsupportedFormat", path, err)
		}
	}
}

func TestImportPlainText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.txt")
	content := "First line.\r\n\r\nSecond   line with    gaps.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := "First line.\n\nSecond line with gaps."
	if got != want {
		t.Errorf("Import = %q, want %q", got, want)
	}
}

func TestImportHTML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	content := `<!DOCTYPE html>
<html><head><title>Sample</title></head><body>
<article>
<h1>Sample Article</h1>
<p>The first paragraph of the article explains the topic in plain words so readers can follow along easily.</p>
<p>The second paragraph continues the explanation and adds a few extra details about the same topic for context.</p>
<p>A third paragraph wraps up the discussion with a short summary of everything that was covered above here.</p>
</article>
<script>console.log("noise");</script>
</body></html>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !strings.Contains(got, "first paragraph") {
		t.Errorf("extracted text missing article body: %q", got)
	}
	if strings.Contains(got, "console.log") {
		t.Errorf("extracted text includes script content: %q", got)
	}
}

func writeTestEPUB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	files := map[string]string{
		"mimetype": "application/epub+zip",
		"META-INF/container.xml": `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`,
		"OEBPS/content.opf": `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
    <item id="ch2" href="zz-chapter2.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`,
		"OEBPS/chapter1.xhtml":    `<html><body><h1>Chapter One</h1><p>Opening content.</p></body></html>`,
		"OEBPS/zz-chapter2.xhtml": `<html><body><h1>Chapter Two</h1><p>Closing content.</p></body></html>`,
	}
	for name, body := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportEPUBFollowsSpineOrder(t *testing.T) {
	t.Parallel()

	got, err := Import(writeTestEPUB(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	first := strings.Index(got, "Chapter One")
	second := strings.Index(got, "Chapter Two")
	if first == -1 || second == -1 {
		t.Fatalf("missing chapter content: %q", got)
	}
	if first > second {
		t.Errorf("chapters out of spine order: %q", got)
	}
	if !strings.Contains(got, "Opening content.") || !strings.Contains(got, "Closing content.") {
		t.Errorf("missing paragraph text: %q", got)
	}
}

func TestExportWithAppendix(t *testing.T) {
	t.Parallel()

	appendix := &Appendix{
		SourceLang: "en",
		TargetLang: "es",
		Original:   readability.Report{FleschReadingEase: 42.5, DaleChallScore: 9.1},
		Simplified: readability.Report{FleschReadingEase: 71.2, DaleChallScore: 6.4},
		Fidelity:   0.812,
	}

	dir := t.TempDir()
	for _, name := range []string{"out.txt", "out.md", "out.html"} {
		path := filepath.Join(dir, name)
		if err := Export(path, "Simplified body.", appendix); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		out := string(raw)
		if !strings.Contains(out, "Simplified body.") {
			t.Errorf("%s missing body: %q", name, out)
		}
		if !strings.Contains(out, "0.812") {
			t.Errorf("%s missing fidelity score: %q", name, out)
		}
		if !strings.Contains(out, "Flesch Reading Ease") {
			t.Errorf("%s missing metric table: %q", name, out)
		}
	}
}

func TestExportWithoutAppendix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := Export(path, "Just the text.", nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "Quality Report") {
		t.Errorf("appendix rendered without being requested: %q", raw)
	}
}

func TestExportEPUBUnsupported(t *testing.T) {
	t.Parallel()

	err := Export(filepath.Join(t.TempDir(), "out.epub"), "text", nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Export(.epub) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	got := CleanText("  a   b \r\n\r\n c\td \n\n\n")
	want := "a b\n\nc d"
	if got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}
