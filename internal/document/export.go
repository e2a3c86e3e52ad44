package document

import (
	"fmt"
	"html"
	"os"
	"strings"

	"horse.fit/lucid/internal/readability"
)

// Appendix is an optional quality report appended to exported output.
type Appendix struct {
	SourceLang string
	TargetLang string
	Original   readability.Report
	Simplified readability.Report
	Fidelity   float64
}

// Export writes text to filePath in the format implied by its
// extension. EPUB output is not supported.
func Export(filePath, text string, appendix *Appendix) error {
	format, err := Detect(filePath)
	if err != nil {
		return err
	}

	var rendered string
	switch format {
	case FormatText:
		rendered = renderText(text, appendix)
	case FormatMarkdown:
		rendered = renderMarkdown(text, appendix)
	case FormatHTML:
		rendered = renderHTML(text, appendix)
	default:
		return fmt.Errorf("%w: cannot export %q", ErrUnsupportedFormat, format)
	}

	if err := os.WriteFile(filePath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

var metricRows = []struct {
	label string
	pick  func(readability.Report) float64
}{
	{"Flesch Reading Ease", func(r readability.Report) float64 { return r.FleschReadingEase }},
	{"Flesch-Kincaid Grade", func(r readability.Report) float64 { return r.FleschKincaidGrade }},
	{"SMOG Index", func(r readability.Report) float64 { return r.SMOGIndex }},
	{"Coleman-Liau Index", func(r readability.Report) float64 { return r.ColemanLiauIndex }},
	{"Automated Readability Index", func(r readability.Report) float64 { return r.AutomatedReadabilityIndex }},
	{"Dale-Chall Score", func(r readability.Report) float64 { return r.DaleChallScore }},
}

func renderText(text string, appendix *Appendix) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n")

	if appendix != nil {
		b.WriteString("\n----\nQuality Report\n\n")
		fmt.Fprintf(&b, "Languages: %s -> %s\n", appendix.SourceLang, appendix.TargetLang)
		fmt.Fprintf(&b, "Fidelity (back-translation BLEU): %.3f\n\n", appendix.Fidelity)
		for _, row := range metricRows {
			fmt.Fprintf(&b, "%-28s original %7.2f  simplified %7.2f\n",
				row.label, row.pick(appendix.Original), row.pick(appendix.Simplified))
		}
	}
	return b.String()
}

func renderMarkdown(text string, appendix *Appendix) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n")

	if appendix != nil {
		b.WriteString("\n---\n\n## Quality Report\n\n")
		fmt.Fprintf(&b, "Languages: %s -> %s\n\n", appendix.SourceLang, appendix.TargetLang)
		fmt.Fprintf(&b, "Fidelity (back-translation BLEU): **%.3f**\n\n", appendix.Fidelity)
		b.WriteString("| Metric | Original | Simplified |\n|---|---:|---:|\n")
		for _, row := range metricRows {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f |\n",
				row.label, row.pick(appendix.Original), row.pick(appendix.Simplified))
		}
	}
	return b.String()
}

func renderHTML(text string, appendix *Appendix) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Document</title></head>\n<body>\n")

	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(paragraph))
	}

	if appendix != nil {
		b.WriteString("<hr>\n<h2>Quality Report</h2>\n")
		fmt.Fprintf(&b, "<p>Languages: %s &rarr; %s</p>\n",
			html.EscapeString(appendix.SourceLang), html.EscapeString(appendix.TargetLang))
		fmt.Fprintf(&b, "<p>Fidelity (back-translation BLEU): %.3f</p>\n", appendix.Fidelity)
		b.WriteString("<table>\n<tr><th>Metric</th><th>Original</th><th>Simplified</th></tr>\n")
		for _, row := range metricRows {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%.2f</td></tr>\n",
				row.label, row.pick(appendix.Original), row.pick(appendix.Simplified))
		}
		b.WriteString("</table>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
