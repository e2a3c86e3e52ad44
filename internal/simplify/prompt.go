package simplify

import (
	"fmt"
	"strings"
)

func buildSystemPrompt(p StyleParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert in %s. Your goal is to make concepts from this field accessible to lay readers", p.domain())
	if p.Summarize {
		b.WriteString(", condensing the content without losing essential information")
	}
	b.WriteString(".")

	if len(p.Focus) > 0 {
		parts := make([]string, 0, len(p.Focus))
		for _, aspect := range p.Focus {
			parts = append(parts, string(aspect))
		}
		fmt.Fprintf(&b, " Prioritize %s above all else.", strings.Join(parts, " and "))
	}

	return b.String()
}

func buildUserPrompt(text string, p StyleParams) string {
	var b strings.Builder

	if p.Summarize {
		fmt.Fprintf(&b, "Summarize and rewrite the following text in simple, clear language, using a %s style. ", p.tone())
		b.WriteString("Keep the summary easy to follow, replacing complex technical terms with everyday language.")
	} else {
		fmt.Fprintf(&b, "Rewrite the following text in simple, clear language while keeping all of the original information, using a %s style. ", p.tone())
		fmt.Fprintf(&b, "Do not summarize: the goal is to make the text accessible to readers who are not experts in %s, ", p.domain())
		b.WriteString("replacing complex technical terms with everyday language.")
	}

	if p.Complexity > 0 {
		fmt.Fprintf(&b, " Target complexity level %d on a scale of 1 (simplest possible) to 5 (lightly edited).", p.Complexity)
	}

	b.WriteString("\n\nText: ")
	b.WriteString(text)
	return b.String()
}
