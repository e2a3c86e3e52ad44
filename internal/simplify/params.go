package simplify

import (
	"fmt"
	"strings"
)

// Tone is the requested writing register.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneFormal   Tone = "formal"
	ToneInformal Tone = "informal"
	ToneCasual   Tone = "casual"
)

// FocusAspect selects what the rewrite should optimize for.
type FocusAspect string

const (
	FocusClarity     FocusAspect = "clarity"
	FocusConciseness FocusAspect = "conciseness"
	FocusFormality   FocusAspect = "formality"
)

// StyleParams configures one simplification request.
type StyleParams struct {
	// TechnicalDomain is a free-form label such as "Computer Science" or "Medicine".
	TechnicalDomain string
	Tone            Tone
	// Summarize condenses the text in addition to simplifying it.
	Summarize bool
	// Model overrides the configured default model when set.
	Model string
	// Complexity is a 1 (simplest) to 5 (lightly edited) target level; 0 uses the default.
	Complexity int
	Focus      []FocusAspect
	// Temperature of 0 uses the default (0.8).
	Temperature float32
	// MaxTokens of 0 uses the default (4096).
	MaxTokens int
}

// Validate rejects parameter combinations the prompt builder cannot express.
func (p StyleParams) Validate() error {
	switch p.Tone {
	case "", ToneNeutral, ToneFormal, ToneInformal, ToneCasual:
	default:
		return fmt.Errorf("unknown tone %q", p.Tone)
	}
	if p.Complexity < 0 || p.Complexity > 5 {
		return fmt.Errorf("complexity must be between 0 and 5, got %d", p.Complexity)
	}
	for _, aspect := range p.Focus {
		switch aspect {
		case FocusClarity, FocusConciseness, FocusFormality:
		default:
			return fmt.Errorf("unknown focus aspect %q", aspect)
		}
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", p.Temperature)
	}
	if p.MaxTokens < 0 {
		return fmt.Errorf("max tokens must be >= 0, got %d", p.MaxTokens)
	}
	return nil
}

func (p StyleParams) tone() Tone {
	if p.Tone == "" {
		return ToneNeutral
	}
	return p.Tone
}

func (p StyleParams) domain() string {
	domain := strings.TrimSpace(p.TechnicalDomain)
	if domain == "" {
		return "the subject matter"
	}
	return domain
}

// ParseTone maps a user-supplied string onto the tone enumeration.
func ParseTone(raw string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "neutral":
		return ToneNeutral, nil
	case "formal":
		return ToneFormal, nil
	case "informal":
		return ToneInformal, nil
	case "casual":
		return ToneCasual, nil
	default:
		return "", fmt.Errorf("unknown tone %q (expected neutral, formal, informal or casual)", raw)
	}
}

// ParseFocus maps a comma-separated list onto focus aspects.
func ParseFocus(raw string) ([]FocusAspect, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var aspects []FocusAspect
	for _, part := range strings.Split(trimmed, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "clarity":
			aspects = append(aspects, FocusClarity)
		case "conciseness":
			aspects = append(aspects, FocusConciseness)
		case "formality":
			aspects = append(aspects, FocusFormality)
		default:
			return nil, fmt.Errorf("unknown focus aspect %q (expected clarity, conciseness or formality)", part)
		}
	}
	return aspects, nil
}
