package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
	SupportedLanguages() []string
}

// TranslateRequest describes one translation request. SourceLang is optional;
// providers auto-detect the source when it is empty.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 (for example: "pt", "en"); empty means auto-detect
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata. SourceLang
// reports the detected source language of the input text.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}
