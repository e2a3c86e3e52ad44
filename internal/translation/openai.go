package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"horse.fit/lucid/internal/language"
)

// OpenAIProvider translates text through OpenAI chat completions.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string // default: "gpt-4o-mini"
	BaseURL string // optional custom endpoint
}

func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// ModelName returns the configured model identifier.
func (p *OpenAIProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *OpenAIProvider) SupportedLanguages() []string {
	return SupportedTranslationLanguageCodes()
}

func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ConfigError{Message: "text is required"}
	}
	targetLang := language.NormalizeCode(req.TargetLang)
	if targetLang == "" {
		return nil, &ConfigError{Message: "target language is required"}
	}

	systemPrompt := fmt.Sprintf(
		"You are a professional translator. Translate the user's text into %s. "+
			"Detect the source language yourself. Respond with a JSON object with two keys: "+
			"\"source_lang\" (the detected ISO 639-1 code of the input) and "+
			"\"translation\" (the translated text, nothing else).",
		languageName(targetLang),
	)

	started := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ServiceError{
			Message:   "openai translation call failed",
			Cause:     err,
			Retryable: isRetryableOpenAIError(err),
		}
	}
	if len(resp.Choices) == 0 {
		return nil, &ServiceError{Message: "openai returned no choices", Retryable: true}
	}

	var parsed struct {
		SourceLang  string `json:"source_lang"`
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, &ServiceError{Message: "decode openai translation payload", Cause: err, Retryable: true}
	}

	translated := strings.TrimSpace(parsed.Translation)
	if translated == "" {
		return nil, &ServiceError{Message: "openai translation was empty", Retryable: true}
	}

	sourceLang := language.NormalizeCode(parsed.SourceLang)
	if sourceLang == "" {
		sourceLang = language.NormalizeCode(req.SourceLang)
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	// Transport-level failures (no API response) are worth retrying.
	return true
}
