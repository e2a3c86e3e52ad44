// Package simplify rewrites text in plainer language through an LLM.
package simplify

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"horse.fit/lucid/internal/translation"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = float32(0.8)
	defaultMaxTokens   = 4096
	maxAttempts        = 5
	baseRetryDelay     = 1 * time.Second
)

// chatClient is the slice of the OpenAI client the simplifier needs.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Simplifier rewrites text in simpler language. Transient API failures are
// retried internally with exponential backoff and jitter before a terminal
// error surfaces.
type Simplifier struct {
	client chatClient
	model  string
	sleep  func(time.Duration)
}

// Config holds constructor options for the Simplifier.
type Config struct {
	APIKey  string
	Model   string // default: "gpt-4o-mini"
	BaseURL string // optional custom endpoint
}

func New(cfg Config) *Simplifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Simplifier{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		sleep:  time.Sleep,
	}
}

// Simplify rewrites text according to params and returns the rewritten text.
func (s *Simplifier) Simplify(ctx context.Context, text string, params StyleParams) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &translation.ConfigError{Message: "text is required"}
	}
	if err := params.Validate(); err != nil {
		return "", &translation.ConfigError{Message: "invalid style parameters", Cause: err}
	}

	model := strings.TrimSpace(params.Model)
	if model == "" {
		model = s.model
	}
	temperature := params.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := params.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(params)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(trimmed, params)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				lastErr = &translation.ServiceError{Message: "simplifier returned no choices", Retryable: true}
			} else {
				simplified := strings.TrimSpace(resp.Choices[0].Message.Content)
				if simplified == "" {
					lastErr = &translation.ServiceError{Message: "simplifier returned empty text", Retryable: true}
				} else {
					return simplified, nil
				}
			}
		} else {
			lastErr = &translation.ServiceError{
				Message:   "simplifier call failed",
				Cause:     err,
				Retryable: isRetryable(err),
			}
		}

		if !translation.IsRetryable(lastErr) {
			return "", lastErr
		}
		if attempt < maxAttempts-1 {
			s.sleep(backoffDelay(attempt))
		}
	}

	return "", fmt.Errorf("simplification failed after %d attempts: %w", maxAttempts, lastErr)
}

// backoffDelay is 2^attempt seconds plus up to one second of jitter.
func backoffDelay(attempt int) time.Duration {
	return baseRetryDelay<<attempt + time.Duration(rand.Int63n(int64(time.Second)))
}

func isRetryable(err error) bool {
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
	return true
}
