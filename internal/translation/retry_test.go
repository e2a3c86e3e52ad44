package translation

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyProvider struct {
	name     string
	calls    int
	failures int
	err      error
	resp     TranslateResponse
}

func (p *flakyProvider) Translate(_ context.Context, _ TranslateRequest) (*TranslateResponse, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, p.err
	}
	resp := p.resp
	if resp.ProviderName == "" {
		resp.ProviderName = p.name
	}
	return &resp, nil
}

func (p *flakyProvider) Name() string {
	return p.name
}

func (p *flakyProvider) SupportedLanguages() []string {
	return []string{"en", "pt"}
}

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		MaxJitter:   0,
	}
}

func TestRetryableRecoversFromTransientFailure(t *testing.T) {
	t.Parallel()

	provider := &flakyProvider{
		name:     "stub",
		failures: 2,
		err:      &ServiceError{Message: "rate limited", Retryable: true},
		resp:     TranslateResponse{Text: "olá", SourceLang: "en", TargetLang: "pt"},
	}

	resp, err := NewRetryable(provider, fastPolicy(5)).Translate(context.Background(), TranslateRequest{Text: "hello", TargetLang: "pt"})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if resp.Text != "olá" {
		t.Errorf("Text = %q, want %q", resp.Text, "olá")
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
}

func TestRetryableExhaustsAttempts(t *testing.T) {
	t.Parallel()

	transient := &ServiceError{Message: "unavailable", Retryable: true}
	provider := &flakyProvider{name: "stub", failures: 100, err: transient}

	_, err := NewRetryable(provider, fastPolicy(3)).Translate(context.Background(), TranslateRequest{Text: "hello", TargetLang: "pt"})
	if err == nil {
		t.Fatal("Translate returned nil error after exhaustion")
	}
	if !errors.Is(err, transient) {
		t.Errorf("error = %v, want last transient error", err)
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
}

func TestRetryableDoesNotRetryConfigErrors(t *testing.T) {
	t.Parallel()

	provider := &flakyProvider{
		name:     "stub",
		failures: 100,
		err:      &ConfigError{Message: "bad language code"},
	}

	_, err := NewRetryable(provider, fastPolicy(5)).Translate(context.Background(), TranslateRequest{Text: "hello", TargetLang: "xx"})
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestRetryableHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	provider := &flakyProvider{
		name:     "stub",
		failures: 100,
		err:      &ServiceError{Message: "unavailable", Retryable: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRetryable(provider, fastPolicy(5)).Translate(ctx, TranslateRequest{Text: "hello", TargetLang: "pt"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) = true")
	}
	if IsRetryable(&ConfigError{Message: "x"}) {
		t.Error("ConfigError should not be retryable")
	}
	if !IsRetryable(&ServiceError{Message: "x", Retryable: true}) {
		t.Error("retryable ServiceError reported as not retryable")
	}
	if IsRetryable(&ServiceError{Message: "x"}) {
		t.Error("terminal ServiceError reported as retryable")
	}
}
