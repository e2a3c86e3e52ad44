package translation

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy bounds the retry loop for transient provider failures.
type RetryPolicy struct {
	MaxAttempts int           // Total attempts including the first call
	BaseDelay   time.Duration // Initial delay, doubled per attempt
	MaxDelay    time.Duration // Ceiling for the computed delay
	MaxJitter   time.Duration // Random extra delay in [0, MaxJitter)
}

// DefaultRetryPolicy matches the upstream services' behavior: five attempts
// with exponential backoff plus up to one second of jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
		MaxJitter:   1 * time.Second,
	}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	delay := p.BaseDelay << attempt
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.MaxJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.MaxJitter)))
	}
	return delay
}

// Retryable wraps a Provider with bounded exponential backoff. Only errors
// marked retryable are retried; exhaustion surfaces the last error as-is.
type Retryable struct {
	provider Provider
	policy   RetryPolicy
}

func NewRetryable(provider Provider, policy RetryPolicy) *Retryable {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Retryable{provider: provider, policy: policy}
}

func (r *Retryable) Name() string {
	return r.provider.Name()
}

func (r *Retryable) SupportedLanguages() []string {
	return r.provider.SupportedLanguages()
}

func (r *Retryable) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	var lastErr error

	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := r.provider.Translate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if attempt == r.policy.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.policy.delay(attempt)):
		}
	}

	return nil, lastErr
}
