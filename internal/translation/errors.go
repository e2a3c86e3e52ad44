package translation

import (
	"errors"
	"fmt"
)

// ConfigError indicates missing or invalid credentials, or an unsupported
// language code requested explicitly. Never retried.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("translation config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ServiceError indicates a provider failure. Retryable marks transient
// conditions (network, rate limits); retry exhaustion and non-retryable API
// errors are terminal.
type ServiceError struct {
	Message   string
	Cause     error
	Retryable bool
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("translation service error: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err may succeed on another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Retryable
	}
	return false
}
