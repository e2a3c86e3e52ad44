package translation

import (
	"fmt"
	"sort"
	"strings"

	"horse.fit/lucid/internal/config"
)

// DefaultProviderName is used when TRANSLATION_PROVIDER is unset.
const DefaultProviderName = "openai"

// Registry stores translation providers and resolves a default provider.
type Registry struct {
	providers       map[string]Provider
	defaultProvider string
}

func NewRegistry(defaultProvider string) *Registry {
	normalizedDefault := normalizeProviderName(defaultProvider)
	if normalizedDefault == "" {
		normalizedDefault = DefaultProviderName
	}

	return &Registry{
		providers:       make(map[string]Provider),
		defaultProvider: normalizedDefault,
	}
}

// NewRegistryFromConfig creates a provider registry with all providers the
// configuration can support, wrapped with the default retry policy.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	registry := NewRegistry(cfg.TranslationProvider)

	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		_ = registry.Register(NewRetryable(NewOpenAIProvider(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		}), DefaultRetryPolicy()))
	}
	if strings.TrimSpace(cfg.TranslationEndpoint) != "" {
		_ = registry.Register(NewRetryable(NewLocalProvider(cfg.TranslationEndpoint, cfg.TranslationModel), DefaultRetryPolicy()))
	}

	if _, exists := registry.providers[registry.defaultProvider]; !exists {
		for _, name := range registry.ProviderNames() {
			registry.defaultProvider = name
			break
		}
	}

	return registry
}

// Register adds one provider.
func (r *Registry) Register(provider Provider) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeProviderName(provider.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	r.providers[name] = provider
	return nil
}

// Provider resolves a provider by name. Empty names use the configured default provider.
func (r *Registry) Provider(name string) (Provider, error) {
	if r == nil {
		return nil, &ConfigError{Message: "registry is nil"}
	}
	if len(r.providers) == 0 {
		return nil, &ConfigError{Message: "no translation providers are configured (set OPENAI_API_KEY or TRANSLATION_ENDPOINT)"}
	}

	resolvedName := normalizeProviderName(name)
	if resolvedName == "" {
		resolvedName = r.defaultProvider
	}
	provider, ok := r.providers[resolvedName]
	if ok {
		return provider, nil
	}

	return nil, &ConfigError{
		Message: fmt.Sprintf("translation provider %q is not registered (available: %s)", resolvedName, strings.Join(r.ProviderNames(), ", ")),
	}
}

func (r *Registry) DefaultProvider() string {
	if r == nil {
		return ""
	}
	return r.defaultProvider
}

func (r *Registry) ProviderNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
