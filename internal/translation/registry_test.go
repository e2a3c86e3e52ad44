package translation

import (
	"context"
	"errors"
	"testing"
)

type namedProvider struct {
	name string
}

func (p *namedProvider) Translate(_ context.Context, _ TranslateRequest) (*TranslateResponse, error) {
	return &TranslateResponse{Text: "x", ProviderName: p.name}, nil
}

func (p *namedProvider) Name() string {
	return p.name
}

func (p *namedProvider) SupportedLanguages() []string {
	return nil
}

func TestRegistryResolvesByName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("openai")
	if err := registry.Register(&namedProvider{name: "openai"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(&namedProvider{name: "local"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	provider, err := registry.Provider("LOCAL")
	if err != nil {
		t.Fatalf("Provider: %v", err)
	}
	if provider.Name() != "local" {
		t.Errorf("resolved %q, want local", provider.Name())
	}

	provider, err = registry.Provider("")
	if err != nil {
		t.Fatalf("Provider(default): %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("default resolved %q, want openai", provider.Name())
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("openai")
	if err := registry.Register(&namedProvider{name: "openai"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := registry.Provider("missing")
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestRegistryEmpty(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("")
	_, err := registry.Provider("")
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}
