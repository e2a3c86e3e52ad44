// Package styleprofile loads simplification style profiles from JSON files,
// validated against a bundled schema.
package styleprofile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/lucid/internal/simplify"
)

//go:embed style_profile.schema.json
var profileSchemaJSON string

// Profile mirrors the style profile file layout.
type Profile struct {
	TechnicalDomain string   `json:"technical_domain,omitempty"`
	Tone            string   `json:"tone,omitempty"`
	Summarize       bool     `json:"summarize,omitempty"`
	Model           string   `json:"model,omitempty"`
	Complexity      int      `json:"complexity,omitempty"`
	Focus           []string `json:"focus,omitempty"`
	Temperature     float32  `json:"temperature,omitempty"`
	MaxTokens       int      `json:"max_tokens,omitempty"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// LoadFile reads and validates a style profile file and maps it to StyleParams.
func LoadFile(path string) (simplify.StyleParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return simplify.StyleParams{}, fmt.Errorf("read style profile: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the profile schema and maps it to StyleParams.
func Parse(raw []byte) (simplify.StyleParams, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return simplify.StyleParams{}, fmt.Errorf("decode style profile JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return simplify.StyleParams{}, fmt.Errorf("load style profile schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return simplify.StyleParams{}, fmt.Errorf("style profile validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return simplify.StyleParams{}, fmt.Errorf("normalize style profile JSON: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(normalized, &profile); err != nil {
		return simplify.StyleParams{}, fmt.Errorf("unmarshal style profile: %w", err)
	}

	return profile.Params()
}

// Params maps the raw profile onto validated StyleParams.
func (p Profile) Params() (simplify.StyleParams, error) {
	tone, err := simplify.ParseTone(p.Tone)
	if err != nil {
		return simplify.StyleParams{}, err
	}
	focus, err := simplify.ParseFocus(strings.Join(p.Focus, ","))
	if err != nil {
		return simplify.StyleParams{}, err
	}

	params := simplify.StyleParams{
		TechnicalDomain: strings.TrimSpace(p.TechnicalDomain),
		Tone:            tone,
		Summarize:       p.Summarize,
		Model:           strings.TrimSpace(p.Model),
		Complexity:      p.Complexity,
		Focus:           focus,
		Temperature:     p.Temperature,
		MaxTokens:       p.MaxTokens,
	}
	if err := params.Validate(); err != nil {
		return simplify.StyleParams{}, err
	}
	return params, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("style_profile.schema.json", strings.NewReader(profileSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("style_profile.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("profile is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("profile contains trailing content")
	}

	return value, nil
}
