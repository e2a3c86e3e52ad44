package simplify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"horse.fit/lucid/internal/translation"
)

type stubChatClient struct {
	calls    int
	failures int
	err      error
	content  string
	lastReq  openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	s.lastReq = req
	if s.calls <= s.failures {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func newTestSimplifier(client chatClient) *Simplifier {
	return &Simplifier{
		client: client,
		model:  defaultModel,
		sleep:  func(time.Duration) {},
	}
}

func TestSimplifyReturnsRewrittenText(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{content: "  Simple version.  "}
	s := newTestSimplifier(client)

	got, err := s.Simplify(context.Background(), "Complex original.", StyleParams{TechnicalDomain: "Medicine"})
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	if got != "Simple version." {
		t.Errorf("Simplify = %q, want trimmed content", got)
	}
	if client.lastReq.Temperature != defaultTemperature {
		t.Errorf("temperature = %v, want default %v", client.lastReq.Temperature, defaultTemperature)
	}
	if client.lastReq.MaxTokens != defaultMaxTokens {
		t.Errorf("max tokens = %d, want default %d", client.lastReq.MaxTokens, defaultMaxTokens)
	}
}

func TestSimplifyRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{
		failures: 2,
		err:      &openai.APIError{HTTPStatusCode: 429},
		content:  "done",
	}
	s := newTestSimplifier(client)

	got, err := s.Simplify(context.Background(), "text", StyleParams{})
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	if got != "done" {
		t.Errorf("Simplify = %q, want done", got)
	}
	if client.calls != 3 {
		t.Errorf("client called %d times, want 3", client.calls)
	}
}

func TestSimplifyStopsOnTerminalError(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{
		failures: 100,
		err:      &openai.APIError{HTTPStatusCode: 401},
	}
	s := newTestSimplifier(client)

	_, err := s.Simplify(context.Background(), "text", StyleParams{})
	var serviceErr *translation.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("error = %v, want ServiceError", err)
	}
	if client.calls != 1 {
		t.Errorf("client called %d times, want 1 (auth errors are terminal)", client.calls)
	}
}

func TestSimplifyExhaustsAttempts(t *testing.T) {
	t.Parallel()

	client := &stubChatClient{
		failures: 100,
		err:      &openai.APIError{HTTPStatusCode: 503},
	}
	s := newTestSimplifier(client)

	_, err := s.Simplify(context.Background(), "text", StyleParams{})
	if err == nil {
		t.Fatal("Simplify returned nil error after exhaustion")
	}
	if client.calls != maxAttempts {
		t.Errorf("client called %d times, want %d", client.calls, maxAttempts)
	}
}

func TestSimplifyRejectsInvalidParams(t *testing.T) {
	t.Parallel()

	s := newTestSimplifier(&stubChatClient{content: "x"})

	cases := []StyleParams{
		{Tone: "angry"},
		{Complexity: 9},
		{Focus: []FocusAspect{"speed"}},
		{Temperature: 3},
	}
	for _, params := range cases {
		_, err := s.Simplify(context.Background(), "text", params)
		var configErr *translation.ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("params %+v: error = %v, want ConfigError", params, err)
		}
	}

	if _, err := s.Simplify(context.Background(), "   ", StyleParams{}); err == nil {
		t.Error("empty text accepted, want ConfigError")
	}
}

func TestBuildPrompts(t *testing.T) {
	t.Parallel()

	system := buildSystemPrompt(StyleParams{TechnicalDomain: "Computer Science", Summarize: true, Focus: []FocusAspect{FocusClarity, FocusConciseness}})
	if !strings.Contains(system, "Computer Science") {
		t.Errorf("system prompt missing domain: %q", system)
	}
	if !strings.Contains(system, "condensing") {
		t.Errorf("system prompt missing summarize instruction: %q", system)
	}
	if !strings.Contains(system, "clarity and conciseness") {
		t.Errorf("system prompt missing focus aspects: %q", system)
	}

	user := buildUserPrompt("Original body.", StyleParams{Tone: ToneInformal, Complexity: 2})
	if !strings.Contains(user, "informal") {
		t.Errorf("user prompt missing tone: %q", user)
	}
	if !strings.Contains(user, "complexity level 2") {
		t.Errorf("user prompt missing complexity: %q", user)
	}
	if !strings.Contains(user, "Original body.") {
		t.Errorf("user prompt missing text: %q", user)
	}
	if !strings.Contains(user, "Do not summarize") {
		t.Errorf("user prompt should preserve content when not summarizing: %q", user)
	}
}

func TestParseToneAndFocus(t *testing.T) {
	t.Parallel()

	if tone, err := ParseTone(" Formal "); err != nil || tone != ToneFormal {
		t.Errorf("ParseTone = %v, %v", tone, err)
	}
	if _, err := ParseTone("shouty"); err == nil {
		t.Error("ParseTone accepted unknown tone")
	}

	aspects, err := ParseFocus("clarity, formality")
	if err != nil {
		t.Fatalf("ParseFocus: %v", err)
	}
	if len(aspects) != 2 || aspects[0] != FocusClarity || aspects[1] != FocusFormality {
		t.Errorf("ParseFocus = %v", aspects)
	}
	if _, err := ParseFocus("speed"); err == nil {
		t.Error("ParseFocus accepted unknown aspect")
	}
}
