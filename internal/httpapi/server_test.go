package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"horse.fit/lucid/internal/auth"
	"horse.fit/lucid/internal/readability"
	"horse.fit/lucid/internal/translation"
)

type stubProvider struct {
	name   string
	output string
	calls  int
}

func (p *stubProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	p.calls++
	return &translation.TranslateResponse{
		Text:         p.output,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.name,
	}, nil
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) SupportedLanguages() []string { return []string{"en", "es"} }

func newTestServer(t *testing.T, provider translation.Provider, opts Options) *Server {
	t.Helper()

	analyzer := readability.NewAnalyzer(
		func(string) string { return "en" },
		readability.NewEasyWords(nil, zerolog.Nop()),
		zerolog.Nop(),
	)

	registry := translation.NewRegistry("stub")
	if provider != nil {
		if err := registry.Register(provider); err != nil {
			t.Fatal(err)
		}
	}

	return NewServer(analyzer, registry, nil, nil, zerolog.Nop(), opts)
}

func doRequest(t *testing.T, s *Server, method, path, body string, header http.Header) (*httptest.ResponseRecorder, jsendResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	rec := httptest.NewRecorder()
	s.buildEcho().ServeHTTP(rec, req)

	var resp jsendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, rec.Body.String())
	}
	return rec, resp
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &stubProvider{name: "stub"}, Options{})
	rec, resp := doRequest(t, s, http.MethodGet, "/api/health", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q", resp.Status)
	}
}

func TestHandleAnalyze(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, Options{})
	body := `{"text": "The cat sat on the mat. The dog barked at the cat. Everyone went home."}`
	rec, resp := doRequest(t, s, http.MethodPost, "/api/analyze", body, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	if data["lang"] != "en" {
		t.Errorf("lang = %v", data["lang"])
	}
	report, ok := data["report"].(map[string]any)
	if !ok {
		t.Fatalf("report = %T", data["report"])
	}
	if _, ok := report["flesch_reading_ease"]; !ok {
		t.Errorf("report missing flesch_reading_ease: %v", report)
	}
}

func TestHandleAnalyzeValidation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, Options{})

	rec, _ := doRequest(t, s, http.MethodPost, "/api/analyze", `{"text": "   "}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank text: status = %d, want 400", rec.Code)
	}

	rec, _ = doRequest(t, s, http.MethodPost, "/api/analyze", `{"text": "ok", "lang": "nope"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad lang: status = %d, want 400", rec.Code)
	}

	rec, _ = doRequest(t, s, http.MethodPost, "/api/analyze", `not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body: status = %d, want 400", rec.Code)
	}
}

func TestHandleScore(t *testing.T) {
	t.Parallel()

	original := "The quick brown fox jumps over the lazy dog near the river bank today."
	provider := &stubProvider{name: "stub", output: original}
	s := newTestServer(t, provider, Options{})

	body := `{"original_text": "` + original + `", "translated_text": "some translated text", "source_lang": "en"}`
	rec, resp := doRequest(t, s, http.MethodPost, "/api/score", body, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	fidelityScore, ok := data["fidelity"].(float64)
	if !ok {
		t.Fatalf("fidelity = %T", data["fidelity"])
	}
	if fidelityScore < 0.999 {
		t.Errorf("fidelity = %v, want ~1 for identical back-translation", fidelityScore)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestHandleScoreWithoutProviders(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, Options{})
	body := `{"original_text": "a b c", "translated_text": "x y z", "source_lang": "en"}`
	rec, _ := doRequest(t, s, http.MethodPost, "/api/score", body, nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleSimplifyUnconfigured(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, Options{})
	rec, _ := doRequest(t, s, http.MethodPost, "/api/simplify", `{"text": "hello"}`, nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleRunsWithoutDatabase(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil, Options{})
	rec, _ := doRequest(t, s, http.MethodGet, "/api/runs", "", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRequireToken(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashToken("open-sesame")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, nil, Options{TokenHash: hash})

	rec, _ := doRequest(t, s, http.MethodPost, "/api/analyze", `{"text": "hello world"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer wrong-token")
	rec, _ = doRequest(t, s, http.MethodPost, "/api/analyze", `{"text": "hello world"}`, header)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}

	header.Set("Authorization", "Bearer open-sesame")
	rec, _ = doRequest(t, s, http.MethodPost, "/api/analyze", `{"text": "hello world"}`, header)
	if rec.Code != http.StatusOK {
		t.Errorf("good token: status = %d, want 200", rec.Code)
	}

	rec, _ = doRequest(t, s, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health should stay open: status = %d, want 200", rec.Code)
	}
}
