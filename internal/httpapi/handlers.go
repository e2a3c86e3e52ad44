package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/lucid/internal/db"
	"horse.fit/lucid/internal/fidelity"
	"horse.fit/lucid/internal/langdetect"
	"horse.fit/lucid/internal/language"
	"horse.fit/lucid/internal/readability"
	"horse.fit/lucid/internal/simplify"
	"horse.fit/lucid/internal/translation"
)

type analyzeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang,omitempty"`
}

type analyzeResponse struct {
	Lang   string             `json:"lang"`
	Report readability.Report `json:"report"`
}

type scoreRequest struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	Provider       string `json:"provider,omitempty"`
}

type scoreResponse struct {
	Fidelity   float64 `json:"fidelity"`
	SourceLang string  `json:"source_lang"`
	Provider   string  `json:"provider"`
}

type simplifyRequest struct {
	Text            string   `json:"text"`
	TechnicalDomain string   `json:"technical_domain,omitempty"`
	Tone            string   `json:"tone,omitempty"`
	Summarize       bool     `json:"summarize,omitempty"`
	Model           string   `json:"model,omitempty"`
	Complexity      int      `json:"complexity,omitempty"`
	Focus           []string `json:"focus,omitempty"`
	Temperature     float32  `json:"temperature,omitempty"`
	MaxTokens       int      `json:"max_tokens,omitempty"`
}

type simplifyResponse struct {
	SimplifiedText string `json:"simplified_text"`
}

type runListItem struct {
	RunUUID      string    `json:"run_uuid"`
	SourceName   string    `json:"source_name"`
	SourceLang   string    `json:"source_lang"`
	TargetLang   string    `json:"target_lang"`
	ProviderName string    `json:"provider_name"`
	Fidelity     *float64  `json:"fidelity,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type runDetailResponse struct {
	runListItem
	OriginalText     string          `json:"original_text"`
	SimplifiedText   string          `json:"simplified_text"`
	TranslatedText   string          `json:"translated_text,omitempty"`
	OriginalReport   json.RawMessage `json:"original_report,omitempty"`
	SimplifiedReport json.RawMessage `json:"simplified_report,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service":   "lucid",
		"time":      time.Now().UTC(),
		"providers": s.providers.ProviderNames(),
		"history":   s.pool != nil,
	})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if strings.TrimSpace(req.Text) == "" {
		return failValidation(c, map[string]string{"text": "is required"})
	}

	lang := language.NormalizeCode(req.Lang)
	if req.Lang != "" && lang == "" {
		return failValidation(c, map[string]string{"lang": "must be an ISO 639-1 code"})
	}
	if lang == "" {
		lang = langdetect.DetectOrFallback(req.Text)
	} else {
		lang = language.ResolveMetricLanguage(lang)
	}

	return success(c, analyzeResponse{
		Lang:   lang,
		Report: s.analyzer.AnalyzeAs(req.Text, lang),
	})
}

func (s *Server) handleScore(c echo.Context) error {
	var req scoreRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.OriginalText) == "" {
		fieldErrors["original_text"] = "is required"
	}
	if strings.TrimSpace(req.TranslatedText) == "" {
		fieldErrors["translated_text"] = "is required"
	}
	sourceLang := language.NormalizeCode(req.SourceLang)
	if sourceLang == "" {
		fieldErrors["source_lang"] = "must be an ISO 639-1 code"
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	provider, err := s.providers.Provider(req.Provider)
	if err != nil {
		return fail(c, http.StatusServiceUnavailable, err.Error(), nil)
	}

	score, err := fidelity.Score(c.Request().Context(), req.OriginalText, req.TranslatedText, sourceLang, provider)
	if err != nil {
		var configErr *translation.ConfigError
		if errors.As(err, &configErr) {
			return fail(c, http.StatusBadRequest, configErr.Error(), nil)
		}
		s.logger.Error().Err(err).Str("provider", provider.Name()).Msg("fidelity scoring failed")
		return fail(c, http.StatusBadGateway, "Fidelity scoring failed", nil)
	}

	return success(c, scoreResponse{
		Fidelity:   score,
		SourceLang: sourceLang,
		Provider:   provider.Name(),
	})
}

func (s *Server) handleSimplify(c echo.Context) error {
	if s.simplifier == nil {
		return fail(c, http.StatusServiceUnavailable, "Simplifier is not configured (set OPENAI_API_KEY)", nil)
	}

	var req simplifyRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if strings.TrimSpace(req.Text) == "" {
		return failValidation(c, map[string]string{"text": "is required"})
	}

	params, err := buildStyleParams(req)
	if err != nil {
		return failValidation(c, map[string]string{"style": err.Error()})
	}

	simplified, err := s.simplifier.Simplify(c.Request().Context(), req.Text, params)
	if err != nil {
		var configErr *translation.ConfigError
		if errors.As(err, &configErr) {
			return fail(c, http.StatusBadRequest, configErr.Error(), nil)
		}
		s.logger.Error().Err(err).Msg("simplification failed")
		return fail(c, http.StatusBadGateway, "Simplification failed", nil)
	}

	return success(c, simplifyResponse{SimplifiedText: simplified})
}

func (s *Server) handleRuns(c echo.Context) error {
	if s.pool == nil {
		return fail(c, http.StatusServiceUnavailable, "Run history is not configured (set DATABASE_URL)", nil)
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), 20, 1, 200)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	rows, err := s.pool.ListRuns(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("query runs failed")
		return internalError(c, "Failed to load runs")
	}

	items := make([]runListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, runListItem{
			RunUUID:      row.RunUUID,
			SourceName:   row.SourceName,
			SourceLang:   row.SourceLang,
			TargetLang:   row.TargetLang,
			ProviderName: row.ProviderName,
			Fidelity:     row.Fidelity,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}

	return success(c, map[string]any{
		"items": items,
		"limit": limit,
	})
}

func (s *Server) handleRunDetail(c echo.Context) error {
	if s.pool == nil {
		return fail(c, http.StatusServiceUnavailable, "Run history is not configured (set DATABASE_URL)", nil)
	}

	runUUID := strings.TrimSpace(c.Param("run_uuid"))
	if runUUID == "" {
		return failValidation(c, map[string]string{"run_uuid": "is required"})
	}

	row, err := s.pool.GetRunByUUID(c.Request().Context(), runUUID)
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Run not found")
		}
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("query run failed")
		return internalError(c, "Failed to load run")
	}

	return success(c, runDetailResponse{
		runListItem: runListItem{
			RunUUID:      row.RunUUID,
			SourceName:   row.SourceName,
			SourceLang:   row.SourceLang,
			TargetLang:   row.TargetLang,
			ProviderName: row.ProviderName,
			Fidelity:     row.Fidelity,
			CreatedAt:    row.CreatedAt.UTC(),
		},
		OriginalText:     row.OriginalText,
		SimplifiedText:   row.SimplifiedText,
		TranslatedText:   row.TranslatedText,
		OriginalReport:   row.OriginalReport,
		SimplifiedReport: row.SimplifiedReport,
	})
}

func buildStyleParams(req simplifyRequest) (simplify.StyleParams, error) {
	tone, err := simplify.ParseTone(req.Tone)
	if err != nil {
		return simplify.StyleParams{}, err
	}
	focus, err := simplify.ParseFocus(strings.Join(req.Focus, ","))
	if err != nil {
		return simplify.StyleParams{}, err
	}

	params := simplify.StyleParams{
		TechnicalDomain: strings.TrimSpace(req.TechnicalDomain),
		Tone:            tone,
		Summarize:       req.Summarize,
		Model:           strings.TrimSpace(req.Model),
		Complexity:      req.Complexity,
		Focus:           focus,
		Temperature:     req.Temperature,
		MaxTokens:       req.MaxTokens,
	}
	if err := params.Validate(); err != nil {
		return simplify.StyleParams{}, err
	}
	return params, nil
}

func decodeJSONBody(c echo.Context, target any) error {
	if c.Request().Body == nil {
		return fmt.Errorf("request body is required")
	}
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}
