package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RunSummary is one run row for history listings, without the text bodies.
type RunSummary struct {
	RunUUID      string
	SourceName   string
	SourceLang   string
	TargetLang   string
	ProviderName string
	Fidelity     *float64
	CreatedAt    time.Time
}

// InsertRunParams holds the fields stored for a completed pipeline run.
type InsertRunParams struct {
	SourceName       string
	SourceLang       string
	TargetLang       string
	ProviderName     string
	OriginalText     string
	SimplifiedText   string
	TranslatedText   string
	OriginalReport   json.RawMessage
	SimplifiedReport json.RawMessage
	Fidelity         *float64
}

// InsertRun stores a completed run and returns its UUID.
func (p *Pool) InsertRun(ctx context.Context, params InsertRunParams) (string, error) {
	const q = `
INSERT INTO runs (
	source_name,
	source_lang,
	target_lang,
	provider_name,
	original_text,
	simplified_text,
	translated_text,
	original_report,
	simplified_report,
	fidelity
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING run_uuid::text
`

	var runUUID string
	err := p.QueryRow(ctx, q,
		strings.TrimSpace(params.SourceName),
		params.SourceLang,
		params.TargetLang,
		params.ProviderName,
		params.OriginalText,
		params.SimplifiedText,
		params.TranslatedText,
		params.OriginalReport,
		params.SimplifiedReport,
		params.Fidelity,
	).Scan(&runUUID)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runUUID, nil
}

// ListRuns returns the most recent runs, newest first.
func (p *Pool) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `
SELECT
	run_uuid::text,
	source_name,
	source_lang,
	target_lang,
	provider_name,
	fidelity,
	created_at
FROM runs
ORDER BY created_at DESC, run_id DESC
LIMIT $1
`

	rows, err := p.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	items := make([]RunSummary, 0, limit)
	for rows.Next() {
		var row RunSummary
		if err := rows.Scan(
			&row.RunUUID,
			&row.SourceName,
			&row.SourceLang,
			&row.TargetLang,
			&row.ProviderName,
			&row.Fidelity,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return items, nil
}

// GetRunByUUID returns one full run row.
func (p *Pool) GetRunByUUID(ctx context.Context, runUUID string) (Run, error) {
	const q = `
SELECT
	run_id,
	run_uuid::text,
	source_name,
	source_lang,
	target_lang,
	provider_name,
	original_text,
	simplified_text,
	translated_text,
	original_report,
	simplified_report,
	fidelity,
	created_at
FROM runs
WHERE run_uuid = $1::uuid
LIMIT 1
`

	var row Run
	err := p.QueryRow(ctx, q, strings.TrimSpace(runUUID)).Scan(
		&row.RunID,
		&row.RunUUID,
		&row.SourceName,
		&row.SourceLang,
		&row.TargetLang,
		&row.ProviderName,
		&row.OriginalText,
		&row.SimplifiedText,
		&row.TranslatedText,
		&row.OriginalReport,
		&row.SimplifiedReport,
		&row.Fidelity,
		&row.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return Run{}, ErrNoRows
		}
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	return row, nil
}
