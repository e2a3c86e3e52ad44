package db

import (
	"encoding/json"
	"time"
)

// Run maps public.runs, one row per completed pipeline run.
type Run struct {
	RunID            int64           `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID          string          `gorm:"column:run_uuid;type:uuid;not null;default:gen_random_uuid();unique"`
	SourceName       string          `gorm:"column:source_name;type:text;not null"`
	SourceLang       string          `gorm:"column:source_lang;type:text;not null"`
	TargetLang       string          `gorm:"column:target_lang;type:text;not null"`
	ProviderName     string          `gorm:"column:provider_name;type:text;not null"`
	OriginalText     string          `gorm:"column:original_text;type:text;not null"`
	SimplifiedText   string          `gorm:"column:simplified_text;type:text;not null"`
	TranslatedText   string          `gorm:"column:translated_text;type:text;not null;default:''"`
	OriginalReport   json.RawMessage `gorm:"column:original_report;type:jsonb"`
	SimplifiedReport json.RawMessage `gorm:"column:simplified_report;type:jsonb"`
	Fidelity         *float64        `gorm:"column:fidelity;type:double precision"`
	CreatedAt        time.Time       `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (Run) TableName() string { return "runs" }
