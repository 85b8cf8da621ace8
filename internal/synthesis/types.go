package synthesis

import (
	"context"
	"time"

	"synapse/internal/models"
)

// Confidence — оценка достоверности одного извлечения.
type Confidence struct {
	Overall     float64 `json:"overall"`
	DataQuality float64 `json:"data_quality"`
	SourceCount int     `json:"source_count"`
}

// Metadata — служебная информация об извлечении.
type Metadata struct {
	ExtractorID string    `json:"extractor_id"`
	TaskType    string    `json:"task_type"`
	Model       string    `json:"model"`
	FromCache   bool      `json:"from_cache"`
	TimingMS    int64     `json:"timing_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// ExtractionResult — результат работы одного экстрактора. Data хранит
// доменную структуру (IndustryIntel, CompetitiveIntel и т.д.).
type ExtractionResult struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data,omitempty"`
	Confidence Confidence `json:"confidence"`
	Metadata   Metadata   `json:"metadata"`
	Err        string     `json:"error,omitempty"`
}

// Extractor достаёт один срез интеллекта по профилю бизнеса.
type Extractor interface {
	ID() string
	Extract(ctx context.Context, p models.BusinessProfile) (ExtractionResult, error)
}

// Store — операции хранилища, нужные синтезу контекста.
type Store interface {
	GetProfile(ctx context.Context, id string) (models.BusinessProfile, error)
	SaveContext(ctx context.Context, dc models.DeepContext) error
	GetContext(ctx context.Context, businessID string) (models.DeepContext, error)
	ListTrends(ctx context.Context, industry, category string, limit int) ([]models.Trend, error)
	CountTrendsByCategory(ctx context.Context, industry string) (map[string]int, error)
	ListSignals(ctx context.Context, businessID string, limit int) ([]models.CompetitorSignal, error)
}
