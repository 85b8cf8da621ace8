package synthesis

import (
	"context"
	"fmt"
	"strings"

	"synapse/internal/intel"
	"synapse/internal/llm"
	"synapse/internal/logger"
	"synapse/internal/models"
)

const (
	topTrendLimit  = 10
	signalLimit    = 10
	qualityTrends  = 10 // столько трендов считаем полной картиной отрасли
	qualitySignals = 3  // столько сигналов конкурентов считаем достаточными
	qualityProofs  = 3
)

// quality переводит количество собранных записей в оценку полноты [0, 1].
func quality(n, target int) float64 {
	q := float64(n) / float64(target)
	if q > 1 {
		q = 1
	}
	return q
}

// trendsExtractor собирает отраслевую картину из накопленных трендов.
type trendsExtractor struct {
	store Store
}

func NewTrendsExtractor(store Store) Extractor {
	return &trendsExtractor{store: store}
}

func (x *trendsExtractor) ID() string { return "industry_trends" }

func (x *trendsExtractor) Extract(ctx context.Context, p models.BusinessProfile) (ExtractionResult, error) {
	trends, err := x.store.ListTrends(ctx, p.Industry, "", topTrendLimit)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("list trends: %w", err)
	}
	counts, err := x.store.CountTrendsByCategory(ctx, p.Industry)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("count trends: %w", err)
	}

	sources := 0
	for _, t := range trends {
		sources += t.SourceCount
	}

	q := quality(len(trends), qualityTrends)
	return ExtractionResult{
		Data: models.IndustryIntel{TopTrends: trends, Categories: counts},
		Confidence: Confidence{
			Overall:     q,
			DataQuality: q,
			SourceCount: sources,
		},
		Metadata: Metadata{TaskType: "industry_analysis", Model: "local"},
	}, nil
}

// competitorExtractor собирает сигналы, снятые со страниц конкурентов.
type competitorExtractor struct {
	store Store
}

func NewCompetitorExtractor(store Store) Extractor {
	return &competitorExtractor{store: store}
}

func (x *competitorExtractor) ID() string { return "competitor_signals" }

func (x *competitorExtractor) Extract(ctx context.Context, p models.BusinessProfile) (ExtractionResult, error) {
	signals, err := x.store.ListSignals(ctx, p.ID, signalLimit)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("list signals: %w", err)
	}

	q := quality(len(signals), qualitySignals)
	return ExtractionResult{
		Data: models.CompetitiveIntel{Signals: signals},
		Confidence: Confidence{
			Overall:     q,
			DataQuality: q,
			SourceCount: len(signals),
		},
		Metadata: Metadata{TaskType: "competitive_analysis", Model: "local"},
	}, nil
}

// psychologyExtractor строит психологический портрет аудитории:
// триггеры считаются локально по тексту UVP, краткое резюме просит
// у дешёвой модели. Отказ модели портрет не срывает, только
// снижает уверенность.
type psychologyExtractor struct {
	client llm.Client
}

func NewPsychologyExtractor(client llm.Client) Extractor {
	return &psychologyExtractor{client: client}
}

func (x *psychologyExtractor) ID() string { return "customer_psychology" }

func (x *psychologyExtractor) Extract(ctx context.Context, p models.BusinessProfile) (ExtractionResult, error) {
	text := profileText(p)
	triggers := intel.MatchTriggers(text)

	q := quality(len(triggers), 2)
	result := ExtractionResult{
		Confidence: Confidence{
			Overall:     q,
			DataQuality: q,
			SourceCount: len(triggers),
		},
		Metadata: Metadata{TaskType: "psychology_analysis", Model: string(llm.TierHaiku)},
	}

	summary, err := x.client.Complete(ctx, llm.TierHaiku, psychologySystem, psychologyPrompt(p, triggers))
	if err != nil {
		logger.Namespace("synthesis").Warnf("Psychology summary failed: %v", err)
		result.Confidence.Overall *= 0.6
	}

	result.Data = models.PsychologyProfile{Triggers: triggers, Summary: summary}
	return result, nil
}

const psychologySystem = "You are a consumer psychologist advising a small business on what motivates its audience."

func psychologyPrompt(p models.BusinessProfile, triggers []models.TriggerScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s (%s).\n", p.Name, p.Industry)
	fmt.Fprintf(&b, "Target customer: %s.\n", p.UVP.TargetCustomer)
	fmt.Fprintf(&b, "Promise: %s.\n", p.UVP.TransformationGoal)
	if len(triggers) > 0 {
		names := make([]string, len(triggers))
		for i, tr := range triggers {
			names[i] = tr.Trigger
		}
		fmt.Fprintf(&b, "Detected triggers: %s.\n", strings.Join(names, ", "))
	}
	b.WriteString("In 2-3 sentences, describe what this audience responds to emotionally and which trigger to lead with.")
	return b.String()
}

func profileText(p models.BusinessProfile) string {
	parts := []string{p.UVP.TargetCustomer, p.UVP.TransformationGoal, p.UVP.UniqueSolution}
	parts = append(parts, p.UVP.Differentiators...)
	return strings.Join(parts, " ")
}

// proofExtractor упаковывает доказательства ценности из профиля.
type proofExtractor struct{}

func NewProofExtractor() Extractor {
	return proofExtractor{}
}

func (proofExtractor) ID() string { return "proof_points" }

func (proofExtractor) Extract(ctx context.Context, p models.BusinessProfile) (ExtractionResult, error) {
	q := quality(len(p.ProofPoints), qualityProofs)
	return ExtractionResult{
		Data: p.ProofPoints,
		Confidence: Confidence{
			Overall:     q,
			DataQuality: q,
			SourceCount: len(p.ProofPoints),
		},
		Metadata: Metadata{TaskType: "proof_collection", Model: "local"},
	}, nil
}
