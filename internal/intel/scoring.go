package intel

import (
	"sort"

	"synapse/internal/models"
)

// Весовые коэффициенты итоговой оценки идеи кампании.
const (
	weightRelevance    = 0.35
	weightMomentum     = 0.25
	weightTriggerFit   = 0.25
	weightProofSupport = 0.15
)

// ScoreIdea собирает компоненты в итоговую оценку 0..1 с разбивкой.
// Каждый компонент предварительно ограничивается диапазоном 0..1.
func ScoreIdea(relevance, momentum, triggerFit, proofSupport float64) (float64, models.ScoreBreakdown) {
	b := models.ScoreBreakdown{
		Relevance:    clamp01(relevance),
		Momentum:     clamp01(momentum),
		TriggerFit:   clamp01(triggerFit),
		ProofSupport: clamp01(proofSupport),
	}
	score := b.Relevance*weightRelevance +
		b.Momentum*weightMomentum +
		b.TriggerFit*weightTriggerFit +
		b.ProofSupport*weightProofSupport
	return score, b
}

// TriggerFit — насколько сработавшие в тексте триггеры покрывают целевые
// триггеры шаблона: средний счёт целевых триггеров среди найденных.
func TriggerFit(matched []models.TriggerScore, targets []string) float64 {
	if len(targets) == 0 {
		return 0
	}
	byTrigger := make(map[string]float64, len(matched))
	for _, m := range matched {
		byTrigger[m.Trigger] = m.Score
	}
	sum := 0.0
	for _, t := range targets {
		sum += byTrigger[t]
	}
	return clamp01(sum / float64(len(targets)))
}

// ProofSupport — запас доказательств ценности: три и больше proof points
// дают максимум.
func ProofSupport(points []models.ProofPoint) float64 {
	n := float64(len(points))
	if n >= 3 {
		return 1
	}
	return n / 3
}

// RankIdeas сортирует идеи по убыванию оценки. Сортировка стабильна:
// идеи с равной оценкой сохраняют исходный порядок.
func RankIdeas(ideas []models.CampaignIdea) {
	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].Score > ideas[j].Score
	})
}
