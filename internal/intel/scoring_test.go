package intel_test

import (
	"testing"

	"synapse/internal/intel"
	"synapse/internal/models"

	"github.com/stretchr/testify/require"
)

func TestScoreIdea(t *testing.T) {
	score, b := intel.ScoreIdea(1, 1, 1, 1)
	require.InDelta(t, 1.0, score, 0.001)
	require.Equal(t, 1.0, b.Relevance)

	score, _ = intel.ScoreIdea(0, 0, 0, 0)
	require.Equal(t, 0.0, score)

	// Компоненты вне диапазона ограничиваются до подсчёта.
	score, b = intel.ScoreIdea(2.0, -1.0, 0.5, 0.5)
	require.Equal(t, 1.0, b.Relevance)
	require.Equal(t, 0.0, b.Momentum)
	require.InDelta(t, 0.35+0.25*0.5+0.15*0.5, score, 0.001)
}

func TestScoreIdea_WeightsFavorRelevance(t *testing.T) {
	onlyRelevance, _ := intel.ScoreIdea(1, 0, 0, 0)
	onlyProof, _ := intel.ScoreIdea(0, 0, 0, 1)
	require.Greater(t, onlyRelevance, onlyProof)
}

func TestTriggerFit(t *testing.T) {
	matched := []models.TriggerScore{
		{Trigger: intel.TriggerTrust, Score: 1.0},
		{Trigger: intel.TriggerUrgency, Score: 0.5},
	}

	fit := intel.TriggerFit(matched, []string{intel.TriggerTrust, intel.TriggerUrgency})
	require.InDelta(t, 0.75, fit, 0.001)

	fit = intel.TriggerFit(matched, []string{intel.TriggerStatus})
	require.Equal(t, 0.0, fit)

	require.Equal(t, 0.0, intel.TriggerFit(matched, nil))
}

func TestProofSupport(t *testing.T) {
	require.Equal(t, 0.0, intel.ProofSupport(nil))

	two := []models.ProofPoint{{Text: "a"}, {Text: "b"}}
	require.InDelta(t, 2.0/3.0, intel.ProofSupport(two), 0.001)

	five := make([]models.ProofPoint, 5)
	require.Equal(t, 1.0, intel.ProofSupport(five))
}

func TestRankIdeas(t *testing.T) {
	ideas := []models.CampaignIdea{
		{ID: "low", Score: 0.2},
		{ID: "high", Score: 0.9},
		{ID: "mid-a", Score: 0.5},
		{ID: "mid-b", Score: 0.5},
	}

	intel.RankIdeas(ideas)

	require.Equal(t, "high", ideas[0].ID)
	require.Equal(t, "mid-a", ideas[1].ID)
	require.Equal(t, "mid-b", ideas[2].ID)
	require.Equal(t, "low", ideas[3].ID)
}
