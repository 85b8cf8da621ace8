package intel_test

import (
	"testing"

	"synapse/internal/intel"
	"synapse/internal/models"

	"github.com/stretchr/testify/require"
)

func TestScoreRelevance(t *testing.T) {
	uvp := models.UVP{
		TargetCustomer:     "busy professionals",
		TransformationGoal: "sustainable fitness habits",
		UniqueSolution:     "personal coaching sessions",
		Differentiators:    []string{"certified coaches"},
	}

	relevant := models.Trend{
		Title:       "Busy professionals turn to personal coaching",
		Description: "Fitness habits shift toward sustainable routines with certified coaches",
	}
	unrelated := models.Trend{
		Title:       "Municipal budget vote postponed",
		Description: "Council meets again next month",
	}

	high := intel.ScoreRelevance(relevant, uvp)
	low := intel.ScoreRelevance(unrelated, uvp)

	require.Greater(t, high, 0.8)
	require.Equal(t, 0.0, low)
	require.LessOrEqual(t, high, 1.0)
}

func TestScoreRelevance_PartialOverlap(t *testing.T) {
	uvp := models.UVP{
		TargetCustomer:     "local restaurants",
		TransformationGoal: "full tables on weekdays",
	}
	trend := models.Trend{Title: "Restaurants struggle with weekday traffic"}

	score := intel.ScoreRelevance(trend, uvp)
	require.Greater(t, score, 0.0)
	require.Less(t, score, 1.0)
}

func TestScoreRelevance_EmptyUVP(t *testing.T) {
	trend := models.Trend{Title: "Anything at all"}
	require.Equal(t, 0.0, intel.ScoreRelevance(trend, models.UVP{}))
}
