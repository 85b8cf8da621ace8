package intel_test

import (
	"testing"

	"synapse/internal/intel"

	"github.com/stretchr/testify/require"
)

func TestMatchTriggers(t *testing.T) {
	scores := intel.MatchTriggers("Certified trainers, proven results, money-back guarantee")

	require.NotEmpty(t, scores)
	require.Equal(t, intel.TriggerTrust, scores[0].Trigger)
	require.InDelta(t, 0.75, scores[0].Score, 0.001)
	require.Len(t, scores[0].Matches, 3)
}

func TestMatchTriggers_SortedByScore(t *testing.T) {
	text := "Join our community today only and unlock your potential"
	scores := intel.MatchTriggers(text)

	require.GreaterOrEqual(t, len(scores), 2)
	for i := 1; i < len(scores); i++ {
		require.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
}

func TestMatchTriggers_ScoreCapped(t *testing.T) {
	// Пять совпадений по одному триггеру, счёт не превышает 1.0.
	text := "proven guarantee certified trusted expert"
	scores := intel.MatchTriggers(text)

	require.Equal(t, intel.TriggerTrust, scores[0].Trigger)
	require.Equal(t, 1.0, scores[0].Score)
}

func TestMatchTriggers_NoMatches(t *testing.T) {
	scores := intel.MatchTriggers("Обычный текст без триггеров")
	require.Empty(t, scores)
}
