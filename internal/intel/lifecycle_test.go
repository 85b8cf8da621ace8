package intel_test

import (
	"testing"
	"time"

	"synapse/internal/intel"
	"synapse/internal/models"

	"github.com/stretchr/testify/require"
)

func trend(sources int, firstSeen, lastSeen time.Time) models.Trend {
	return models.Trend{
		Title:       "trend",
		SourceCount: sources,
		FirstSeen:   firstSeen,
		LastSeen:    lastSeen,
	}
}

func TestEstimateLifecycle_Peaking(t *testing.T) {
	now := time.Now()
	lc := intel.EstimateLifecycle(trend(20, now.Add(-5*24*time.Hour), now))

	require.Equal(t, intel.StagePeaking, lc.Stage)
	require.InDelta(t, 4.0, lc.Velocity, 0.01)
	require.InDelta(t, 1.0, lc.Momentum, 0.01)
}

func TestEstimateLifecycle_Rising(t *testing.T) {
	now := time.Now()
	lc := intel.EstimateLifecycle(trend(10, now.Add(-5*24*time.Hour), now))

	require.Equal(t, intel.StageRising, lc.Stage)
	require.InDelta(t, 2.0, lc.Velocity, 0.01)
	require.Greater(t, lc.Momentum, 0.5)
	require.Less(t, lc.Momentum, 1.0)
}

func TestEstimateLifecycle_Emerging(t *testing.T) {
	now := time.Now()
	lc := intel.EstimateLifecycle(trend(2, now.Add(-3*24*time.Hour), now))

	require.Equal(t, intel.StageEmerging, lc.Stage)
	require.InDelta(t, 3.0, lc.AgeDays, 0.1)
}

func TestEstimateLifecycle_Fading(t *testing.T) {
	now := time.Now()
	// Последний источник десять дней назад.
	lc := intel.EstimateLifecycle(trend(30, now.Add(-20*24*time.Hour), now.Add(-10*24*time.Hour)))

	require.Equal(t, intel.StageFading, lc.Stage)
	require.Equal(t, 0.0, lc.Momentum)
}

func TestEstimateLifecycle_SubDaySpan(t *testing.T) {
	now := time.Now()
	// Тренд моложе суток: знаменатель не меньше одного дня.
	lc := intel.EstimateLifecycle(trend(4, now.Add(-2*time.Hour), now))

	require.InDelta(t, 4.0, lc.Velocity, 0.01)
	require.Equal(t, intel.StagePeaking, lc.Stage)
}
