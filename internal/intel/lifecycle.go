package intel

import (
	"time"

	"synapse/internal/models"
)

// Стадии жизненного цикла тренда.
const (
	StageEmerging = "emerging"
	StageRising   = "rising"
	StagePeaking  = "peaking"
	StageFading   = "fading"
)

const (
	// Скорость (источников в день), при которой тренд считается пиковым.
	peakVelocity = 3.0
	// Дней без новых источников, после которых тренд затухает.
	staleDays = 7.0
	// Возраст, до которого медленный тренд ещё считается новым.
	emergingAgeDays = 7.0
)

// EstimateLifecycle оценивает стадию тренда по арифметике над
// SourceCount, FirstSeen и LastSeen. Velocity — источников в день,
// Momentum — нормированная скорость с поправкой на свежесть, 0..1.
func EstimateLifecycle(t models.Trend) models.Lifecycle {
	now := time.Now()

	spanDays := t.LastSeen.Sub(t.FirstSeen).Hours() / 24
	if spanDays < 1 {
		spanDays = 1
	}
	velocity := float64(t.SourceCount) / spanDays

	sinceLast := now.Sub(t.LastSeen).Hours() / 24
	freshness := 1 - sinceLast/staleDays
	if freshness < 0 {
		freshness = 0
	}
	if freshness > 1 {
		freshness = 1
	}

	momentum := velocity / peakVelocity
	if momentum > 1 {
		momentum = 1
	}
	momentum *= freshness

	ageDays := now.Sub(t.FirstSeen).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}

	var stage string
	switch {
	case freshness == 0:
		stage = StageFading
	case velocity >= peakVelocity:
		stage = StagePeaking
	case velocity >= 1:
		stage = StageRising
	case ageDays <= emergingAgeDays:
		stage = StageEmerging
	default:
		stage = StageFading
	}

	return models.Lifecycle{
		Stage:    stage,
		Velocity: velocity,
		Momentum: momentum,
		AgeDays:  ageDays,
	}
}
