package scoring

import (
	"testing"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conditions(height, period, wind, direction float64) entity.Conditions {
	return entity.Conditions{WaveHeight: height, WavePeriod: period, WindSpeed: wind, WindDirection: direction}
}

func TestScoreHourIdealConditions(t *testing.T) {
	result := ScoreHour(conditions(1.0, 9, 4, 315), DefaultConfig())

	require.True(t, result.Valid)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 100.0, result.Breakdown.WaveHeight.Score)
	assert.Equal(t, 100.0, result.Breakdown.WavePeriod.Score)
	assert.InDelta(t, 95.0, result.Breakdown.WindSpeed.Score, 0.001)
	assert.Equal(t, 100.0, result.Breakdown.WindDirection.Score)
	assert.GreaterOrEqual(t, result.Score, 95)
	assert.Equal(t, 99, result.Score)
	assert.Empty(t, result.Reason)
}

func TestScoreHourRejectsHardRequirementFailures(t *testing.T) {
	tests := []struct {
		name       string
		conditions entity.Conditions
	}{
		{"wave too small", conditions(0.2, 9, 4, 315)},
		{"wave too big", conditions(2.6, 12, 4, 315)},
		{"wind too strong", conditions(1.0, 9, 8.5, 315)},
		{"short period for a 1.8m wave", conditions(1.8, 6, 4, 315)},
		{"short period for a 1.0m wave", conditions(1.0, 6.5, 4, 315)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreHour(tt.conditions, DefaultConfig())

			assert.False(t, result.Valid)
			assert.Equal(t, 0, result.Score)
			assert.Nil(t, result.Breakdown)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func TestMinPeriodFor(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		height   float64
		expected float64
	}{
		{0.5, 6},
		{0.79, 6},
		{0.8, 7},
		{1.49, 7},
		{1.5, 8},
		{1.8, 8},
		{2.49, 8},
		{2.5, 10},
		{3.0, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MinPeriodFor(tt.height, cfg), "height %.2f", tt.height)
	}
}

func TestMinPeriodForFollowsConfiguredMinimum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HardRequirements.MinWavePeriod = 9

	assert.Equal(t, 9.0, MinPeriodFor(0.5, cfg))
	assert.Equal(t, 9.0, MinPeriodFor(1.0, cfg))
	assert.Equal(t, 8.0, MinPeriodFor(2.0, cfg))
	assert.Equal(t, 13.0, MinPeriodFor(2.5, cfg))
}

func TestMinPeriodForIsNonDecreasing(t *testing.T) {
	cfg := DefaultConfig()
	previous := 0.0
	for height := 0.0; height <= 4.0; height += 0.05 {
		current := MinPeriodFor(height, cfg)
		assert.GreaterOrEqual(t, current, previous, "height %.2f", height)
		previous = current
	}
}

func TestWindAboveMaximumAlwaysInvalidates(t *testing.T) {
	cfg := DefaultConfig()
	for _, wind := range []float64{8.01, 10, 25} {
		assert.False(t, MeetsHardRequirements(conditions(1.0, 9, wind, 315), cfg), "wind %.2f", wind)
	}
	assert.True(t, MeetsHardRequirements(conditions(1.0, 9, 8, 315), cfg))
}

func TestScoreStaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	for height := 0.0; height <= 3.0; height += 0.1 {
		for period := 2.0; period <= 18; period += 1 {
			for wind := 0.0; wind <= 12; wind += 2 {
				for direction := 0.0; direction < 360; direction += 45 {
					result := ScoreHour(conditions(height, period, wind, direction), cfg)
					assert.GreaterOrEqual(t, result.Score, 0)
					assert.LessOrEqual(t, result.Score, 100)
					if !result.Valid {
						assert.Equal(t, 0, result.Score)
					}
				}
			}
		}
	}
}

func TestScoreWaveHeight(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		height   float64
		score    float64
		category string
	}{
		{1.0, 100, CategoryOptimal},
		{0.8, 100, CategoryOptimal},
		{1.5, 100, CategoryOptimal},
		{1.75, 90, CategoryGood},
		{2.0, 80, CategoryGood},
		{0.6, 85, CategoryAcceptable},
		{0.4, 70, CategoryAcceptable},
		{0.35, 60, CategoryMinimal},
		{2.2, 60, CategoryMinimal},
	}

	for _, tt := range tests {
		sub := ScoreWaveHeight(tt.height, cfg)
		assert.InDelta(t, tt.score, sub.Score, 0.001, "height %.2f", tt.height)
		assert.Equal(t, tt.category, sub.Category, "height %.2f", tt.height)
	}
}

func TestScoreWavePeriod(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		period   float64
		height   float64
		score    float64
		category string
	}{
		{"inside band", 10, 1.0, 100, CategoryOptimal},
		{"long", 14.5, 1.0, 95, CategoryLong},
		{"very long is floored", 30, 1.0, 85, CategoryLong},
		{"short but tall", 7, 1.2, 81.5, CategoryShortButDecent},
		{"short but tall is capped", 7.9, 2.4, 95, CategoryShortButDecent},
		{"short", 7, 0.9, 70, CategoryShort},
		{"six seconds", 6, 0.9, 60, CategoryShort},
		{"very short but high", 5, 1.6, 65, CategoryVeryShortButHigh},
		{"very short", 5, 1.0, 50, CategoryMinimal},
		{"poor", 3, 1.0, 30, CategoryPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ScoreWavePeriod(tt.period, tt.height, cfg)
			assert.InDelta(t, tt.score, sub.Score, 0.001)
			assert.Equal(t, tt.category, sub.Category)
		})
	}
}

func TestScoreWindSpeed(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		speed    float64
		score    float64
		category string
	}{
		{0, 100, CategoryPerfect},
		{3, 100, CategoryPerfect},
		{4, 95, CategoryExcellent},
		{5, 90, CategoryExcellent},
		{6.5, 75, CategoryAcceptable},
		{8, 60, CategoryAcceptable},
		{9, 40, CategoryPoor},
	}

	for _, tt := range tests {
		sub := ScoreWindSpeed(tt.speed, cfg)
		assert.InDelta(t, tt.score, sub.Score, 0.001, "speed %.1f", tt.speed)
		assert.Equal(t, tt.category, sub.Category, "speed %.1f", tt.speed)
	}
}

func TestScoreWindDirection(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		direction float64
		score     float64
		category  string
	}{
		{315, 100, CategoryOffshore},
		{270, 97.5, CategoryOffshore},
		{0, 90, CategoryOffshore},
		{90, 90, CategoryOffshore},
		{90.5, 60, CategoryOnshore},
		{180, 60, CategoryOnshore},
		{269.9, 60, CategoryOnshore},
	}

	for _, tt := range tests {
		sub := ScoreWindDirection(tt.direction, cfg)
		assert.InDelta(t, tt.score, sub.Score, 0.001, "direction %.1f", tt.direction)
		assert.Equal(t, tt.category, sub.Category, "direction %.1f", tt.direction)
	}
}

func TestScoreWindDirectionCrossShoreWithNarrowBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shore.Offshore = DirectionBand{From: 290, To: 70}
	cfg.Shore.Onshore = DirectionBand{From: 110, To: 250}

	assert.Equal(t, CategoryCross, ScoreWindDirection(80, cfg).Category)
	assert.Equal(t, 75.0, ScoreWindDirection(270, cfg).Score)
	assert.Equal(t, CategoryOnshore, ScoreWindDirection(110, cfg).Category)
	assert.Equal(t, CategoryOffshore, ScoreWindDirection(10, cfg).Category)
}

func TestIsAcceptable(t *testing.T) {
	assert.True(t, IsAcceptable(model.QualityResult{Score: 65, Valid: true}, 65))
	assert.False(t, IsAcceptable(model.QualityResult{Score: 64, Valid: true}, 65))
	assert.False(t, IsAcceptable(model.QualityResult{Score: 0, Valid: false}, 0))
}
