package scoring

import (
	"testing"
	"time"

	"surf-calendar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(cfg Config, hour int) time.Time {
	return time.Date(2025, time.June, 10, hour, 0, 0, 0, cfg.Location.TimeZone)
}

func reading(t time.Time, height, period, wind, direction float64) entity.HourlyReading {
	return entity.HourlyReading{
		Time:          t,
		WaveHeight:    entity.ProviderValues{entity.ProviderNOAA: height},
		WavePeriod:    entity.ProviderValues{entity.ProviderNOAA: period},
		WindSpeed:     entity.ProviderValues{entity.ProviderNOAA: wind},
		WindDirection: entity.ProviderValues{entity.ProviderNOAA: direction},
	}
}

// fullDay returns readings from 00:00 to 23:00, with windAt overriding the 6 knot default
func fullDay(cfg Config, windAt map[int]float64) []entity.HourlyReading {
	hours := make([]entity.HourlyReading, 0, 24)
	for hour := 0; hour < 24; hour++ {
		wind := 6.0
		if w, ok := windAt[hour]; ok {
			wind = w
		}
		hours = append(hours, reading(at(cfg, hour), 1.0, 9, wind, 315))
	}
	return hours
}

func TestFindBestWindowEmptyDay(t *testing.T) {
	cfg := DefaultConfig()

	assert.Nil(t, FindBestWindow(nil, cfg))
}

func TestFindBestWindowNoHoursInsideSurfHours(t *testing.T) {
	cfg := DefaultConfig()
	hours := []entity.HourlyReading{
		reading(at(cfg, 3), 1.0, 9, 2, 315),
		reading(at(cfg, 5), 1.0, 9, 2, 315),
		reading(at(cfg, 18), 1.0, 9, 2, 315),
		reading(at(cfg, 21), 1.0, 9, 2, 315),
	}

	assert.Nil(t, FindBestWindow(hours, cfg))
}

func TestFindBestWindowRejectsCandidateClippedAtDayStart(t *testing.T) {
	cfg := DefaultConfig()
	hours := fullDay(cfg, map[int]float64{6: 2})

	window := FindBestWindow(hours, cfg)

	require.NotNil(t, window)
	assert.Equal(t, at(cfg, 6), window.StartTime)
	assert.Equal(t, at(cfg, 8), window.EndTime)
	assert.Equal(t, at(cfg, 7), window.PeakTime)
	assert.Equal(t, 2, window.HourCount)
	assert.Equal(t, 2*time.Hour, window.Duration())
	assert.InDelta(t, 4.0, window.WindSpeed, 0.001)
	assert.InDelta(t, 1.0, window.WaveHeight, 0.001)
	assert.InDelta(t, 9.0, window.WavePeriod, 0.001)
	assert.Equal(t, 315.0, window.WindDirection)
}

func TestFindBestWindowRejectsCandidateClippedAtDayEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EventDuration = 3
	hours := fullDay(cfg, map[int]float64{17: 2, 12: 5.5})

	window := FindBestWindow(hours, cfg)

	require.NotNil(t, window)
	assert.Equal(t, at(cfg, 11), window.StartTime)
	assert.Equal(t, at(cfg, 14), window.EndTime)
	assert.Equal(t, 3, window.HourCount)
	assert.Equal(t, at(cfg, 12), window.PeakTime)
}

func TestFindBestWindowSkipsWindowWithFailingHour(t *testing.T) {
	cfg := DefaultConfig()
	hours := fullDay(cfg, map[int]float64{10: 2, 9: 12})

	window := FindBestWindow(hours, cfg)

	require.NotNil(t, window)
	assert.Equal(t, at(cfg, 6), window.StartTime)
	assert.Equal(t, at(cfg, 7), window.PeakTime)
	for _, hour := range ScoreDay(hours, cfg) {
		if !hour.Time.Before(window.StartTime) && hour.Time.Before(window.EndTime) {
			assert.True(t, hour.Quality.Valid)
		}
	}
}

func TestFindBestWindowRequiresEveryHourSlot(t *testing.T) {
	cfg := DefaultConfig()
	hours := []entity.HourlyReading{
		reading(at(cfg, 10), 1.0, 9, 2, 315),
		reading(at(cfg, 12), 1.0, 9, 2, 315),
	}

	assert.Nil(t, FindBestWindow(hours, cfg))
}

func TestFindBestWindowIgnoresHoursBelowMinimumScore(t *testing.T) {
	cfg := DefaultConfig()
	var hours []entity.HourlyReading
	for hour := 6; hour < 18; hour++ {
		hours = append(hours, reading(at(cfg, hour), 0.35, 6, 7.9, 180))
	}

	for _, hour := range ScoreDay(hours, cfg) {
		require.True(t, hour.Quality.Valid)
		require.Less(t, hour.Quality.Score, cfg.MinQualityScore)
	}
	assert.Nil(t, FindBestWindow(hours, cfg))
}

func TestFindBestWindowBreaksTiesByEarliestHour(t *testing.T) {
	cfg := DefaultConfig()
	hours := fullDay(cfg, map[int]float64{9: 2, 14: 2})

	window := FindBestWindow(hours, cfg)

	require.NotNil(t, window)
	assert.Equal(t, at(cfg, 9), window.PeakTime)
	assert.Equal(t, 100, window.PeakScore)
}

func TestSelectWindowMatchesFindBestWindow(t *testing.T) {
	cfg := DefaultConfig()
	hours := fullDay(cfg, map[int]float64{11: 2})

	scored := ScoreDay(hours, cfg)
	window := SelectWindow(scored, cfg)

	require.NotNil(t, window)
	assert.Equal(t, FindBestWindow(hours, cfg), window)
	assert.Equal(t, at(cfg, 10), window.StartTime)
	assert.Nil(t, SelectWindow(nil, cfg))
}

func TestScoreWindowFallsBackToPeakWhenAverageStraddlesPeriodTier(t *testing.T) {
	cfg := DefaultConfig()
	hours := []entity.HourlyReading{
		reading(at(cfg, 9), 1.4, 7.2, 2, 315),
		reading(at(cfg, 10), 1.7, 8.0, 2, 315),
	}
	scored := ScoreDay(hours, cfg)
	require.True(t, scored[0].Quality.Valid)
	require.True(t, scored[1].Quality.Valid)

	window := SelectWindow(scored, cfg)
	require.NotNil(t, window)
	assert.Equal(t, at(cfg, 9), window.StartTime)
	assert.Equal(t, at(cfg, 11), window.EndTime)
	require.False(t, MeetsHardRequirements(window.Conditions, cfg))

	quality := ScoreWindow(*window, cfg)

	assert.True(t, quality.Valid)
	assert.Equal(t, window.PeakScore, quality.Score)
	assert.Equal(t, scored[1].Quality.Score, quality.Score)
	assert.Positive(t, quality.Score)
}

func TestScoreWindowUsesAveragedConditionsWhenValid(t *testing.T) {
	cfg := DefaultConfig()
	window := FindBestWindow(fullDay(cfg, map[int]float64{9: 2}), cfg)
	require.NotNil(t, window)

	quality := ScoreWindow(*window, cfg)

	assert.Equal(t, ScoreHour(window.Conditions, cfg), quality)
	assert.NotNil(t, quality.Breakdown)
}

func TestScoreDayFiltersAndOrdersHours(t *testing.T) {
	cfg := DefaultConfig()
	hours := []entity.HourlyReading{
		reading(at(cfg, 12), 1.0, 9, 4, 315),
		reading(at(cfg, 4), 1.0, 9, 4, 315),
		reading(at(cfg, 6), 1.0, 9, 4, 315),
		reading(at(cfg, 18), 1.0, 9, 4, 315),
	}

	scored := ScoreDay(hours, cfg)

	require.Len(t, scored, 2)
	assert.Equal(t, at(cfg, 6), scored[0].Time)
	assert.Equal(t, at(cfg, 12), scored[1].Time)
}

func TestSplitDaysUsesLocalDate(t *testing.T) {
	cfg := DefaultConfig()
	lateUTC := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC)
	readings := []entity.HourlyReading{
		reading(lateUTC, 1, 9, 4, 315),
		reading(at(cfg, 8), 1, 9, 4, 315),
		reading(at(cfg, 9), 1, 9, 4, 315),
	}

	days := SplitDays(readings, cfg)

	expectedLate := lateUTC.In(cfg.Location.TimeZone).Format(time.DateOnly)
	if expectedLate == "2025-06-10" {
		require.Len(t, days, 1)
		assert.Len(t, days[0].Hours, 3)
		return
	}
	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-10", days[0].Date)
	assert.Len(t, days[0].Hours, 2)
	assert.Equal(t, expectedLate, days[1].Date)
}
