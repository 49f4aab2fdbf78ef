package scoring

import (
	"sort"
	"time"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"
)

// leadTime places the peak hour one hour into the window
const leadTime = time.Hour

// ScoreDay aggregates and scores the hours of a day that fall inside the surf hours,
// in chronological order.
func ScoreDay(dayHours []entity.HourlyReading, cfg Config) []model.ScoredHour {
	scored := make([]model.ScoredHour, 0, len(dayHours))
	for _, reading := range dayHours {
		if !withinSurfHours(reading.Time, cfg) {
			continue
		}
		conditions := Aggregate(reading, cfg)
		scored = append(scored, model.ScoredHour{
			Time:       reading.Time,
			Conditions: conditions,
			Quality:    ScoreHour(conditions, cfg),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Time.Before(scored[j].Time)
	})
	return scored
}

// FindBestWindow returns the best surfable window of the configured duration, or nil.
func FindBestWindow(dayHours []entity.HourlyReading, cfg Config) *entity.SurfWindow {
	return SelectWindow(ScoreDay(dayHours, cfg), cfg)
}

// SelectWindow picks the best window from hours already scored by ScoreDay.
//
// Hours are tried best score first, earliest first on ties. A candidate yields the window
// starting one hour before it. The window is rejected when it does not fit inside the surf
// hours, when an hour slot has no reading, or when any reading in it fails the hard
// requirements; the next candidate is then tried.
func SelectWindow(scored []model.ScoredHour, cfg Config) *entity.SurfWindow {
	if len(scored) == 0 {
		return nil
	}

	candidates := make([]model.ScoredHour, len(scored))
	copy(candidates, scored)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Quality.Score != candidates[j].Quality.Score {
			return candidates[i].Quality.Score > candidates[j].Quality.Score
		}
		return candidates[i].Time.Before(candidates[j].Time)
	})

	for _, candidate := range candidates {
		if !IsAcceptable(candidate.Quality, cfg.MinQualityScore) {
			continue
		}
		if window := buildWindow(candidate, scored, cfg); window != nil {
			return window
		}
	}
	return nil
}

// ScoreWindow rates a selected window on its averaged conditions. Every hour of a window
// passed the gate, but the average can still straddle a period tier; the peak score is
// reported then.
func ScoreWindow(window entity.SurfWindow, cfg Config) model.QualityResult {
	if result := ScoreHour(window.Conditions, cfg); result.Valid {
		return result
	}
	return model.QualityResult{Score: window.PeakScore, Valid: true}
}

func buildWindow(candidate model.ScoredHour, scored []model.ScoredHour, cfg Config) *entity.SurfWindow {
	duration := time.Duration(cfg.EventDuration) * time.Hour
	surfStart, surfEnd := surfBounds(candidate.Time, cfg)

	start := candidate.Time.Add(-leadTime)
	end := start.Add(duration)
	if start.Before(surfStart) {
		start = surfStart
	}
	if end.After(surfEnd) {
		end = surfEnd
	}
	if end.Sub(start) < duration {
		return nil
	}

	covered := make([]bool, cfg.EventDuration)
	included := make([]model.ScoredHour, 0, cfg.EventDuration)
	for _, hour := range scored {
		if hour.Time.Before(start) || !hour.Time.Before(end) {
			continue
		}
		if !hour.Quality.Valid {
			return nil
		}
		covered[int(hour.Time.Sub(start)/time.Hour)] = true
		included = append(included, hour)
	}
	for _, ok := range covered {
		if !ok {
			return nil
		}
	}

	return summarize(included, candidate, start, end)
}

func summarize(hours []model.ScoredHour, peak model.ScoredHour, start, end time.Time) *entity.SurfWindow {
	var height, period, wind float64
	for _, hour := range hours {
		height += hour.Conditions.WaveHeight
		period += hour.Conditions.WavePeriod
		wind += hour.Conditions.WindSpeed
	}
	count := float64(len(hours))

	return &entity.SurfWindow{
		Conditions: entity.Conditions{
			WaveHeight:    height / count,
			WavePeriod:    period / count,
			WindSpeed:     wind / count,
			WindDirection: hours[0].Conditions.WindDirection,
		},
		StartTime: start,
		EndTime:   end,
		HourCount: len(hours),
		PeakTime:  peak.Time,
		PeakScore: peak.Quality.Score,
	}
}

func withinSurfHours(t time.Time, cfg Config) bool {
	local := t.In(cfg.Location.TimeZone)
	minute := local.Hour()*60 + local.Minute()
	return minute >= cfg.SurfHours.Start && minute < cfg.SurfHours.End
}

// surfBounds returns the surf hours range of the local day containing t
func surfBounds(t time.Time, cfg Config) (time.Time, time.Time) {
	local := t.In(cfg.Location.TimeZone)
	year, month, day := local.Date()
	at := func(minutes int) time.Time {
		return time.Date(year, month, day, minutes/60, minutes%60, 0, 0, cfg.Location.TimeZone)
	}
	return at(cfg.SurfHours.Start), at(cfg.SurfHours.End)
}

// Day is the readings of one local calendar date
type Day struct {
	Date  string
	Hours []entity.HourlyReading
}

// SplitDays groups readings by local date in the location time zone, dates ascending
func SplitDays(readings []entity.HourlyReading, cfg Config) []Day {
	index := make(map[string]int)
	var days []Day
	for _, reading := range readings {
		date := reading.Time.In(cfg.Location.TimeZone).Format(time.DateOnly)
		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i
			days = append(days, Day{Date: date})
		}
		days[i].Hours = append(days[i].Hours, reading)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}
