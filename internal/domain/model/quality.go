package model

import (
	"time"

	"surf-calendar/internal/domain/entity"
)

// SubScore is the 0-100 score of a single factor
type SubScore struct {
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ScoreBreakdown holds the four factor scores behind a quality score
type ScoreBreakdown struct {
	WaveHeight    SubScore `json:"waveHeight"`
	WavePeriod    SubScore `json:"wavePeriod"`
	WindSpeed     SubScore `json:"windSpeed"`
	WindDirection SubScore `json:"windDirection"`
}

// QualityResult is the verdict for an hour or a window. Valid false means the hard
// requirements were not met, in which case Score is 0 and Breakdown is nil.
type QualityResult struct {
	Score     int             `json:"score"`
	Valid     bool            `json:"valid"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// ScoredHour is an hour inside the daily surf range with its verdict
type ScoredHour struct {
	Time       time.Time         `json:"time"`
	Conditions entity.Conditions `json:"conditions"`
	Quality    QualityResult     `json:"quality"`
}
