package scoring

import (
	"fmt"
	"math"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"
)

// Bounds of the wave height decay outside the optimal band.
const (
	heightDecayCeiling = 2.0
	heightDecayFloor   = 0.4
)

// Sub-score categories
const (
	CategoryOptimal          = "optimal"
	CategoryGood             = "good"
	CategoryAcceptable       = "acceptable"
	CategoryMinimal          = "minimal"
	CategoryLong             = "long"
	CategoryShortButDecent   = "short-but-decent"
	CategoryShort            = "short"
	CategoryVeryShortButHigh = "very-short-but-high"
	CategoryPoor             = "poor"
	CategoryPerfect          = "perfect"
	CategoryExcellent        = "excellent"
	CategoryOffshore         = "offshore"
	CategoryOnshore          = "onshore"
	CategoryCross            = "cross"
)

// ScoreHour scores one hour or one window of aggregated conditions
func ScoreHour(conditions entity.Conditions, cfg Config) model.QualityResult {
	if reason := hardRequirementFailure(conditions, cfg); reason != "" {
		return model.QualityResult{Score: 0, Valid: false, Reason: reason}
	}

	breakdown := model.ScoreBreakdown{
		WaveHeight:    ScoreWaveHeight(conditions.WaveHeight, cfg),
		WavePeriod:    ScoreWavePeriod(conditions.WavePeriod, conditions.WaveHeight, cfg),
		WindSpeed:     ScoreWindSpeed(conditions.WindSpeed, cfg),
		WindDirection: ScoreWindDirection(conditions.WindDirection, cfg),
	}

	weights := cfg.QualityWeights
	total := breakdown.WaveHeight.Score*weights.WaveHeight +
		breakdown.WavePeriod.Score*weights.WavePeriod +
		breakdown.WindSpeed.Score*weights.WindSpeed +
		breakdown.WindDirection.Score*weights.WindDirection

	return model.QualityResult{
		Score:     clampScore(int(math.Round(total))),
		Valid:     true,
		Breakdown: &breakdown,
	}
}

// IsAcceptable reports whether a result passed the gate and reaches minScore
func IsAcceptable(result model.QualityResult, minScore int) bool {
	return result.Valid && result.Score >= minScore
}

// MeetsHardRequirements is the pass/fail gate applied before any scoring
func MeetsHardRequirements(conditions entity.Conditions, cfg Config) bool {
	return hardRequirementFailure(conditions, cfg) == ""
}

func hardRequirementFailure(c entity.Conditions, cfg Config) string {
	req := cfg.HardRequirements
	switch {
	case c.WaveHeight < req.MinWaveHeight:
		return fmt.Sprintf("wave height %.2fm below minimum %.2fm", c.WaveHeight, req.MinWaveHeight)
	case c.WaveHeight > req.MaxWaveHeight:
		return fmt.Sprintf("wave height %.2fm above maximum %.2fm", c.WaveHeight, req.MaxWaveHeight)
	case c.WindSpeed > req.MaxWindSpeed:
		return fmt.Sprintf("wind speed %.1fkn above maximum %.1fkn", c.WindSpeed, req.MaxWindSpeed)
	}
	if minPeriod := MinPeriodFor(c.WaveHeight, cfg); c.WavePeriod < minPeriod {
		return fmt.Sprintf("wave period %.1fs below %.1fs required for %.2fm", c.WavePeriod, minPeriod, c.WaveHeight)
	}
	return ""
}

// MinPeriodFor returns the shortest acceptable period for a wave height. Short period energy
// at a given height is wind chop rather than swell, so the requirement grows with height.
func MinPeriodFor(height float64, cfg Config) float64 {
	minPeriod := cfg.HardRequirements.MinWavePeriod
	switch {
	case height < 0.8:
		return math.Max(minPeriod, 6)
	case height < 1.5:
		return math.Max(minPeriod, 7)
	case height < 2.5:
		return 8
	default:
		return math.Max(minPeriod+4, 10)
	}
}

// ScoreWaveHeight rewards heights inside the optimal band
func ScoreWaveHeight(height float64, cfg Config) model.SubScore {
	band := cfg.OptimalRanges.WaveHeight
	switch {
	case height >= band.Min && height <= band.Max:
		return model.SubScore{Score: 100, Category: CategoryOptimal, Description: fmt.Sprintf("Ideal height: %.1fm", height)}
	case height > band.Max && height <= heightDecayCeiling:
		score := 100 - ((height-band.Max)/(heightDecayCeiling-band.Max))*20
		return model.SubScore{Score: math.Max(score, 80), Category: CategoryGood, Description: "Good height"}
	case height < band.Min && height >= heightDecayFloor:
		score := 100 - ((band.Min-height)/(band.Min-heightDecayFloor))*30
		return model.SubScore{Score: math.Max(score, 70), Category: CategoryAcceptable, Description: "Fair height"}
	default:
		return model.SubScore{Score: 60, Category: CategoryMinimal, Description: "Minimal height"}
	}
}

// ScoreWavePeriod rewards long, clean periods. A short period on a tall wave is scored as a
// compromise rather than a failure.
func ScoreWavePeriod(period, height float64, cfg Config) model.SubScore {
	band := cfg.OptimalRanges.WavePeriod
	switch {
	case period >= band.Min && period <= band.Max:
		return model.SubScore{Score: 100, Category: CategoryOptimal, Description: fmt.Sprintf("Excellent period: %.0fs", period)}
	case period > band.Max:
		score := 100 - ((period-band.Max)/5)*10
		return model.SubScore{Score: math.Max(score, 85), Category: CategoryLong, Description: "Long period"}
	case period >= 6 && period < band.Min:
		progress := (period - 6) / (band.Min - 6)
		if height > 1.0 {
			heightBonus := math.Min((height-1)*20, 15)
			score := math.Min(70+progress*15+heightBonus, 95)
			return model.SubScore{Score: score, Category: CategoryShortButDecent, Description: "Short period but tall wave"}
		}
		return model.SubScore{Score: math.Max(60+progress*20, 60), Category: CategoryShort, Description: "Short period"}
	case period >= 4 && period < 6:
		if height > 1.5 {
			return model.SubScore{Score: 65, Category: CategoryVeryShortButHigh, Description: "Very short period but tall wave"}
		}
		return model.SubScore{Score: 50, Category: CategoryMinimal, Description: "Very short period"}
	default:
		return model.SubScore{Score: 30, Category: CategoryPoor, Description: "Poor period"}
	}
}

// ScoreWindSpeed prefers light wind, tiered by the configured breakpoints
func ScoreWindSpeed(speed float64, cfg Config) model.SubScore {
	tiers := cfg.OptimalRanges.WindSpeed
	switch {
	case speed <= tiers.Perfect:
		return model.SubScore{Score: 100, Category: CategoryPerfect, Description: fmt.Sprintf("Very light wind: %.0f kn", speed)}
	case speed <= tiers.Excellent:
		score := 100 - ((speed-tiers.Perfect)/(tiers.Excellent-tiers.Perfect))*10
		return model.SubScore{Score: math.Max(score, 90), Category: CategoryExcellent, Description: "Light wind"}
	case speed <= tiers.Acceptable:
		score := 90 - ((speed-tiers.Excellent)/(tiers.Acceptable-tiers.Excellent))*30
		return model.SubScore{Score: math.Max(score, 60), Category: CategoryAcceptable, Description: "Moderate wind"}
	default:
		return model.SubScore{Score: 40, Category: CategoryPoor, Description: "Strong wind"}
	}
}

// ScoreWindDirection classifies the direction against the shore orientation. Offshore scores
// decay with the plain difference from the reference bearing, without wrapping through north.
func ScoreWindDirection(direction float64, cfg Config) model.SubScore {
	shore := cfg.Shore
	switch {
	case shore.Offshore.Contains(direction):
		score := 100 - (math.Abs(direction-shore.OffshoreReference)/180)*10
		return model.SubScore{Score: math.Max(score, 90), Category: CategoryOffshore, Description: "Offshore wind (excellent)"}
	case shore.Onshore.Contains(direction):
		return model.SubScore{Score: 60, Category: CategoryOnshore, Description: "Onshore wind (less ideal)"}
	default:
		return model.SubScore{Score: 75, Category: CategoryCross, Description: "Cross-shore wind"}
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
