package scoring

import (
	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/model"
)

const (
	extremeHeightFeet  = 8.0
	extremeWindKnots   = 15.0
	advancedHeightFeet = 5.0
	optimalHeightFeet  = 3.0
	// southerly wind arc where the marina stays sheltered
	marinaWindFrom = 135.0
	marinaWindTo   = 225.0
)

// Classify returns the advice for a window. It never feeds back into scoring.
func Classify(window entity.SurfWindow) model.Recommendation {
	return ClassifyConditions(window.WaveHeight, window.WindSpeed, window.WindDirection)
}

// ClassifyConditions maps wave height, in meters, and wind to a skill level
func ClassifyConditions(heightMeters, windKnots, windDirection float64) model.Recommendation {
	feet := entity.Conditions{WaveHeight: heightMeters}.WaveHeightFeet()

	switch {
	case feet > extremeHeightFeet && windKnots > extremeWindKnots &&
		windDirection >= marinaWindFrom && windDirection <= marinaWindTo:
		return model.Recommendation{
			Level:          model.LevelExtremeMarina,
			Description:    "Extreme - marina",
			Emoji:          "🌊⚠️",
			Recommendation: "Extreme conditions! Surf the sheltered marina instead (better protected from southerly wind)",
			Audience:       "Experienced surfers only - marina",
		}
	case feet > extremeHeightFeet && windKnots > extremeWindKnots:
		return model.Recommendation{
			Level:          model.LevelExtreme,
			Description:    "Extreme",
			Emoji:          "⚠️",
			Recommendation: "Extreme conditions! Not recommended for surfing",
			Audience:       "Dangerous - not recommended",
		}
	case feet > advancedHeightFeet:
		return model.Recommendation{
			Level:          model.LevelAdvanced,
			Description:    "Advanced",
			Emoji:          "🏄‍♂️",
			Recommendation: "Big waves - suitable for advanced surfers",
			Audience:       "Advanced surfers",
		}
	case feet >= optimalHeightFeet:
		return model.Recommendation{
			Level:          model.LevelOptimal,
			Description:    "Ideal",
			Emoji:          "✨",
			Recommendation: "Excellent conditions! Ideal wave height for most surfers",
			Audience:       "All levels",
		}
	case feet < optimalHeightFeet:
		return model.Recommendation{
			Level:          model.LevelBeginnerFriendly,
			Description:    "Beginner friendly",
			Emoji:          "🌊",
			Recommendation: "Small waves - bring a high-volume board (longboard/funboard)",
			Audience:       "Beginners and intermediates - high-volume board",
		}
	default:
		// NaN heights fall through every comparison
		return model.Recommendation{
			Level:          model.LevelModerate,
			Description:    "Moderate",
			Emoji:          "🏄",
			Recommendation: "Fair surf conditions",
			Audience:       "Most surfers",
		}
	}
}
