package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"surf-calendar/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// weightTolerance is the accepted drift of the quality weights sum from 1.0
const weightTolerance = 0.001

// Location is the surf spot the engine evaluates
type Location struct {
	Name      string         `validate:"required"`
	Latitude  float64        `validate:"gte=-90,lte=90"`
	Longitude float64        `validate:"gte=-180,lte=180"`
	TimeZone  *time.Location `validate:"required"`
}

// HardRequirements disqualify an hour regardless of its score
type HardRequirements struct {
	MinWaveHeight float64 `validate:"gte=0"`
	MaxWaveHeight float64 `validate:"gtfield=MinWaveHeight"`
	MinWavePeriod float64 `validate:"gte=0"`
	MaxWindSpeed  float64 `validate:"gt=0"`
}

// Range is an inclusive optimal band
type Range struct {
	Min float64 `validate:"gte=0"`
	Max float64 `validate:"gtefield=Min"`
}

// WindSpeedTiers are the breakpoints of the wind speed score
type WindSpeedTiers struct {
	Perfect    float64 `validate:"gte=0"`
	Excellent  float64 `validate:"gtfield=Perfect"`
	Acceptable float64 `validate:"gtfield=Excellent"`
}

// OptimalRanges drive the wave height, wave period and wind speed sub-scores
type OptimalRanges struct {
	WaveHeight Range
	WavePeriod Range
	WindSpeed  WindSpeedTiers
}

// QualityWeights combine the four sub-scores; they are expected to sum to 1.0
type QualityWeights struct {
	WaveHeight    float64 `validate:"gte=0,lte=1"`
	WavePeriod    float64 `validate:"gte=0,lte=1"`
	WindSpeed     float64 `validate:"gte=0,lte=1"`
	WindDirection float64 `validate:"gte=0,lte=1"`
}

// Sum returns the total of the weights
func (w QualityWeights) Sum() float64 {
	return w.WaveHeight + w.WavePeriod + w.WindSpeed + w.WindDirection
}

// SurfHours is the daily range, in minutes of the local day, where surfing is possible
type SurfHours struct {
	Start int `validate:"gte=0,lt=1440"`
	End   int `validate:"gtfield=Start,lte=1440"`
}

// Intersect narrows the range to [from, to). The original range is kept when they do not overlap.
func (h SurfHours) Intersect(from, to int) SurfHours {
	clamped := SurfHours{Start: max(h.Start, from), End: min(h.End, to)}
	if clamped.End <= clamped.Start {
		return h
	}
	return clamped
}

// ParseClock parses "HH:MM" into minutes of day
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q, expected HH:MM: %w", value, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// DirectionBand is the clockwise arc From..To in degrees, which may wrap through north
type DirectionBand struct {
	From      float64 `validate:"gte=0,lte=360"`
	To        float64 `validate:"gte=0,lte=360"`
	Exclusive bool
}

// Contains reports whether direction lies in the band
func (b DirectionBand) Contains(direction float64) bool {
	if b.Exclusive {
		if b.From <= b.To {
			return direction > b.From && direction < b.To
		}
		return direction > b.From || direction < b.To
	}
	if b.From <= b.To {
		return direction >= b.From && direction <= b.To
	}
	return direction >= b.From || direction <= b.To
}

// ShoreOrientation classifies wind direction for the spot. Directions in neither band are cross-shore.
type ShoreOrientation struct {
	Offshore DirectionBand
	Onshore  DirectionBand
	// OffshoreReference is the best offshore bearing
	OffshoreReference float64 `validate:"gte=0,lte=360"`
}

// Config is the immutable scoring configuration, built once at startup
type Config struct {
	Location         Location
	HardRequirements HardRequirements
	OptimalRanges    OptimalRanges
	QualityWeights   QualityWeights
	MinQualityScore  int `validate:"gte=0,lte=100"`
	SurfHours        SurfHours
	// EventDuration is the window length in whole hours
	EventDuration   int                         `validate:"gte=1,lte=24"`
	ProviderWeights map[entity.Provider]float64 `validate:"required,dive,gte=0"`
	Shore           ShoreOrientation
}

// DefaultConfig returns the Herzliya configuration
func DefaultConfig() Config {
	zone, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		zone = time.UTC
	}
	return Config{
		Location: Location{
			Name:      "Herzliya",
			Latitude:  32.1752,
			Longitude: 34.7998,
			TimeZone:  zone,
		},
		HardRequirements: HardRequirements{
			MinWaveHeight: 0.3,
			MaxWaveHeight: 2.5,
			MinWavePeriod: 6,
			MaxWindSpeed:  8,
		},
		OptimalRanges: OptimalRanges{
			WaveHeight: Range{Min: 0.8, Max: 1.5},
			WavePeriod: Range{Min: 8, Max: 12},
			WindSpeed:  WindSpeedTiers{Perfect: 3, Excellent: 5, Acceptable: 8},
		},
		QualityWeights: QualityWeights{
			WaveHeight:    0.30,
			WavePeriod:    0.50,
			WindSpeed:     0.15,
			WindDirection: 0.05,
		},
		MinQualityScore: 65,
		SurfHours:       SurfHours{Start: 6 * 60, End: 18 * 60},
		EventDuration:   2,
		ProviderWeights: map[entity.Provider]float64{
			entity.ProviderNOAA:  0.70,
			entity.ProviderMeteo: 0.15,
			entity.ProviderSG:    0.15,
		},
		Shore: ShoreOrientation{
			Offshore:          DirectionBand{From: 270, To: 90},
			Onshore:           DirectionBand{From: 90, To: 270, Exclusive: true},
			OffshoreReference: 315,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and that the quality weights sum to 1.0
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return fmt.Errorf("invalid surf configuration: %s failed on %q", invalid[0].Namespace(), invalid[0].Tag())
		}
		return fmt.Errorf("invalid surf configuration: %w", err)
	}
	if sum := c.QualityWeights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("invalid surf configuration: quality weights sum to %.3f, expected 1.0", sum)
	}
	total := 0.0
	for _, weight := range c.ProviderWeights {
		total += weight
	}
	if total <= 0 {
		return errors.New("invalid surf configuration: provider weights must not all be zero")
	}
	return nil
}
