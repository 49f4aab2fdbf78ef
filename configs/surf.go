package configs

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/scoring"
	"surf-calendar/pkg/resource"
)

// LoadSurfConfig builds the scoring configuration from the surf.* properties
func LoadSurfConfig() (scoring.Config, error) {
	zone, err := time.LoadLocation(resource.GetString("surf.location.timezone"))
	if err != nil {
		return scoring.Config{}, fmt.Errorf("invalid surf.location.timezone: %w", err)
	}
	surfStart, err := scoring.ParseClock(resource.GetString("surf.surf-hours.start"))
	if err != nil {
		return scoring.Config{}, fmt.Errorf("invalid surf.surf-hours.start: %w", err)
	}
	surfEnd, err := scoring.ParseClock(resource.GetString("surf.surf-hours.end"))
	if err != nil {
		return scoring.Config{}, fmt.Errorf("invalid surf.surf-hours.end: %w", err)
	}

	cfg := scoring.Config{
		Location: scoring.Location{
			Name:      resource.GetString("surf.location.name"),
			Latitude:  resource.GetFloat64("surf.location.latitude"),
			Longitude: resource.GetFloat64("surf.location.longitude"),
			TimeZone:  zone,
		},
		HardRequirements: scoring.HardRequirements{
			MinWaveHeight: resource.GetFloat64("surf.hard-requirements.min-wave-height"),
			MaxWaveHeight: resource.GetFloat64("surf.hard-requirements.max-wave-height"),
			MinWavePeriod: resource.GetFloat64("surf.hard-requirements.min-wave-period"),
			MaxWindSpeed:  resource.GetFloat64("surf.hard-requirements.max-wind-speed"),
		},
		OptimalRanges: scoring.OptimalRanges{
			WaveHeight: scoring.Range{
				Min: resource.GetFloat64("surf.optimal-ranges.wave-height-min"),
				Max: resource.GetFloat64("surf.optimal-ranges.wave-height-max"),
			},
			WavePeriod: scoring.Range{
				Min: resource.GetFloat64("surf.optimal-ranges.wave-period-min"),
				Max: resource.GetFloat64("surf.optimal-ranges.wave-period-max"),
			},
			WindSpeed: scoring.WindSpeedTiers{
				Perfect:    resource.GetFloat64("surf.optimal-ranges.wind-speed-perfect"),
				Excellent:  resource.GetFloat64("surf.optimal-ranges.wind-speed-excellent"),
				Acceptable: resource.GetFloat64("surf.optimal-ranges.wind-speed-acceptable"),
			},
		},
		QualityWeights: scoring.QualityWeights{
			WaveHeight:    resource.GetFloat64("surf.quality-weights.wave-height"),
			WavePeriod:    resource.GetFloat64("surf.quality-weights.wave-period"),
			WindSpeed:     resource.GetFloat64("surf.quality-weights.wind-speed"),
			WindDirection: resource.GetFloat64("surf.quality-weights.wind-direction"),
		},
		MinQualityScore: resource.GetInt("surf.min-quality-score"),
		SurfHours:       scoring.SurfHours{Start: surfStart, End: surfEnd},
		EventDuration:   resource.GetInt("surf.event-duration-hours"),
		ProviderWeights: map[entity.Provider]float64{
			entity.ProviderNOAA:  resource.GetFloat64("surf.provider-weights.noaa"),
			entity.ProviderMeteo: resource.GetFloat64("surf.provider-weights.meteo"),
			entity.ProviderSG:    resource.GetFloat64("surf.provider-weights.sg"),
		},
		Shore: scoring.ShoreOrientation{
			Offshore: scoring.DirectionBand{
				From: resource.GetFloat64("surf.wind-direction.offshore-from"),
				To:   resource.GetFloat64("surf.wind-direction.offshore-to"),
			},
			Onshore: scoring.DirectionBand{
				From:      resource.GetFloat64("surf.wind-direction.onshore-from"),
				To:        resource.GetFloat64("surf.wind-direction.onshore-to"),
				Exclusive: true,
			},
			OffshoreReference: resource.GetFloat64("surf.wind-direction.offshore-reference"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, err
	}
	return cfg, nil
}
