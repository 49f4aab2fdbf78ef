package external

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"surf-calendar/internal/domain/entity"
)

// knotsPerMeterSecond converts m/s wind speeds to knots
const knotsPerMeterSecond = 1.943844

// WindUnit is the unit the forecast source reports wind speed in
type WindUnit string

const (
	WindUnitKnots WindUnit = "knots"
	WindUnitMPS   WindUnit = "mps"
)

// StormGlassResponse represents the response of the Storm Glass point forecast API
type StormGlassResponse struct {
	Hours []StormGlassHour `json:"hours"`
	Meta  StormGlassMeta   `json:"meta"`
}

// StormGlassHour is one hour of the point forecast, each metric keyed by source
type StormGlassHour struct {
	Time          string             `json:"time"`
	SwellHeight   map[string]float64 `json:"swellHeight,omitempty"`
	SwellPeriod   map[string]float64 `json:"swellPeriod,omitempty"`
	WaveHeight    map[string]float64 `json:"waveHeight,omitempty"`
	WavePeriod    map[string]float64 `json:"wavePeriod,omitempty"`
	WindSpeed     map[string]float64 `json:"windSpeed,omitempty"`
	WindDirection map[string]float64 `json:"windDirection,omitempty"`
}

// StormGlassMeta carries quota information returned with every response
type StormGlassMeta struct {
	Cost         int      `json:"cost"`
	DailyQuota   int      `json:"dailyQuota"`
	RequestCount int      `json:"requestCount"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Params       []string `json:"params"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
}

// StormGlassErrorResponse represents an error body of the Storm Glass API
type StormGlassErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// Error joins the error entries into a message
func (e StormGlassErrorResponse) Error() string {
	if key, ok := e.Errors["key"]; ok {
		return key
	}
	if len(e.Errors) == 0 {
		return "unknown storm glass error"
	}
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return strings.Join(parts, "; ")
}

// ToReadings converts the response into hourly readings. Swell metrics take precedence over the
// combined wave metrics, sources outside the known providers are dropped and hours with an
// unparsable time are skipped.
func (r *StormGlassResponse) ToReadings(unit WindUnit) []entity.HourlyReading {
	readings := make([]entity.HourlyReading, 0, len(r.Hours))
	for _, hour := range r.Hours {
		at, err := time.Parse(time.RFC3339, hour.Time)
		if err != nil {
			continue
		}

		height := hour.SwellHeight
		if len(height) == 0 {
			height = hour.WaveHeight
		}
		period := hour.SwellPeriod
		if len(period) == 0 {
			period = hour.WavePeriod
		}

		wind := toProviderValues(hour.WindSpeed)
		if unit == WindUnitMPS {
			for provider, value := range wind {
				wind[provider] = value * knotsPerMeterSecond
			}
		}

		readings = append(readings, entity.HourlyReading{
			Time:          at,
			WaveHeight:    toProviderValues(height),
			WavePeriod:    toProviderValues(period),
			WindSpeed:     wind,
			WindDirection: toProviderValues(hour.WindDirection),
		})
	}
	return readings
}

func toProviderValues(values map[string]float64) entity.ProviderValues {
	result := make(entity.ProviderValues, len(values))
	for key, value := range values {
		if provider, ok := entity.ParseProvider(key); ok {
			result[provider] = value
		}
	}
	return result
}
