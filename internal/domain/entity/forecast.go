package entity

import "time"

// Provider identifies a forecast model reporting values for an hour
type Provider string

const (
	ProviderNOAA  Provider = "noaa"
	ProviderMeteo Provider = "meteo"
	ProviderSG    Provider = "sg"
)

// Providers lists the known providers in precedence order
var Providers = []Provider{ProviderNOAA, ProviderMeteo, ProviderSG}

// ParseProvider maps a wire key to a known provider
func ParseProvider(key string) (Provider, bool) {
	for _, p := range Providers {
		if string(p) == key {
			return p, true
		}
	}
	return "", false
}

// ProviderValues holds one metric as reported by each provider
type ProviderValues map[Provider]float64

// First returns the value of the first provider present, in Providers order
func (v ProviderValues) First() (float64, bool) {
	for _, p := range Providers {
		if value, ok := v[p]; ok {
			return value, true
		}
	}
	return 0, false
}

// HourlyReading is one timestamped forecast sample. Heights in meters, periods in seconds,
// wind speed in knots, wind direction in degrees the wind blows from.
type HourlyReading struct {
	Time          time.Time      `json:"time"`
	WaveHeight    ProviderValues `json:"waveHeight"`
	WavePeriod    ProviderValues `json:"wavePeriod"`
	WindSpeed     ProviderValues `json:"windSpeed"`
	WindDirection ProviderValues `json:"windDirection"`
}

// Conditions are single representative values for an hour or a window
type Conditions struct {
	WaveHeight    float64 `json:"waveHeight"`
	WavePeriod    float64 `json:"wavePeriod"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
}

// WaveHeightFeet converts the wave height to feet
func (c Conditions) WaveHeightFeet() float64 {
	return c.WaveHeight * 3.28
}
