package scoring

import (
	"math"

	"surf-calendar/internal/domain/entity"
)

// WeightedAverage blends the provider values present in weights. It returns 0 when no
// provider overlaps or the overlapping weights sum to zero.
//
// The mean is clamped to the range of the blended values, so a single provider or
// providers that agree yield their value exactly instead of a rounded quotient.
func WeightedAverage(values entity.ProviderValues, weights map[entity.Provider]float64) float64 {
	var sum, totalWeight float64
	low, high := math.Inf(1), math.Inf(-1)
	// fixed order keeps the float sum reproducible
	for _, provider := range entity.Providers {
		value, present := values[provider]
		weight, weighted := weights[provider]
		if !present || !weighted {
			continue
		}
		sum += value * weight
		totalWeight += weight
		low = math.Min(low, value)
		high = math.Max(high, value)
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Min(math.Max(sum/totalWeight, low), high)
}

// Aggregate collapses a reading into single values. Wind direction is never blended: the
// first provider present wins.
func Aggregate(reading entity.HourlyReading, cfg Config) entity.Conditions {
	direction, _ := reading.WindDirection.First()
	return entity.Conditions{
		WaveHeight:    WeightedAverage(reading.WaveHeight, cfg.ProviderWeights),
		WavePeriod:    WeightedAverage(reading.WavePeriod, cfg.ProviderWeights),
		WindSpeed:     WeightedAverage(reading.WindSpeed, cfg.ProviderWeights),
		WindDirection: direction,
	}
}
