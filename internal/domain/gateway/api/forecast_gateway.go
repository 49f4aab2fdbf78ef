package api

import (
	"context"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
)

// ForecastGateway defines the interface for the marine forecast API
type ForecastGateway interface {
	// GetForecast returns the hourly point forecast for the coordinates
	// params: the metrics to request, e.g. swellHeight, windSpeed
	GetForecast(ctx context.Context, lat, lng float64, params []string) (*external.StormGlassResponse, error)

	// Health reports the state of the circuit breaker guarding the API
	Health() model.ComponentHealthStatus
}
