package health

import (
	"context"

	"surf-calendar/internal/domain/gateway/api"
	"surf-calendar/internal/domain/gateway/cache"
	"surf-calendar/internal/domain/gateway/queue"
	"surf-calendar/internal/domain/model"
)

type healthUseCase struct {
	cacheGateway    cache.ForecastGateway
	queueGateway    queue.HealthGateway
	forecastGateway api.ForecastGateway
}

func NewHealthUseCase(cacheGateway cache.ForecastGateway, queueGateway queue.HealthGateway, forecastGateway api.ForecastGateway) UseCase {
	return &healthUseCase{
		cacheGateway:    cacheGateway,
		queueGateway:    queueGateway,
		forecastGateway: forecastGateway,
	}
}

// CheckHealth is DOWN when any component is DOWN. Components that are not in use report UNKNOWN.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	cacheHealth := useCase.cacheGateway.Health(ctx)
	queueHealth := useCase.queueGateway.Health()
	forecastHealth := useCase.forecastGateway.Health()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{cacheHealth, queueHealth, forecastHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Cache:    cacheHealth,
		Queue:    queueHealth,
		Forecast: forecastHealth,
	}
}
