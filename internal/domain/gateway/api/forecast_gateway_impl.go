package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/pkg/http"
)

const pointForecastPath = "/v2/weather/point"

// stormGlassGatewayImpl implements the ForecastGateway interface
type stormGlassGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
}

// NewStormGlassGateway creates a new instance of ForecastGateway with HTTP client
func NewStormGlassGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) ForecastGateway {
	return &stormGlassGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
	}
}

// GetForecast fetches the point forecast
func (g *stormGlassGatewayImpl) GetForecast(ctx context.Context, lat, lng float64, params []string) (*external.StormGlassResponse, error) {
	successResp, errResp, status, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(pointForecastPath).
		WithQueryParam("lat", strconv.FormatFloat(lat, 'f', -1, 64)).
		WithQueryParam("lng", strconv.FormatFloat(lng, 'f', -1, 64)).
		WithQueryParam("params", strings.Join(params, ",")).
		WithHeader("Authorization", g.apiKey).
		WithSuccessResp(&external.StormGlassResponse{}).
		WithErrorResp(&external.StormGlassErrorResponse{}).
		Execute()

	if err == nil {
		return successResp.(*external.StormGlassResponse), nil
	}

	if errResp != nil {
		errorResponse := errResp.(*external.StormGlassErrorResponse)
		if len(errorResponse.Errors) > 0 {
			return nil, fmt.Errorf("storm glass returned %d (%s): %w", status, errorResponse.Error(), err)
		}
	}

	return nil, fmt.Errorf("storm glass request failed: %w", err)
}

// Health maps the breaker state to a component status
func (g *stormGlassGatewayImpl) Health() model.ComponentHealthStatus {
	state := g.httpClient.BreakerState()
	status := model.StatusUp
	if state == "open" {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{
		Status:  status,
		Details: map[string]string{"provider": "stormglass", "circuit_breaker": state},
	}
}
