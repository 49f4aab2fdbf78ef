package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/usecase/surf"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSurfUseCase struct {
	mock.Mock
}

func (m *mockSurfUseCase) ProcessForecast(ctx context.Context, requestID string) (*model.RunReport, error) {
	args := m.Called(ctx, requestID)
	report, _ := args.Get(0).(*model.RunReport)
	return report, args.Error(1)
}

func (m *mockSurfUseCase) EvaluateForecast(ctx context.Context) (*model.RunReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*model.RunReport)
	return report, args.Error(1)
}

func (m *mockSurfUseCase) RequestRun(ctx context.Context, requestID string, dryRun bool) error {
	return m.Called(ctx, requestID, dryRun).Error(0)
}

type stubHealthUseCase struct {
	response model.HealthResponse
}

func (s stubHealthUseCase) CheckHealth(context.Context) model.HealthResponse {
	return s.response
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateForecast(t *testing.T) {
	tests := []struct {
		name   string
		report *model.RunReport
		err    error
		status int
	}{
		{"report", &model.RunReport{Location: "Herzliya", DryRun: true}, nil, http.StatusOK},
		{"report with day errors", &model.RunReport{Location: "Herzliya"}, errors.New("2025-06-10: forbidden"), http.StatusOK},
		{"forecast unavailable", nil, errors.New("quota exceeded"), http.StatusBadGateway},
		{"run in progress", nil, surf.ErrRunInProgress, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			useCase := &mockSurfUseCase{}
			useCase.On("EvaluateForecast", mock.Anything).Return(tt.report, tt.err)
			NewSurfController(e.Group("/surf-calendar"), useCase).InitSurfRoutes()

			rec := serve(e, http.MethodGet, "/surf-calendar/surf/forecast")

			assert.Equal(t, tt.status, rec.Code)
			if tt.report != nil {
				var body model.RunReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "Herzliya", body.Location)
			}
		})
	}
}

func TestRequestRun(t *testing.T) {
	e := echo.New()
	useCase := &mockSurfUseCase{}
	useCase.On("RequestRun", mock.Anything, mock.AnythingOfType("string"), true).Return(nil)
	NewSurfController(e.Group(""), useCase).InitSurfRoutes()

	rec := serve(e, http.MethodPost, "/surf/run?dryRun=true")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["requestId"], 36)
	useCase.AssertExpectations(t)
}

func TestRequestRunConflict(t *testing.T) {
	e := echo.New()
	useCase := &mockSurfUseCase{}
	useCase.On("RequestRun", mock.Anything, mock.Anything, false).Return(surf.ErrRunInProgress)
	NewSurfController(e.Group(""), useCase).InitSurfRoutes()

	rec := serve(e, http.MethodPost, "/surf/run")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckHealthStatusCode(t *testing.T) {
	for status, code := range map[model.HealthStatus]int{
		model.StatusUp:   http.StatusOK,
		model.StatusDown: http.StatusServiceUnavailable,
	} {
		e := echo.New()
		NewHealthController(e.Group(""), stubHealthUseCase{model.HealthResponse{Status: status}}).InitHealthRoutes()

		rec := serve(e, http.MethodGet, "/health")

		assert.Equal(t, code, rec.Code)
		assert.Contains(t, rec.Body.String(), string(status))
	}
}

func TestMetricsRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "surf_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	e := echo.New()
	NewMetricsController(e.Group(""), registry).InitMetricsRoutes()

	rec := serve(e, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "surf_test_total 1"))
}
