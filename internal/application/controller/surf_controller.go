package controller

import (
	"errors"
	"net/http"
	"strconv"

	"surf-calendar/internal/domain/usecase/surf"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SurfController struct {
	api     *echo.Group
	useCase surf.UseCase
}

func NewSurfController(api *echo.Group, useCase surf.UseCase) *SurfController {
	return &SurfController{api: api, useCase: useCase}
}

// InitSurfRoutes initializes surf routes
func (controller *SurfController) InitSurfRoutes() {
	controller.api.GET("/surf/forecast", controller.EvaluateForecast)
	controller.api.POST("/surf/run", controller.RequestRun)
}

// EvaluateForecast returns the per day evaluation and the actions a run would take, without calendar writes
func (controller *SurfController) EvaluateForecast(c echo.Context) error {
	report, err := controller.useCase.EvaluateForecast(c.Request().Context())
	if errors.Is(err, surf.ErrRunInProgress) {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if err != nil && report == nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

// RequestRun accepts a processing run; ?dryRun=true skips calendar writes
func (controller *SurfController) RequestRun(c echo.Context) error {
	dryRun, _ := strconv.ParseBool(c.QueryParam("dryRun"))
	requestID := uuid.NewString()

	err := controller.useCase.RequestRun(c.Request().Context(), requestID, dryRun)
	if errors.Is(err, surf.ErrRunInProgress) {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Forecast run accepted", "requestId": requestID})
}
