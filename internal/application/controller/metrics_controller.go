package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsController struct {
	api      *echo.Group
	gatherer prometheus.Gatherer
}

func NewMetricsController(api *echo.Group, gatherer prometheus.Gatherer) *MetricsController {
	return &MetricsController{api: api, gatherer: gatherer}
}

// InitMetricsRoutes exposes the registry in the Prometheus text format
func (controller *MetricsController) InitMetricsRoutes() {
	controller.api.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(controller.gatherer, promhttp.HandlerOpts{})))
}
