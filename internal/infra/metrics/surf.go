// Package metrics exposes Prometheus metrics for forecast processing runs
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values shared by the recorders
const (
	StatusSuccess = "success"
	StatusError   = "error"

	SourceAPI   = "api"
	SourceCache = "cache"

	ModeApply  = "apply"
	ModeDryRun = "dry_run"
)

// SurfMetrics contains Prometheus metrics for forecast runs. A nil *SurfMetrics records nothing.
type SurfMetrics struct {
	runsTotal            *prometheus.CounterVec
	runDuration          *prometheus.HistogramVec
	forecastFetchesTotal *prometheus.CounterVec
	calendarActionsTotal *prometheus.CounterVec
	calendarErrorsTotal  *prometheus.CounterVec
	windowPeakScore      prometheus.Histogram
	daysEvaluatedTotal   *prometheus.CounterVec
	lastRunTimestamp     prometheus.Gauge
}

// NewSurfMetrics creates the metrics and registers them on registry
func NewSurfMetrics(registry prometheus.Registerer) (*SurfMetrics, error) {
	m := &SurfMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SurfMetrics) initMetrics() {
	m.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surf_runs_total",
			Help: "Total number of forecast processing runs",
		},
		[]string{"mode", "status"},
	)

	m.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "surf_run_duration_seconds",
			Help:    "Time taken by a forecast processing run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"mode"},
	)

	m.forecastFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surf_forecast_fetches_total",
			Help: "Total number of forecast loads by source",
		},
		[]string{"source", "status"},
	)

	m.calendarActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surf_calendar_actions_total",
			Help: "Total number of decided calendar actions",
		},
		[]string{"action", "applied"},
	)

	m.calendarErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surf_calendar_errors_total",
			Help: "Total number of failed calendar operations",
		},
		[]string{"operation"},
	)

	m.windowPeakScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "surf_window_peak_score",
		Help:    "Peak quality score of selected surf windows",
		Buckets: prometheus.LinearBuckets(60, 5, 9),
	})

	m.daysEvaluatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surf_days_evaluated_total",
			Help: "Total number of evaluated days by outcome",
		},
		[]string{"outcome"}, // window, no_window
	)

	m.lastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "surf_last_successful_run_timestamp_seconds",
		Help: "Unix time of the last successful run",
	})
}

// Describe implements the Collector interface
func (m *SurfMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.runsTotal.Describe(ch)
	m.runDuration.Describe(ch)
	m.forecastFetchesTotal.Describe(ch)
	m.calendarActionsTotal.Describe(ch)
	m.calendarErrorsTotal.Describe(ch)
	m.windowPeakScore.Describe(ch)
	m.daysEvaluatedTotal.Describe(ch)
	m.lastRunTimestamp.Describe(ch)
}

// Collect implements the Collector interface
func (m *SurfMetrics) Collect(ch chan<- prometheus.Metric) {
	m.runsTotal.Collect(ch)
	m.runDuration.Collect(ch)
	m.forecastFetchesTotal.Collect(ch)
	m.calendarActionsTotal.Collect(ch)
	m.calendarErrorsTotal.Collect(ch)
	m.windowPeakScore.Collect(ch)
	m.daysEvaluatedTotal.Collect(ch)
	m.lastRunTimestamp.Collect(ch)
}

// RecordRun records a finished run
func (m *SurfMetrics) RecordRun(mode, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(mode, status).Inc()
	m.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if status == StatusSuccess {
		m.lastRunTimestamp.SetToCurrentTime()
	}
}

// RecordForecastFetch records where the forecast came from
func (m *SurfMetrics) RecordForecastFetch(source, status string) {
	if m == nil {
		return
	}
	m.forecastFetchesTotal.WithLabelValues(source, status).Inc()
}

// RecordDay records the outcome of a day and the peak score of its window
func (m *SurfMetrics) RecordDay(hasWindow bool, peakScore int) {
	if m == nil {
		return
	}
	if !hasWindow {
		m.daysEvaluatedTotal.WithLabelValues("no_window").Inc()
		return
	}
	m.daysEvaluatedTotal.WithLabelValues("window").Inc()
	m.windowPeakScore.Observe(float64(peakScore))
}

// RecordCalendarAction records a decided action
func (m *SurfMetrics) RecordCalendarAction(action string, applied bool) {
	if m == nil {
		return
	}
	label := "false"
	if applied {
		label = "true"
	}
	m.calendarActionsTotal.WithLabelValues(action, label).Inc()
}

// RecordCalendarError records a failed calendar operation
func (m *SurfMetrics) RecordCalendarError(operation string) {
	if m == nil {
		return
	}
	m.calendarErrorsTotal.WithLabelValues(operation).Inc()
}
