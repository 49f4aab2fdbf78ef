package surf

import (
	"context"
	"errors"

	"surf-calendar/internal/domain/model"
)

// ErrRunInProgress is returned when a run starts while another one is still active
var ErrRunInProgress = errors.New("forecast run already in progress")

type UseCase interface {
	// ProcessForecast evaluates the forecast horizon and applies the decided calendar actions
	ProcessForecast(ctx context.Context, requestID string) (*model.RunReport, error)

	// EvaluateForecast runs the same evaluation without writing to the calendar
	EvaluateForecast(ctx context.Context) (*model.RunReport, error)

	// RequestRun enqueues a run, or starts it in background when no queue is configured
	RequestRun(ctx context.Context, requestID string, dryRun bool) error
}
