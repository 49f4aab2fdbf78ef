package surf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"surf-calendar/internal/domain/entity"
	"surf-calendar/internal/domain/gateway/api"
	"surf-calendar/internal/domain/gateway/cache"
	"surf-calendar/internal/domain/gateway/calendar"
	"surf-calendar/internal/domain/gateway/queue"
	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/internal/domain/scoring"
	"surf-calendar/internal/infra/metrics"
	"surf-calendar/pkg/log"
	"surf-calendar/pkg/msg"

	"go.uber.org/zap"
)

const timestampLayout = "02/01/2006 15:04"

// Daylight narrows the surf hours of a date, implemented by *suncalc.SunCalc
type Daylight interface {
	DaylightMinutes(date time.Time) (int, int, error)
}

// Settings holds the run options that are not part of the scoring model
type Settings struct {
	// Params are the Storm Glass metrics requested
	Params   []string
	WindUnit external.WindUnit
	// Horizon bounds the evaluated hours from the start of the run; zero keeps every hour
	Horizon     time.Duration
	DegradeMode model.DegradeMode
	// QueueName receives run requests; empty runs them in background
	QueueName string
}

// Dependencies are the collaborators of the use case. Sender, Daylight and Metrics are optional.
type Dependencies struct {
	Forecast api.ForecastGateway
	Cache    cache.ForecastGateway
	Calendar calendar.Gateway
	Sender   queue.Sender
	Daylight Daylight
	Metrics  *metrics.SurfMetrics
}

type surfUseCase struct {
	cfg      scoring.Config
	settings Settings
	deps     Dependencies
	running  sync.Mutex
	now      func() time.Time
}

func NewSurfUseCase(cfg scoring.Config, settings Settings, deps Dependencies) UseCase {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoneCache()
	}
	if deps.Calendar == nil {
		deps.Calendar = calendar.NewUnconfiguredGateway()
	}
	return &surfUseCase{
		cfg:      cfg,
		settings: settings,
		deps:     deps,
		now:      time.Now,
	}
}

// ProcessForecast evaluates the forecast horizon and applies the decided calendar actions
func (uc *surfUseCase) ProcessForecast(ctx context.Context, requestID string) (*model.RunReport, error) {
	if !uc.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer uc.running.Unlock()
	return uc.execute(ctx, requestID, false)
}

// EvaluateForecast runs the same evaluation without writing to the calendar
func (uc *surfUseCase) EvaluateForecast(ctx context.Context) (*model.RunReport, error) {
	if !uc.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer uc.running.Unlock()
	return uc.execute(ctx, "dry-run", true)
}

// RequestRun enqueues a run, or starts it in background when no queue is configured
func (uc *surfUseCase) RequestRun(ctx context.Context, requestID string, dryRun bool) error {
	if uc.deps.Sender != nil && uc.settings.QueueName != "" {
		request := model.RunRequest{RequestID: requestID, RequestedAt: uc.now(), DryRun: dryRun}
		if _, err := uc.deps.Sender.SendMessage(ctx, uc.settings.QueueName, request); err != nil {
			return fmt.Errorf("failed to enqueue forecast run %s: %w", requestID, err)
		}
		log.Info(msg.GetMessage("surf.run.enqueued", requestID, uc.settings.QueueName), zap.String("request_id", requestID))
		return nil
	}

	if !uc.running.TryLock() {
		return ErrRunInProgress
	}
	log.Info(msg.GetMessage("surf.run.background", requestID), zap.String("request_id", requestID))

	go func(ctx context.Context) {
		defer uc.running.Unlock()
		if _, err := uc.execute(ctx, requestID, dryRun); err != nil {
			log.Error("Background forecast run failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}(context.WithoutCancel(ctx))
	return nil
}

// execute runs one evaluation; the caller holds the run lock
func (uc *surfUseCase) execute(ctx context.Context, requestID string, dryRun bool) (*model.RunReport, error) {
	mode := metrics.ModeApply
	if dryRun {
		mode = metrics.ModeDryRun
	}
	startedAt := uc.now()
	report := &model.RunReport{
		RequestID: requestID,
		DryRun:    dryRun,
		Location:  uc.cfg.Location.Name,
		StartedAt: startedAt,
	}
	log.Info(msg.GetMessage("surf.run.start", uc.cfg.Location.Name), zap.String("request_id", requestID), zap.Bool("dry_run", dryRun))

	readings, fromCache, err := uc.loadReadings(ctx)
	if err != nil {
		uc.deps.Metrics.RecordRun(mode, metrics.StatusError, uc.now().Sub(startedAt))
		return nil, err
	}
	readings = withinHorizon(readings, startedAt, uc.settings.Horizon)
	report.FromCache = fromCache
	report.HoursInput = len(readings)

	var errs []error
	for _, day := range scoring.SplitDays(readings, uc.cfg) {
		dayReport, err := uc.processDay(ctx, day, dryRun)
		if err != nil {
			errs = append(errs, err)
		}
		report.Days = append(report.Days, dayReport)
	}
	report.FinishedAt = uc.now()

	status := metrics.StatusSuccess
	if len(errs) > 0 {
		status = metrics.StatusError
	}
	uc.deps.Metrics.RecordRun(mode, status, report.FinishedAt.Sub(startedAt))
	log.Info(msg.GetMessage("surf.run.finished", uc.cfg.Location.Name, len(report.Days)),
		zap.String("request_id", requestID),
		zap.Int("created", report.ActionCount(model.ActionCreate)),
		zap.Int("updated", report.ActionCount(model.ActionUpdate)+report.ActionCount(model.ActionRecover)),
		zap.Int("degraded", report.ActionCount(model.ActionDegrade)+report.ActionCount(model.ActionRemove)),
		zap.Int("failed", len(errs)))

	return report, errors.Join(errs...)
}

// loadReadings returns the cached forecast when fresh, otherwise fetches and caches it
func (uc *surfUseCase) loadReadings(ctx context.Context) ([]entity.HourlyReading, bool, error) {
	key := uc.cacheKey()

	forecast, err := uc.deps.Cache.Get(ctx, key)
	if err == nil {
		log.Info(msg.GetMessage("surf.run.cache-hit", key))
		uc.deps.Metrics.RecordForecastFetch(metrics.SourceCache, metrics.StatusSuccess)
		return forecast.ToReadings(uc.settings.WindUnit), true, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn(msg.GetMessage("surf.run.cache-read-failed", key, err))
		uc.deps.Metrics.RecordForecastFetch(metrics.SourceCache, metrics.StatusError)
	}

	log.Info(msg.GetMessage("surf.run.cache-miss", uc.cfg.Location.Name))
	forecast, err = uc.deps.Forecast.GetForecast(ctx, uc.cfg.Location.Latitude, uc.cfg.Location.Longitude, uc.settings.Params)
	if err != nil {
		uc.deps.Metrics.RecordForecastFetch(metrics.SourceAPI, metrics.StatusError)
		return nil, false, fmt.Errorf("failed to fetch forecast for %s: %w", uc.cfg.Location.Name, err)
	}
	uc.deps.Metrics.RecordForecastFetch(metrics.SourceAPI, metrics.StatusSuccess)

	if err := uc.deps.Cache.Set(ctx, key, forecast); err != nil {
		log.Warn(msg.GetMessage("surf.run.cache-store-failed", key, err))
	}
	return forecast.ToReadings(uc.settings.WindUnit), false, nil
}

func (uc *surfUseCase) cacheKey() string {
	return fmt.Sprintf("%s:%.4f,%.4f", strings.ToLower(uc.cfg.Location.Name), uc.cfg.Location.Latitude, uc.cfg.Location.Longitude)
}

// processDay selects the window of a day, decides the calendar action and applies it unless dryRun
func (uc *surfUseCase) processDay(ctx context.Context, day scoring.Day, dryRun bool) (model.DayReport, error) {
	date, err := time.ParseInLocation(time.DateOnly, day.Date, uc.cfg.Location.TimeZone)
	if err != nil {
		return model.DayReport{Date: day.Date, Action: model.ActionNoOp, Error: err.Error()}, err
	}
	cfg := uc.dayConfig(date)

	report := model.DayReport{Date: day.Date, Hours: scoring.ScoreDay(day.Hours, cfg)}
	window := scoring.SelectWindow(report.Hours, cfg)
	if window != nil {
		quality := scoring.ScoreWindow(*window, cfg)
		recommendation := scoring.Classify(*window)
		report.Window = window
		report.WindowQuality = &quality
		report.Recommendation = &recommendation
		uc.deps.Metrics.RecordDay(true, window.PeakScore)
	} else {
		uc.deps.Metrics.RecordDay(false, 0)
	}

	existing, err := uc.deps.Calendar.FindSurfEvent(ctx, date)
	if err != nil {
		uc.deps.Metrics.RecordCalendarError("find")
		report.Action = model.ActionNoOp
		report.Error = err.Error()
		return report, fmt.Errorf("%s: %w", day.Date, err)
	}
	report.ExistingEvent = existing
	report.Action = scoring.Decide(entity.StateOf(existing), window != nil, uc.settings.DegradeMode)

	if window != nil {
		log.Info(msg.GetMessage("surf.day.window", day.Date,
			window.StartTime.In(cfg.Location.TimeZone).Format("15:04"),
			window.EndTime.In(cfg.Location.TimeZone).Format("15:04"),
			window.PeakScore, report.Action))
	} else {
		log.Info(msg.GetMessage("surf.day.no-window", day.Date, report.Action))
	}

	if dryRun || report.Action == model.ActionNoOp {
		uc.deps.Metrics.RecordCalendarAction(string(report.Action), false)
		return report, nil
	}

	if err := uc.apply(ctx, report, cfg); err != nil {
		uc.deps.Metrics.RecordCalendarError(string(report.Action))
		report.Error = err.Error()
		log.Error(msg.GetMessage("surf.day.failed", day.Date, report.Action, err))
		return report, fmt.Errorf("%s: %w", day.Date, err)
	}
	report.Applied = true
	uc.deps.Metrics.RecordCalendarAction(string(report.Action), true)
	return report, nil
}

// apply performs the decided action; calls complete before the next day is processed
func (uc *surfUseCase) apply(ctx context.Context, report model.DayReport, cfg scoring.Config) error {
	updatedAt := uc.now().In(cfg.Location.TimeZone).Format(timestampLayout)

	switch report.Action {
	case model.ActionCreate:
		event := goodEvent(cfg, *report.Window, *report.WindowQuality, *report.Recommendation, updatedAt)
		_, err := uc.deps.Calendar.CreateEvent(ctx, event)
		return err
	case model.ActionUpdate, model.ActionRecover:
		event := goodEvent(cfg, *report.Window, *report.WindowQuality, *report.Recommendation, updatedAt)
		event.ID = report.ExistingEvent.ID
		_, err := uc.deps.Calendar.UpdateEvent(ctx, event)
		return err
	case model.ActionDegrade:
		_, err := uc.deps.Calendar.UpdateEvent(ctx, degradedEvent(*report.ExistingEvent, updatedAt))
		return err
	case model.ActionRemove:
		return uc.deps.Calendar.DeleteEvent(ctx, report.ExistingEvent.ID)
	default:
		return nil
	}
}

// dayConfig narrows the surf hours of date to civil daylight when a daylight source is set
func (uc *surfUseCase) dayConfig(date time.Time) scoring.Config {
	cfg := uc.cfg
	if uc.deps.Daylight == nil {
		return cfg
	}
	dawn, dusk, err := uc.deps.Daylight.DaylightMinutes(date)
	if err != nil {
		log.Warn(msg.GetMessage("surf.run.daylight-failed", date.Format(time.DateOnly), err))
		return cfg
	}
	cfg.SurfHours = cfg.SurfHours.Intersect(dawn, dusk)
	return cfg
}

// withinHorizon keeps the readings in [from, from+horizon]
func withinHorizon(readings []entity.HourlyReading, from time.Time, horizon time.Duration) []entity.HourlyReading {
	if horizon <= 0 {
		return readings
	}
	end := from.Add(horizon)
	filtered := make([]entity.HourlyReading, 0, len(readings))
	for _, reading := range readings {
		if reading.Time.Before(from) || reading.Time.After(end) {
			continue
		}
		filtered = append(filtered, reading)
	}
	return filtered
}
