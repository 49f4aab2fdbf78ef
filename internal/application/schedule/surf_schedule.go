package schedule

import (
	"context"
	"errors"
	"time"

	"surf-calendar/internal/domain/usecase/surf"
	"surf-calendar/pkg/log"
	"surf-calendar/pkg/msg"
	"surf-calendar/pkg/redis"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	lockKey       = "surf_forecast_scheduler"
	lockNamespace = "surf_schedules"

	defaultLockTTL         = 10 * time.Minute
	defaultRefreshInterval = time.Minute
)

// TaskLock keeps a single scheduler active across replicas, implemented by *redis.Lock
type TaskLock interface {
	Lock(ctx context.Context) error
	AutoRefresh(ctx context.Context) <-chan error
}

// NewRedisTaskLock builds the distributed lock guarding the surf scheduler
func NewRedisTaskLock(client *redis.Client, lockTTL, refreshInterval time.Duration) TaskLock {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return redis.NewScheduledTaskLock(client, lockKey, lockTTL, refreshInterval, lockNamespace)
}

// SurfScheduler runs the forecast processing on a cron expression
type SurfScheduler struct {
	cron           *cron.Cron
	useCase        surf.UseCase
	lock           TaskLock
	cronExpression string
	done           chan struct{}
}

// NewSurfScheduler creates the scheduler. A nil lock runs the cron without coordination.
func NewSurfScheduler(useCase surf.UseCase, lock TaskLock, cronExpression string) *SurfScheduler {
	return &SurfScheduler{
		cron:           cron.New(),
		useCase:        useCase,
		lock:           lock,
		cronExpression: cronExpression,
		done:           make(chan struct{}),
	}
}

// InitSurfScheduleTasks waits for the lock in background, then starts the cron until ctx
// ends or the lock can no longer be refreshed.
func (s *SurfScheduler) InitSurfScheduleTasks(ctx context.Context) {
	go func() {
		defer close(s.done)

		var refreshErrChan <-chan error
		if s.lock != nil {
			if err := s.lock.Lock(ctx); err != nil {
				log.Error(msg.GetMessage("surf.schedule.lock-failed", err), zap.Error(err))
				return
			}
			refreshErrChan = s.lock.AutoRefresh(ctx)
		}

		if _, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask); err != nil {
			log.Error(msg.GetMessage("surf.schedule.cron-failed", err), zap.Error(err))
			return
		}
		s.cron.Start()
		log.Info(msg.GetMessage("surf.schedule.started", s.cronExpression))

		var err error
		select {
		case err = <-refreshErrChan:
		case <-ctx.Done():
		}
		s.Stop()

		if err != nil {
			log.Error(msg.GetMessage("surf.schedule.refresh-failed", err), zap.Error(err))
			return
		}
		log.Info(msg.GetMessage("surf.schedule.stopped"))
	}()
}

// ExecuteScheduledTask processes the forecast once
func (s *SurfScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()
	log.Info("Surf forecast scheduled task triggered", zap.String("request_id", requestID))

	report, err := s.useCase.ProcessForecast(context.Background(), requestID)
	if errors.Is(err, surf.ErrRunInProgress) {
		log.Warn(msg.GetMessage("surf.run.in-progress"), zap.String("request_id", requestID))
		return
	}
	if err != nil {
		log.Error("Scheduled forecast processing failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Scheduled forecast processing completed",
		zap.String("request_id", requestID), zap.Int("days", len(report.Days)))
}

// Stop gracefully stops the cron, waiting for a running task
func (s *SurfScheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Done is closed once the scheduler goroutine has exited
func (s *SurfScheduler) Done() <-chan struct{} {
	return s.done
}
