package schedule

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"surf-calendar/configs"
	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/usecase/surf"
	"surf-calendar/pkg/msg"
	"surf-calendar/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
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

type stubLock struct {
	lockErr error
	refresh chan error
}

func (l *stubLock) Lock(context.Context) error { return l.lockErr }

func (l *stubLock) AutoRefresh(context.Context) <-chan error { return l.refresh }

func TestMain(m *testing.M) {
	if err := msg.Load(bytes.NewReader(configs.MessagesYAML)); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

func waitDone(t *testing.T, scheduler *SurfScheduler) {
	t.Helper()
	select {
	case <-scheduler.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestExecuteScheduledTaskProcessesForecast(t *testing.T) {
	useCase := new(mockSurfUseCase)
	useCase.On("ProcessForecast", mock.Anything, mock.AnythingOfType("string")).
		Return(&model.RunReport{Days: []model.DayReport{{Date: "2025-06-10"}}}, nil).Once()

	NewSurfScheduler(useCase, nil, "@hourly").ExecuteScheduledTask()

	useCase.AssertExpectations(t)
}

func TestExecuteScheduledTaskToleratesFailures(t *testing.T) {
	useCase := new(mockSurfUseCase)
	useCase.On("ProcessForecast", mock.Anything, mock.Anything).Return(nil, surf.ErrRunInProgress).Once()
	useCase.On("ProcessForecast", mock.Anything, mock.Anything).Return(nil, errors.New("storm glass down")).Once()
	scheduler := NewSurfScheduler(useCase, nil, "@hourly")

	assert.NotPanics(t, scheduler.ExecuteScheduledTask)
	assert.NotPanics(t, scheduler.ExecuteScheduledTask)
	useCase.AssertNumberOfCalls(t, "ProcessForecast", 2)
}

func TestInitStopsWhenLockFails(t *testing.T) {
	scheduler := NewSurfScheduler(new(mockSurfUseCase), &stubLock{lockErr: errors.New("redis unavailable")}, "@hourly")

	scheduler.InitSurfScheduleTasks(context.Background())

	waitDone(t, scheduler)
	assert.Empty(t, scheduler.cron.Entries())
}

func TestInitRejectsInvalidCron(t *testing.T) {
	scheduler := NewSurfScheduler(new(mockSurfUseCase), &stubLock{refresh: make(chan error, 1)}, "not a cron")

	scheduler.InitSurfScheduleTasks(context.Background())

	waitDone(t, scheduler)
	assert.Empty(t, scheduler.cron.Entries())
}

func TestInitStopsOnRefreshFailure(t *testing.T) {
	lock := &stubLock{refresh: make(chan error, 1)}
	scheduler := NewSurfScheduler(new(mockSurfUseCase), lock, "0 5,11,17 * * *")

	scheduler.InitSurfScheduleTasks(context.Background())
	require.Eventually(t, func() bool { return len(scheduler.cron.Entries()) == 1 }, time.Second, 10*time.Millisecond)
	lock.refresh <- errors.New("lock lost")

	waitDone(t, scheduler)
}

func TestInitStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scheduler := NewSurfScheduler(new(mockSurfUseCase), nil, "@every 1h")

	scheduler.InitSurfScheduleTasks(ctx)
	require.Eventually(t, func() bool { return len(scheduler.cron.Entries()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	waitDone(t, scheduler)
}

func TestNewRedisTaskLockDefaults(t *testing.T) {
	lock := NewRedisTaskLock(nil, 0, 0)

	redisLock, ok := lock.(*redis.Lock)
	require.True(t, ok)
	assert.Equal(t, "surf_schedules::surf_forecast_scheduler", redisLock.Key())
}
