package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"surf-calendar/configs"
	"surf-calendar/internal/domain/gateway/api"
	"surf-calendar/internal/domain/gateway/cache"
	"surf-calendar/internal/domain/gateway/calendar"
	"surf-calendar/internal/domain/gateway/queue"
	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/model/external"
	"surf-calendar/internal/domain/scoring"
	"surf-calendar/internal/domain/usecase/health"
	"surf-calendar/internal/domain/usecase/surf"
	awsinfra "surf-calendar/internal/infra/aws"
	"surf-calendar/internal/infra/metrics"
	"surf-calendar/pkg/http"
	"surf-calendar/pkg/log"
	"surf-calendar/pkg/redis"
	"surf-calendar/pkg/resource"
	"surf-calendar/pkg/sqs"
	"surf-calendar/pkg/suncalc"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// application holds the wired components shared by every command
type application struct {
	env         *configs.EnvConfig
	cfg         scoring.Config
	registry    *prometheus.Registry
	redisClient *redis.Client
	sqsClient   *awssqs.Client
	queueName   string
	queueHealth *queue.QueueHealthGateway
	forecast    api.ForecastGateway
	cache       cache.ForecastGateway
	surf        surf.UseCase
	health      health.UseCase
}

func newApplication(ctx context.Context) (*application, error) {
	env, err := configs.Load()
	if err != nil {
		return nil, err
	}
	cfg, err := configs.LoadSurfConfig()
	if err != nil {
		return nil, err
	}

	app := &application{
		env:         env,
		cfg:         cfg,
		registry:    prometheus.NewRegistry(),
		queueName:   resource.GetString("aws.sqs.run-queue"),
		queueHealth: queue.NewQueueHealthGateway(),
	}
	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	surfMetrics, err := metrics.NewSurfMetrics(app.registry)
	if err != nil {
		return nil, err
	}

	app.forecast = newForecastGateway()
	if app.cache, err = app.newCache(); err != nil {
		return nil, err
	}
	calendarGateway, err := newCalendarGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}

	settings, err := newSurfSettings(app.queueName)
	if err != nil {
		return nil, err
	}
	deps := surf.Dependencies{
		Forecast: app.forecast,
		Cache:    app.cache,
		Calendar: calendarGateway,
		Metrics:  surfMetrics,
	}
	if resource.GetBool("surf.surf-hours.clamp-to-daylight") {
		deps.Daylight = suncalc.NewSunCalc(cfg.Location.Latitude, cfg.Location.Longitude, cfg.Location.TimeZone)
	}
	if app.queueName != "" {
		if app.sqsClient, err = newSqsClient(ctx); err != nil {
			return nil, err
		}
		deps.Sender = sqs.NewSender(app.sqsClient)
	}

	app.surf = surf.NewSurfUseCase(cfg, settings, deps)
	app.health = health.NewHealthUseCase(app.cache, app.queueHealth, app.forecast)
	return app, nil
}

func newSurfSettings(queueName string) (surf.Settings, error) {
	degradeMode, ok := model.ParseDegradeMode(resource.GetString("surf.degrade-mode"))
	if !ok {
		return surf.Settings{}, fmt.Errorf("invalid surf.degrade-mode %q", resource.GetString("surf.degrade-mode"))
	}
	windUnit := external.WindUnit(resource.GetString("stormglass.wind-unit"))
	if windUnit != external.WindUnitKnots && windUnit != external.WindUnitMPS {
		return surf.Settings{}, fmt.Errorf("invalid stormglass.wind-unit %q", windUnit)
	}

	var params []string
	for _, param := range strings.Split(resource.GetString("stormglass.params"), ",") {
		if param = strings.TrimSpace(param); param != "" {
			params = append(params, param)
		}
	}

	return surf.Settings{
		Params:      params,
		WindUnit:    windUnit,
		Horizon:     time.Duration(resource.GetInt("surf.forecast.horizon-hours")) * time.Hour,
		DegradeMode: degradeMode,
		QueueName:   queueName,
	}, nil
}

func newForecastGateway() api.ForecastGateway {
	return api.NewStormGlassGateway(
		resource.GetString("stormglass.base-url"),
		resource.GetString("stormglass.api-key"),
		http.ClientOptions{
			ReadTimeout: resource.GetDuration("stormglass.timeout"),
			Backoff: &http.BackoffConfig{
				MaxRetries:      resource.GetInt("stormglass.retries"),
				InitialInterval: time.Second,
				MaxInterval:     10 * time.Second,
				Multiplier:      2,
			},
			CircuitBreaker: &http.BreakerConfig{
				Name:                "stormglass",
				ConsecutiveFailures: uint32(resource.GetInt("stormglass.breaker-failures")),
				OpenTimeout:         resource.GetDuration("stormglass.breaker-open-timeout"),
			},
		},
	)
}

func (app *application) newCache() (cache.ForecastGateway, error) {
	backend, err := cache.ParseBackend(resource.GetString("cache.backend"))
	if err != nil {
		return nil, err
	}
	ttl := resource.GetDuration("cache.ttl")

	switch backend {
	case cache.BackendRedis:
		client, err := app.redis()
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client, redis.NewCacheOptions().WithTTL(ttl)), nil
	case cache.BackendMemory:
		return cache.NewMemoryCache(ttl), nil
	case cache.BackendFile:
		return cache.NewFileCache(resource.GetString("cache.dir"), ttl), nil
	default:
		return cache.NewNoneCache(), nil
	}
}

// redis connects on first use so commands without a redis backed component never dial it
func (app *application) redis() (*redis.Client, error) {
	if app.redisClient != nil {
		return app.redisClient, nil
	}
	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("redis.host")).
		WithPort(resource.GetInt("redis.port")).
		WithPassword(resource.GetString("redis.password")).
		WithDatabase(resource.GetInt("redis.database")))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redisClient = client
	return client, nil
}

func newCalendarGateway(ctx context.Context, cfg scoring.Config) (calendar.Gateway, error) {
	gateway, err := calendar.NewGoogleCalendarGateway(ctx, calendar.Settings{
		CalendarID:  resource.GetString("calendar.id"),
		Credentials: resource.GetString("calendar.service-account-key"),
		TimeZone:    cfg.Location.TimeZone,
		SurfTag:     resource.GetString("calendar.surf-tag"),
		DegradedTag: resource.GetString("calendar.degraded-tag"),
	})
	if errors.Is(err, calendar.ErrNotConfigured) {
		log.Warn("Google Calendar is not configured, calendar writes are disabled")
		return calendar.NewUnconfiguredGateway(), nil
	}
	return gateway, err
}

func newSqsClient(ctx context.Context) (*awssqs.Client, error) {
	cfg, err := awsinfra.LoadConfig(ctx, awsinfra.Settings{
		Region:          resource.GetString("aws.region"),
		Endpoint:        resource.GetString("aws.endpoint"),
		AccessKeyID:     resource.GetString("aws.access-key-id"),
		SecretAccessKey: resource.GetString("aws.secret-access-key"),
	})
	if err != nil {
		return nil, err
	}
	return awsinfra.NewSqsClient(cfg), nil
}

// newRunWorker builds the queue consumer for run requests and registers it for health checks
func (app *application) newRunWorker(ctx context.Context, handler sqs.Handler) (*sqs.Worker, error) {
	worker, err := sqs.NewWorker(ctx, app.sqsClient, app.queueName, handler, &sqs.WorkerConfig{
		MaxNumberOfMessages: 1,
		PoolSize:            resource.GetInt("aws.sqs.pool-size"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create worker for %s: %w", app.queueName, err)
	}
	app.queueHealth.RegisterWorker(app.queueName, worker)
	return worker, nil
}

func (app *application) close() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	log.Sync()
}
