package http

import (
	"surf-calendar/pkg/log"

	"go.uber.org/zap"
)

// HTTPLogger defines hooks for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent
	LogRequest(method, url string, headers map[string]string)

	// LogResponseSuccess is called after receiving a 2xx response
	LogResponseSuccess(method, url string, httpStatus int, latency int64)

	// LogResponseError is called after a transport error or a non 2xx response
	LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, httpStatus int, latency int64, err error, retryCount, maxRetries int)
}

type noopLogger struct{}

func (noopLogger) LogRequest(string, string, map[string]string) {}

func (noopLogger) LogResponseSuccess(string, string, int, int64) {}

func (noopLogger) LogResponseError(string, string, int, string, int64, error) {}

func (noopLogger) LogRequestRetry(string, string, map[string]string, int, int64, error, int, int) {}

// ZapLogger writes HTTP events through the application logger. Headers are never logged.
type ZapLogger struct {
	Client string
}

func (l ZapLogger) LogRequest(method, url string, _ map[string]string) {
	log.Debug("http request", zap.String("client", l.Client), zap.String("method", method), zap.String("url", url))
}

func (l ZapLogger) LogResponseSuccess(method, url string, httpStatus int, latency int64) {
	log.Debug("http response",
		zap.String("client", l.Client),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l ZapLogger) LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http request failed",
		zap.String("client", l.Client),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", truncate(responseBody, 512)),
		zap.Error(err))
}

func (l ZapLogger) LogRequestRetry(method, url string, _ map[string]string, httpStatus int, latency int64, err error, retryCount, maxRetries int) {
	log.Warn("http request retry",
		zap.String("client", l.Client),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
