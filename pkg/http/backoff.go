package http

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BackoffConfig describes an exponential retry policy.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// RetryOn decides whether a failed attempt is retried. Defaults to transport errors, 429 and 5xx.
	RetryOn func(status int, err error) bool
}

// DefaultBackoff returns a policy with three retries starting at 500ms.
func DefaultBackoff() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
	}
}

func (b *BackoffConfig) shouldRetry(status int, err error) bool {
	if b == nil || err == nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if b.RetryOn != nil {
		return b.RetryOn(status, err)
	}
	if status == 0 {
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// delay returns the wait before retry number attempt+1
func (b *BackoffConfig) delay(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	wait := time.Duration(float64(b.InitialInterval) * math.Pow(multiplier, float64(attempt)))
	if b.MaxInterval > 0 && wait > b.MaxInterval {
		return b.MaxInterval
	}
	return wait
}
