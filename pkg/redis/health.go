package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthStatus represents the health status
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// HealthReport is the outcome of a connectivity check
type HealthReport struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthCheck pings the server and reports pool statistics
func (c *Client) HealthCheck(ctx context.Context) HealthReport {
	details := map[string]string{"address": c.config.Address()}

	started := time.Now()
	if err := c.Ping(ctx); err != nil {
		details["error"] = err.Error()
		return HealthReport{Status: StatusDown, Details: details}
	}
	details["ping_latency"] = time.Since(started).String()

	stats := c.rdb.PoolStats()
	details["pool_total_conns"] = strconv.FormatUint(uint64(stats.TotalConns), 10)
	details["pool_idle_conns"] = strconv.FormatUint(uint64(stats.IdleConns), 10)
	details["pool_timeouts"] = strconv.FormatUint(uint64(stats.Timeouts), 10)

	return HealthReport{Status: StatusUp, Details: details}
}
