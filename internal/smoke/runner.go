package smoke

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/valeko/scoreline/pkg/logger"
)

// Run executes one complete smoke pass: health probe, traffic generation,
// concurrent submission and the final verdict. A non-nil error means the
// service misbehaved, not that individual calls were rejected.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("calls", config.NumCalls),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	calls := generateCalls(ctx, config, stats)
	submitCalls(ctx, config, calls, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Mismatched > 0 || stats.Failed > 0 {
		return fmt.Errorf("smoke run found problems: %d mismatched, %d failed of %d",
			stats.Mismatched, stats.Failed, stats.Submitted)
	}
	logger.Get().Info(ctx, "smoke run passed")
	return nil
}

func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("connect to service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected health status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var matchRate, callsPerSecond float64
	if stats.Submitted > 0 {
		matchRate = float64(stats.Matched) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		callsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("matchRate", matchRate),
		logger.Float64("callsPerSecond", callsPerSecond))
}
