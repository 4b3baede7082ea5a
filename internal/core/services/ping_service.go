package services

import (
	"context"
	"fmt"
	"time"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports"
	"speedprobe/internal/stats"
)

// PingService measures latency by issuing repeated liveness requests.
type PingService struct {
	prober ports.Prober
}

// NewPingService creates a new ping service.
func NewPingService(prober ports.Prober) *PingService {
	return &PingService{prober: prober}
}

// PingRequest configures a latency test.
type PingRequest struct {
	Count       int           // number of pings (default 10)
	Interval    time.Duration // pause between pings (default 100ms)
	KeepSamples bool          // retain individual samples in the summary
}

// Execute runs the latency test. Individual failures count as lost pings;
// the test only fails when every ping fails.
func (s *PingService) Execute(ctx context.Context, req PingRequest) (*domain.PingSummary, error) {
	count := req.Count
	if count <= 0 {
		count = 10
	}
	interval := req.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	start := time.Now()
	summary := &domain.PingSummary{Sent: count}
	var rtts []time.Duration
	var lastErr error

	for i := 0; i < count; i++ {
		if i > 0 {
			t := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		sample, err := s.prober.Ping(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		summary.Received++
		rtts = append(rtts, sample.RTT)
		if req.KeepSamples {
			summary.Samples = append(summary.Samples, sample)
		}
	}
	summary.Duration = time.Since(start)

	if summary.Received == 0 {
		return nil, fmt.Errorf("all %d pings failed: %w", count, lastErr)
	}

	ms := stats.Durations(rtts)
	summary.MinMs, _ = stats.Min(ms)
	summary.AvgMs, _ = stats.Mean(ms)
	summary.MaxMs, _ = stats.Max(ms)
	summary.JitterMs, _ = stats.StdDev(ms)
	summary.P90Ms, _ = stats.Percentile(ms, 90)

	return summary, nil
}
