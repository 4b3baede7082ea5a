package services

import (
	"context"
	"fmt"
	"time"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports"
	"speedprobe/internal/stats"
)

// DownloadService runs best-of-N download measurements, the same policy
// the speed-test server applies to its own attempts.
type DownloadService struct {
	prober ports.Prober
}

// NewDownloadService creates a new download service.
func NewDownloadService(prober ports.Prober) *DownloadService {
	return &DownloadService{prober: prober}
}

// TransferRequest configures a transfer test in either direction.
type TransferRequest struct {
	SizeMB   int           // payload size per attempt (default 5)
	Attempts int           // attempts to run (default 3)
	Pause    time.Duration // pause between attempts (default 500ms)
}

func (r *TransferRequest) applyDefaults() {
	if r.SizeMB <= 0 {
		r.SizeMB = 5
	}
	if r.Attempts <= 0 {
		r.Attempts = 3
	}
	if r.Pause <= 0 {
		r.Pause = 500 * time.Millisecond
	}
}

// Execute runs the download test and keeps the fastest attempt.
func (s *DownloadService) Execute(ctx context.Context, req TransferRequest) (*domain.TransferSummary, error) {
	req.applyDefaults()

	attempts := make([]domain.TransferAttempt, 0, req.Attempts)
	for i := 0; i < req.Attempts; i++ {
		if i > 0 {
			if err := pause(ctx, req.Pause); err != nil {
				return nil, err
			}
		}
		attempt, err := s.prober.Download(ctx, req.SizeMB)
		if err != nil {
			return nil, fmt.Errorf("download attempt %d/%d: %w", i+1, req.Attempts, err)
		}
		attempts = append(attempts, attempt)
	}

	return summarizeTransfer(domain.DirectionDownload, req.SizeMB, attempts)
}

// summarizeTransfer folds attempts into a best-of summary.
func summarizeTransfer(dir domain.TransferDirection, sizeMB int, attempts []domain.TransferAttempt) (*domain.TransferSummary, error) {
	best, ok := domain.BestAttempt(attempts)
	if !ok {
		return nil, fmt.Errorf("no %s attempts completed", dir)
	}

	speeds := make([]float64, len(attempts))
	for i, a := range attempts {
		speeds[i] = a.Mbps()
	}
	mean, _ := stats.Mean(speeds)

	return &domain.TransferSummary{
		Direction: dir,
		SizeMB:    sizeMB,
		Attempts:  attempts,
		Best:      best,
		MeanMbps:  mean,
	}, nil
}

// pause waits for d or until the context is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	select {
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
