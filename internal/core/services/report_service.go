package services

import (
	"context"
	"fmt"
	"time"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports"
)

// ReportService orchestrates a full speed test: latency, download, upload
// and network information folded into one report, optionally persisted.
type ReportService struct {
	prober   ports.Prober
	ping     *PingService
	download *DownloadService
	upload   *UploadService
	history  ports.HistoryRepository
}

// NewReportService creates a new report service. history may be nil when
// reports should not be persisted.
func NewReportService(prober ports.Prober, history ports.HistoryRepository) *ReportService {
	return &ReportService{
		prober:   prober,
		ping:     NewPingService(prober),
		download: NewDownloadService(prober),
		upload:   NewUploadService(prober),
		history:  history,
	}
}

// ReportRequest configures a full test run.
type ReportRequest struct {
	Ping        PingRequest
	Download    TransferRequest
	Upload      TransferRequest
	SkipNetwork bool
	Save        bool
}

// Execute runs the full test. The phases run sequentially so they do not
// compete for bandwidth. A failed network lookup degrades the report
// instead of failing it, matching the server's own degraded mode.
func (s *ReportService) Execute(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	report := &domain.Report{
		Timestamp: time.Now(),
		ServerURL: s.prober.BaseURL(),
	}

	pingSummary, err := s.ping.Execute(ctx, req.Ping)
	if err != nil {
		return nil, fmt.Errorf("latency test: %w", err)
	}
	report.Ping = pingSummary

	downloadSummary, err := s.download.Execute(ctx, req.Download)
	if err != nil {
		return nil, fmt.Errorf("download test: %w", err)
	}
	report.Download = downloadSummary

	uploadSummary, err := s.upload.Execute(ctx, req.Upload)
	if err != nil {
		return nil, fmt.Errorf("upload test: %w", err)
	}
	report.Upload = uploadSummary

	if !req.SkipNetwork {
		network, err := s.prober.Network(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			report.Network = &domain.NetworkInfo{Error: err.Error()}
		} else {
			report.Network = network
		}
	}

	report.Summarize()

	if req.Save && s.history != nil {
		if err := s.history.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}
	return report, nil
}
