package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"speedprobe/internal/core/ports/mocks"
)

func quickReportRequest(save bool) ReportRequest {
	return ReportRequest{
		Ping:     PingRequest{Count: 2, Interval: time.Millisecond},
		Download: TransferRequest{SizeMB: 1, Attempts: 2, Pause: time.Millisecond},
		Upload:   TransferRequest{SizeMB: 1, Attempts: 2, Pause: time.Millisecond},
		Save:     save,
	}
}

func TestReportService_Execute(t *testing.T) {
	prober := mocks.NewMockProber()
	history := mocks.NewMockHistoryRepository()
	service := NewReportService(prober, history)

	report, err := service.Execute(context.Background(), quickReportRequest(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Ping == nil || report.Download == nil || report.Upload == nil {
		t.Fatal("expected all test sections populated")
	}
	if report.Network == nil {
		t.Fatal("expected network section")
	}
	if report.Summary.DownloadSpeedMbps <= 0 {
		t.Errorf("expected positive download summary, got %v", report.Summary.DownloadSpeedMbps)
	}
	if report.Summary.UploadSpeedMbps <= 0 {
		t.Errorf("expected positive upload summary, got %v", report.Summary.UploadSpeedMbps)
	}
	if report.Summary.TestsPerDirection != 2 {
		t.Errorf("expected 2 tests per direction, got %d", report.Summary.TestsPerDirection)
	}
	if report.ServerURL != prober.BaseURL() {
		t.Errorf("unexpected server URL: %s", report.ServerURL)
	}
	if history.Count() != 1 {
		t.Errorf("expected 1 saved report, got %d", history.Count())
	}
}

func TestReportService_NoSave(t *testing.T) {
	prober := mocks.NewMockProber()
	history := mocks.NewMockHistoryRepository()
	service := NewReportService(prober, history)

	if _, err := service.Execute(context.Background(), quickReportRequest(false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.Count() != 0 {
		t.Errorf("expected no saved reports, got %d", history.Count())
	}
}

func TestReportService_SkipNetwork(t *testing.T) {
	prober := mocks.NewMockProber()
	service := NewReportService(prober, nil)

	req := quickReportRequest(false)
	req.SkipNetwork = true

	report, err := service.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Network != nil {
		t.Error("expected network section to be skipped")
	}
}

func TestReportService_NetworkFailureDegrades(t *testing.T) {
	prober := mocks.NewMockProber()
	prober.NetworkErr = errors.New("geolocation unavailable")
	service := NewReportService(prober, nil)

	report, err := service.Execute(context.Background(), quickReportRequest(false))
	if err != nil {
		t.Fatalf("expected degraded report, got error: %v", err)
	}
	if report.Network == nil || report.Network.Error == "" {
		t.Errorf("expected network error recorded, got %+v", report.Network)
	}
}

func TestReportService_PingFailureAborts(t *testing.T) {
	prober := mocks.NewMockProber()
	prober.PingErr = errors.New("no route to host")
	service := NewReportService(prober, nil)

	if _, err := service.Execute(context.Background(), quickReportRequest(false)); err == nil {
		t.Fatal("expected error when latency test fails")
	}
}

func TestReportService_SaveFailureSurfaces(t *testing.T) {
	prober := mocks.NewMockProber()
	history := mocks.NewMockHistoryRepository()
	history.SaveErr = errors.New("disk full")
	service := NewReportService(prober, history)

	report, err := service.Execute(context.Background(), quickReportRequest(true))
	if err == nil {
		t.Fatal("expected save error")
	}
	if report == nil {
		t.Error("expected the report despite the save failure")
	}
}
