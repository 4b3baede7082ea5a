package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports/mocks"
)

func TestDownloadService_Execute(t *testing.T) {
	tests := []struct {
		name           string
		request        TransferRequest
		setupMock      func(*mocks.MockProber)
		expectAttempts int
		expectError    bool
	}{
		{
			name:           "default attempts",
			request:        TransferRequest{SizeMB: 1, Pause: time.Millisecond},
			setupMock:      func(p *mocks.MockProber) {},
			expectAttempts: 3,
		},
		{
			name:           "explicit attempts",
			request:        TransferRequest{SizeMB: 1, Attempts: 5, Pause: time.Millisecond},
			setupMock:      func(p *mocks.MockProber) {},
			expectAttempts: 5,
		},
		{
			name:    "prober failure aborts",
			request: TransferRequest{SizeMB: 1, Attempts: 3, Pause: time.Millisecond},
			setupMock: func(p *mocks.MockProber) {
				p.DownloadErr = errors.New("connection reset")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := mocks.NewMockProber()
			tt.setupMock(prober)

			service := NewDownloadService(prober)
			summary, err := service.Execute(context.Background(), tt.request)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(summary.Attempts) != tt.expectAttempts {
				t.Errorf("expected %d attempts, got %d", tt.expectAttempts, len(summary.Attempts))
			}
			if prober.DownloadCalls != tt.expectAttempts {
				t.Errorf("expected %d prober calls, got %d", tt.expectAttempts, prober.DownloadCalls)
			}
			if summary.Direction != domain.DirectionDownload {
				t.Errorf("unexpected direction: %s", summary.Direction)
			}
			if summary.Best.Mbps() <= 0 {
				t.Errorf("expected positive best speed, got %v", summary.Best.Mbps())
			}
		})
	}
}

func TestDownloadService_KeepsBestAttempt(t *testing.T) {
	prober := mocks.NewMockProber()
	prober.DownloadSpeed = 50

	service := NewDownloadService(prober)
	summary, err := service.Execute(context.Background(), TransferRequest{
		SizeMB: 2, Attempts: 3, Pause: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best, ok := domain.BestAttempt(summary.Attempts)
	if !ok {
		t.Fatal("expected attempts")
	}
	if summary.Best.Mbps() != best.Mbps() {
		t.Errorf("Best (%v Mbps) is not the fastest attempt (%v Mbps)",
			summary.Best.Mbps(), best.Mbps())
	}
	if summary.MeanMbps <= 0 {
		t.Errorf("expected positive mean speed, got %v", summary.MeanMbps)
	}
}

func TestUploadService_Execute(t *testing.T) {
	prober := mocks.NewMockProber()
	service := NewUploadService(prober)

	summary, err := service.Execute(context.Background(), TransferRequest{
		SizeMB: 1, Attempts: 2, Pause: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Attempts) != 2 {
		t.Errorf("expected 2 attempts, got %d", len(summary.Attempts))
	}
	if summary.Direction != domain.DirectionUpload {
		t.Errorf("unexpected direction: %s", summary.Direction)
	}

	// Each attempt streams the full zero-filled payload
	wantBytes := int64(2 * 1024 * 1024)
	if prober.UploadedBytes != wantBytes {
		t.Errorf("expected %d uploaded bytes, got %d", wantBytes, prober.UploadedBytes)
	}
}

func TestUploadService_CleansUpScratchFile(t *testing.T) {
	dir := t.TempDir()
	prober := mocks.NewMockProber()
	service := &UploadService{prober: prober, dir: dir}

	_, err := service.Execute(context.Background(), TransferRequest{
		SizeMB: 1, Attempts: 1, Pause: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDirEmpty(t, dir)
}

func TestUploadService_CleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	prober := mocks.NewMockProber()
	prober.UploadErr = errors.New("broken pipe")
	service := &UploadService{prober: prober, dir: dir}

	_, err := service.Execute(context.Background(), TransferRequest{
		SizeMB: 1, Attempts: 3, Pause: time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error")
	}

	// The scratch file must not leak even when the test aborts mid-run
	assertDirEmpty(t, dir)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected no leftover files, found %v", names)
	}
}
