package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"speedprobe/internal/core/domain"
)

func sampleReport(ts time.Time) *domain.Report {
	r := &domain.Report{
		Timestamp: ts,
		ServerURL: "http://localhost:8000",
		Download: &domain.TransferSummary{
			Direction: domain.DirectionDownload,
			SizeMB:    5,
			Attempts: []domain.TransferAttempt{
				{Direction: domain.DirectionDownload, Bytes: 5_000_000, Duration: time.Second},
			},
			Best: domain.TransferAttempt{Direction: domain.DirectionDownload, Bytes: 5_000_000, Duration: time.Second},
		},
	}
	r.Summarize()
	return r
}

func TestFileRepository_SaveAndList(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, sampleReport(base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}

	// Newest first
	for i := 0; i < len(reports)-1; i++ {
		if reports[i].Timestamp.Before(reports[i+1].Timestamp) {
			t.Errorf("reports not sorted newest first: %v before %v",
				reports[i].Timestamp, reports[i+1].Timestamp)
		}
	}

	if reports[0].Summary.DownloadSpeedMbps != 40 {
		t.Errorf("summary did not round-trip: %v", reports[0].Summary.DownloadSpeedMbps)
	}
}

func TestFileRepository_ListEmptyDir(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing"))
	reports, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestFileRepository_SkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)
	ctx := context.Background()

	if err := repo.Save(ctx, sampleReport(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("expected 1 report, got %d", len(reports))
	}
}

func TestFileRepository_Prune(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, sampleReport(base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	removed, err := repo.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(reports))
	}

	// The newest reports survive
	if !reports[0].Timestamp.Equal(base.Add(4 * time.Hour)) {
		t.Errorf("expected newest report kept, got %v", reports[0].Timestamp)
	}
	if !reports[1].Timestamp.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("expected second-newest kept, got %v", reports[1].Timestamp)
	}
}

func TestFileRepository_PruneNothingToDo(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	removed, err := repo.Prune(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}

func TestFileRepository_Clear(t *testing.T) {
	repo := NewFileRepository(t.TempDir())
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if err := repo.Save(ctx, sampleReport(base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	removed, err := repo.Clear(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 4 {
		t.Errorf("expected 4 removed, got %d", removed)
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected empty history, got %d", len(reports))
	}
}
