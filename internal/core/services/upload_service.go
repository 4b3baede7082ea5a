package services

import (
	"context"
	"fmt"
	"os"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports"
)

// UploadService runs best-of-N upload measurements. It owns the scratch
// payload lifecycle: a zero-filled temp file is created before the first
// attempt and removed when the test ends, success or not.
type UploadService struct {
	prober ports.Prober
	dir    string // temp dir override, empty means os.TempDir
}

// NewUploadService creates a new upload service.
func NewUploadService(prober ports.Prober) *UploadService {
	return &UploadService{prober: prober}
}

// Execute runs the upload test and keeps the fastest attempt.
func (s *UploadService) Execute(ctx context.Context, req TransferRequest) (*domain.TransferSummary, error) {
	req.applyDefaults()

	size := int64(req.SizeMB) * 1024 * 1024
	path, err := s.createPayload(size)
	if err != nil {
		return nil, fmt.Errorf("create upload payload: %w", err)
	}
	defer os.Remove(path)

	attempts := make([]domain.TransferAttempt, 0, req.Attempts)
	for i := 0; i < req.Attempts; i++ {
		if i > 0 {
			if err := pause(ctx, req.Pause); err != nil {
				return nil, err
			}
		}
		attempt, err := s.uploadOnce(ctx, path, size)
		if err != nil {
			return nil, fmt.Errorf("upload attempt %d/%d: %w", i+1, req.Attempts, err)
		}
		attempts = append(attempts, attempt)
	}

	return summarizeTransfer(domain.DirectionUpload, req.SizeMB, attempts)
}

func (s *UploadService) uploadOnce(ctx context.Context, path string, size int64) (domain.TransferAttempt, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.TransferAttempt{}, err
	}
	defer f.Close()

	return s.prober.Upload(ctx, "speedprobe-upload.bin", size, f)
}

// createPayload writes a zero-filled scratch file of the given size and
// returns its path. The caller removes it.
func (s *UploadService) createPayload(size int64) (string, error) {
	f, err := os.CreateTemp(s.dir, "speedprobe-upload-*.bin")
	if err != nil {
		return "", err
	}
	path := f.Name()

	// Zero-filled payload, written in chunks to bound memory
	zeros := make([]byte, 256*1024)
	remaining := size
	for remaining > 0 {
		chunk := int64(len(zeros))
		if remaining < chunk {
			chunk = remaining
		}
		if _, err := f.Write(zeros[:chunk]); err != nil {
			f.Close()
			os.Remove(path)
			return "", err
		}
		remaining -= chunk
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
