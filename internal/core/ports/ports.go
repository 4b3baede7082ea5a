package ports

import (
	"context"
	"io"

	"speedprobe/internal/core/domain"
)

// Prober defines the port for the speed-test API operations.
type Prober interface {
	// Info fetches service metadata from the API root endpoint
	Info(ctx context.Context) (*domain.ServerInfo, error)

	// Ping issues a single liveness request and measures its round trip
	Ping(ctx context.Context) (domain.PingSample, error)

	// Download requests sizeMB of test data and times the transfer.
	// Timed transfers are never retried.
	Download(ctx context.Context, sizeMB int) (domain.TransferAttempt, error)

	// Upload posts the payload as multipart form field "file" and times
	// the transfer. Timed transfers are never retried.
	Upload(ctx context.Context, filename string, size int64, payload io.Reader) (domain.TransferAttempt, error)

	// Network fetches the network information report
	Network(ctx context.Context) (*domain.NetworkInfo, error)

	// BaseURL returns the server this prober targets
	BaseURL() string
}

// HistoryRepository defines the port for persisted test reports.
type HistoryRepository interface {
	// Save persists a report
	Save(ctx context.Context, report *domain.Report) error

	// List returns all saved reports, newest first
	List(ctx context.Context) ([]domain.Report, error)

	// Prune deletes the oldest reports until at most keep remain.
	// Returns the number of reports removed.
	Prune(ctx context.Context, keep int) (int, error)

	// Clear removes every saved report and returns the number removed
	Clear(ctx context.Context) (int, error)
}
