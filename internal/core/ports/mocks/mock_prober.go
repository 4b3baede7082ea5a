package mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"speedprobe/internal/core/domain"
)

// MockProber is a mock implementation of the Prober interface for testing.
// Canned results are returned in order; when the list runs out the last
// entry repeats. Set an Err field to make the corresponding method fail.
type MockProber struct {
	mu sync.Mutex

	InfoResult    *domain.ServerInfo
	InfoErr       error
	PingResults   []domain.PingSample
	PingErr       error
	DownloadSpeed float64 // Mbps used to synthesize download attempts
	DownloadErr   error
	UploadSpeed   float64 // Mbps used to synthesize upload attempts
	UploadErr     error
	NetworkResult *domain.NetworkInfo
	NetworkErr    error

	PingCalls     int
	DownloadCalls int
	UploadCalls   int
	UploadedBytes int64
}

// NewMockProber creates a mock with benign defaults.
func NewMockProber() *MockProber {
	return &MockProber{
		InfoResult: &domain.ServerInfo{
			Message: "Welcome to the Internet Speed Test API",
			Routes:  map[string]string{"info": "/"},
		},
		PingResults:   []domain.PingSample{{RTT: 10 * time.Millisecond}},
		DownloadSpeed: 80,
		UploadSpeed:   16,
		NetworkResult: &domain.NetworkInfo{
			Server: domain.NetworkServer{Hostname: "testhost", IP: "10.0.0.2", IsPrivate: true},
			Client: domain.NetworkClient{IP: "10.0.0.1", IsPrivate: true},
		},
	}
}

func (m *MockProber) Info(ctx context.Context) (*domain.ServerInfo, error) {
	if m.InfoErr != nil {
		return nil, m.InfoErr
	}
	return m.InfoResult, nil
}

func (m *MockProber) Ping(ctx context.Context) (domain.PingSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PingCalls++
	if m.PingErr != nil {
		return domain.PingSample{}, m.PingErr
	}
	idx := m.PingCalls - 1
	if idx >= len(m.PingResults) {
		idx = len(m.PingResults) - 1
	}
	return m.PingResults[idx], nil
}

func (m *MockProber) Download(ctx context.Context, sizeMB int) (domain.TransferAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DownloadCalls++
	if m.DownloadErr != nil {
		return domain.TransferAttempt{}, m.DownloadErr
	}
	return synthAttempt(domain.DirectionDownload, int64(sizeMB)*1024*1024, m.DownloadSpeed), nil
}

func (m *MockProber) Upload(ctx context.Context, filename string, size int64, payload io.Reader) (domain.TransferAttempt, error) {
	m.mu.Lock()
	m.UploadCalls++
	uploadErr := m.UploadErr
	speed := m.UploadSpeed
	m.mu.Unlock()

	if uploadErr != nil {
		return domain.TransferAttempt{}, uploadErr
	}

	// Drain the payload so the caller's temp-file lifecycle is exercised
	n, err := io.Copy(io.Discard, payload)
	if err != nil {
		return domain.TransferAttempt{}, err
	}

	m.mu.Lock()
	m.UploadedBytes += n
	m.mu.Unlock()

	return synthAttempt(domain.DirectionUpload, n, speed), nil
}

func (m *MockProber) Network(ctx context.Context) (*domain.NetworkInfo, error) {
	if m.NetworkErr != nil {
		return nil, m.NetworkErr
	}
	return m.NetworkResult, nil
}

func (m *MockProber) BaseURL() string {
	return "http://mock.test"
}

// synthAttempt builds an attempt whose duration yields the given Mbps.
func synthAttempt(dir domain.TransferDirection, bytes int64, mbps float64) domain.TransferAttempt {
	if mbps <= 0 {
		mbps = 1
	}
	secs := float64(bytes) * 8 / 1e6 / mbps
	return domain.TransferAttempt{
		Direction: dir,
		Bytes:     bytes,
		Duration:  time.Duration(secs * float64(time.Second)),
	}
}
