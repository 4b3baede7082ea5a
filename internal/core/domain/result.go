package domain

import (
	"time"
)

// PingSample is a single round-trip measurement against the ping endpoint,
// with the connection phase breakdown captured via httptrace.
type PingSample struct {
	RTT        time.Duration `json:"rtt"`
	DNSLookup  time.Duration `json:"dns_lookup"`
	Connect    time.Duration `json:"connect"`
	TLS        time.Duration `json:"tls,omitempty"`
	ServerWait time.Duration `json:"server_wait"` // connection established to first response byte
}

// PingSummary aggregates repeated ping samples.
type PingSummary struct {
	Sent     int           `json:"sent"`
	Received int           `json:"received"`
	MinMs    float64       `json:"min_ms"`
	AvgMs    float64       `json:"avg_ms"`
	MaxMs    float64       `json:"max_ms"`
	JitterMs float64       `json:"jitter_ms"`
	P90Ms    float64       `json:"p90_ms"`
	Samples  []PingSample  `json:"samples,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Loss returns the fraction of pings that got no answer, in [0, 1].
func (p PingSummary) Loss() float64 {
	if p.Sent == 0 {
		return 0
	}
	return float64(p.Sent-p.Received) / float64(p.Sent)
}

// ServerResult is the measurement the server reports for one transfer.
// Shape matches the speed-test API's download/upload response body.
type ServerResult struct {
	File        string  `json:"file,omitempty"`
	SizeMB      float64 `json:"size_mb"`
	DurationSec float64 `json:"duration_sec"`
	SpeedMbps   float64 `json:"speed_mbps"`
}

// TransferDirection distinguishes download and upload attempts.
type TransferDirection string

const (
	DirectionDownload TransferDirection = "download"
	DirectionUpload   TransferDirection = "upload"
)

// TransferAttempt is a single timed transfer measured on the client side.
type TransferAttempt struct {
	Direction TransferDirection `json:"direction"`
	Bytes     int64             `json:"bytes"`
	Duration  time.Duration     `json:"duration"`
	Server    *ServerResult     `json:"server,omitempty"`
}

// Mbps returns the client-measured throughput in megabits per second.
func (a TransferAttempt) Mbps() float64 {
	secs := a.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(a.Bytes) * 8 / secs / 1e6
}

// ServerMbps returns the server-reported speed, or 0 when the server sent
// no parseable result.
func (a TransferAttempt) ServerMbps() float64 {
	if a.Server == nil {
		return 0
	}
	return a.Server.SpeedMbps
}

// TransferSummary is the outcome of a best-of-N transfer test. Best holds
// the attempt with the highest client-measured throughput, mirroring the
// server's own best-of-attempts behavior.
type TransferSummary struct {
	Direction TransferDirection `json:"direction"`
	SizeMB    int               `json:"size_mb"`
	Attempts  []TransferAttempt `json:"attempts"`
	Best      TransferAttempt   `json:"best"`
	MeanMbps  float64           `json:"mean_mbps"`
}

// BestAttempt selects the attempt with the highest client-measured Mbps.
// The second return is false for an empty slice.
func BestAttempt(attempts []TransferAttempt) (TransferAttempt, bool) {
	if len(attempts) == 0 {
		return TransferAttempt{}, false
	}
	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.Mbps() > best.Mbps() {
			best = a
		}
	}
	return best, true
}
