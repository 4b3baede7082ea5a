package domain

import (
	"time"
)

// ReportSummary is the headline section of a full test, matching the
// summary block the speed-test API itself produces for a combined run.
type ReportSummary struct {
	DownloadSpeedMbps float64 `json:"download_speed_mbps"`
	UploadSpeedMbps   float64 `json:"upload_speed_mbps"`
	TestsPerDirection int     `json:"tests_per_direction"`
	LatencyMs         float64 `json:"latency_ms"`
}

// Report is the result of a full speed test against one server.
type Report struct {
	Timestamp time.Time        `json:"timestamp"`
	ServerURL string           `json:"server_url"`
	Summary   ReportSummary    `json:"summary"`
	Ping      *PingSummary     `json:"ping,omitempty"`
	Download  *TransferSummary `json:"download,omitempty"`
	Upload    *TransferSummary `json:"upload,omitempty"`
	Network   *NetworkInfo     `json:"network,omitempty"`
}

// Summarize fills the Summary block from the detailed sections.
func (r *Report) Summarize() {
	if r.Download != nil {
		r.Summary.DownloadSpeedMbps = r.Download.Best.Mbps()
		r.Summary.TestsPerDirection = len(r.Download.Attempts)
	}
	if r.Upload != nil {
		r.Summary.UploadSpeedMbps = r.Upload.Best.Mbps()
		if len(r.Upload.Attempts) > r.Summary.TestsPerDirection {
			r.Summary.TestsPerDirection = len(r.Upload.Attempts)
		}
	}
	if r.Ping != nil {
		r.Summary.LatencyMs = r.Ping.AvgMs
	}
}

// Filename returns the canonical history filename for this report.
func (r *Report) Filename() string {
	return r.Timestamp.UTC().Format("20060102T150405Z") + ".json"
}
