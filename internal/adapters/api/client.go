package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"strings"
	"time"

	"speedprobe/internal/core/domain"
)

const (
	infoPath     = "/"
	pingPath     = "/api/speedtest/ping"
	downloadPath = "/api/speedtest/download"
	uploadPath   = "/api/speedtest/upload"
	networkPath  = "/api/speedtest/network"

	// uploadField is the multipart form field name the API expects.
	uploadField = "file"

	// serverResultCap bounds how much of a transfer body is kept for
	// decoding the server-reported result.
	serverResultCap = 64 * 1024

	maxRetries = 3
)

// Client talks to one speed-test API server. JSON probes (info, network)
// retry on 429/5xx with backoff; timed operations (ping, download, upload)
// are issued exactly once so retries cannot distort measurements.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// APIError represents a non-2xx HTTP response.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string // Retry-After header value for 429s
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "speedprobe",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Info fetches service metadata from the root endpoint.
func (c *Client) Info(ctx context.Context) (*domain.ServerInfo, error) {
	var info domain.ServerInfo
	if err := c.getJSON(ctx, infoPath, nil, &info); err != nil {
		return nil, fmt.Errorf("fetch server info: %w", err)
	}
	return &info, nil
}

// Network fetches the network information report.
func (c *Client) Network(ctx context.Context) (*domain.NetworkInfo, error) {
	var ni domain.NetworkInfo
	if err := c.getJSON(ctx, networkPath, nil, &ni); err != nil {
		return nil, fmt.Errorf("fetch network info: %w", err)
	}
	return &ni, nil
}

// Ping issues one liveness request and measures its round trip with a
// connection phase breakdown. The response body is discarded.
func (c *Client) Ping(ctx context.Context) (domain.PingSample, error) {
	clock, trace := newPhaseClock()
	ctx = httptrace.WithClientTrace(ctx, trace)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
	if err != nil {
		return domain.PingSample{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PingSample{}, fmt.Errorf("ping: %w", err)
	}
	_, copyErr := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.PingSample{}, &APIError{StatusCode: resp.StatusCode}
	}
	if copyErr != nil {
		return domain.PingSample{}, fmt.Errorf("ping: read body: %w", copyErr)
	}
	return clock.sample(), nil
}

// Download requests sizeMB of test data and times the full exchange,
// counting the bytes actually received. When the server answers with a
// JSON result instead of a raw payload, that result is decoded as well.
func (c *Client) Download(ctx context.Context, sizeMB int) (domain.TransferAttempt, error) {
	if sizeMB <= 0 {
		return domain.TransferAttempt{}, fmt.Errorf("download: size must be positive, got %d", sizeMB)
	}

	q := url.Values{}
	q.Set("size_mb", strconv.Itoa(sizeMB))
	fullURL := c.baseURL + downloadPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.TransferAttempt{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TransferAttempt{}, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.TransferAttempt{}, readAPIError(resp)
	}

	var head bytes.Buffer
	n, err := io.Copy(io.Discard, io.TeeReader(resp.Body, capWriter(&head)))
	elapsed := time.Since(start)
	if err != nil {
		return domain.TransferAttempt{}, fmt.Errorf("download: read body: %w", err)
	}

	attempt := domain.TransferAttempt{
		Direction: domain.DirectionDownload,
		Bytes:     n,
		Duration:  elapsed,
		Server:    decodeServerResult(resp.Header, head.Bytes()),
	}
	return attempt, nil
}

// Upload streams the payload as a multipart form post and times the full
// exchange. The reported byte count is the payload size, not the encoded
// body size.
func (c *Client) Upload(ctx context.Context, filename string, size int64, payload io.Reader) (domain.TransferAttempt, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(uploadField, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, payload); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, pr)
	if err != nil {
		return domain.TransferAttempt{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TransferAttempt{}, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.TransferAttempt{}, readAPIError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, serverResultCap))
	elapsed := time.Since(start)
	if err != nil {
		return domain.TransferAttempt{}, fmt.Errorf("upload: read body: %w", err)
	}

	attempt := domain.TransferAttempt{
		Direction: domain.DirectionUpload,
		Bytes:     size,
		Duration:  elapsed,
		Server:    decodeServerResult(resp.Header, body),
	}
	return attempt, nil
}

// getJSON sends a GET request and unmarshals the JSON response into dest.
// Returns *APIError for non-2xx responses. Retries on 429 (honoring
// Retry-After) and 5xx with exponential backoff: 1s, 2s, 4s.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var lastErr *APIError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(backoffDelay(attempt, lastErr))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return json.Unmarshal(body, dest)
		}

		apiErr := &APIError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
		if resp.StatusCode == 429 {
			apiErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = apiErr
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = apiErr
			continue
		}
		return apiErr
	}

	return lastErr
}

// backoffDelay returns the wait duration before a retry attempt.
func backoffDelay(attempt int, lastErr *APIError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == 429 && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}

// readAPIError drains up to 512 bytes of an error response body.
func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
}

// decodeServerResult parses a server-reported transfer result from a JSON
// response body. Returns nil for raw payload responses.
func decodeServerResult(header http.Header, body []byte) *domain.ServerResult {
	ct := header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return nil
	}
	var result domain.ServerResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil
	}
	if result.SpeedMbps == 0 && result.SizeMB == 0 && result.DurationSec == 0 {
		return nil
	}
	return &result
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}

// limitedWriter keeps the first serverResultCap bytes and drops the rest.
type limitedWriter struct {
	buf *bytes.Buffer
}

func capWriter(buf *bytes.Buffer) *limitedWriter {
	return &limitedWriter{buf: buf}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if room := serverResultCap - w.buf.Len(); room > 0 {
		if len(p) > room {
			p = p[:room]
		}
		w.buf.Write(p)
	}
	return n, nil
}
