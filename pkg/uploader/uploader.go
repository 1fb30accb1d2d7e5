// Package uploader is the HTTP client for the frame ingest server.
// It covers the two endpoints the server exposes to capture clients:
// GET /status (reachability probe) and POST /upload (multipart frame upload).
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/google/uuid"

	"github.com/slamkit/camfeed/internal/httpc"
	"github.com/slamkit/camfeed/internal/log"
	"github.com/slamkit/camfeed/pkg/camera"
)

// uploadField is the multipart form field the server reads the image from.
const uploadField = "file"

// Client talks to one ingest server. A single upload attempt per frame, no
// retries; a failed upload is dropped, not requeued.
type Client struct {
	baseURL   string
	sessionID string
	upload    *http.Client
	probe     *http.Client
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithUploadTimeout overrides the upload request timeout.
func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) { c.upload = httpc.NewClient(d) }
}

// WithProbeTimeout overrides the status probe timeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.probe = httpc.NewClient(d) }
}

// WithHTTPClient replaces both underlying HTTP clients. Intended for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.upload = hc
		c.probe = hc
	}
}

// WithLogger sets the logger used for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the ingest server at host:port.
func New(host string, port int, opts ...Option) *Client {
	c := &Client{
		baseURL:   fmt.Sprintf("http://%s:%d", host, port),
		sessionID: uuid.NewString(),
		upload:    httpc.NewClient(httpc.DefaultUploadTimeout),
		probe:     httpc.NewClient(httpc.DefaultProbeTimeout),
		logger:    log.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base URL, for logging.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SessionID returns the per-run session identifier sent with every request.
func (c *Client) SessionID() string {
	return c.sessionID
}

// ServerStatus is the probe response. Body holds the raw JSON for verbatim
// logging; the server's schema is not ours to pin down.
type ServerStatus struct {
	Body string
}

// Probe checks that the server answers on /status. Failures are advisory:
// the capture loop starts regardless, since the server may come up later.
func (c *Client) Probe(ctx context.Context) (*ServerStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.probe.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status returned %d: %s", resp.StatusCode, string(body))
	}

	return &ServerStatus{Body: string(body)}, nil
}

// UploadResult is the server's acknowledgement of a stored frame.
type UploadResult struct {
	// TotalImages is the server's running count, used only for logging.
	TotalImages int `json:"total_images"`
}

// Upload POSTs one frame as multipart/form-data. Success is a 200-class
// response; any transport error or other status is returned as an error with
// the response details included.
func (c *Client) Upload(ctx context.Context, frame *camera.Frame) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// CreateFormFile hardcodes application/octet-stream, so build the part
	// header by hand to carry the real MIME type.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadField, frame.Name))
	header.Set("Content-Type", "image/jpeg")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(frame.Data); err != nil {
		return nil, fmt.Errorf("write frame data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Session-ID", c.sessionID)

	c.logger.Debug("uploading frame", "name", frame.Name, "bytes", len(frame.Data))

	resp, err := c.upload.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &result, nil
}
