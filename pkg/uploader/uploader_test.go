package uploader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/slamkit/camfeed/pkg/camera"
)

// newTestClient points a Client at an httptest server.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}

	return New(u.Hostname(), port, WithHTTPClient(server.Client()))
}

func testFrame() *camera.Frame {
	return &camera.Frame{
		Data: []byte{0xff, 0xd8, 0xff, 0xd9},
		Name: "camfeed_20260823_143005_123456.jpg",
	}
}

func TestUploadSuccess(t *testing.T) {
	frame := testFrame()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("expected /upload, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Session-ID") == "" {
			t.Error("expected X-Session-ID header")
		}

		reader, err := r.MultipartReader()
		if err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		part, err := reader.NextPart()
		if err != nil {
			t.Fatalf("read multipart part: %v", err)
		}
		if part.FormName() != "file" {
			t.Errorf("expected field 'file', got %q", part.FormName())
		}
		if part.FileName() != frame.Name {
			t.Errorf("expected filename %q, got %q", frame.Name, part.FileName())
		}
		if ct := part.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("expected part Content-Type image/jpeg, got %q", ct)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"total_images": 42})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	result, err := client.Upload(context.Background(), frame)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.TotalImages != 42 {
		t.Errorf("expected total_images 42, got %d", result.TotalImages)
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ingest store full", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.Upload(context.Background(), testFrame())
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status code, got %q", err)
	}
	if !strings.Contains(err.Error(), "ingest store full") {
		t.Errorf("error should carry the response body, got %q", err)
	}
}

func TestUploadTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close() // force connection refused

	if _, err := client.Upload(context.Background(), testFrame()); err == nil {
		t.Fatal("expected transport error against closed server")
	}
}

func TestUploadBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	if _, err := client.Upload(context.Background(), testFrame()); err == nil {
		t.Fatal("expected error on non-JSON 200 response")
	}
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("expected /status, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","frames":7}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	status, err := client.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if !strings.Contains(status.Body, `"status":"ok"`) {
		t.Errorf("Probe should return the body verbatim, got %q", status.Body)
	}
}

func TestProbeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "warming up", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	if _, err := client.Probe(context.Background()); err == nil {
		t.Fatal("expected error on 503 probe response")
	}
}

func TestSessionIDIsStable(t *testing.T) {
	client := New("localhost", 5050)

	if client.SessionID() == "" {
		t.Fatal("expected a session ID")
	}
	if client.SessionID() != client.SessionID() {
		t.Error("session ID must not change between calls")
	}
}
