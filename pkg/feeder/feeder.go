// Package feeder runs the capture/upload loop: acquire one frame on a fixed
// cadence, optionally save a local copy, POST it to the ingest server, and
// track per-frame statistics until the run is cancelled.
package feeder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/slamkit/camfeed/internal/log"
	"github.com/slamkit/camfeed/pkg/camera"
	"github.com/slamkit/camfeed/pkg/uploader"
)

// Feeder owns the control flow of a run. The camera handle is owned by the
// caller; Feeder never closes it.
type Feeder struct {
	cfg    Config
	source camera.Source
	client *uploader.Client
	logger *slog.Logger

	stats Stats
}

// New wires a feeder from its collaborators.
func New(cfg Config, source camera.Source, client *uploader.Client) *Feeder {
	return &Feeder{
		cfg:    cfg,
		source: source,
		client: client,
		logger: log.With("component", "feeder"),
	}
}

// Init performs the fatal part of startup: validating the configuration and
// creating the local save directory when enabled.
func (f *Feeder) Init() error {
	if err := f.cfg.Validate(); err != nil {
		return err
	}
	if f.cfg.SaveLocal {
		if err := os.MkdirAll(f.cfg.SaveDir, 0o755); err != nil {
			return err
		}
		f.logger.Info("saving local copies", "dir", f.cfg.SaveDir)
	}
	return nil
}

// Run executes the loop until ctx is cancelled and returns the final counters.
// All per-frame errors are logged and counted here; none escape.
func (f *Feeder) Run(ctx context.Context) Stats {
	interval := f.cfg.Interval()

	f.logger.Info("starting capture loop",
		"fps", f.cfg.FPS,
		"interval", interval,
		"server", f.client.BaseURL(),
		"session", f.client.SessionID(),
	)

	// Best-effort reachability check. The server may come up later, so a
	// failure here only warns.
	if status, err := f.client.Probe(ctx); err != nil {
		f.logger.Warn("server not reachable, uploading anyway", "error", err)
	} else {
		f.logger.Info("connected to server", "status", status.Body)
	}

	for {
		select {
		case <-ctx.Done():
			f.summarize()
			return f.stats
		default:
		}

		start := time.Now()
		f.iterate(ctx)

		elapsed := time.Since(start)
		if sleep := interval - elapsed; sleep > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(sleep):
			}
		} else {
			f.logger.Warn("frame processing exceeded target interval",
				"elapsed", elapsed, "interval", interval)
		}
	}
}

// iterate handles a single frame: capture, optional local save, upload.
// Cancellation is observed between iterations only; an in-flight frame is
// allowed to finish, bounded by the upload client's own timeout.
func (f *Feeder) iterate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	frame, err := f.source.Capture()
	if err != nil {
		f.logger.Error("capture failed", "error", err)
		f.stats.UploadsFailed++
		return
	}
	f.stats.FramesCaptured++

	if f.cfg.SaveLocal {
		path := filepath.Join(f.cfg.SaveDir, frame.Name)
		if err := os.WriteFile(path, frame.Data, 0o644); err != nil {
			// Local copies are fire-and-forget; the upload still runs.
			f.logger.Error("local save failed", "path", path, "error", err)
		} else {
			f.logger.Debug("saved local copy", "path", path)
		}
	}

	result, err := f.client.Upload(ctx, frame)
	if err != nil {
		f.logger.Error("upload failed", "name", frame.Name, "error", err)
		f.stats.UploadsFailed++
		return
	}

	f.stats.UploadsSucceeded++
	f.logger.Info("uploaded frame", "name", frame.Name, "total_images", result.TotalImages)
}

func (f *Feeder) summarize() {
	f.logger.Info("stopping capture loop",
		"frames_captured", f.stats.FramesCaptured,
		"uploads_succeeded", f.stats.UploadsSucceeded,
		"uploads_failed", f.stats.UploadsFailed,
	)
}
