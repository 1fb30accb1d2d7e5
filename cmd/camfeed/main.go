// camfeed - periodic camera capture and upload client
//
// Captures still frames from a local camera at a fixed rate and uploads them
// to the ingest server. Press Ctrl+C to stop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slamkit/camfeed/internal/log"
	"github.com/slamkit/camfeed/pkg/camera"
	"github.com/slamkit/camfeed/pkg/feeder"
	"github.com/slamkit/camfeed/pkg/uploader"
)

func main() {
	cfg, verbose := parseFlags()
	log.Init(verbose)

	if err := run(cfg); err != nil {
		log.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// run owns the camera lifecycle: the handle is released on every exit path,
// including fatal startup errors after the camera was acquired.
func run(cfg feeder.Config) error {
	log.Info("initializing camera",
		"device", cfg.Camera.Device,
		"width", cfg.Camera.Width,
		"height", cfg.Camera.Height,
	)
	cam, err := camera.Open(cfg.Camera)
	if err != nil {
		return fmt.Errorf("initialize camera: %w", err)
	}
	defer cam.Close()
	log.Info("camera initialized")

	client := uploader.New(cfg.Host, cfg.Port)

	f := feeder.New(cfg, cam, client)
	if err := f.Init(); err != nil {
		return fmt.Errorf("initialize feeder: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("press Ctrl+C to stop")
	f.Run(ctx)

	log.Info("camfeed stopped")
	return nil
}

// parseFlags parses command line flags into a run configuration.
func parseFlags() (feeder.Config, bool) {
	cfg := feeder.DefaultConfig()

	host := flag.String("host", cfg.Host, "Hostname or IP of the ingest server")
	port := flag.Int("port", cfg.Port, "Port of the ingest server")
	fps := flag.Float64("fps", cfg.FPS, "Frames per second to capture")
	saveLocal := flag.Bool("save-local", false, "Save a local copy of every frame")
	saveDir := flag.String("save-dir", cfg.SaveDir, "Directory for local copies")
	device := flag.Int("device", cfg.Camera.Device, "Camera device index")
	width := flag.Int("width", cfg.Camera.Width, "Frame width in pixels")
	height := flag.Int("height", cfg.Camera.Height, "Frame height in pixels")
	quality := flag.Int("quality", cfg.Camera.Quality, "JPEG quality (1-100)")
	verbose := flag.Bool("verbose", false, "Enable verbose debug logging")

	flag.Parse()

	cfg.Host = *host
	cfg.Port = *port
	cfg.FPS = *fps
	cfg.SaveLocal = *saveLocal
	cfg.SaveDir = *saveDir
	cfg.Camera.Device = *device
	cfg.Camera.Width = *width
	cfg.Camera.Height = *height
	cfg.Camera.Quality = *quality

	return cfg, *verbose
}
