package feeder

import (
	"fmt"
	"time"

	"github.com/slamkit/camfeed/pkg/camera"
)

// Default connection settings for the ingest server.
const (
	DefaultHost = "linux-2"
	DefaultPort = 5050
	DefaultFPS  = 1.0
)

// DefaultSaveDir is where local copies land when saving is enabled.
const DefaultSaveDir = "captured_images"

// Config is the immutable per-run configuration. Set once at startup.
type Config struct {
	Host      string
	Port      int
	FPS       float64
	SaveLocal bool
	SaveDir   string

	Camera camera.Config
}

// DefaultConfig returns the stock configuration: 1 frame per second to the
// default server, no local copies.
func DefaultConfig() Config {
	return Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		FPS:     DefaultFPS,
		SaveDir: DefaultSaveDir,
		Camera:  camera.DefaultConfig(),
	}
}

// Validate reports configuration errors that would make the run meaningless.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be > 0, got %g", c.FPS)
	}
	if c.SaveLocal && c.SaveDir == "" {
		return fmt.Errorf("save directory must not be empty when local save is enabled")
	}
	return nil
}

// Interval returns the target time between successive captures (1/fps).
func (c *Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}
