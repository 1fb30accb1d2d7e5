// Package camera provides still-image acquisition for camfeed.
// The feeder depends on the Source interface; the gocv-backed Device is the
// production implementation.
package camera

// Config holds the camera parameters applied once at startup.
type Config struct {
	Device  int `json:"device"`  // Capture device index (e.g. 0 for /dev/video0)
	Width   int `json:"width"`   // Frame width in pixels
	Height  int `json:"height"`  // Frame height in pixels
	Quality int `json:"quality"` // JPEG quality 1-100
	Buffers int `json:"buffers"` // Driver buffer count
}

// Sensor capabilities for the Camera Module 3 this client was built around.
const (
	SensorMaxWidth  = 4608
	SensorMaxHeight = 2592
)

// DefaultConfig returns the full-resolution still configuration.
func DefaultConfig() Config {
	return Config{
		Device:  0,
		Width:   SensorMaxWidth,
		Height:  SensorMaxHeight,
		Quality: 85,
		Buffers: 2,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device < 0 {
		errors = append(errors, "device must be >= 0")
	}
	if c.Width < 160 || c.Width > SensorMaxWidth {
		errors = append(errors, "width must be between 160 and 4608")
	}
	if c.Height < 120 || c.Height > SensorMaxHeight {
		errors = append(errors, "height must be between 120 and 2592")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}
	if c.Buffers < 1 || c.Buffers > 8 {
		errors = append(errors, "buffers must be between 1 and 8")
	}

	return errors
}
