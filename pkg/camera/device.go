package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// warmupReads is the number of frames discarded after opening the device.
// The sensor needs a moment to settle exposure and white balance.
const warmupReads = 3

// Device is a gocv-backed Source holding an exclusive camera handle.
type Device struct {
	cfg Config

	mu     sync.Mutex
	vc     *gocv.VideoCapture
	buf    gocv.Mat
	closed bool
}

// Open acquires the capture device and applies resolution and buffering.
// Any failure releases the handle before returning.
func Open(cfg Config) (*Device, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid camera config: %v", errs)
	}

	vc, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open capture device %d: %w", cfg.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("capture device %d is not available", cfg.Device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureBufferSize, float64(cfg.Buffers))

	d := &Device{
		cfg: cfg,
		vc:  vc,
		buf: gocv.NewMat(),
	}

	// Let the sensor settle before the first real capture.
	for i := 0; i < warmupReads; i++ {
		d.vc.Read(&d.buf)
		time.Sleep(100 * time.Millisecond)
	}

	return d, nil
}

// Capture reads one frame and encodes it as JPEG at the configured quality.
func (d *Device) Capture() (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("capture device %d is closed", d.cfg.Device)
	}

	if ok := d.vc.Read(&d.buf); !ok {
		return nil, fmt.Errorf("read frame from device %d failed", d.cfg.Device)
	}
	if d.buf.Empty() {
		return nil, fmt.Errorf("empty frame from device %d", d.cfg.Device)
	}

	params := []int{gocv.IMWriteJpegQuality, d.cfg.Quality}
	encoded, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, d.buf, params)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer encoded.Close()

	data := make([]byte, len(encoded.GetBytes()))
	copy(data, encoded.GetBytes())

	return &Frame{
		Data: data,
		Name: FrameName(time.Now()),
	}, nil
}

// Close releases the camera handle. Calling Close more than once is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	d.buf.Close()
	return d.vc.Close()
}
