package camera

import (
	"fmt"
	"time"
)

// Frame is one encoded still image with its generated filename.
// Ownership is transient: the feeder saves and uploads it, then drops it.
type Frame struct {
	Data []byte
	Name string
}

// Source acquires frames. Implementations hold the camera handle exclusively
// and must release it exactly once via Close.
type Source interface {
	// Capture acquires and encodes one still image.
	Capture() (*Frame, error)

	// Close releases the camera resource. Safe to call more than once.
	Close() error
}

// FrameName derives a filename from a wall-clock timestamp. Microsecond
// resolution keeps names unique at any supported frame rate.
func FrameName(t time.Time) string {
	return fmt.Sprintf("camfeed_%s_%06d.jpg", t.Format("20060102_150405"), t.Nanosecond()/1000)
}
