package camera

import "sync"

// Mock implements Source for testing.
// All methods can be customized via function fields.
type Mock struct {
	// CaptureFunc is called when Capture is invoked.
	// If nil, returns a small placeholder frame.
	CaptureFunc func() (*Frame, error)

	// CloseFunc is called when Close is invoked.
	// If nil, returns nil.
	CloseFunc func() error

	mu       sync.Mutex
	captures int
	closes   int
}

// NewMock creates a mock source that always captures successfully.
func NewMock() *Mock {
	return &Mock{
		CaptureFunc: func() (*Frame, error) {
			return &Frame{
				Data: []byte{0xff, 0xd8, 0xff, 0xd9}, // minimal JPEG markers
				Name: "mock_frame.jpg",
			}, nil
		},
	}
}

// Capture calls CaptureFunc and records the call.
func (m *Mock) Capture() (*Frame, error) {
	m.mu.Lock()
	m.captures++
	m.mu.Unlock()

	if m.CaptureFunc != nil {
		return m.CaptureFunc()
	}
	return &Frame{Data: []byte{0xff, 0xd8, 0xff, 0xd9}, Name: "mock_frame.jpg"}, nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.mu.Lock()
	m.closes++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Captures returns how many times Capture was called.
func (m *Mock) Captures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captures
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
