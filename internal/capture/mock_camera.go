package capture

import (
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a fixed list of frames.
type MockCamera struct {
	frames  []*gocv.Mat
	owned   bool
	index   int
	loop    bool
	mu      sync.Mutex
	running bool
}

// NewMockCamera plays frames in order, from the start again when loop is set.
// The caller keeps ownership of frames.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
	}
}

// NewBlankCamera plays n solid frames of the given size and colour, then
// reports ErrEndOfStream. The frames are released on Close.
func NewBlankCamera(n, width, height int, c color.RGBA) *MockCamera {
	scalar := gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSizeFromScalar(scalar, height, width, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	return &MockCamera{frames: frames, owned: true}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	if c.owned {
		for _, f := range c.frames {
			f.Close()
		}
		c.frames = nil
	}
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if c.index >= len(c.frames) {
		if !c.loop || len(c.frames) == 0 {
			return nil, ErrEndOfStream
		}
		c.index = 0
	}

	// Callers close what they read; hand out a copy.
	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Remaining returns how many frames are left before the end of the stream.
func (c *MockCamera) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames) - c.index
}
