package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed set of
// hands or as a scripted sequence consumed one frame at a time.
type MockDetector struct {
	hands  []HandLandmarks
	script [][]HandLandmarks
	err    error
	calls  int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetScript queues per-frame results. Once the script runs out, Detect falls
// back to the hands set with SetHands.
func (m *MockDetector) SetScript(frames ...[]HandLandmarks) {
	m.script = frames
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the next scripted frame, the pre-configured hands, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingAt returns a right hand whose index fingertip rests at (x, y) in
// normalized coordinates with the thumb held well away from it.
// The palm center lands at (x, y+0.18).
func PointingAt(x, y float64) HandLandmarks {
	h := handAt(x, y)
	h.Points[ThumbTip] = Point3D{X: x + 0.15, Y: y + 0.12}
	return h
}

// PinchingAt returns a right hand whose index fingertip rests at (x, y) with
// the thumb tip touching it.
func PinchingAt(x, y float64) HandLandmarks {
	h := handAt(x, y)
	h.Points[ThumbTip] = Point3D{X: x + 0.01, Y: y + 0.01}
	return h
}

// OpenPalmAt returns a hand whose palm center is exactly (x, y).
func OpenPalmAt(x, y float64) HandLandmarks {
	return PointingAt(x, y-0.18)
}

func handAt(x, y float64) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: x, Y: y + 0.30}
	h.Points[ThumbCMC] = Point3D{X: x + 0.05, Y: y + 0.27}
	h.Points[ThumbMCP] = Point3D{X: x + 0.09, Y: y + 0.22}
	h.Points[ThumbIP] = Point3D{X: x + 0.12, Y: y + 0.17}

	// Finger bases are symmetric around x so the palm center stays on it.
	bases := [4]struct {
		mcp int
		dx  float64
	}{
		{IndexMCP, 0.02},
		{MiddleMCP, -0.02},
		{RingMCP, 0.06},
		{PinkyMCP, -0.06},
	}
	for _, b := range bases {
		h.Points[b.mcp] = Point3D{X: x + b.dx, Y: y + 0.15}
		h.Points[b.mcp+1] = Point3D{X: x + b.dx, Y: y + 0.10}
		h.Points[b.mcp+2] = Point3D{X: x + b.dx, Y: y + 0.05}
		h.Points[b.mcp+3] = Point3D{X: x + b.dx, Y: y + 0.02}
	}

	h.Points[IndexTip] = Point3D{X: x, Y: y}
	return h
}
