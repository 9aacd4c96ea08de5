// Package detector provides hand detection interfaces and landmark types.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// PalmIndices are the wrist and the four finger bases. Their mean is the palm center.
var PalmIndices = [...]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Point3D is a landmark position. X and Y are normalized to [0,1] of the
// frame; Z is relative depth and unused by the interaction pipeline.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one detected hand in one frame. Hands carry no identity
// across frames.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Mean returns the arithmetic mean of the given landmarks.
// It returns the zero point when no indices are given.
func (h *HandLandmarks) Mean(indices ...int) Point3D {
	if len(indices) == 0 {
		return Point3D{}
	}

	var sum Point3D
	for _, idx := range indices {
		sum.X += h.Points[idx].X
		sum.Y += h.Points[idx].Y
		sum.Z += h.Points[idx].Z
	}

	n := float64(len(indices))
	return Point3D{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
}

// PalmCenter returns the mean of the wrist and the four finger bases.
func (h *HandLandmarks) PalmCenter() Point3D {
	return h.Mean(PalmIndices[:]...)
}

// PixelDistance returns the 2D distance between landmarks a and b after
// scaling the normalized coordinates to a width x height frame.
func (h *HandLandmarks) PixelDistance(a, b, width, height int) float64 {
	pa, pb := h.Points[a], h.Points[b]
	dx := (pa.X - pb.X) * float64(width)
	dy := (pa.Y - pb.Y) * float64(height)
	return math.Hypot(dx, dy)
}
