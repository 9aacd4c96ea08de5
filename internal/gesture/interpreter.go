// Package gesture turns raw hand landmarks into pointer signals: a cursor,
// a pinch state, an edge-triggered click and the two-hand bar.
package gesture

import (
	"image"
	"time"

	"github.com/ayusman/airdesk/internal/detector"
	"github.com/ayusman/airdesk/internal/geom"
)

// Defaults for the interpreter.
const (
	DefaultUIWidth        = 1280
	DefaultUIHeight       = 720
	DefaultPinchThreshold = 40.0 // pixels, in detector frame space
	DefaultClickCooldown  = 300 * time.Millisecond
)

// Config holds the interpreter settings.
type Config struct {
	UIWidth        int
	UIHeight       int
	PinchThreshold float64
}

// DefaultConfig returns the interpreter defaults.
func DefaultConfig() Config {
	return Config{
		UIWidth:        DefaultUIWidth,
		UIHeight:       DefaultUIHeight,
		PinchThreshold: DefaultPinchThreshold,
	}
}

// Signal is the interpreted pointer state for one frame.
type Signal struct {
	Cursor        image.Point
	HasCursor     bool
	Pinch         bool
	PinchDistance float64
	Click         bool
	Bar           *geom.Segment
	Hands         int
}

// Frame is the per-frame input of the interpreter.
type Frame struct {
	Hands []detector.HandLandmarks

	// Width and Height are the pixel size of the frame the detector saw.
	Width  int
	Height int

	// BarEnabled is true while a game is running.
	BarEnabled bool

	Now time.Time
}

// Interpreter keeps the one bit of state that survives between frames: whether
// the first hand was pinching on the previous frame.
type Interpreter struct {
	config    Config
	prevPinch bool
}

// NewInterpreter creates an Interpreter.
func NewInterpreter(config Config) *Interpreter {
	return &Interpreter{config: config}
}

// Interpret computes the signal for one frame. Accepted clicks are recorded on clock.
func (in *Interpreter) Interpret(f Frame, clock *ClickClock) Signal {
	sig := Signal{Hands: len(f.Hands)}

	if len(f.Hands) == 0 {
		// Lost hands forget their pinch; the next pinch seen is a fresh edge.
		in.prevPinch = false
		return sig
	}

	if len(f.Hands) == 2 && f.BarEnabled {
		bar := geom.Segment{
			A: in.MapToUI(f.Hands[0].PalmCenter()),
			B: in.MapToUI(f.Hands[1].PalmCenter()),
		}
		sig.Bar = &bar
	}

	hand := &f.Hands[0]
	sig.Cursor = in.MapToUI(hand.Points[detector.IndexTip])
	sig.HasCursor = true

	sig.PinchDistance = hand.PixelDistance(detector.ThumbTip, detector.IndexTip, f.Width, f.Height)
	sig.Pinch = sig.PinchDistance < in.config.PinchThreshold

	if sig.Pinch && !in.prevPinch && clock.Allow(f.Now) {
		sig.Click = true
	}
	in.prevPinch = sig.Pinch

	return sig
}

// MapToUI scales a normalized point to UI pixels without mirroring and
// clamps it to the UI bounds.
func (in *Interpreter) MapToUI(p detector.Point3D) image.Point {
	x := int(p.X * float64(in.config.UIWidth))
	y := int(p.Y * float64(in.config.UIHeight))
	return image.Pt(
		geom.ClampInt(x, 0, in.config.UIWidth-1),
		geom.ClampInt(y, 0, in.config.UIHeight-1),
	)
}

// ClickClock debounces clicks: a click is accepted only when at least
// Cooldown has passed since the previous accepted click.
type ClickClock struct {
	Cooldown time.Duration
	last     time.Time
}

// NewClickClock creates a ClickClock with the given cooldown.
func NewClickClock(cooldown time.Duration) *ClickClock {
	return &ClickClock{Cooldown: cooldown}
}

// Allow reports whether a click at now is accepted, and if so restarts the cooldown.
func (c *ClickClock) Allow(now time.Time) bool {
	if !c.last.IsZero() && now.Sub(c.last) < c.Cooldown {
		return false
	}
	c.last = now
	return true
}

// Last returns the time of the last accepted click.
func (c *ClickClock) Last() time.Time {
	return c.last
}
