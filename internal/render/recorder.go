package render

import (
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/geom"
)

// Op is one recorded draw call.
type Op struct {
	Kind   string // "background", "fill", "rect", "circle", "line", "text", "blend"
	Box    geom.Box
	At     image.Point
	To     image.Point
	Radius int
	Text   string
	Color  color.RGBA
}

// Recorder is a Display that only records what was drawn. It needs no
// OpenCV window and is meant for tests.
type Recorder struct {
	size     image.Point
	ops      []Op
	keys     []int
	closed   bool
	presents int
}

// NewRecorder creates a Recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{size: image.Pt(width, height)}
}

// PressKeys queues keys returned by later Poll calls, one per call.
func (r *Recorder) PressKeys(keys ...int) {
	r.keys = append(r.keys, keys...)
}

// CloseWindow makes the next Poll report the display as closed.
func (r *Recorder) CloseWindow() {
	r.closed = true
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Presents returns how many frames were presented.
func (r *Recorder) Presents() int { return r.presents }

// Texts returns every string drawn in the current frame.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether a drawn string contains sub.
func (r *Recorder) HasText(sub string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// Count returns the number of ops of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// FillOf returns the colour of the first filled rectangle drawn exactly at b.
func (r *Recorder) FillOf(b geom.Box) (color.RGBA, bool) {
	for _, op := range r.ops {
		if op.Kind == "rect" && op.Box == b && op.Radius == Filled {
			return op.Color, true
		}
	}
	return color.RGBA{}, false
}

func (r *Recorder) add(op Op) { r.ops = append(r.ops, op) }

func (r *Recorder) Size() image.Point { return r.size }

func (r *Recorder) Background(frame *gocv.Mat, mirror bool, keep float64) {
	r.add(Op{Kind: "background"})
}

func (r *Recorder) Fill(c color.RGBA) {
	r.add(Op{Kind: "fill", Color: c})
}

// DrawRect records the thickness in Radius so filled boxes can be told apart.
func (r *Recorder) DrawRect(b geom.Box, c color.RGBA, thickness int) {
	r.add(Op{Kind: "rect", Box: b, Color: c, Radius: thickness})
}

func (r *Recorder) DrawCircle(center image.Point, radius int, c color.RGBA, thickness int) {
	r.add(Op{Kind: "circle", At: center, Radius: radius, Color: c})
}

func (r *Recorder) DrawLine(a, b image.Point, c color.RGBA, thickness int) {
	r.add(Op{Kind: "line", At: a, To: b, Color: c})
}

func (r *Recorder) DrawText(text string, at image.Point, scale float64, c color.RGBA, thickness int) {
	r.add(Op{Kind: "text", Text: text, At: at, Color: c})
}

// TextSize approximates Hershey simplex metrics.
func (r *Recorder) TextSize(text string, scale float64, thickness int) image.Point {
	return image.Pt(int(float64(len(text))*20*scale), int(22*scale))
}

func (r *Recorder) Blend(b geom.Box, c color.RGBA, alpha float64) {
	r.add(Op{Kind: "blend", Box: b, Color: c})
}

func (r *Recorder) Present() error {
	r.presents++
	return nil
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() {
	r.ops = nil
}

func (r *Recorder) Poll() (int, bool) {
	if r.closed {
		return -1, false
	}
	if len(r.keys) == 0 {
		return -1, true
	}
	key := r.keys[0]
	r.keys = r.keys[1:]
	return key, true
}

func (r *Recorder) JPEG(quality int) ([]byte, error) {
	// SOI and EOI markers only; enough for consumers that pass bytes through.
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}, nil
}

func (r *Recorder) Close() error { return nil }
