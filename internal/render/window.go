package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/geom"
)

// Window is a Display backed by an OpenCV Mat and, unless headless, a
// highgui window.
type Window struct {
	title    string
	window   *gocv.Window
	canvas   gocv.Mat
	scratch  gocv.Mat
	mirrored gocv.Mat
	size     image.Point
}

// NewWindow opens a window of the given size.
func NewWindow(title string, width, height int) *Window {
	w := NewCanvas(width, height)
	w.title = title
	w.window = gocv.NewWindow(title)
	w.window.ResizeWindow(width, height)
	return w
}

// NewCanvas creates an off-screen Window. Present is a no-op and Poll never
// reports a key.
func NewCanvas(width, height int) *Window {
	return &Window{
		canvas:   gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		scratch:  gocv.NewMat(),
		mirrored: gocv.NewMat(),
		size:     image.Pt(width, height),
	}
}

func toScalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}

func (w *Window) Size() image.Point { return w.size }

// Canvas exposes the frame being drawn. It is owned by the Window.
func (w *Window) Canvas() *gocv.Mat { return &w.canvas }

func (w *Window) Fill(c color.RGBA) {
	w.canvas.SetTo(toScalar(c))
}

func (w *Window) Background(frame *gocv.Mat, mirror bool, keep float64) {
	if frame == nil || frame.Empty() {
		w.Fill(ColorBlack)
		return
	}

	gocv.Resize(*frame, &w.scratch, w.size, 0, 0, gocv.InterpolationLinear)
	src := w.scratch
	if mirror {
		gocv.Flip(w.scratch, &w.mirrored, 1)
		src = w.mirrored
	}
	src.ConvertToWithParams(&w.canvas, gocv.MatTypeCV8UC3, float32(keep), 0)
}

func (w *Window) DrawRect(b geom.Box, c color.RGBA, thickness int) {
	gocv.Rectangle(&w.canvas, image.Rectangle{Min: b.Min(), Max: b.Max()}, c, thickness)
}

func (w *Window) DrawCircle(center image.Point, radius int, c color.RGBA, thickness int) {
	gocv.Circle(&w.canvas, center, radius, c, thickness)
}

func (w *Window) DrawLine(a, b image.Point, c color.RGBA, thickness int) {
	gocv.Line(&w.canvas, a, b, c, thickness)
}

func (w *Window) DrawText(text string, at image.Point, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(&w.canvas, text, at, gocv.FontHersheySimplex, scale, c, thickness)
}

func (w *Window) TextSize(text string, scale float64, thickness int) image.Point {
	return gocv.GetTextSize(text, gocv.FontHersheySimplex, scale, thickness)
}

func (w *Window) Blend(b geom.Box, c color.RGBA, alpha float64) {
	r := image.Rectangle{Min: b.Min(), Max: b.Max()}.Intersect(image.Rectangle{Max: w.size})
	if r.Empty() {
		return
	}

	region := w.canvas.Region(r)
	defer region.Close()
	overlay := gocv.NewMatWithSizeFromScalar(toScalar(c), r.Dy(), r.Dx(), gocv.MatTypeCV8UC3)
	defer overlay.Close()

	gocv.AddWeighted(overlay, alpha, region, 1-alpha, 0, &region)
}

func (w *Window) Present() error {
	if w.window == nil {
		return nil
	}
	w.window.IMShow(w.canvas)
	return nil
}

func (w *Window) Poll() (int, bool) {
	if w.window == nil {
		return -1, true
	}
	key := w.window.WaitKey(1)
	open := w.window.GetWindowProperty(gocv.WindowPropertyVisible) >= 1
	return key, open
}

func (w *Window) JPEG(quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.canvas, []int{int(gocv.IMWriteJpegQuality), quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (w *Window) Close() error {
	var err error
	if w.window != nil {
		err = w.window.Close()
		w.window = nil
	}
	w.mirrored.Close()
	w.scratch.Close()
	w.canvas.Close()
	return err
}
