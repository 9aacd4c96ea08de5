// Package render draws the desk onto a frame and shows it.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/geom"
)

// Filled as a thickness draws a solid shape.
const Filled = -1

// Surface is what the painter draws on. Colours are RGB; implementations
// convert as needed.
type Surface interface {
	Size() image.Point

	// Background covers the surface with the camera frame, resized, optionally
	// mirrored and scaled by keep (1 is unchanged, 0 is black).
	Background(frame *gocv.Mat, mirror bool, keep float64)
	Fill(c color.RGBA)

	DrawRect(b geom.Box, c color.RGBA, thickness int)
	DrawCircle(center image.Point, radius int, c color.RGBA, thickness int)
	DrawLine(a, b image.Point, c color.RGBA, thickness int)
	DrawText(text string, at image.Point, scale float64, c color.RGBA, thickness int)
	TextSize(text string, scale float64, thickness int) image.Point

	// Blend paints c over b with the given opacity.
	Blend(b geom.Box, c color.RGBA, alpha float64)

	Present() error
}

// Display is a Surface the user can interact with.
type Display interface {
	Surface
	// Poll returns the last key pressed (-1 for none) and whether the
	// display is still open.
	Poll() (key int, open bool)
	// JPEG encodes the last drawn frame.
	JPEG(quality int) ([]byte, error)
	Close() error
}

// Palette, in RGB.
var (
	ColorBG          = color.RGBA{40, 40, 40, 255}
	ColorGameBG      = color.RGBA{20, 20, 20, 255}
	ColorButton      = color.RGBA{70, 70, 70, 255}
	ColorButtonHover = color.RGBA{150, 100, 100, 255}
	ColorButtonClick = color.RGBA{150, 200, 150, 255}
	ColorKey         = color.RGBA{80, 80, 80, 255}
	ColorKeyHover    = color.RGBA{180, 120, 120, 255}
	ColorBorder      = color.RGBA{200, 200, 200, 255}
	ColorCursor      = color.RGBA{0, 255, 0, 255}
	ColorPinch       = color.RGBA{255, 0, 0, 255}
	ColorText        = color.RGBA{255, 255, 255, 255}
	ColorDimText     = color.RGBA{180, 180, 180, 255}
	ColorPanel       = color.RGBA{60, 60, 60, 255}
	ColorStatus      = color.RGBA{50, 50, 50, 255}
	ColorHUD         = color.RGBA{40, 40, 40, 255}
	ColorBar         = color.RGBA{255, 255, 0, 255}
	ColorPalm        = color.RGBA{255, 200, 0, 255}
	ColorScore       = color.RGBA{0, 255, 0, 255}
	ColorCombo       = color.RGBA{255, 255, 0, 255}
	ColorNoCombo     = color.RGBA{100, 100, 100, 255}
	ColorWarn        = color.RGBA{255, 0, 0, 255}
	ColorBalls       = color.RGBA{0, 200, 255, 255}
	ColorLandmark    = color.RGBA{255, 0, 0, 255}
	ColorConnection  = color.RGBA{0, 255, 0, 255}
	ColorBlack       = color.RGBA{0, 0, 0, 255}
)
