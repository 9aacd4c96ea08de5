package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/detector"
	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/geom"
	"github.com/ayusman/airdesk/internal/gesture"
	"github.com/ayusman/airdesk/internal/session"
	"github.com/ayusman/airdesk/internal/ui"
)

// FlashDuration is how long a clicked element stays highlighted, in seconds.
const FlashDuration = 0.2

// Darkening applied to the camera background.
const (
	menuCameraKeep = 0.5
	gameCameraKeep = 0.6
)

// VisibleTextLen is how many trailing characters the text box shows.
const VisibleTextLen = 60

// MediaPipe hand skeleton.
var handConnections = [...][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 4},
	{0, 5}, {5, 6}, {6, 7}, {7, 8},
	{5, 9}, {9, 10}, {10, 11}, {11, 12},
	{9, 13}, {13, 14}, {14, 15}, {15, 16},
	{13, 17}, {0, 17}, {17, 18}, {18, 19}, {19, 20},
}

// Scene is everything one frame needs to be drawn.
type Scene struct {
	Controller *session.Controller
	Signal     gesture.Signal
	Hands      []detector.HandLandmarks
	Camera     *gocv.Mat
	FPS        float64
	// Fired is the element clicked this frame, if any.
	Fired *ui.Element
	// DT is the time since the previous frame, in seconds.
	DT float32
}

// Painter draws scenes. It keeps the click-flash animations between frames.
type Painter struct {
	flashes map[*ui.Element]*gween.Tween
	level   map[*ui.Element]float32
}

// NewPainter creates a Painter.
func NewPainter() *Painter {
	return &Painter{
		flashes: make(map[*ui.Element]*gween.Tween),
		level:   make(map[*ui.Element]float32),
	}
}

// Paint draws sc onto s and presents it.
func (p *Painter) Paint(s Surface, sc Scene) error {
	p.animate(sc.DT, sc.Fired)

	c := sc.Controller
	screen := c.Screen()

	keep, fill := menuCameraKeep, ColorBG
	if screen != ui.ScreenMenu {
		keep, fill = gameCameraKeep, ColorGameBG
	}
	if c.ShowCameraBG() && sc.Camera != nil {
		s.Background(sc.Camera, true, keep)
	} else {
		s.Fill(fill)
	}

	if c.ShowLandmarks() {
		p.drawHands(s, sc.Hands)
	}

	switch screen {
	case ui.ScreenMenu:
		p.drawMenu(s, sc)
	case ui.ScreenGame:
		p.drawGame(s, c.Engine())
	case ui.ScreenGameOver:
		p.drawGame(s, c.Engine())
		p.drawGameOver(s, c)
	}

	if sc.Signal.HasCursor {
		drawCursor(s, sc.Signal)
	}

	return s.Present()
}

// animate advances running flashes by dt and starts one for fired.
func (p *Painter) animate(dt float32, fired *ui.Element) {
	for el, tw := range p.flashes {
		v, done := tw.Update(dt)
		if done {
			delete(p.flashes, el)
			delete(p.level, el)
			continue
		}
		p.level[el] = v
	}
	if fired != nil {
		p.flashes[fired] = gween.New(1, 0, FlashDuration, ease.OutQuad)
		p.level[fired] = 1
	}
}

// Flash returns the current flash level of el, 0 when idle.
func (p *Painter) Flash(el *ui.Element) float32 {
	return p.level[el]
}

func (p *Painter) elementColor(el *ui.Element) color.RGBA {
	base, hover := ColorButton, ColorButtonHover
	if el.Kind == ui.KeyboardKey {
		base, hover = ColorKey, ColorKeyHover
	}
	if el.Hovered {
		base = hover
	}
	return mix(base, ColorButtonClick, p.level[el])
}

func (p *Painter) drawElement(s Surface, el *ui.Element) {
	s.DrawRect(el.Box, p.elementColor(el), Filled)
	s.DrawRect(el.Box, ColorBorder, 2)

	scale := 0.5
	if el.Kind == ui.GameOverButton {
		scale = 0.7
	}
	size := s.TextSize(el.Label, scale, 2)
	at := image.Pt(el.Box.X+(el.Box.W-size.X)/2, el.Box.Y+(el.Box.H+size.Y)/2)
	s.DrawText(el.Label, at, scale, ColorText, 2)
}

func (p *Painter) drawMenu(s Surface, sc Scene) {
	c := sc.Controller
	size := s.Size()

	s.Blend(geom.Box{W: size.X, H: 80}, ColorPanel, 0.8)
	for _, el := range c.Layout().Menu() {
		p.drawElement(s, el)
	}

	box := c.Layout().TextBox()
	s.Blend(box, ColorPanel, 0.8)
	s.DrawRect(box, color.RGBA{150, 150, 150, 255}, 2)
	s.DrawText("Text Input:", image.Pt(box.X+10, box.Y+25), 0.6, ColorDimText, 1)
	s.DrawText(c.VisibleText(VisibleTextLen), image.Pt(box.X+10, box.Y+50), 0.7, ColorText, 2)

	for _, el := range c.Layout().Keyboard() {
		p.drawElement(s, el)
	}

	statusY := size.Y - 40
	s.Blend(geom.Box{Y: statusY, W: size.X, H: 40}, ColorStatus, 0.8)
	s.DrawText(statusLine(sc), image.Pt(20, statusY+25), 0.6, ColorText, 1)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func statusLine(sc Scene) string {
	c := sc.Controller
	pinch := "NO"
	if sc.Signal.Pinch {
		pinch = "YES"
	}

	line := fmt.Sprintf("FPS: %.1f | Pinch: %s (%.1fpx)", sc.FPS, pinch, sc.Signal.PinchDistance)
	if c.KeyboardVisible() {
		line += " | KB: ON"
	}
	line += " | CamBG: " + onOff(c.ShowCameraBG())
	line += " | Hands: " + onOff(c.ShowLandmarks())
	return line
}

func (p *Painter) drawGame(s Surface, e *game.Engine) {
	size := s.Size()

	for _, b := range e.Balls() {
		center := image.Pt(int(b.X), int(b.Y))
		s.DrawCircle(center, int(b.Radius), b.Color, Filled)
		s.DrawCircle(center, int(b.Radius), ColorText, 2)
	}

	if bar := e.Bar(); bar != nil {
		s.DrawLine(bar.A, bar.B, ColorBar, int(e.Config().BarThickness))
		s.DrawLine(bar.A, bar.B, ColorText, 3)
		s.DrawCircle(bar.A, 15, ColorPalm, Filled)
		s.DrawCircle(bar.B, 15, ColorPalm, Filled)
	}

	s.Blend(geom.Box{W: size.X, H: 80}, ColorHUD, 0.7)

	s.DrawText(fmt.Sprintf("SCORE: %d", e.Score()), image.Pt(20, 50), 1.2, ColorScore, 3)

	comboColor := ColorNoCombo
	if e.Combo() > 0 {
		comboColor = ColorCombo
	}
	s.DrawText(fmt.Sprintf("COMBO: %dx", e.Combo()), image.Pt(350, 50), 1.2, comboColor, 3)

	remaining := e.TimeRemaining().Seconds()
	timeColor := ColorScore
	if remaining <= 10 {
		timeColor = ColorWarn
	}
	s.DrawText(fmt.Sprintf("TIME: %ds", int(remaining)), image.Pt(700, 50), 1.2, timeColor, 3)
	s.DrawText(fmt.Sprintf("BALLS: %d", e.BallsLeft()), image.Pt(1000, 50), 1.2, ColorBalls, 3)

	if e.Running() && e.Bar() == nil {
		s.DrawText("SHOW BOTH HANDS TO CREATE BAR!", image.Pt(size.X/2-300, size.Y/2), 1.0, ColorWarn, 2)
	}
}

func (p *Painter) drawGameOver(s Surface, c *session.Controller) {
	size := s.Size()
	e := c.Engine()

	s.Blend(geom.Box{W: size.X, H: size.Y}, ColorBlack, 0.7)
	s.DrawText("GAME OVER!", image.Pt(size.X/2-200, 150), 2.0, ColorWarn, 4)
	s.DrawText(fmt.Sprintf("Final Score: %d", e.Score()), image.Pt(size.X/2-150, 280), 1.5, ColorScore, 3)
	s.DrawText(fmt.Sprintf("Max Combo: %dx", e.MaxCombo()), image.Pt(size.X/2-150, 360), 1.5, ColorCombo, 3)

	for _, el := range c.Layout().GameOver() {
		p.drawElement(s, el)
	}
}

// drawHands overlays the skeleton mirrored, so it lines up with the
// mirrored camera background.
func (p *Painter) drawHands(s Surface, hands []detector.HandLandmarks) {
	size := s.Size()
	toScreen := func(pt detector.Point3D) image.Point {
		return image.Pt(int((1-pt.X)*float64(size.X)), int(pt.Y*float64(size.Y)))
	}

	for i := range hands {
		h := &hands[i]
		for _, conn := range handConnections {
			s.DrawLine(toScreen(h.Points[conn[0]]), toScreen(h.Points[conn[1]]), ColorConnection, 2)
		}
		for _, pt := range h.Points {
			s.DrawCircle(toScreen(pt), 4, ColorLandmark, Filled)
		}
	}
}

func drawCursor(s Surface, sig gesture.Signal) {
	s.DrawCircle(sig.Cursor, 12, ColorCursor, Filled)
	s.DrawCircle(sig.Cursor, 14, ColorText, 2)
	if sig.Pinch {
		s.DrawCircle(sig.Cursor, 20, ColorPinch, 3)
	}
}

// mix blends from a towards b by t in [0, 1].
func mix(a, b color.RGBA, t float32) color.RGBA {
	t = max(0, min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}
