package session

import (
	"encoding/json"
	"errors"
	"image"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/airdesk/internal/detector"
	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/gesture"
	"github.com/ayusman/airdesk/internal/launch"
	"github.com/ayusman/airdesk/internal/ui"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(t *testing.T) (*Controller, *launch.Recorder, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	quiet := log.New(io.Discard, "", 0)

	engine := game.NewSeeded(game.DefaultConfig(), 7, clock.Now)
	engine.SetLogger(quiet)

	rec := launch.NewRecorder()
	c := NewController(DefaultConfig(), engine, ui.NewLayout(game.DefaultWidth), rec)
	c.SetLogger(quiet)
	return c, rec, clock
}

func click(x, y int) gesture.Signal {
	return gesture.Signal{Cursor: image.Pt(x, y), HasCursor: true, Pinch: true, Click: true}
}

// clickOn fires the element with the given label on the current screen.
func clickOn(t *testing.T, c *Controller, label string) {
	t.Helper()
	for _, e := range c.Elements() {
		if e.Label == label {
			center := e.Box.Center()
			if fired := c.Step(click(center.X, center.Y)); fired != e {
				t.Fatalf("clicking %s fired %v", label, fired)
			}
			return
		}
	}
	t.Fatalf("no %s element on screen %v", label, c.Screen())
}

func typeText(t *testing.T, c *Controller, s string) {
	t.Helper()
	for _, r := range s {
		switch r {
		case ' ':
			clickOn(t, c, "SPACE")
		case '\n':
			clickOn(t, c, "ENTER")
		default:
			clickOn(t, c, string(r))
		}
	}
}

func TestController_Defaults(t *testing.T) {
	c, _, _ := newTestController(t)

	if c.Mode() != Menu {
		t.Errorf("Mode() = %v, want menu", c.Mode())
	}
	if !c.ShowCameraBG() || !c.ShowLandmarks() {
		t.Error("camera background and landmarks should start on")
	}
	if c.KeyboardVisible() {
		t.Error("keyboard should start hidden")
	}
	if c.Clock().Cooldown != 300*time.Millisecond {
		t.Errorf("Clock().Cooldown = %v, want 300ms", c.Clock().Cooldown)
	}
	if c.BarEnabled() {
		t.Error("BarEnabled() in menu = true")
	}
}

func TestController_Typing(t *testing.T) {
	c, _, _ := newTestController(t)

	clickOn(t, c, "Keyboard")
	if !c.KeyboardVisible() {
		t.Fatal("Keyboard button did not show the keyboard")
	}

	typeText(t, c, "GO GO\n")
	if got := c.Text(); got != "GO GO\n" {
		t.Errorf("Text() = %q, want %q", got, "GO GO\n")
	}

	clickOn(t, c, "BACK")
	clickOn(t, c, "BACK")
	if got := c.Text(); got != "GO G" {
		t.Errorf("Text() after two BACKs = %q, want %q", got, "GO G")
	}

	clickOn(t, c, "Keyboard")
	if c.KeyboardVisible() {
		t.Error("second Keyboard click should hide the keyboard")
	}
}

func TestController_BackspaceOnEmpty(t *testing.T) {
	c, _, _ := newTestController(t)

	c.Backspace()
	if got := c.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestController_VisibleText(t *testing.T) {
	c, _, _ := newTestController(t)
	for range 70 {
		c.TypeChar('A')
	}
	c.TypeChar('Z')

	got := c.VisibleText(60)
	if len(got) != 60 || !strings.HasSuffix(got, "Z") {
		t.Errorf("VisibleText(60) = %q (len %d)", got, len(got))
	}

	c2, _, _ := newTestController(t)
	c2.TypeChar('X')
	if got := c2.VisibleText(60); got != "X" {
		t.Errorf("VisibleText(60) = %q, want X", got)
	}
}

func TestController_Launch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		button   string
		wantURLs []string
	}{
		{name: "browser", button: "Browser", wantURLs: []string{"https://www.google.com"}},
		{name: "search", text: "HELLO WORLD", button: "Search", wantURLs: []string{"https://www.google.com/search?q=HELLO+WORLD"}},
		{name: "search trims", text: "  GO\n", button: "Search", wantURLs: []string{"https://www.google.com/search?q=GO"}},
		{name: "empty search does nothing", button: "Search"},
		{name: "blank search does nothing", text: " \n ", button: "Search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, _ := newTestController(t)
			for _, r := range tt.text {
				c.TypeChar(r)
			}

			clickOn(t, c, tt.button)

			got := rec.URLs()
			if len(got) != len(tt.wantURLs) {
				t.Fatalf("opened %v, want %v", got, tt.wantURLs)
			}
			for i := range got {
				if got[i] != tt.wantURLs[i] {
					t.Errorf("opened[%d] = %q, want %q", i, got[i], tt.wantURLs[i])
				}
			}
		})
	}
}

func TestController_LaunchErrorIsSwallowed(t *testing.T) {
	c, rec, _ := newTestController(t)
	rec.SetError(errors.New("no browser"))

	clickOn(t, c, "Browser")

	if c.Mode() != Menu {
		t.Errorf("Mode() = %v, want menu", c.Mode())
	}
	if len(rec.URLs()) != 1 {
		t.Errorf("opened %v, want one attempt", rec.URLs())
	}
}

func TestController_Toggles(t *testing.T) {
	c, _, _ := newTestController(t)

	clickOn(t, c, "Camera BG")
	if c.ShowCameraBG() {
		t.Error("Camera BG click should hide the camera background")
	}
	clickOn(t, c, "Show Hands")
	if c.ShowLandmarks() {
		t.Error("Show Hands click should hide the landmarks")
	}

	c.Dispatch(ui.Action{Kind: ui.ToggleCameraBG})
	if !c.ShowCameraBG() {
		t.Error("Dispatch(ToggleCameraBG) should flip the background back on")
	}
}

func TestController_GameLifecycle(t *testing.T) {
	c, _, clock := newTestController(t)

	clickOn(t, c, "Ball Game")
	if c.Mode() != Game || c.Screen() != ui.ScreenGame {
		t.Fatalf("after Ball Game: mode %v screen %v", c.Mode(), c.Screen())
	}
	if !c.BarEnabled() {
		t.Error("BarEnabled() during a game = false")
	}
	first := c.Engine().SessionID()
	if first == "" {
		t.Error("game started without a session id")
	}

	// Clicks while playing do nothing, even over where the menu buttons were.
	if fired := c.Step(click(50, 40)); fired != nil {
		t.Errorf("click during game fired %s", fired.Label)
	}
	if c.KeyboardVisible() {
		t.Error("keyboard toggled during game")
	}
	if c.Engine().Spawned() != 1 {
		t.Errorf("Spawned() = %d, want 1 after the first game step", c.Engine().Spawned())
	}

	clock.Advance(61 * time.Second)
	c.Step(gesture.Signal{})
	if c.Screen() != ui.ScreenGameOver {
		t.Fatalf("Screen() = %v, want game over", c.Screen())
	}
	if c.BarEnabled() {
		t.Error("BarEnabled() after game over = true")
	}

	clickOn(t, c, "Play Again")
	if c.Engine().State() != game.Active || c.Mode() != Game {
		t.Fatalf("Play Again: state %v mode %v", c.Engine().State(), c.Mode())
	}
	if c.Engine().SessionID() == first {
		t.Error("Play Again reused the session id")
	}
	if c.Engine().Score() != 0 || c.Engine().Spawned() != 0 {
		t.Error("Play Again did not start a fresh session")
	}

	clock.Advance(61 * time.Second)
	c.Step(gesture.Signal{})
	clickOn(t, c, "Exit to Menu")
	if c.Mode() != Menu || c.Engine().State() != game.Idle {
		t.Errorf("Exit to Menu: mode %v state %v", c.Mode(), c.Engine().State())
	}
}

func TestController_GameOverHover(t *testing.T) {
	c, _, clock := newTestController(t)
	c.StartGame()
	clock.Advance(61 * time.Second)
	c.Step(gesture.Signal{})

	over := c.Layout().GameOver()
	c.Step(gesture.Signal{Cursor: over[1].Box.Center(), HasCursor: true})

	if over[0].Hovered || !over[1].Hovered {
		t.Errorf("hover = %v/%v, want false/true", over[0].Hovered, over[1].Hovered)
	}
	if c.Mode() != Game {
		t.Error("hover without a click must not act")
	}
}

func TestController_FromLandmarks(t *testing.T) {
	c, _, clock := newTestController(t)
	interp := gesture.NewInterpreter(gesture.DefaultConfig())

	// Ball Game is centred at (505, 45) in UI space.
	x, y := 505.0/1280, 45.0/720

	frames := [][]detector.HandLandmarks{
		{detector.PointingAt(x, y)},
		{detector.PinchingAt(x, y)},
		{detector.PinchingAt(x, y)},
	}

	for _, hands := range frames {
		clock.Advance(33 * time.Millisecond)
		sig := interp.Interpret(gesture.Frame{
			Hands:      hands,
			Width:      640,
			Height:     480,
			BarEnabled: c.BarEnabled(),
			Now:        clock.Now(),
		}, c.Clock())
		c.Step(sig)
	}

	if c.Mode() != Game {
		t.Fatalf("Mode() = %v, want game after pinching on Ball Game", c.Mode())
	}
	if c.Engine().Spawned() != 1 {
		t.Errorf("Spawned() = %d, want 1 (held pinch must not restart the game)", c.Engine().Spawned())
	}
}

func TestController_Snapshot(t *testing.T) {
	c, _, _ := newTestController(t)
	c.TypeChar('H')
	c.TypeChar('I')
	c.StartGame()

	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got["mode"] != "game" || got["text"] != "HI" {
		t.Errorf("snapshot = %s", data)
	}
	gameState, ok := got["game"].(map[string]any)
	if !ok || gameState["state"] != "active" {
		t.Errorf("snapshot game = %v", got["game"])
	}
}
