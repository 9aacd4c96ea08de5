// Package session holds the desk's top-level interaction state and carries
// out the actions the router fires.
package session

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/gesture"
	"github.com/ayusman/airdesk/internal/launch"
	"github.com/ayusman/airdesk/internal/ui"
)

// Mode is the top-level screen the user is on.
type Mode int

const (
	Menu Mode = iota
	Game
)

func (m Mode) String() string {
	if m == Game {
		return "game"
	}
	return "menu"
}

// MarshalText makes Mode readable in JSON snapshots.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Config holds the start-up state of a Controller.
type Config struct {
	ClickCooldown time.Duration
	ShowCameraBG  bool
	ShowLandmarks bool
}

// DefaultConfig returns the defaults: a 300ms click cooldown with the camera
// background and landmark overlay on.
func DefaultConfig() Config {
	return Config{
		ClickCooldown: gesture.DefaultClickCooldown,
		ShowCameraBG:  true,
		ShowLandmarks: true,
	}
}

// Controller owns the mode, the typed text, the display toggles and the click
// clock, and it is the ui.Handler every routed action lands on. Like the
// engine it is driven from the frame loop only.
type Controller struct {
	engine   *game.Engine
	layout   *ui.Layout
	router   *ui.Router
	launcher launch.Launcher
	clock    *gesture.ClickClock
	logger   *log.Logger

	mode          Mode
	text          []rune
	showCameraBG  bool
	showLandmarks bool

	lastFired *ui.Element
}

// NewController creates a Controller in Menu mode.
func NewController(config Config, engine *game.Engine, layout *ui.Layout, launcher launch.Launcher) *Controller {
	c := &Controller{
		engine:        engine,
		layout:        layout,
		launcher:      launcher,
		clock:         gesture.NewClickClock(config.ClickCooldown),
		logger:        log.New(os.Stderr, "[session] ", log.LstdFlags),
		mode:          Menu,
		showCameraBG:  config.ShowCameraBG,
		showLandmarks: config.ShowLandmarks,
	}
	c.router = ui.NewRouter(c)
	return c
}

// SetLogger replaces the controller logger.
func (c *Controller) SetLogger(l *log.Logger) {
	c.logger = l
}

// Step applies one interpreted frame. On the menu and game-over screens the
// cursor is routed; while a game runs the engine advances and clicks are
// ignored. It returns the element a click fired, or nil.
func (c *Controller) Step(sig gesture.Signal) *ui.Element {
	c.lastFired = nil

	switch screen := c.Screen(); screen {
	case ui.ScreenMenu, ui.ScreenGameOver:
		c.lastFired = c.router.Route(c.layout.Elements(screen), sig.Cursor, sig.HasCursor, sig.Click)
	case ui.ScreenGame:
		c.engine.Update(sig.Bar)
	}

	return c.lastFired
}

// Dispatch runs an action as if its element had been clicked.
func (c *Controller) Dispatch(a ui.Action) {
	c.router.Dispatch(a)
}

// Screen maps the mode and game state to the element set that is live.
func (c *Controller) Screen() ui.Screen {
	if c.mode == Menu {
		return ui.ScreenMenu
	}
	if c.engine.State() == game.GameOver {
		return ui.ScreenGameOver
	}
	return ui.ScreenGame
}

// BarEnabled reports whether the interpreter should build the two-hand bar.
func (c *Controller) BarEnabled() bool {
	return c.mode == Game && c.engine.Running()
}

// ToggleKeyboard shows or hides the on-screen keyboard.
func (c *Controller) ToggleKeyboard() {
	c.layout.SetKeyboardVisible(!c.layout.KeyboardVisible())
}

// OpenBrowser opens the home page.
func (c *Controller) OpenBrowser() {
	c.open(launch.HomeURL)
}

// Search opens a web search for the typed text. Nothing happens when only
// whitespace has been typed.
func (c *Controller) Search() {
	u, err := launch.QueryURL(string(c.text))
	if errors.Is(err, launch.ErrEmptyQuery) {
		return
	}
	c.open(u)
}

func (c *Controller) open(u string) {
	if err := c.launcher.Open(u); err != nil {
		c.logger.Printf("Failed to open %s: %v", u, err)
	}
}

// StartGame switches to the game and starts a fresh session.
func (c *Controller) StartGame() {
	c.engine.Start()
	c.mode = Game
}

// PlayAgain starts a fresh session from the game-over screen.
func (c *Controller) PlayAgain() {
	c.StartGame()
}

// ExitToMenu drops the game session and returns to the menu.
func (c *Controller) ExitToMenu() {
	c.engine.Reset()
	c.mode = Menu
}

// ToggleCameraBG flips the camera background.
func (c *Controller) ToggleCameraBG() {
	c.showCameraBG = !c.showCameraBG
}

// ToggleLandmarks flips the landmark overlay.
func (c *Controller) ToggleLandmarks() {
	c.showLandmarks = !c.showLandmarks
}

// TypeChar appends r to the text buffer.
func (c *Controller) TypeChar(r rune) {
	c.text = append(c.text, r)
}

// Backspace removes the last character, if any.
func (c *Controller) Backspace() {
	if len(c.text) > 0 {
		c.text = c.text[:len(c.text)-1]
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Text returns the typed text.
func (c *Controller) Text() string { return string(c.text) }

// VisibleText returns at most the last n characters of the typed text.
func (c *Controller) VisibleText(n int) string {
	if len(c.text) <= n {
		return string(c.text)
	}
	return string(c.text[len(c.text)-n:])
}

// ShowCameraBG reports whether the camera frame is drawn behind the UI.
func (c *Controller) ShowCameraBG() bool { return c.showCameraBG }

// ShowLandmarks reports whether detected hands are drawn.
func (c *Controller) ShowLandmarks() bool { return c.showLandmarks }

// KeyboardVisible reports whether the on-screen keyboard is shown.
func (c *Controller) KeyboardVisible() bool { return c.layout.KeyboardVisible() }

// Clock returns the click clock the interpreter must use.
func (c *Controller) Clock() *gesture.ClickClock { return c.clock }

// Engine returns the game engine.
func (c *Controller) Engine() *game.Engine { return c.engine }

// Layout returns the element layout.
func (c *Controller) Layout() *ui.Layout { return c.layout }

// Elements returns the live element set for the current screen.
func (c *Controller) Elements() []*ui.Element {
	return c.layout.Elements(c.Screen())
}

// LastFired returns the element fired by the most recent Step, or nil.
func (c *Controller) LastFired() *ui.Element { return c.lastFired }
