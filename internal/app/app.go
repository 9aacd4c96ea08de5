// Package app wires capture, detection, interpretation, the desk session and
// rendering into the per-frame loop.
package app

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/ayusman/airdesk/internal/capture"
	"github.com/ayusman/airdesk/internal/detector"
	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/gesture"
	"github.com/ayusman/airdesk/internal/launch"
	"github.com/ayusman/airdesk/internal/render"
	"github.com/ayusman/airdesk/internal/server"
	"github.com/ayusman/airdesk/internal/session"
	"github.com/ayusman/airdesk/internal/tray"
	"github.com/ayusman/airdesk/internal/ui"
)

// QuitKey ends the loop when pressed in the window.
const QuitKey = 'q'

// streamQuality is the JPEG quality of frames published to spectators.
const streamQuality = 70

// App owns the collaborators of one desk and runs its frame loop.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	display    render.Display
	launcher   launch.Launcher
	interp     *gesture.Interpreter
	engine     *game.Engine
	controller *session.Controller
	painter    *render.Painter

	hub      *server.Hub
	commands <-chan tray.Command
	status   func(string)

	now    func() time.Time
	logger *log.Logger
}

// New creates an App with the real camera, the MediaPipe detector when its
// sidecar can be found, and the system browser. The window is opened by Run
// unless SetDisplay was called.
func New(config Config) *App {
	a := &App{
		config: config,
		camera: capture.NewCamera(capture.Config{
			DeviceID: config.CameraID,
			Width:    config.FrameWidth,
			Height:   config.FrameHeight,
		}),
		launcher: launch.NewBrowser(),
		interp: gesture.NewInterpreter(gesture.Config{
			UIWidth:        config.Game.Width,
			UIHeight:       config.Game.Height,
			PinchThreshold: gesture.DefaultPinchThreshold,
		}),
		painter: render.NewPainter(),
		now:     time.Now,
		logger:  log.Default(),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	// The engine reads the clock through a so SetClock reaches it.
	clock := func() time.Time { return a.now() }
	if config.Seed != 0 {
		a.engine = game.NewSeeded(config.Game, config.Seed, clock)
	} else {
		seed := uint64(time.Now().UnixNano())
		a.engine = game.New(config.Game, rand.New(rand.NewPCG(seed, seed>>1)), clock)
	}

	a.controller = session.NewController(session.Config{
		ClickCooldown: config.ClickCooldown,
		ShowCameraBG:  config.ShowCameraBG,
		ShowLandmarks: config.ShowLandmarks,
	}, a.engine, ui.NewLayout(config.Game.Width), launcherFunc(func(u string) error {
		return a.launcher.Open(u)
	}))

	return a
}

// launcherFunc lets the controller see launcher swaps made after New.
type launcherFunc func(string) error

func (f launcherFunc) Open(u string) error { return f(u) }

// SetCamera replaces the frame source.
func (a *App) SetCamera(c capture.Camera) { a.camera = c }

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) { a.detector = d }

// SetDisplay replaces the window Run would open.
func (a *App) SetDisplay(d render.Display) { a.display = d }

// SetLauncher replaces the browser launcher.
func (a *App) SetLauncher(l launch.Launcher) { a.launcher = l }

// SetClock replaces the wall clock for the loop and the game.
func (a *App) SetClock(now func() time.Time) { a.now = now }

// SetLogger replaces the loop logger. Component loggers are silenced too
// when l discards.
func (a *App) SetLogger(l *log.Logger) {
	a.logger = l
	a.engine.SetLogger(l)
	a.controller.SetLogger(l)
}

// SetHub makes the loop publish every frame to spectators.
func (a *App) SetHub(h *server.Hub) { a.hub = h }

// SetCommands connects the tray menu.
func (a *App) SetCommands(ch <-chan tray.Command) { a.commands = ch }

// SetStatus registers a callback for the one-line status shown in the tray.
func (a *App) SetStatus(fn func(string)) { a.status = fn }

// Controller returns the desk session.
func (a *App) Controller() *session.Controller { return a.controller }

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector { return a.detector }

// Run drives the frame loop until the user quits, ctx is cancelled or the
// camera stops delivering frames. Only a camera that cannot be opened is an
// error.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			a.logger.Printf("Error closing camera: %v", err)
		}
	}()
	defer func() {
		if err := a.detector.Close(); err != nil {
			a.logger.Printf("Error closing detector: %v", err)
		}
	}()

	if a.display == nil {
		a.display = render.NewWindow(a.config.WindowTitle, a.config.Game.Width, a.config.Game.Height)
	}
	defer a.display.Close()

	a.logger.Println("AirDesk started: point with your index finger, pinch to click, press 'q' to quit")

	l := &loop{app: a, last: a.now()}
	for {
		if err := ctx.Err(); err != nil {
			a.logger.Println("Stopping: context done")
			return nil
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			a.logger.Printf("Camera stream ended: %v", err)
			return nil
		}

		quit := l.step(frame)
		frame.Close()
		if quit {
			return nil
		}
	}
}
