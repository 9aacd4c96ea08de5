package app

import (
	"context"
	"errors"
	"image/color"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/capture"
	"github.com/ayusman/airdesk/internal/detector"
	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/launch"
	"github.com/ayusman/airdesk/internal/render"
	"github.com/ayusman/airdesk/internal/server"
	"github.com/ayusman/airdesk/internal/session"
	"github.com/ayusman/airdesk/internal/tray"
)

type harness struct {
	app      *App
	camera   *capture.MockCamera
	detector *detector.MockDetector
	display  *render.Recorder
	launcher *launch.Recorder
}

// newHarness builds an App around mocks. Time advances 33ms per detected frame.
func newHarness(t *testing.T, config Config, frames int) *harness {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h := &harness{
		camera:   capture.NewBlankCamera(frames, 640, 480, color.RGBA{A: 255}),
		detector: detector.NewMockDetector(),
		display:  render.NewRecorder(config.Game.Width, config.Game.Height),
		launcher: launch.NewRecorder(),
	}

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.app = New(config)
	h.app.SetCamera(h.camera)
	h.app.SetDetector(h.detector)
	h.app.SetDisplay(h.display)
	h.app.SetLauncher(h.launcher)
	h.app.SetLogger(log.New(io.Discard, "", 0))
	h.app.SetClock(func() time.Time {
		return base.Add(time.Duration(h.detector.Calls()) * 33 * time.Millisecond)
	})
	return h
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}

// Ball Game button centre, normalized.
const ballGameX, ballGameY = 505.0 / 1280, 45.0 / 720

func TestApp_PinchStartsGameAndBarPlays(t *testing.T) {
	h := newHarness(t, testConfig(), 10)
	hub := server.NewHub()
	h.app.SetHub(hub)

	var statuses []string
	h.app.SetStatus(func(s string) { statuses = append(statuses, s) })

	h.detector.SetScript(
		[]detector.HandLandmarks{detector.PointingAt(ballGameX, ballGameY)},
		[]detector.HandLandmarks{detector.PinchingAt(ballGameX, ballGameY)},
		[]detector.HandLandmarks{detector.PinchingAt(ballGameX, ballGameY)},
	)
	h.detector.SetHands([]detector.HandLandmarks{
		detector.OpenPalmAt(0.2, 0.8),
		detector.OpenPalmAt(0.8, 0.8),
	})

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	c := h.app.Controller()
	if c.Mode() != session.Game {
		t.Fatalf("Mode() = %v, want game", c.Mode())
	}
	e := c.Engine()
	if !e.Running() {
		t.Errorf("engine state = %v, want active", e.State())
	}
	if e.Spawned() != 1 {
		t.Errorf("Spawned() = %d, want 1", e.Spawned())
	}
	if e.Bar() == nil {
		t.Error("two open palms should hold a bar")
	}

	if got := h.display.Presents(); got != 10 {
		t.Errorf("Presents() = %d, want one per frame (10)", got)
	}
	if got := h.detector.Calls(); got != 10 {
		t.Errorf("detector calls = %d, want 10", got)
	}
	if len(h.launcher.URLs()) != 0 {
		t.Errorf("unexpected launches: %v", h.launcher.URLs())
	}

	if snap := string(hub.Snapshot()); !strings.Contains(snap, `"mode":"game"`) {
		t.Errorf("published snapshot = %s", snap)
	}
	if len(statuses) != 10 || statuses[0] != "Menu" || !strings.HasPrefix(statuses[9], "Playing:") {
		t.Errorf("statuses = %v", statuses)
	}
}

func TestApp_StopConditions(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(h *harness)
		wantPresent int
	}{
		{
			name:        "end of stream",
			setup:       func(h *harness) {},
			wantPresent: 5,
		},
		{
			name:        "quit key",
			setup:       func(h *harness) { h.display.PressKeys(-1, 'q') },
			wantPresent: 2,
		},
		{
			name:        "other keys ignored",
			setup:       func(h *harness) { h.display.PressKeys('x', 'Q') },
			wantPresent: 5,
		},
		{
			name:        "window closed",
			setup:       func(h *harness) { h.display.CloseWindow() },
			wantPresent: 1,
		},
		{
			name: "tray quit",
			setup: func(h *harness) {
				ch := make(chan tray.Command, 1)
				ch <- tray.Quit
				h.app.SetCommands(ch)
			},
			wantPresent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, testConfig(), 5)
			tt.setup(h)

			if err := h.app.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := h.display.Presents(); got != tt.wantPresent {
				t.Errorf("Presents() = %d, want %d", got, tt.wantPresent)
			}
		})
	}
}

func TestApp_ContextCancelled(t *testing.T) {
	h := newHarness(t, testConfig(), 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.app.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.display.Presents(); got != 0 {
		t.Errorf("Presents() = %d, want 0", got)
	}
}

func TestApp_TrayCommands(t *testing.T) {
	cfg := testConfig()
	cfg.ServerAddr = ":8080"
	h := newHarness(t, cfg, 3)

	ch := make(chan tray.Command, 4)
	ch <- tray.ToggleCameraBG
	ch <- tray.ToggleLandmarks
	ch <- tray.OpenSpectator
	h.app.SetCommands(ch)

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	c := h.app.Controller()
	if c.ShowCameraBG() || c.ShowLandmarks() {
		t.Errorf("toggles = %v/%v, want both off", c.ShowCameraBG(), c.ShowLandmarks())
	}
	urls := h.launcher.URLs()
	if len(urls) != 1 || urls[0] != "http://localhost:8080/api/state" {
		t.Errorf("launched %v", urls)
	}
}

func TestApp_DetectorErrorMeansNoHands(t *testing.T) {
	h := newHarness(t, testConfig(), 4)
	h.detector.SetError(errors.New("sidecar died"))

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.display.Presents(); got != 4 {
		t.Errorf("Presents() = %d, want 4", got)
	}
	if h.app.Controller().Mode() != session.Menu {
		t.Error("mode changed without hands")
	}
}

type brokenCamera struct{}

func (brokenCamera) Open() error                   { return capture.ErrCameraNotOpen }
func (brokenCamera) Close() error                  { return nil }
func (brokenCamera) ReadFrame() (*gocv.Mat, error) { return nil, capture.ErrCameraNotOpen }
func (brokenCamera) IsOpen() bool                  { return false }

func TestApp_CameraOpenFailure(t *testing.T) {
	a := New(testConfig())
	a.SetLogger(log.New(io.Discard, "", 0))
	a.SetCamera(brokenCamera{})
	rec := render.NewRecorder(1280, 720)
	a.SetDisplay(rec)

	err := a.Run(context.Background())
	if !errors.Is(err, capture.ErrCameraNotOpen) {
		t.Errorf("Run() error = %v, want %v", err, capture.ErrCameraNotOpen)
	}
	if rec.Presents() != 0 {
		t.Error("nothing should be drawn without a camera")
	}
}

func TestSpectatorURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080/api/state"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000/api/state"},
	}

	for _, tt := range tests {
		if got := spectatorURL(tt.addr); got != tt.want {
			t.Errorf("spectatorURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want string
	}{
		{name: "menu", snap: session.Snapshot{Mode: session.Menu}, want: "Menu"},
		{
			name: "playing",
			snap: session.Snapshot{Mode: session.Game, Game: game.Snapshot{State: game.Active, Score: 3, SecondsRemaining: 41.7}},
			want: "Playing: 3 points, 41s left",
		},
		{
			name: "game over",
			snap: session.Snapshot{Mode: session.Game, Game: game.Snapshot{State: game.GameOver, Score: 9}},
			want: "Game over: 9 points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusText(tt.snap); got != tt.want {
				t.Errorf("statusText() = %q, want %q", got, tt.want)
			}
		})
	}
}
