package app

import (
	"time"

	"github.com/ayusman/airdesk/internal/capture"
	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/gesture"
)

// Config holds configuration options for the application.
type Config struct {
	CameraID    int
	FrameWidth  int
	FrameHeight int

	ClickCooldown time.Duration
	ShowCameraBG  bool
	ShowLandmarks bool

	// Seed fixes the game's randomness; zero seeds from the clock.
	Seed uint64

	// ServerAddr is where the spectator server listens; empty disables it.
	ServerAddr string
	EnableTray bool

	WindowTitle string
	Game        game.Config
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		FrameWidth:    capture.DefaultWidth,
		FrameHeight:   capture.DefaultHeight,
		ClickCooldown: gesture.DefaultClickCooldown,
		ShowCameraBG:  true,
		ShowLandmarks: true,
		WindowTitle:   "AirDesk",
		Game:          game.DefaultConfig(),
	}
}
