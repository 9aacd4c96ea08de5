// Package tray provides a system tray menu for the desk. Menu clicks become
// Commands on a channel; the frame loop drains it, so the tray never touches
// desk state directly.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Command is a tray menu request.
type Command int

const (
	ToggleCameraBG Command = iota
	ToggleLandmarks
	OpenSpectator
	Quit
)

func (c Command) String() string {
	switch c {
	case ToggleCameraBG:
		return "toggle_camera_bg"
	case ToggleLandmarks:
		return "toggle_landmarks"
	case OpenSpectator:
		return "open_spectator"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// commandBuffer bounds how many clicks can queue between two frames.
const commandBuffer = 8

// Tray represents the system tray application.
type Tray struct {
	commands chan Command
	mu       sync.Mutex

	// Menu items stored for later updates
	menuStatus *systray.MenuItem
	status     string
}

// New creates a Tray. Nothing is shown until Run.
func New() *Tray {
	return &Tray{
		commands: make(chan Command, commandBuffer),
		status:   "Menu",
	}
}

// Commands returns the channel menu clicks are delivered on.
func (t *Tray) Commands() <-chan Command {
	return t.commands
}

// Run starts the system tray and blocks until Stop is called or Quit is clicked.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Stop removes the tray icon and makes Run return.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("AirDesk")
	systray.SetTooltip("AirDesk hand-controlled desktop")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem(t.status, "Current screen")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuCamera := systray.AddMenuItem("Toggle Camera Background", "Show or hide the camera behind the UI")
	menuHands := systray.AddMenuItem("Toggle Hand Overlay", "Show or hide detected hand landmarks")
	menuSpectator := systray.AddMenuItem("Open Spectator View...", "Open the live view in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit AirDesk")

	go func() {
		for {
			select {
			case <-menuCamera.ClickedCh:
				t.send(ToggleCameraBG)
			case <-menuHands.ClickedCh:
				t.send(ToggleLandmarks)
			case <-menuSpectator.ClickedCh:
				t.send(OpenSpectator)
			case <-menuQuit.ClickedCh:
				t.send(Quit)
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// send queues c, dropping it if the loop is too far behind. Quit is never
// dropped.
func (t *Tray) send(c Command) bool {
	if c == Quit {
		t.commands <- c
		return true
	}
	select {
	case t.commands <- c:
		return true
	default:
		return false
	}
}

// SetStatus updates the read-only status line, such as the current score.
func (t *Tray) SetStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if text == t.status {
		return
	}
	t.status = text
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(text)
	}
}

// Status returns the last status text.
func (t *Tray) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}
