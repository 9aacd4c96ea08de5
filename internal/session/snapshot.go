package session

import "github.com/ayusman/airdesk/internal/game"

// Snapshot is an immutable copy of the desk state for spectators.
type Snapshot struct {
	Mode            Mode          `json:"mode"`
	Text            string        `json:"text"`
	KeyboardVisible bool          `json:"keyboard_visible"`
	ShowCameraBG    bool          `json:"show_camera_bg"`
	ShowLandmarks   bool          `json:"show_landmarks"`
	Game            game.Snapshot `json:"game"`
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Mode:            c.mode,
		Text:            string(c.text),
		KeyboardVisible: c.layout.KeyboardVisible(),
		ShowCameraBG:    c.showCameraBG,
		ShowLandmarks:   c.showLandmarks,
		Game:            c.engine.Snapshot(),
	}
}
