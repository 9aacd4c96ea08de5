// Package ui holds the interactive elements of the desk, their layouts, and
// the router that hit-tests the cursor against them.
package ui

import (
	"image"

	"github.com/ayusman/airdesk/internal/geom"
)

// ActionKind tags what an element does when clicked.
type ActionKind int

const (
	ToggleKeyboard ActionKind = iota
	OpenBrowser
	Search
	StartGame
	ToggleCameraBG
	ToggleLandmarks
	TypeChar
	Backspace
	PlayAgain
	ExitToMenu
)

var actionNames = [...]string{
	ToggleKeyboard:  "toggle_keyboard",
	OpenBrowser:     "open_browser",
	Search:          "search",
	StartGame:       "start_game",
	ToggleCameraBG:  "toggle_camera_bg",
	ToggleLandmarks: "toggle_landmarks",
	TypeChar:        "type_char",
	Backspace:       "backspace",
	PlayAgain:       "play_again",
	ExitToMenu:      "exit_to_menu",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[k]
}

// Action is a tagged action. Char is only meaningful for TypeChar.
type Action struct {
	Kind ActionKind
	Char rune
}

// Kind distinguishes the element families; it only affects rendering.
type Kind int

const (
	MenuButton Kind = iota
	KeyboardKey
	GameOverButton
)

// Element is a clickable box.
type Element struct {
	Kind    Kind
	Box     geom.Box
	Label   string
	Action  Action
	Hovered bool
}

// Contains reports whether p is inside the element, edges included.
func (e *Element) Contains(p image.Point) bool {
	return e.Box.Contains(p)
}
