package ui

import "github.com/ayusman/airdesk/internal/geom"

// Layout constants, in UI pixels.
const (
	ButtonHeight = 50
	ButtonWidth  = 130
	ButtonMargin = 20
	ButtonGap    = 10

	KeySize       = 60
	KeyMargin     = 10
	KeyboardTop   = 200
	SpecialKeyW   = 2 * KeySize
	KeyHeight     = KeySize - 5
	TextBoxHeight = 60
)

// Screen selects which element set is live.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenGameOver
)

var keyboardRows = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"Z", "X", "C", "V", "B", "N", "M"},
	{"SPACE", "BACK", "ENTER"},
}

// Layout owns every element the desk can show. Element pointers are stable,
// so hover state set while rendering is seen by the click path in the same frame.
type Layout struct {
	width int

	menu     []*Element
	gameOver []*Element

	keyboardVisible bool
	keyboard        []*Element
}

// NewLayout builds the menu and game-over elements for a UI of the given width.
func NewLayout(width int) *Layout {
	l := &Layout{width: width}

	menu := []struct {
		label  string
		action ActionKind
	}{
		{"Keyboard", ToggleKeyboard},
		{"Browser", OpenBrowser},
		{"Search", Search},
		{"Ball Game", StartGame},
		{"Camera BG", ToggleCameraBG},
		{"Show Hands", ToggleLandmarks},
	}
	for i, m := range menu {
		l.menu = append(l.menu, &Element{
			Kind:   MenuButton,
			Box:    geom.Box{X: ButtonMargin + i*(ButtonWidth+ButtonGap), Y: ButtonMargin, W: ButtonWidth, H: ButtonHeight},
			Label:  m.label,
			Action: Action{Kind: m.action},
		})
	}

	l.gameOver = []*Element{
		{
			Kind:   GameOverButton,
			Box:    geom.Box{X: width/2 - 250, Y: 450, W: 200, H: 60},
			Label:  "Play Again",
			Action: Action{Kind: PlayAgain},
		},
		{
			Kind:   GameOverButton,
			Box:    geom.Box{X: width/2 + 50, Y: 450, W: 200, H: 60},
			Label:  "Exit to Menu",
			Action: Action{Kind: ExitToMenu},
		},
	}

	return l
}

// Menu returns the menu buttons in hit-test order.
func (l *Layout) Menu() []*Element { return l.menu }

// GameOver returns the game-over buttons in hit-test order.
func (l *Layout) GameOver() []*Element { return l.gameOver }

// TextBox returns the box of the typed-text display below the menu.
func (l *Layout) TextBox() geom.Box {
	y := ButtonMargin + ButtonHeight + ButtonMargin
	return geom.Box{X: ButtonMargin, Y: y, W: l.width - 2*ButtonMargin, H: TextBoxHeight}
}

// KeyboardVisible reports whether the on-screen keyboard is shown.
func (l *Layout) KeyboardVisible() bool { return l.keyboardVisible }

// SetKeyboardVisible shows or hides the keyboard. A change drops the cached keys.
func (l *Layout) SetKeyboardVisible(visible bool) {
	if visible == l.keyboardVisible {
		return
	}
	l.keyboardVisible = visible
	l.keyboard = nil
}

// Keyboard returns the keyboard keys, or nil while the keyboard is hidden.
// Keys are built once per visibility change.
func (l *Layout) Keyboard() []*Element {
	if !l.keyboardVisible {
		return nil
	}
	if l.keyboard == nil {
		l.keyboard = buildKeyboard(l.width)
	}
	return l.keyboard
}

// Elements returns the hit-testable set for a screen, in dispatch order.
// A running game has none.
func (l *Layout) Elements(screen Screen) []*Element {
	switch screen {
	case ScreenMenu:
		keys := l.Keyboard()
		elems := make([]*Element, 0, len(l.menu)+len(keys))
		elems = append(elems, l.menu...)
		return append(elems, keys...)
	case ScreenGameOver:
		return l.gameOver
	default:
		return nil
	}
}

func buildKeyboard(width int) []*Element {
	var keys []*Element
	pitch := KeySize + KeyMargin

	for row, labels := range keyboardRows {
		startX := (width - len(labels)*pitch) / 2
		y := KeyboardTop + row*pitch

		for col, label := range labels {
			key := &Element{
				Kind:  KeyboardKey,
				Box:   geom.Box{X: startX + col*pitch, Y: y, W: KeySize, H: KeyHeight},
				Label: label,
			}

			switch label {
			case "SPACE":
				key.Box.W = SpecialKeyW
				key.Action = Action{Kind: TypeChar, Char: ' '}
			case "ENTER":
				key.Box.W = SpecialKeyW
				key.Action = Action{Kind: TypeChar, Char: '\n'}
			case "BACK":
				key.Box.W = SpecialKeyW
				key.Action = Action{Kind: Backspace}
			default:
				key.Action = Action{Kind: TypeChar, Char: rune(label[0])}
			}

			keys = append(keys, key)
		}
	}

	return keys
}
