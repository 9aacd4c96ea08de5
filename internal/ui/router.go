package ui

import "image"

// Handler carries out routed actions. Each method is one action kind.
type Handler interface {
	ToggleKeyboard()
	OpenBrowser()
	Search()
	StartGame()
	ToggleCameraBG()
	ToggleLandmarks()
	TypeChar(c rune)
	Backspace()
	PlayAgain()
	ExitToMenu()
}

// Router hit-tests the cursor against an ordered element set.
type Router struct {
	handler Handler
}

// NewRouter creates a Router that dispatches to h.
func NewRouter(h Handler) *Router {
	return &Router{handler: h}
}

// Hover marks each element as hovered when it contains the cursor.
func (r *Router) Hover(elems []*Element, cursor image.Point, hasCursor bool) {
	for _, e := range elems {
		e.Hovered = hasCursor && e.Contains(cursor)
	}
}

// Hit returns the first element in elems containing the cursor, or nil.
func (r *Router) Hit(elems []*Element, cursor image.Point) *Element {
	for _, e := range elems {
		if e.Contains(cursor) {
			return e
		}
	}
	return nil
}

// Route updates hover state and, on a click, fires the first element under
// the cursor. It returns the fired element, or nil. At most one action runs
// per call even when boxes overlap.
func (r *Router) Route(elems []*Element, cursor image.Point, hasCursor, click bool) *Element {
	r.Hover(elems, cursor, hasCursor)
	if !click || !hasCursor {
		return nil
	}

	hit := r.Hit(elems, cursor)
	if hit != nil {
		r.Dispatch(hit.Action)
	}
	return hit
}

// Dispatch runs one action on the handler.
func (r *Router) Dispatch(a Action) {
	switch a.Kind {
	case ToggleKeyboard:
		r.handler.ToggleKeyboard()
	case OpenBrowser:
		r.handler.OpenBrowser()
	case Search:
		r.handler.Search()
	case StartGame:
		r.handler.StartGame()
	case ToggleCameraBG:
		r.handler.ToggleCameraBG()
	case ToggleLandmarks:
		r.handler.ToggleLandmarks()
	case TypeChar:
		r.handler.TypeChar(a.Char)
	case Backspace:
		r.handler.Backspace()
	case PlayAgain:
		r.handler.PlayAgain()
	case ExitToMenu:
		r.handler.ExitToMenu()
	}
}
