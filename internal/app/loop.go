package app

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdesk/internal/game"
	"github.com/ayusman/airdesk/internal/gesture"
	"github.com/ayusman/airdesk/internal/render"
	"github.com/ayusman/airdesk/internal/session"
	"github.com/ayusman/airdesk/internal/tray"
	"github.com/ayusman/airdesk/internal/ui"
)

// loop carries the per-run state of the frame loop.
type loop struct {
	app  *App
	last time.Time
}

// step handles one camera frame: detect, interpret, update the session,
// draw, publish and poll for input. It reports whether to stop.
func (l *loop) step(frame *gocv.Mat) bool {
	a := l.app
	now := a.now()
	dt := now.Sub(l.last)
	l.last = now

	var fps float64
	if dt > 0 {
		fps = 1 / dt.Seconds()
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.logger.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	c := a.controller
	sig := a.interp.Interpret(gesture.Frame{
		Hands:      hands,
		Width:      frame.Cols(),
		Height:     frame.Rows(),
		BarEnabled: c.BarEnabled(),
		Now:        now,
	}, c.Clock())

	fired := c.Step(sig)
	if fired != nil {
		a.logger.Printf("Clicked %s (%s)", fired.Label, fired.Action.Kind)
	}

	err = a.painter.Paint(a.display, render.Scene{
		Controller: c,
		Signal:     sig,
		Hands:      hands,
		Camera:     frame,
		FPS:        fps,
		Fired:      fired,
		DT:         float32(dt.Seconds()),
	})
	if err != nil {
		a.logger.Printf("Error presenting frame: %v", err)
	}

	l.publish()

	return l.poll()
}

func (l *loop) publish() {
	a := l.app
	snap := a.controller.Snapshot()

	if a.status != nil {
		a.status(statusText(snap))
	}

	if a.hub == nil {
		return
	}
	jpeg, err := a.display.JPEG(streamQuality)
	if err != nil {
		a.logger.Printf("Error encoding frame: %v", err)
	}
	if err := a.hub.Publish(snap, jpeg); err != nil {
		a.logger.Printf("Error publishing state: %v", err)
	}
}

// poll handles keyboard input, window closure and tray commands.
func (l *loop) poll() bool {
	a := l.app

	key, open := a.display.Poll()
	if !open {
		a.logger.Println("Window closed")
		return true
	}
	if key&0xFF == QuitKey {
		a.logger.Println("Quit key pressed")
		return true
	}

	for {
		select {
		case cmd := <-a.commands:
			if l.handle(cmd) {
				return true
			}
		default:
			return false
		}
	}
}

func (l *loop) handle(cmd tray.Command) bool {
	a := l.app
	switch cmd {
	case tray.ToggleCameraBG:
		a.controller.Dispatch(ui.Action{Kind: ui.ToggleCameraBG})
	case tray.ToggleLandmarks:
		a.controller.Dispatch(ui.Action{Kind: ui.ToggleLandmarks})
	case tray.OpenSpectator:
		if a.config.ServerAddr == "" {
			a.logger.Println("Spectator server is disabled")
			return false
		}
		if err := a.launcher.Open(spectatorURL(a.config.ServerAddr)); err != nil {
			a.logger.Printf("Failed to open spectator view: %v", err)
		}
	case tray.Quit:
		a.logger.Println("Quit from tray")
		return true
	}
	return false
}

// spectatorURL turns a listen address such as ":8080" into a browsable URL.
func spectatorURL(addr string) string {
	if addr != "" && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/api/state"
}

func statusText(s session.Snapshot) string {
	if s.Mode == session.Menu {
		return "Menu"
	}
	if s.Game.State == game.GameOver {
		return fmt.Sprintf("Game over: %d points", s.Game.Score)
	}
	return fmt.Sprintf("Playing: %d points, %ds left", s.Game.Score, int(s.Game.SecondsRemaining))
}
