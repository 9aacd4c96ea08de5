package game

// BallView is the render- and JSON-friendly copy of a Ball.
type BallView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

// Snapshot is an immutable copy of the engine state, safe to hand to other goroutines.
type Snapshot struct {
	State            State      `json:"state"`
	SessionID        string     `json:"session_id,omitempty"`
	Score            int        `json:"score"`
	Combo            int        `json:"combo"`
	MaxCombo         int        `json:"max_combo"`
	Spawned          int        `json:"spawned"`
	BallsLeft        int        `json:"balls_left"`
	SecondsRemaining float64    `json:"seconds_remaining"`
	HasBar           bool       `json:"has_bar"`
	Balls            []BallView `json:"balls"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	balls := make([]BallView, len(e.balls))
	for i, b := range e.balls {
		balls[i] = BallView{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, Radius: b.Radius}
	}

	return Snapshot{
		State:            e.state,
		SessionID:        e.sessionID,
		Score:            e.score,
		Combo:            e.combo,
		MaxCombo:         e.maxCombo,
		Spawned:          e.spawned,
		BallsLeft:        e.BallsLeft(),
		SecondsRemaining: e.TimeRemaining().Seconds(),
		HasBar:           e.bar != nil,
		Balls:            balls,
	}
}
