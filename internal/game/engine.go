// Package game implements the falling-ball mini-game: spawn scheduling,
// ball physics, bar collisions, scoring and the session lifecycle.
package game

import (
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airdesk/internal/geom"
)

// State is the lifecycle state of the game.
type State int

const (
	// Idle is the initial state and the state after Reset.
	Idle State = iota
	// Active means a play-through is running.
	Active
	// GameOver is entered once per play-through when time or balls run out.
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText makes State readable in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ball is one falling ball. Balls are owned by the Engine.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  color.RGBA
	Active bool
}

// Engine owns one game session at a time. It is not safe for concurrent use;
// the frame loop is its only caller.
type Engine struct {
	config Config
	rng    *rand.Rand
	now    func() time.Time
	logger *log.Logger

	state     State
	sessionID string
	score     int
	combo     int
	maxCombo  int
	spawned   int
	startTime time.Time
	lastSpawn time.Time
	balls     []*Ball
	bar       *geom.Segment
}

// New creates an idle Engine. A nil rng is replaced by a time-seeded source
// and a nil clock by time.Now.
func New(config Config, rng *rand.Rand, now func() time.Time) *Engine {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if now == nil {
		now = time.Now
	}

	return &Engine{
		config: config,
		rng:    rng,
		now:    now,
		logger: log.New(os.Stderr, "[game] ", log.LstdFlags),
		state:  Idle,
	}
}

// NewSeeded creates an Engine whose randomness is fully determined by seed.
func NewSeeded(config Config, seed uint64, now func() time.Time) *Engine {
	return New(config, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(l *log.Logger) {
	e.logger = l
}

// Start begins a fresh play-through from Idle or GameOver.
func (e *Engine) Start() {
	e.clear()

	now := e.now()
	e.startTime = now
	e.lastSpawn = now
	e.sessionID = uuid.NewString()
	e.state = Active

	e.logger.Printf("session %s started", e.sessionID)
}

// Reset clears the session and returns to Idle without starting the clock.
func (e *Engine) Reset() {
	e.clear()
	e.startTime = time.Time{}
	e.lastSpawn = time.Time{}
	e.sessionID = ""
	e.state = Idle
}

func (e *Engine) clear() {
	e.score = 0
	e.combo = 0
	e.maxCombo = 0
	e.spawned = 0
	e.balls = nil
	e.bar = nil
}

// Update advances the game by one tick. bar is nil when fewer than two hands
// are visible. Update is a no-op outside the Active state.
func (e *Engine) Update(bar *geom.Segment) {
	if e.state != Active {
		return
	}

	now := e.now()
	if now.Sub(e.startTime) >= e.config.Duration {
		e.end("time up")
		return
	}

	e.spawnDue(now)

	e.bar = bar
	for _, b := range e.balls {
		if !b.Active {
			continue
		}
		e.step(b)
		if bar != nil && b.Active && e.collides(b, bar) {
			e.bounce(b)
		}
	}

	e.prune()

	if len(e.balls) == 0 && e.spawned >= e.config.TotalBalls {
		e.end("all balls played")
	}
}

// spawnDue spawns every ball whose slot has come. Ball k (1-indexed) is due
// at start + (k-1)*interval, so a slow tick catches up on missed spawns.
func (e *Engine) spawnDue(now time.Time) {
	interval := e.config.SpawnInterval()
	for e.spawned < e.config.TotalBalls {
		due := e.startTime.Add(time.Duration(e.spawned) * interval)
		if now.Before(due) {
			return
		}
		e.spawn()
		e.lastSpawn = now
	}
}

func (e *Engine) spawn() {
	r := e.config.BallRadius
	lo := int(r) + e.config.SpawnMargin
	hi := e.config.Width - int(r) - e.config.SpawnMargin

	x := lo
	if hi > lo {
		x = lo + e.rng.IntN(hi-lo+1)
	}

	e.balls = append(e.balls, &Ball{
		X:      float64(x),
		Y:      -r,
		VX:     e.uniform(-e.config.SpawnVX, e.config.SpawnVX),
		VY:     e.config.BallSpeed,
		Radius: r,
		Color: color.RGBA{
			R: uint8(100 + e.rng.IntN(156)),
			G: uint8(100 + e.rng.IntN(156)),
			B: uint8(100 + e.rng.IntN(156)),
			A: 255,
		},
		Active: true,
	})
	e.spawned++
}

// step moves a ball by its velocity, bounces it off the side walls and
// retires it once it has fallen past the bottom edge.
func (e *Engine) step(b *Ball) {
	b.X += b.VX
	b.Y += b.VY

	w := float64(e.config.Width)
	if b.X-b.Radius <= 0 || b.X+b.Radius >= w {
		b.VX = -b.VX
		b.X = geom.Clamp(b.X, b.Radius, w-b.Radius)
	}

	if b.Y-b.Radius > float64(e.config.Height) {
		b.Active = false
	}
}

// collides treats the bar as a horizontal band at the first endpoint's y and
// ignores its tilt. Only balls moving down can hit it.
func (e *Engine) collides(b *Ball, bar *geom.Segment) bool {
	if math.Abs(b.Y-float64(bar.A.Y)) > b.Radius+e.config.BarThickness {
		return false
	}
	if b.X < float64(bar.MinX())-b.Radius || b.X > float64(bar.MaxX())+b.Radius {
		return false
	}
	return b.VY > 0
}

func (e *Engine) bounce(b *Ball) {
	b.VY = -math.Abs(b.VY)
	b.VX = geom.Clamp(b.VX+e.uniform(-e.config.BounceJitter, e.config.BounceJitter), -e.config.MaxVX, e.config.MaxVX)

	e.score++
	// TODO: combo never resets on a missed ball; waiting on a product call before changing it.
	e.combo++
	e.maxCombo = max(e.maxCombo, e.combo)
}

func (e *Engine) prune() {
	live := e.balls[:0]
	for _, b := range e.balls {
		if b.Active {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(e.balls); i++ {
		e.balls[i] = nil
	}
	e.balls = live
}

func (e *Engine) end(reason string) {
	if e.state != Active {
		return
	}
	e.state = GameOver
	e.logger.Printf("session %s over (%s): score=%d max_combo=%d", e.sessionID, reason, e.score, e.maxCombo)
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Running reports whether a play-through is in progress.
func (e *Engine) Running() bool { return e.state == Active }

// SessionID returns the id of the current play-through, empty when Idle.
func (e *Engine) SessionID() string { return e.sessionID }

// Score returns the number of bar hits this session.
func (e *Engine) Score() int { return e.score }

// Combo returns the running hit count.
func (e *Engine) Combo() int { return e.combo }

// MaxCombo returns the highest combo reached this session.
func (e *Engine) MaxCombo() int { return e.maxCombo }

// Spawned returns how many balls this session has spawned.
func (e *Engine) Spawned() int { return e.spawned }

// Balls returns the live balls. Callers must not modify them.
func (e *Engine) Balls() []*Ball { return e.balls }

// Bar returns the bar used on the last tick, or nil.
func (e *Engine) Bar() *geom.Segment { return e.bar }

// LastSpawn returns the time of the most recent spawn, or the start time
// when nothing has spawned yet.
func (e *Engine) LastSpawn() time.Time { return e.lastSpawn }

// BallsLeft returns balls still to play: unspawned plus live.
func (e *Engine) BallsLeft() int {
	return e.config.TotalBalls - e.spawned + len(e.balls)
}

// TimeRemaining returns the play time left; zero when Idle.
func (e *Engine) TimeRemaining() time.Duration {
	if e.state == Idle {
		return 0
	}
	return max(0, e.config.Duration-e.now().Sub(e.startTime))
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }
