package game

import "time"

// Default game settings.
const (
	DefaultDuration     = 60 * time.Second
	DefaultTotalBalls   = 20
	DefaultBallRadius   = 15
	DefaultBallSpeed    = 5
	DefaultBarThickness = 20
	DefaultWidth        = 1280
	DefaultHeight       = 720
)

// Config holds the tunables of a game. Values are fixed for the lifetime of an Engine.
type Config struct {
	Duration     time.Duration
	TotalBalls   int
	BallRadius   float64
	BallSpeed    float64 // downward speed at spawn, pixels per tick
	BarThickness float64
	Width        int
	Height       int
	SpawnMargin  int     // extra inset from the side walls for spawn x
	SpawnVX      float64 // spawn vx is uniform in [-SpawnVX, SpawnVX]
	BounceJitter float64 // vx change on a bar hit is uniform in [-BounceJitter, BounceJitter]
	MaxVX        float64
}

// DefaultConfig returns the standard 60 second, 20 ball game on a 1280x720 area.
func DefaultConfig() Config {
	return Config{
		Duration:     DefaultDuration,
		TotalBalls:   DefaultTotalBalls,
		BallRadius:   DefaultBallRadius,
		BallSpeed:    DefaultBallSpeed,
		BarThickness: DefaultBarThickness,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		SpawnMargin:  50,
		SpawnVX:      3,
		BounceJitter: 1,
		MaxVX:        8,
	}
}

// SpawnInterval returns the fixed gap between spawns, Duration / TotalBalls.
func (c Config) SpawnInterval() time.Duration {
	if c.TotalBalls <= 0 {
		return c.Duration
	}
	return c.Duration / time.Duration(c.TotalBalls)
}
