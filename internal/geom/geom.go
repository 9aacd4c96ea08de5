// Package geom holds the small UI-space geometry types shared by the
// gesture interpreter, the router and the game engine.
package geom

import "image"

// Box is an axis-aligned rectangle whose edges are all inclusive.
// It differs from image.Rectangle, whose Max edge is exclusive.
type Box struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside the box or on its border.
func (b Box) Contains(p image.Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W &&
		p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Min returns the top-left corner.
func (b Box) Min() image.Point { return image.Pt(b.X, b.Y) }

// Max returns the bottom-right corner.
func (b Box) Max() image.Point { return image.Pt(b.X+b.W, b.Y+b.H) }

// Center returns the centre point, rounded towards the top-left.
func (b Box) Center() image.Point { return image.Pt(b.X+b.W/2, b.Y+b.H/2) }

// Segment is a line segment between two UI-space points.
type Segment struct {
	A, B image.Point
}

// MinX returns the smaller x of the two endpoints.
func (s Segment) MinX() int { return min(s.A.X, s.B.X) }

// MaxX returns the larger x of the two endpoints.
func (s Segment) MaxX() int { return max(s.A.X, s.B.X) }

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
