package geom

import (
	"image"
	"testing"
)

func TestBox_Contains(t *testing.T) {
	b := Box{X: 20, Y: 20, W: 130, H: 50}

	tests := []struct {
		name string
		p    image.Point
		want bool
	}{
		{name: "inside", p: image.Pt(50, 40), want: true},
		{name: "top-left corner", p: image.Pt(20, 20), want: true},
		{name: "bottom-right corner", p: image.Pt(150, 70), want: true},
		{name: "left of box", p: image.Pt(19, 40), want: false},
		{name: "below box", p: image.Pt(50, 71), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSegment_Extent(t *testing.T) {
	s := Segment{A: image.Pt(500, 400), B: image.Pt(100, 380)}

	if got := s.MinX(); got != 100 {
		t.Errorf("MinX() = %d, want 100", got)
	}
	if got := s.MaxX(); got != 500 {
		t.Errorf("MaxX() = %d, want 500", got)
	}
}

func TestClamp(t *testing.T) {
	if got := ClampInt(1400, 0, 1279); got != 1279 {
		t.Errorf("ClampInt(1400) = %d, want 1279", got)
	}
	if got := ClampInt(-3, 0, 719); got != 0 {
		t.Errorf("ClampInt(-3) = %d, want 0", got)
	}
	if got := Clamp(9.5, -8, 8); got != 8 {
		t.Errorf("Clamp(9.5) = %f, want 8", got)
	}
}
