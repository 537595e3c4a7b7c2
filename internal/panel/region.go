package panel

import (
	"fmt"
	"image"
)

// Rect is a panel rectangle in template pixels with exclusive max bounds.
// Scale multiplies the artwork size fitted into it; zero means 1.
type Rect struct {
	X0    int     `json:"x0"`
	Y0    int     `json:"y0"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	Scale float64 `json:"scale,omitempty"`
}

func (r Rect) Dx() int { return r.X1 - r.X0 }
func (r Rect) Dy() int { return r.Y1 - r.Y0 }

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

// ScaleOr1 returns the scale multiplier, treating an unset scale as 1.
func (r Rect) ScaleOr1() float64 {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d-%d y=%d-%d (%dx%d)", r.X0, r.X1-1, r.Y0, r.Y1-1, r.Dx(), r.Dy())
}

// Span is a horizontal pixel range [Min, Max). A nil Max reaches the right
// edge of whatever it is applied to.
type Span struct {
	Min int  `json:"min_x"`
	Max *int `json:"max_x,omitempty"`
}

// Between returns the span [lo, hi).
func Between(lo, hi int) Span { return Span{Min: lo, Max: &hi} }

// LeftOf returns the span of every column left of x. It is empty for x <= 0.
func LeftOf(x int) Span { return Between(0, x) }

// RightOf returns the span of every column at or right of x.
func RightOf(x int) Span { return Span{Min: x} }

// ToEdge reports whether s has no upper bound.
func (s Span) ToEdge() bool { return s.Max == nil }

func (s Span) String() string {
	if s.ToEdge() {
		return fmt.Sprintf("x>=%d", s.Min)
	}
	return fmt.Sprintf("%d<=x<%d", s.Min, *s.Max)
}

func (s Span) clamp(w int) (int, int) {
	lo, hi := s.Min, w
	if s.Max != nil && *s.Max < hi {
		hi = *s.Max
	}
	if hi < 0 {
		hi = 0
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// BoundingBox returns the tightest rectangle holding every true pixel of m,
// optionally only counting columns inside within. ok is false when there
// are none; that is an expected outcome, not an error.
func BoundingBox(m *Mask, within *Span) (r Rect, ok bool) {
	lo, hi := 0, m.W
	if within != nil {
		lo, hi = within.clamp(m.W)
	}
	minX, minY := hi, m.H
	maxX, maxY := -1, -1
	for y := 0; y < m.H; y++ {
		row := m.bits[y*m.W : (y+1)*m.W]
		for x := lo; x < hi; x++ {
			if !row[x] {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return Rect{}, false
	}
	return Rect{X0: minX, Y0: minY, X1: maxX + 1, Y1: maxY + 1}, true
}
