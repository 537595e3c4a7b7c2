// Package panel finds the blank panels of a wrap template and works out
// where artwork goes inside them.
package panel

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultThreshold is the channel value a pixel must exceed on R, G and B
// to count as near-white panel.
const DefaultThreshold = 200

var (
	ErrInvalidImage        = errors.New("invalid image")
	ErrEmptyRegion         = errors.New("no panel pixels found")
	ErrDegenerateRectangle = errors.New("degenerate rectangle")
)

// Mask is a per-pixel boolean grid with the same extent as the image it was
// derived from. Coordinates are relative to the image origin.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask returns an all-false mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// At reports whether (x, y) is set. Out of range coordinates are false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = v
}

// Count returns the number of true pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Restrict returns a copy of m with every pixel outside the span cleared.
func (m *Mask) Restrict(s Span) *Mask {
	out := NewMask(m.W, m.H)
	lo, hi := s.clamp(m.W)
	for y := 0; y < m.H; y++ {
		row := y * m.W
		copy(out.bits[row+lo:row+hi], m.bits[row+lo:row+hi])
	}
	return out
}

// Classify marks every pixel whose R, G and B all exceed threshold. Alpha
// does not take part.
func Classify(img image.Image, threshold uint8) (*Mask, error) {
	src, err := Normalize(img)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < m.W; x++ {
			p := src.Pix[i : i+4 : i+4]
			m.bits[y*m.W+x] = p[0] > threshold && p[1] > threshold && p[2] > threshold
			i += 4
		}
	}
	return m, nil
}

// Normalize returns img as non-premultiplied RGBA anchored at the origin.
// Single channel images are rejected since they carry no colour to test.
func Normalize(img image.Image) (*image.NRGBA, error) {
	switch v := img.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return nil, fmt.Errorf("%w: %T has fewer than 3 channels", ErrInvalidImage, v)
	case *image.NRGBA:
		if v.Bounds().Min == (image.Point{}) {
			return v, nil
		}
	}
	return imaging.Clone(img), nil
}
