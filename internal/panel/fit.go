package panel

import (
	"fmt"
	"image"
)

// DefaultFill is the share of a panel's smaller side that artwork spans.
const DefaultFill = 0.85

// Fitting is where and how large a piece of artwork is drawn.
type Fitting struct {
	Size   image.Point
	Origin image.Point
}

// Rect returns the destination rectangle of the fitting.
func (f Fitting) Rect() image.Rectangle {
	return image.Rectangle{Min: f.Origin, Max: f.Origin.Add(f.Size)}
}

// Fit sizes artwork of size src to fill the given share of the target's
// smaller side, keeping its aspect ratio, and centres it in target.
func Fit(src image.Point, target Rect, fill float64) (Fitting, error) {
	if target.Empty() {
		return Fitting{}, fmt.Errorf("%w: target %dx%d", ErrDegenerateRectangle, target.Dx(), target.Dy())
	}
	if src.X <= 0 || src.Y <= 0 {
		return Fitting{}, fmt.Errorf("%w: artwork %dx%d", ErrDegenerateRectangle, src.X, src.Y)
	}
	if fill <= 0 {
		fill = DefaultFill
	}
	tw, th := target.Dx(), target.Dy()
	base := int(float64(min(tw, th)) * (target.ScaleOr1() * fill))

	aspect := float64(src.X) / float64(src.Y)
	var w, h int
	if aspect > 1 {
		w = base
		h = int(float64(base) / aspect)
	} else {
		h = base
		w = int(float64(base) * aspect)
	}
	if w <= 0 || h <= 0 {
		return Fitting{}, fmt.Errorf("%w: artwork scales to %dx%d", ErrDegenerateRectangle, w, h)
	}
	return Fitting{
		Size:   image.Pt(w, h),
		Origin: image.Pt(target.X0+tw/2-w/2, target.Y0+th/2-h/2),
	}, nil
}
