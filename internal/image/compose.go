package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/wrapart/internal/panel"
)

// Fill sets every masked pixel of dst to c. dst and m must share an extent.
func Fill(dst *image.NRGBA, m *panel.Mask, c color.NRGBA) int {
	n := 0
	for y := 0; y < m.H; y++ {
		i := dst.PixOffset(0, y)
		for x := 0; x < m.W; x++ {
			if m.At(x, y) {
				dst.Pix[i+0] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
				n++
			}
			i += 4
		}
	}
	return n
}

// PasteMasked draws src onto dst at pt using src's own alpha as the mask:
// each channel becomes src*a + dst*(1-a). Transparent source pixels leave
// dst alone and opaque ones copy the source verbatim.
func PasteMasked(dst *image.NRGBA, src image.Image, pt image.Point) {
	s := imaging.Clone(src)
	r := image.Rectangle{Min: pt, Max: pt.Add(s.Bounds().Size())}.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := s.PixOffset(r.Min.X-pt.X, y-pt.Y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			a := uint32(s.Pix[si+3])
			switch a {
			case 0:
			case 0xff:
				copy(dst.Pix[di:di+4], s.Pix[si:si+4])
			default:
				for c := 0; c < 4; c++ {
					v := uint32(s.Pix[si+c])*a + uint32(dst.Pix[di+c])*(0xff-a)
					dst.Pix[di+c] = uint8((v + 0x7f) / 0xff)
				}
			}
			si += 4
			di += 4
		}
	}
}

// StampMasked copies art into dst over the rectangle r, but only at pixels
// where m is set. art must be r's size; dst and m share an extent.
func StampMasked(dst *image.NRGBA, art *image.NRGBA, r panel.Rect, m *panel.Mask) (int, error) {
	if art.Bounds().Dx() != r.Dx() || art.Bounds().Dy() != r.Dy() {
		return 0, fmt.Errorf("artwork is %v, region is %dx%d", art.Bounds().Size(), r.Dx(), r.Dy())
	}
	n := 0
	ab := art.Bounds()
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if !m.At(x, y) {
				continue
			}
			si := art.PixOffset(ab.Min.X+x-r.X0, ab.Min.Y+y-r.Y0)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], art.Pix[si:si+4])
			n++
		}
	}
	return n, nil
}

// Orientation says how a panel sits on the template relative to how its
// artwork is authored.
type Orientation string

const (
	Upright     Orientation = "upright"
	RotatedCW90 Orientation = "rotated_cw90"
	RotatedCCW  Orientation = "rotated_ccw90"
	Rotated180  Orientation = "rotated_180"
)

// ParseOrientation normalises an orientation name. Empty means upright.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return Upright, nil
	case Upright, RotatedCW90, RotatedCCW, Rotated180:
		return o, nil
	}
	return Upright, fmt.Errorf("unknown panel orientation %q", s)
}

// Transposed reports whether artwork for this orientation is authored with
// width and height swapped.
func (o Orientation) Transposed() bool {
	return o == RotatedCW90 || o == RotatedCCW
}

// AuthorSize returns the size to draw upright artwork at so that, once
// oriented, it covers a w x h panel region.
func (o Orientation) AuthorSize(w, h int) (int, int) {
	if o.Transposed() {
		return h, w
	}
	return w, h
}

// Orient turns upright artwork to match the panel orientation.
func Orient(img image.Image, o Orientation) *image.NRGBA {
	switch o {
	case RotatedCW90:
		return imaging.Rotate270(img)
	case RotatedCCW:
		return imaging.Rotate90(img)
	case Rotated180:
		return imaging.Rotate180(img)
	}
	return imaging.Clone(img)
}

// Resize scales img to exactly w x h with a Lanczos filter.
func Resize(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
