package scene

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
)

// pen fills antialiased shapes onto a scene image. Coordinates passed to
// its helpers are fractions of the image size.
type pen struct {
	w, h float64
	f    *rasterx.Filler
}

func newPen(img *image.NRGBA) *pen {
	b := img.Bounds()
	sc := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &pen{
		w: float64(b.Dx()),
		h: float64(b.Dy()),
		f: rasterx.NewFiller(b.Dx(), b.Dy(), sc),
	}
}

func (p *pen) fill(c color.Color, shape func(a rasterx.Adder)) {
	p.f.Clear()
	p.f.SetColor(c)
	shape(p.f)
	p.f.Draw()
}

// short is the smaller side of the canvas.
func (p *pen) short() float64 { return min(p.w, p.h) }

// polygon fills a closed polygon given as alternating x, y pixel values.
func (p *pen) polygon(c color.Color, xy ...float64) {
	p.fill(c, func(a rasterx.Adder) {
		a.Start(rasterx.ToFixedP(xy[0], xy[1]))
		for i := 2; i+1 < len(xy); i += 2 {
			a.Line(rasterx.ToFixedP(xy[i], xy[i+1]))
		}
		a.Stop(true)
	})
}

func (p *pen) rect(c color.Color, x0, y0, x1, y1 float64) {
	p.fill(c, func(a rasterx.Adder) { rasterx.AddRect(x0, y0, x1, y1, 0, a) })
}

func (p *pen) circle(c color.Color, cx, cy, r float64) {
	p.fill(c, func(a rasterx.Adder) { rasterx.AddCircle(cx, cy, r, a) })
}

func (p *pen) ellipse(c color.Color, cx, cy, rx, ry float64) {
	p.fill(c, func(a rasterx.Adder) { rasterx.AddEllipse(cx, cy, rx, ry, 0, a) })
}

// hill outline as (x fraction of width, height fraction above the horizon)
var hillProfile = [][2]float64{
	{0, 0.10}, {0.15, 0.22}, {0.35, 0.08}, {0.55, 0.18},
	{0.75, 0.05}, {0.90, 0.15}, {1, 0.06},
}

func paintHills(p *pen, horizon int) {
	hz := float64(horizon)
	xy := []float64{0, hz}
	for _, v := range hillProfile {
		xy = append(xy, v[0]*p.w, hz-v[1]*p.h)
	}
	xy = append(xy, p.w, hz)
	p.polygon(HillGreen, xy...)
}

// cloud centres as fractions of width and height, plus a size factor
var clouds = [][3]float64{
	{0.18, 0.15, 1.0},
	{0.62, 0.10, 0.8},
	{0.85, 0.24, 0.6},
}

func paintClouds(p *pen) {
	for _, c := range clouds {
		cx, cy := c[0]*p.w, c[1]*p.h
		r := 0.06 * p.short() * c[2]
		p.circle(CloudWhite, cx-r, cy+0.2*r, 0.75*r)
		p.circle(CloudWhite, cx, cy-0.2*r, r)
		p.circle(CloudWhite, cx+r, cy+0.2*r, 0.75*r)
		p.ellipse(CloudWhite, cx, cy+0.45*r, 1.7*r, 0.5*r)
	}
}

// pipe left edge and height above the horizon, as fractions
var pipes = [][2]float64{
	{0.58, 0.22},
	{0.78, 0.32},
}

func paintPipes(p *pen, horizon int) {
	hz := float64(horizon)
	pw := 0.08 * p.w
	lip := 0.015 * p.w
	capH := 0.05 * p.h
	for _, v := range pipes {
		x0 := v[0] * p.w
		top := hz - v[1]*p.h

		// shaded shape first, the lit part covers all but the trailing edge
		p.rect(PipeShade, x0, top+capH, x0+pw, hz)
		p.rect(PipeGreen, x0, top+capH, x0+0.75*pw, hz)

		p.rect(PipeShade, x0-lip, top, x0+pw+lip, top+capH)
		p.rect(PipeGreen, x0-lip, top, x0+0.75*(pw+2*lip)-lip, top+capH)
	}
}

const coinCount = 5

func paintCoins(p *pen, horizon int) {
	hz := float64(horizon)
	r := 0.025 * p.short()
	for i := 0; i < coinCount; i++ {
		t := float64(i) / float64(coinCount-1)
		cx := (0.14 + 0.30*t) * p.w
		// shallow arc, highest in the middle of the row
		d := t - 0.5
		cy := hz - (0.42-0.24*d*d)*p.h
		p.circle(CoinGold, cx, cy, r)
		p.ellipse(CoinShine, cx-0.25*r, cy-0.1*r, 0.25*r, 0.55*r)
	}
}

var eggSpots = [][3]float64{
	{-0.4, -0.3, 0.22},
	{0.35, -0.05, 0.28},
	{-0.15, 0.45, 0.2},
}

func paintEgg(p *pen, horizon int) {
	hz := float64(horizon)
	cx, cy := 0.30*p.w, hz-0.06*p.h
	rx, ry := 0.05*p.w, 0.08*p.h
	p.ellipse(EggShell, cx, cy, rx, ry)
	for _, s := range eggSpots {
		p.ellipse(EggSpot, cx+s[0]*rx, cy+s[1]*ry, s[2]*rx, s[2]*ry)
	}
}
