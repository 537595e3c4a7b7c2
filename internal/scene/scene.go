// Package scene paints the flat-colour side-scroller backdrop that fills
// wrap panels. Everything is laid out as fractions of the requested size so
// the same scene fits any panel.
package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// Style selects how much of the scene is drawn.
type Style int

const (
	// StylePlain is sky over a thin strip of ground.
	StylePlain Style = iota
	// StyleIsland adds hills, clouds, pipes, coins and an egg.
	StyleIsland
)

func (s Style) String() string {
	switch s {
	case StyleIsland:
		return "island"
	default:
		return "plain"
	}
}

// ParseStyle accepts the names produced by String. Empty means plain.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return StylePlain, nil
	case "island":
		return StyleIsland, nil
	}
	return StylePlain, fmt.Errorf("unknown scene style %q", name)
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// GroundFraction is the share of the scene height below the horizon.
func (s Style) GroundFraction() float64 {
	if s == StyleIsland {
		return 0.35
	}
	return 0.15
}

var (
	SkyBlue     = color.NRGBA{100, 185, 255, 255}
	GroundGreen = color.NRGBA{80, 160, 40, 255}
	HillGreen   = color.NRGBA{50, 120, 30, 255}
	CloudWhite  = color.NRGBA{250, 250, 250, 255}
	PipeGreen   = color.NRGBA{40, 180, 70, 255}
	PipeShade   = color.NRGBA{20, 110, 40, 255}
	CoinGold    = color.NRGBA{250, 200, 30, 255}
	CoinShine   = color.NRGBA{255, 240, 150, 255}
	EggShell    = color.NRGBA{245, 245, 235, 255}
	EggSpot     = color.NRGBA{60, 170, 60, 255}
)

// Paint renders the scene at width x height. The same arguments always
// produce the same pixels. A zero or negative size yields an empty image.
func Paint(width, height int, style Style) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return &image.NRGBA{}
	}
	img := imaging.New(width, height, SkyBlue)
	horizon := int(float64(height) * (1 - style.GroundFraction()))
	draw.Draw(img, image.Rect(0, horizon, width, height), image.NewUniform(GroundGreen), image.Point{}, draw.Src)

	if style == StyleIsland {
		p := newPen(img)
		paintHills(p, horizon)
		paintClouds(p)
		paintPipes(p, horizon)
		paintCoins(p, horizon)
		paintEgg(p, horizon)
	}
	return img
}
