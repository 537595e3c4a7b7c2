package config

import (
	"fmt"
	"sort"

	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/scene"
)

var (
	SkyBlue = RGBA{100, 185, 255, 255}
	Purple  = RGBA{128, 0, 128, 255}
)

// Panel rectangles of the stock wrap template, found from its connected
// white regions.
var (
	LeftDoor  = panel.Rect{X0: 30, Y0: 284, X1: 205, Y1: 544}
	RightDoor = panel.Rect{X0: 821, Y0: 283, X1: 997, Y1: 544}
	Trunk     = panel.Rect{X0: 352, Y0: 800, X1: 671, Y1: 940, Scale: 1.0}
	Frunk     = panel.Rect{X0: 409, Y0: 165, X1: 615, Y1: 215, Scale: 3.0}
)

// LeftBoundary is the x coordinate left of which panels belong to the
// left side of the car, kept tight to miss the centre strips.
const LeftBoundary = 230

// Default returns the door-sprite run: sky blue background with a sprite
// on each front door, the trunk and the frunk.
func Default() Config {
	return Doors()
}

// Doors floods the background sky blue and pastes one sprite per panel.
func Doors() Config {
	return Config{
		Threshold:  panel.DefaultThreshold,
		Background: SkyBlue,
		Recolor:    true,
		Fill:       panel.DefaultFill,
		Steps: []Step{
			{Name: "left_door", Sprite: &Sprite{Rect: LeftDoor, Artwork: "raw/sky_yoshi_90.png"}},
			{Name: "right_door", Sprite: &Sprite{Rect: RightDoor, Artwork: "raw/sky_yoshi_270.png"}},
			{Name: "trunk", Sprite: &Sprite{Rect: Trunk, Artwork: "raw/sky_yoshi_egg.png"}},
			// upside down, the hood is printed facing the windscreen
			{Name: "frunk", Sprite: &Sprite{Rect: Frunk, Artwork: "raw/sky_yoshi_face_180.png"}},
		},
	}
}

// SceneLeft paints the side-scroller scene over the left-hand panels only.
// Those panels are laid out rotated 90 degrees counter-clockwise on the
// template, so the scene is turned clockwise before stamping.
func SceneLeft() Config {
	return Config{
		Threshold:  panel.DefaultThreshold,
		Background: SkyBlue,
		Fill:       panel.DefaultFill,
		Steps: []Step{
			{Name: "left_scene", Scene: &SceneRegion{
				Span:        panel.LeftOf(LeftBoundary),
				Orientation: imagepkg.RotatedCW90,
				Style:       scene.StylePlain,
			}},
		},
	}
}

// Colorize only floods every blank panel purple.
func Colorize() Config {
	return Config{
		Threshold:  panel.DefaultThreshold,
		Background: Purple,
		Recolor:    true,
		Fill:       panel.DefaultFill,
	}
}

var presets = map[string]func() Config{
	"doors":      Doors,
	"scene-left": SceneLeft,
	"colorize":   Colorize,
}

// Preset returns a named built-in configuration.
func Preset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (have %v)", name, PresetNames())
	}
	return p(), nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
