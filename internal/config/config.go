// Package config describes a compositing run: the threshold that finds
// panels, the background flood colour and the ordered placement steps.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/scene"
)

// Config is everything a run needs besides the template pixels.
type Config struct {
	Threshold  uint8   `json:"threshold"`
	Background RGBA    `json:"background"`
	Recolor    bool    `json:"recolor"`
	Fill       float64 `json:"fill"`
	Steps      []Step  `json:"steps"`
}

// Step is one placement. Exactly one of Sprite and Scene is set.
type Step struct {
	Name   string       `json:"name"`
	Sprite *Sprite      `json:"sprite,omitempty"`
	Scene  *SceneRegion `json:"scene,omitempty"`
}

// Sprite pastes a piece of artwork, fitted and centred, into a rectangle.
type Sprite struct {
	// Panel names a rectangle from a panel table; Rect is used when empty.
	Panel string     `json:"panel,omitempty"`
	Rect  panel.Rect `json:"rect"`
	// Artwork is an image file. QRText renders a QR code instead.
	Artwork string `json:"artwork,omitempty"`
	QRText  string `json:"qr_text,omitempty"`
	// Fill overrides the run's fill fraction when positive.
	Fill float64 `json:"fill,omitempty"`
	// Square treats the artwork as square, stretching it to fit.
	Square bool `json:"square,omitempty"`
}

// SceneRegion stamps a painted scene over every panel pixel in a column range.
type SceneRegion struct {
	Span        panel.Span           `json:"span"`
	Orientation imagepkg.Orientation `json:"orientation"`
	Style       scene.Style          `json:"style"`
}

// Kind names the step type for logs.
func (s Step) Kind() string {
	switch {
	case s.Sprite != nil:
		return "sprite"
	case s.Scene != nil:
		return "scene"
	}
	return "none"
}

// RGBA is a colour written as [r, g, b, a] in JSON.
type RGBA [4]uint8

func (c RGBA) NRGBA() color.NRGBA { return color.NRGBA{c[0], c[1], c[2], c[3]} }

// Load reads a JSON config from path on top of Default. A missing file is
// not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// json reuses slice elements, so steps never decode over the defaults
	defaultSteps := cfg.Steps
	cfg.Steps = nil
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if cfg.Steps == nil {
		cfg.Steps = defaultSteps
	}
	return &cfg, nil
}

// Validate checks the settings a run cannot recover from. Per-step
// geometry is checked when the step runs so one bad panel only skips itself.
func (c *Config) Validate() error {
	var errs []error
	if c.Fill < 0 || c.Fill > 1 {
		errs = append(errs, fmt.Errorf("fill %.2f outside 0-1", c.Fill))
	}
	bg := c.Background
	if c.Recolor && bg[0] > c.Threshold && bg[1] > c.Threshold && bg[2] > c.Threshold {
		errs = append(errs, fmt.Errorf("background %v would itself count as panel at threshold %d", bg, c.Threshold))
	}
	seen := map[string]bool{}
	for i, s := range c.Steps {
		name := s.Name
		if name == "" {
			errs = append(errs, fmt.Errorf("step %d has no name", i))
		} else if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate step name %q", name))
		}
		seen[name] = true

		if (s.Sprite == nil) == (s.Scene == nil) {
			errs = append(errs, fmt.Errorf("step %q must set exactly one of sprite or scene", name))
			continue
		}
		if sp := s.Sprite; sp != nil {
			if (sp.Artwork == "") == (sp.QRText == "") {
				errs = append(errs, fmt.Errorf("step %q must set exactly one of artwork or qr_text", name))
			}
			if sp.Fill < 0 || sp.Fill > 1 {
				errs = append(errs, fmt.Errorf("step %q fill %.2f outside 0-1", name, sp.Fill))
			}
		}
		if sc := s.Scene; sc != nil {
			if _, err := imagepkg.ParseOrientation(string(sc.Orientation)); err != nil {
				errs = append(errs, fmt.Errorf("step %q: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
