// Package compositor turns a blank wrap template into finished artwork by
// flooding its background and running the configured placement steps.
package compositor

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/youruser/wrapart/internal/config"
	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/scene"
)

// Status is the outcome of one step.
type Status string

const (
	Applied Status = "applied"
	Skipped Status = "skipped"
)

// Report describes what a step did to the canvas, or why it did nothing.
type Report struct {
	Step   string
	Kind   string
	Status Status
	// Region is the sprite's drawn rectangle or the scene's bounding box.
	Region panel.Rect
	Pixels int
	Err    error
}

func (r Report) String() string {
	if r.Status == Skipped {
		return fmt.Sprintf("%s: skipped: %v", r.Step, r.Err)
	}
	return fmt.Sprintf("%s: %s %s, %d px", r.Step, r.Kind, r.Region, r.Pixels)
}

// Result is the finished canvas plus one report per step.
type Result struct {
	Canvas    *image.NRGBA
	Recolored int
	Reports   []Report
}

// Skipped returns the reports of steps that did not apply.
func (r *Result) Skipped() []Report {
	var out []Report
	for _, rep := range r.Reports {
		if rep.Status == Skipped {
			out = append(out, rep)
		}
	}
	return out
}

// Loader opens a piece of artwork by reference.
type Loader func(ref string) (image.Image, error)

type Option func(*Compositor)

// WithLogger routes step logging to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Compositor) { c.log = l }
}

// WithLoader replaces how artwork files are opened.
func WithLoader(fn Loader) Option {
	return func(c *Compositor) { c.load = fn }
}

// WithArtwork registers an in-memory image under ref. Registered artwork
// is used instead of reading ref from disk.
func WithArtwork(ref string, img image.Image) Option {
	return func(c *Compositor) { c.artwork[ref] = img }
}

// Compositor applies one configuration to templates. It keeps no state
// between runs.
type Compositor struct {
	cfg     config.Config
	log     zerolog.Logger
	load    Loader
	artwork map[string]image.Image
}

// New validates cfg and returns a compositor for it.
func New(cfg config.Config, opts ...Option) (*Compositor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := &Compositor{
		cfg:     cfg,
		log:     zerolog.Nop(),
		artwork: map[string]image.Image{},
		load: func(ref string) (image.Image, error) {
			return imagepkg.Load(ref)
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Run composites template. Only an unusable template is an error; a step
// that cannot be applied is reported in the result and skipped.
func (c *Compositor) Run(template image.Image) (*Result, error) {
	res, mask, err := c.prepare(template, c.cfg.Recolor)
	if err != nil {
		return nil, err
	}

	cache := map[string]image.Image{}
	for _, step := range c.cfg.Steps {
		var rep Report
		switch {
		case step.Sprite != nil:
			rep = c.placeSprite(res.Canvas, step, cache)
		case step.Scene != nil:
			rep = c.stampScene(res.Canvas, mask, step)
		default:
			rep = Report{Status: Skipped, Err: errors.New("step has nothing to place")}
		}
		rep.Step, rep.Kind = step.Name, step.Kind()
		if rep.Status == Skipped {
			c.log.Warn().Str("step", rep.Step).Err(rep.Err).Msg("step skipped")
		} else {
			c.log.Info().Str("step", rep.Step).Stringer("region", rep.Region).Int("pixels", rep.Pixels).Msg("step applied")
		}
		res.Reports = append(res.Reports, rep)
	}
	return res, nil
}

// Recolor floods every panel pixel of img with the background colour and
// returns the new image. Running it on its own output changes nothing as
// long as the background is not itself near-white.
func (c *Compositor) Recolor(img image.Image) (*image.NRGBA, error) {
	res, _, err := c.prepare(img, true)
	if err != nil {
		return nil, err
	}
	return res.Canvas, nil
}

// prepare classifies the pristine template and returns a canvas cloned
// from it, recoloured when asked. Steps locate panels with the returned
// mask, never with the canvas.
func (c *Compositor) prepare(template image.Image, recolor bool) (*Result, *panel.Mask, error) {
	src, err := panel.Normalize(template)
	if err != nil {
		return nil, nil, err
	}
	mask, err := panel.Classify(src, c.cfg.Threshold)
	if err != nil {
		return nil, nil, err
	}
	res := &Result{Canvas: imaging.Clone(src)}
	c.log.Debug().
		Int("width", mask.W).Int("height", mask.H).
		Int("panel_px", mask.Count()).
		Msg("classified template")

	if recolor {
		res.Recolored = imagepkg.Fill(res.Canvas, mask, c.cfg.Background.NRGBA())
		c.log.Info().Int("pixels", res.Recolored).Msg("recolored background")
	}
	return res, mask, nil
}

func skipped(err error) Report {
	return Report{Status: Skipped, Err: err}
}

func (c *Compositor) placeSprite(canvas *image.NRGBA, step config.Step, cache map[string]image.Image) Report {
	sp := step.Sprite
	if sp.Rect.Empty() {
		return skipped(fmt.Errorf("%w: panel %v", panel.ErrDegenerateRectangle, sp.Rect.Bounds()))
	}
	art, err := c.spriteArtwork(sp, cache)
	if err != nil {
		return skipped(err)
	}

	size := art.Bounds().Size()
	if sp.Square {
		size = image.Pt(1, 1)
	}
	fill := sp.Fill
	if fill <= 0 {
		fill = c.cfg.Fill
	}
	fit, err := panel.Fit(size, sp.Rect, fill)
	if err != nil {
		return skipped(err)
	}
	imagepkg.PasteMasked(canvas, imagepkg.Resize(art, fit.Size.X, fit.Size.Y), fit.Origin)

	r := fit.Rect()
	return Report{
		Status: Applied,
		Region: panel.Rect{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y},
		Pixels: fit.Size.X * fit.Size.Y,
	}
}

func (c *Compositor) spriteArtwork(sp *config.Sprite, cache map[string]image.Image) (image.Image, error) {
	if sp.QRText != "" {
		return imagepkg.QRArtwork(sp.QRText, imagepkg.DefaultQRSize)
	}
	if img, ok := c.artwork[sp.Artwork]; ok {
		return img, nil
	}
	if img, ok := cache[sp.Artwork]; ok {
		return img, nil
	}
	img, err := c.load(sp.Artwork)
	if err != nil {
		return nil, fmt.Errorf("artwork %s: %w", sp.Artwork, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: artwork %s is empty", panel.ErrInvalidImage, sp.Artwork)
	}
	cache[sp.Artwork] = img
	return img, nil
}

func (c *Compositor) stampScene(canvas *image.NRGBA, mask *panel.Mask, step config.Step) Report {
	sc := step.Scene
	orient, err := imagepkg.ParseOrientation(string(sc.Orientation))
	if err != nil {
		return skipped(err)
	}
	region := mask.Restrict(sc.Span)
	box, ok := panel.BoundingBox(region, nil)
	if !ok {
		return skipped(fmt.Errorf("%w in columns %s", panel.ErrEmptyRegion, sc.Span))
	}
	c.log.Debug().Str("step", step.Name).Stringer("bbox", box).Msg("panel bounding box")

	w, h := orient.AuthorSize(box.Dx(), box.Dy())
	art := imagepkg.Orient(scene.Paint(w, h, sc.Style), orient)
	n, err := imagepkg.StampMasked(canvas, art, box, region)
	if err != nil {
		return skipped(err)
	}
	return Report{Status: Applied, Region: box, Pixels: n}
}
