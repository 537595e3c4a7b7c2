package compositor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/wrapart/internal/config"
	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/panel"
	"github.com/youruser/wrapart/internal/scene"
)

var (
	black = color.NRGBA{0, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func newTemplate(w, h int, panels ...image.Rectangle) *image.NRGBA {
	img := imaging.New(w, h, black)
	for _, p := range panels {
		for y := p.Min.Y; y < p.Max.Y; y++ {
			for x := p.Min.X; x < p.Max.X; x++ {
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

func mustNew(t *testing.T, cfg config.Config, opts ...Option) *Compositor {
	t.Helper()
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestRecolorIdempotent(t *testing.T) {
	tpl := newTemplate(64, 48, image.Rect(4, 4, 20, 30), image.Rect(30, 10, 60, 40))
	// a few pixels just under and over the threshold
	tpl.SetNRGBA(1, 1, color.NRGBA{201, 201, 201, 255})
	tpl.SetNRGBA(2, 1, color.NRGBA{200, 255, 255, 255})

	c := mustNew(t, config.Colorize())
	once, err := c.Recolor(tpl)
	if err != nil {
		t.Fatalf("Recolor: %v", err)
	}
	twice, err := c.Recolor(once)
	if err != nil {
		t.Fatalf("Recolor: %v", err)
	}
	if !bytes.Equal(once.Pix, twice.Pix) {
		t.Error("second recolor changed the image")
	}
	if once.NRGBAAt(1, 1) != config.Purple.NRGBA() || once.NRGBAAt(2, 1) == config.Purple.NRGBA() {
		t.Error("threshold not applied strictly")
	}
	if tpl.NRGBAAt(5, 5) != white {
		t.Error("Recolor modified its input")
	}

	first, err := c.Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(first.Canvas.Pix, once.Pix) {
		t.Error("Run and Recolor disagree on the recoloured canvas")
	}
	second, err := c.Run(first.Canvas)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if second.Recolored != 0 || !bytes.Equal(first.Canvas.Pix, second.Canvas.Pix) {
		t.Errorf("second run recoloured %d pixels", second.Recolored)
	}
}

func TestRunLeftDoorSprite(t *testing.T) {
	tpl := newTemplate(1024, 1024, image.Rect(30, 284, 205, 544))
	cfg := config.Config{
		Threshold:  200,
		Background: config.SkyBlue,
		Recolor:    true,
		Fill:       0.85,
		Steps: []config.Step{
			{Name: "left_door", Sprite: &config.Sprite{Rect: config.LeftDoor, Artwork: "red.png"}},
		},
	}
	c := mustNew(t, cfg, WithArtwork("red.png", imaging.New(100, 50, red)))

	res, err := c.Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Canvas.Bounds() != tpl.Bounds() {
		t.Fatalf("canvas %v, template %v", res.Canvas.Bounds(), tpl.Bounds())
	}
	if res.Recolored != 175*260 {
		t.Errorf("recolored %d pixels", res.Recolored)
	}
	if len(res.Reports) != 1 || res.Reports[0].Status != Applied {
		t.Fatalf("reports %+v", res.Reports)
	}
	want := panel.Rect{X0: 43, Y0: 377, X1: 43 + 148, Y1: 377 + 74}
	if res.Reports[0].Region != want {
		t.Errorf("sprite drawn at %+v, want %+v", res.Reports[0].Region, want)
	}

	sky := config.SkyBlue.NRGBA()
	checks := []struct {
		p    image.Point
		want color.NRGBA
	}{
		{image.Pt(43+74, 377+37), red},
		{image.Pt(45, 380), red},
		{image.Pt(42, 380), sky},
		{image.Pt(100, 300), sky},
		{image.Pt(0, 0), black},
		{image.Pt(600, 600), black},
	}
	for _, ck := range checks {
		if got := res.Canvas.NRGBAAt(ck.p.X, ck.p.Y); got != ck.want {
			t.Errorf("%v = %v, want %v", ck.p, got, ck.want)
		}
	}
}

func TestRunSquareAndQR(t *testing.T) {
	tpl := newTemplate(200, 200, image.Rect(0, 0, 200, 100))
	cfg := config.Config{
		Threshold: 200,
		Steps: []config.Step{
			{Name: "square", Sprite: &config.Sprite{Rect: panel.Rect{X1: 100, Y1: 100}, Artwork: "wide", Square: true, Fill: 0.5}},
			{Name: "qr", Sprite: &config.Sprite{Rect: panel.Rect{X0: 100, X1: 200, Y1: 100}, QRText: "https://example.com"}},
		},
	}
	c := mustNew(t, cfg, WithArtwork("wide", imaging.New(300, 30, red)))
	res, err := c.Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Reports[0].Region; got != (panel.Rect{X0: 25, Y0: 25, X1: 75, Y1: 75}) {
		t.Errorf("square sprite at %+v", got)
	}
	if res.Reports[1].Status != Applied || res.Reports[1].Region.Dx() != 85 {
		t.Errorf("qr report %+v", res.Reports[1])
	}
}

func TestRunSceneStampsOnlyMaskedPixels(t *testing.T) {
	// two left panels split by a printed line, one panel on the right
	tpl := newTemplate(300, 200,
		image.Rect(10, 20, 60, 150),
		image.Rect(70, 20, 120, 150),
		image.Rect(200, 20, 280, 150),
	)
	cfg := config.SceneLeft()
	cfg.Steps[0].Scene.Span = panel.LeftOf(150)
	c := mustNew(t, cfg)

	res, err := c.Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rep := res.Reports[0]
	if rep.Status != Applied {
		t.Fatalf("scene skipped: %v", rep.Err)
	}
	if rep.Region != (panel.Rect{X0: 10, Y0: 20, X1: 120, Y1: 150}) {
		t.Errorf("bbox %+v", rep.Region)
	}
	if rep.Pixels != 2*50*130 {
		t.Errorf("stamped %d pixels", rep.Pixels)
	}

	// Painted 130x110 upright, turned clockwise: the ground strip ends up
	// along the left edge of the box.
	checks := []struct {
		p    image.Point
		want color.NRGBA
	}{
		{image.Pt(12, 80), scene.GroundGreen},
		{image.Pt(110, 80), scene.SkyBlue},
		{image.Pt(65, 80), black},
		{image.Pt(240, 80), white},
		{image.Pt(5, 5), black},
	}
	for _, ck := range checks {
		if got := res.Canvas.NRGBAAt(ck.p.X, ck.p.Y); got != ck.want {
			t.Errorf("%v = %v, want %v", ck.p, got, ck.want)
		}
	}
}

func TestRunUprightScene(t *testing.T) {
	tpl := newTemplate(100, 100, image.Rect(0, 0, 100, 100))
	cfg := config.Config{
		Threshold: 200,
		Steps:     []config.Step{{Name: "all", Scene: &config.SceneRegion{Orientation: imagepkg.Upright}}},
	}
	res, err := mustNew(t, cfg).Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := scene.Paint(100, 100, scene.StylePlain)
	if !bytes.Equal(res.Canvas.Pix, want.Pix) {
		t.Error("a full-panel upright stamp should equal the painted scene")
	}
}

func TestRunBlackTemplate(t *testing.T) {
	tpl := newTemplate(100, 100)
	before := imaging.Clone(tpl)
	res, err := mustNew(t, config.SceneLeft()).Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(res.Canvas.Pix, before.Pix) {
		t.Error("canvas changed although no panel pixels exist")
	}
	skips := res.Skipped()
	if len(skips) != 1 || !errors.Is(skips[0].Err, panel.ErrEmptyRegion) {
		t.Fatalf("skips %+v", skips)
	}
	if s := skips[0].String(); s != "left_scene: skipped: no panel pixels found in columns 0<=x<230" {
		t.Errorf("report line %q", s)
	}
}

func TestRunZeroBoundarySelectsNothing(t *testing.T) {
	tpl := newTemplate(100, 100, image.Rect(0, 0, 100, 100))
	cfg := config.SceneLeft()
	cfg.Steps[0].Scene.Span = panel.LeftOf(0)
	res, err := mustNew(t, cfg).Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Canvas.NRGBAAt(50, 50) != white {
		t.Error("a zero boundary stamped the panel")
	}
	skips := res.Skipped()
	if len(skips) != 1 || !errors.Is(skips[0].Err, panel.ErrEmptyRegion) {
		t.Fatalf("skips %+v", skips)
	}
	if s := skips[0].String(); s != "left_scene: skipped: no panel pixels found in columns 0<=x<0" {
		t.Errorf("report line %q", s)
	}
}

func TestRunSkipsBadStepsAndContinues(t *testing.T) {
	tpl := newTemplate(100, 100, image.Rect(0, 0, 100, 100))
	cfg := config.Config{
		Threshold:  200,
		Recolor:    true,
		Background: config.SkyBlue,
		Steps: []config.Step{
			{Name: "flat", Sprite: &config.Sprite{Rect: panel.Rect{X0: 10, Y0: 10, X1: 10, Y1: 50}, Artwork: "a"}},
			{Name: "missing", Sprite: &config.Sprite{Rect: panel.Rect{X1: 50, Y1: 50}, Artwork: "nope.png"}},
			{Name: "ok", Sprite: &config.Sprite{Rect: panel.Rect{X0: 50, Y0: 50, X1: 100, Y1: 100}, Artwork: "a"}},
		},
	}
	loadErr := errors.New("no such file")
	c := mustNew(t, cfg,
		WithArtwork("a", imaging.New(10, 10, red)),
		WithLoader(func(string) (image.Image, error) { return nil, loadErr }),
	)
	res, err := c.Run(tpl)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Reports) != 3 {
		t.Fatalf("got %d reports", len(res.Reports))
	}
	if !errors.Is(res.Reports[0].Err, panel.ErrDegenerateRectangle) {
		t.Errorf("flat: %v", res.Reports[0].Err)
	}
	if !errors.Is(res.Reports[1].Err, loadErr) {
		t.Errorf("missing: %v", res.Reports[1].Err)
	}
	if res.Reports[2].Status != Applied {
		t.Errorf("ok: %v", res.Reports[2].Err)
	}
	if res.Canvas.NRGBAAt(75, 75) != red {
		t.Error("later step not applied")
	}
}

func TestRunInvalidTemplate(t *testing.T) {
	c := mustNew(t, config.Default())
	res, err := c.Run(image.NewGray(image.Rect(0, 0, 10, 10)))
	if !errors.Is(err, panel.ErrInvalidImage) || res != nil {
		t.Errorf("got %v, %v", res, err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Doors()
	cfg.Background = config.RGBA{255, 255, 255, 255}
	if _, err := New(cfg); err == nil {
		t.Error("expected error for white background")
	}
}
