package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/wrapart/internal/image"
)

func TestLoadConfigPresetAndSelection(t *testing.T) {
	cfg, err := loadConfig(options{preset: "doors", only: "trunk,frunk"})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if len(cfg.Steps) != 2 || cfg.Steps[0].Name != "trunk" || cfg.Steps[1].Name != "frunk" {
		t.Errorf("unexpected steps %+v", cfg.Steps)
	}

	cfg, err = loadConfig(options{preset: "doors", kind: "sprite", skip: "left_door"})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if len(cfg.Steps) != 3 || cfg.Steps[0].Name != "right_door" {
		t.Errorf("unexpected steps %+v", cfg.Steps)
	}

	if _, err := loadConfig(options{preset: "minivan"}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadConfigPanelTable(t *testing.T) {
	dir := t.TempDir()
	panels := filepath.Join(dir, "panels.csv")
	if err := os.WriteFile(panels, []byte("name,x0,y0,x1,y1\nbadge,0,0,40,40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	conf := filepath.Join(dir, "run.json")
	body := `{"steps": [{"name": "badge", "sprite": {"panel": "badge", "qr_text": "hi"}}]}`
	if err := os.WriteFile(conf, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(options{config: conf, panels: panels})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if r := cfg.Steps[0].Sprite.Rect; r.X1 != 40 || r.Y1 != 40 {
		t.Errorf("panel not resolved: %+v", r)
	}
}

func TestRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.png")
	tpl := imaging.New(300, 200, color.NRGBA{0, 0, 0, 255})
	for y := 20; y < 150; y++ {
		for x := 10; x < 120; x++ {
			tpl.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	if err := imaging.Save(tpl, tplPath); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(options{preset: "scene-left"})
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "outputs", "scene.png")
	if err := run(cfg, tplPath, out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got, err := imagepkg.Load(out)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	if got.Bounds().Size() != image.Pt(300, 200) {
		t.Errorf("output size %v", got.Bounds().Size())
	}
}

func TestRunBadTemplateWritesNothing(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template.png")
	if err := os.WriteFile(tplPath, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(options{preset: "colorize"})
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if err := run(cfg, tplPath, out); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written for a bad template: %v", err)
	}
}
