package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/youruser/wrapart/internal/compositor"
	"github.com/youruser/wrapart/internal/config"
	imagepkg "github.com/youruser/wrapart/internal/image"
	"github.com/youruser/wrapart/internal/layout"
	"github.com/youruser/wrapart/internal/logging"
)

type options struct {
	template string
	out      string
	config   string
	preset   string
	panels   string
	only     string
	kind     string
	skip     string
	plan     bool
}

func main() {
	var o options
	flag.StringVar(&o.template, "template", "template.png", "wrap template image")
	flag.StringVar(&o.out, "out", "outputs/wrap.png", "output image path")
	flag.StringVar(&o.config, "config", "", "JSON run config (overrides -preset)")
	flag.StringVar(&o.preset, "preset", "doors", fmt.Sprintf("built-in run, one of %v", config.PresetNames()))
	flag.StringVar(&o.panels, "panels", "", "CSV panel table for sprites that name a panel")
	flag.StringVar(&o.only, "only", "", "comma separated step names to run")
	flag.StringVar(&o.kind, "kind", "", "comma separated step kinds to run: sprite, scene")
	flag.StringVar(&o.skip, "skip", "", "comma separated step names to leave out")
	flag.BoolVar(&o.plan, "plan", false, "print the steps and exit")
	logLevel := flag.String("log-level", "info", "logging level: debug, info, warn, error")
	flag.Parse()

	logging.Setup(os.Stderr, *logLevel, true)

	cfg, err := loadConfig(o)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if o.plan {
		fmt.Println(layout.Describe(cfg))
		return
	}
	if err := run(cfg, o.template, o.out); err != nil {
		log.Fatal().Err(err).Msg("composite failed")
	}
}

func loadConfig(o options) (config.Config, error) {
	var cfg config.Config
	if o.config != "" {
		c, err := config.Load(o.config)
		if err != nil {
			return cfg, err
		}
		cfg = *c
	} else {
		c, err := config.Preset(o.preset)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}

	table := layout.Builtin()
	if o.panels != "" {
		t, err := layout.LoadPanels(o.panels)
		if err != nil {
			return cfg, fmt.Errorf("panel table: %w", err)
		}
		table = t
	}
	steps, err := table.Resolve(cfg.Steps)
	if err != nil {
		return cfg, err
	}
	sel := layout.Selection{
		Names: layout.ParseList(o.only),
		Kinds: layout.ParseList(o.kind),
		Skip:  layout.ParseList(o.skip),
	}
	for _, v := range layout.Unmatched(steps, sel) {
		log.Warn().Str("selector", v).Msg("matches no step")
	}
	cfg.Steps = layout.Select(steps, sel)
	if len(cfg.Steps) == 0 && len(steps) > 0 {
		log.Warn().Int("steps", len(steps)).Msg("selection left no steps to run")
	}
	return cfg, nil
}

// run reads the template, composites it and writes the result. Nothing is
// written when the template cannot be used.
func run(cfg config.Config, templatePath, outPath string) error {
	c, err := compositor.New(cfg, compositor.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	tpl, err := imagepkg.Load(templatePath)
	if err != nil {
		return err
	}
	log.Info().Str("template", templatePath).Int("width", tpl.Bounds().Dx()).Int("height", tpl.Bounds().Dy()).Msg("loaded template")

	res, err := c.Run(tpl)
	if err != nil {
		return err
	}
	for _, rep := range res.Reports {
		fmt.Println(rep)
	}
	if err := imagepkg.Save(res.Canvas, outPath); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}
	fmt.Printf("Saved %s\n", outPath)
	if n := len(res.Skipped()); n > 0 {
		log.Warn().Int("skipped", n).Int("steps", len(res.Reports)).Msg("not every step was applied")
	}
	return nil
}
