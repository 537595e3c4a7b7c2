package layout

import (
	"fmt"
	"strings"

	"github.com/youruser/wrapart/internal/config"
)

// Describe renders a run as plain text, one line per step, in the order the
// steps will be applied.
func Describe(cfg config.Config) string {
	lines := []string{}
	lines = append(lines, fmt.Sprintf("# threshold %d", cfg.Threshold))
	if cfg.Recolor {
		lines = append(lines, fmt.Sprintf("recolor background -> %v", cfg.Background))
	}
	for i, s := range cfg.Steps {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%d. %s %s", i+1, s.Name, describeStep(s))))
	}
	return strings.Join(lines, "\n")
}

func describeStep(s config.Step) string {
	switch {
	case s.Sprite != nil:
		sp := s.Sprite
		src := sp.Artwork
		if sp.QRText != "" {
			src = fmt.Sprintf("qr(%q)", sp.QRText)
		}
		where := sp.Rect.String()
		if sp.Panel != "" {
			where = sp.Panel + " " + where
		}
		extra := ""
		if sp.Rect.Scale > 0 && sp.Rect.Scale != 1 {
			extra += fmt.Sprintf(" scale %.2g", sp.Rect.Scale)
		}
		if sp.Fill > 0 {
			extra += fmt.Sprintf(" fill %.2f", sp.Fill)
		}
		if sp.Square {
			extra += " square"
		}
		return fmt.Sprintf("sprite %s -> %s%s", src, where, extra)
	case s.Scene != nil:
		sc := s.Scene
		hi := "edge"
		if !sc.Span.ToEdge() {
			hi = fmt.Sprint(*sc.Span.Max)
		}
		o := string(sc.Orientation)
		if o == "" {
			o = "upright"
		}
		return fmt.Sprintf("scene %s over panels x=[%d,%s) %s", sc.Style, sc.Span.Min, hi, o)
	}
	return ""
}
