// Package layout loads named panel tables for a template and prepares the
// step list of a run.
package layout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/youruser/wrapart/internal/config"
	"github.com/youruser/wrapart/internal/panel"
)

// Table maps panel names to their rectangles on the template.
type Table map[string]panel.Rect

// Builtin is the panel table of the stock template.
func Builtin() Table {
	return Table{
		"left_door":  config.LeftDoor,
		"right_door": config.RightDoor,
		"trunk":      config.Trunk,
		"frunk":      config.Frunk,
	}
}

// LoadPanels reads a CSV panel table. The header must name the columns
// name, x0, y0, x1 and y1; scale is optional.
func LoadPanels(path string) (Table, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	if err != nil {
		return nil, err
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range []string{"name", "x0", "y0", "x1", "y1"} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("csv %s: missing column %q", path, c)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	num := func(row []string, name string, line int) (int, error) {
		v, err := strconv.Atoi(get(row, name))
		if err != nil {
			return 0, fmt.Errorf("csv %s line %d: %s: %w", path, line, name, err)
		}
		return v, nil
	}

	out := Table{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		// file line, counting the comment rows the reader dropped
		line, _ := r.FieldPos(0)
		name := get(row, "name")
		if name == "" {
			continue
		}
		var rc panel.Rect
		if rc.X0, err = num(row, "x0", line); err != nil {
			return nil, err
		}
		if rc.Y0, err = num(row, "y0", line); err != nil {
			return nil, err
		}
		if rc.X1, err = num(row, "x1", line); err != nil {
			return nil, err
		}
		if rc.Y1, err = num(row, "y1", line); err != nil {
			return nil, err
		}
		if s := get(row, "scale"); s != "" && s != "-" {
			if rc.Scale, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("csv %s line %d: scale: %w", path, line, err)
			}
		}
		out[name] = rc
	}
	return out, nil
}

// Resolve returns a copy of steps where every sprite naming a panel gets
// that panel's rectangle.
func (t Table) Resolve(steps []config.Step) ([]config.Step, error) {
	out := make([]config.Step, len(steps))
	for i, s := range steps {
		out[i] = s
		if s.Sprite == nil || s.Sprite.Panel == "" {
			continue
		}
		rc, ok := t[s.Sprite.Panel]
		if !ok {
			return nil, fmt.Errorf("step %q: unknown panel %q", s.Name, s.Sprite.Panel)
		}
		sp := *s.Sprite
		sp.Rect = rc
		out[i].Sprite = &sp
	}
	return out, nil
}
