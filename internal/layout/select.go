package layout

import (
	"strings"

	"github.com/youruser/wrapart/internal/config"
)

// Selection narrows the steps of a run. Empty fields match everything.
type Selection struct {
	Names []string // exact step names
	Kinds []string // "sprite", "scene"
	Skip  []string // step names to leave out
}

// ParseList splits a comma separated flag value.
func ParseList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Select keeps the steps matching sel, in their original order.
func Select(steps []config.Step, sel Selection) []config.Step {
	var out []config.Step
	for _, s := range steps {
		if len(sel.Names) > 0 && !contains(sel.Names, s.Name) {
			continue
		}
		if len(sel.Kinds) > 0 && !contains(sel.Kinds, s.Kind()) {
			continue
		}
		if contains(sel.Skip, s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Unmatched lists the names and kinds of sel that match no step.
func Unmatched(steps []config.Step, sel Selection) []string {
	var out []string
	check := func(list []string, field func(config.Step) string) {
		for _, want := range list {
			found := false
			for _, s := range steps {
				if strings.EqualFold(field(s), want) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, want)
			}
		}
	}
	name := func(s config.Step) string { return s.Name }
	check(sel.Names, name)
	check(sel.Kinds, config.Step.Kind)
	check(sel.Skip, name)
	return out
}
