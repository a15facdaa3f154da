package complib

import (
	"sort"

	"github.com/pkg/errors"

	sim "github.com/dmallory/logicsim"
)

// registry maps menu names to default constructors. The set is closed:
// the engine's semantics are defined over exactly these kinds.
var registry = map[string]func() sim.Comp{
	"NOT":      func() sim.Comp { return Not() },
	"AND":      func() sim.Comp { return And() },
	"OR":       func() sim.Comp { return Or() },
	"Input":    func() sim.Comp { return NewInput(1) },
	"Output":   func() sim.Comp { return NewOutput(1) },
	"Mux":      func() sim.Comp { return DefaultMux() },
	"Demux":    func() sim.Comp { return DefaultDemux() },
	"Register": func() sim.Comp { return NewRegister(1) },
	"Splitter": func() sim.Comp { return DefaultSplitter() },
	"Tunnel":   func() sim.Comp { return DefaultTunnel() },
}

// New constructs a default instance of the named kind. It fails for
// names outside the closed kind set.
func New(name string) (sim.Comp, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("complib: unknown component %q", name)
	}
	return mk(), nil
}

// Names returns every constructible kind name in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// A Category is one folder of the editor's component menu.
type Category struct {
	Name  string
	Comps []string
}

// Palette returns the component menu grouping.
func Palette() []Category {
	return []Category{
		{Name: "Gates", Comps: []string{"NOT", "AND", "OR"}},
		{Name: "I/O", Comps: []string{"Input", "Output"}},
		{Name: "Plexers", Comps: []string{"Mux", "Demux"}},
		{Name: "Memory", Comps: []string{"Register"}},
		{Name: "Wiring", Comps: []string{"Splitter", "Tunnel"}},
	}
}
