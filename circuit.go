package logicsim

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/dmallory/logicsim/logger"
)

// A Circuit owns all components and the wires between them. Nodes keep
// stable identifiers across arbitrary insertions and removals, so ids
// held by the UI stay valid until the component itself is removed.
//
// The circuit is single-threaded: a propagation pass runs to completion
// inside the mutating call that triggered it, and no other mutation may
// interleave.
type Circuit struct {
	g       *multi.DirectedGraph
	comps   map[int64]*Component
	tunnels *TunnelContext
	virtual []*Wire

	log zerolog.Logger
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{
		g:       multi.NewDirectedGraph(),
		comps:   make(map[int64]*Component),
		tunnels: NewTunnelContext(),
		log:     logger.Logger().With().Str("sys", "circuit").Logger(),
	}
}

// AddComponent inserts a new component and returns its id. Tunnel kinds
// are registered with the tunnel context.
func (c *Circuit) AddComponent(kind Comp, pos r2.Vec) int64 {
	n := c.g.NewNode()
	c.g.AddNode(n)
	id := n.ID()
	c.comps[id] = NewComponent(kind, pos)
	if t, ok := kind.(Tunneler); ok {
		c.tunnels.Apply(id, TunnelUpdate{Label: t.TunnelLabel(), Role: t.TunnelRole(), Op: TunnelAdd})
	}
	c.log.Debug().Int64("id", id).Str("kind", kind.Name()).Msg("component added")
	return id
}

// Component returns the component with the given id, nil if absent.
func (c *Circuit) Component(id int64) *Component { return c.comps[id] }

// IDs returns all component ids in ascending order.
func (c *Circuit) IDs() []int64 {
	out := make([]int64, 0, len(c.comps))
	for id := range c.comps {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tunnels exposes the circuit's tunnel context for inspection.
func (c *Circuit) Tunnels() *TunnelContext { return c.tunnels }

// RemoveComponent removes the component and every incident wire. Input
// pins the component was driving are set undriven first, and tunnel
// membership is retracted.
func (c *Circuit) RemoveComponent(id int64) {
	comp := c.comps[id]
	if comp == nil {
		return
	}
	for _, w := range c.wiresFrom(id, true) {
		c.comps[w.to.ID()].Kind.SetPin(In(w.dstPin), nil)
	}
	c.dropVirtualTouching(id)
	if t, ok := comp.Kind.(Tunneler); ok {
		c.tunnels.Apply(id, TunnelUpdate{Label: t.TunnelLabel(), Role: t.TunnelRole(), Op: TunnelRemove})
	}
	delete(c.comps, id)
	c.g.RemoveNode(id)
	c.log.Debug().Int64("id", id).Msg("component removed")
}

// TryConnect attempts to create a wire between two pins, given in
// either order. It returns false without mutating the circuit when the
// connection is structurally invalid: both pins on one component, two
// pins of the same role, unequal bit widths, or an input pin that is
// already driven. On success the wire is created and a propagation pass
// runs; if that pass reports a combinational loop the wire is removed
// again and the error returned.
func (c *Circuit) TryConnect(a int64, pa PinIndex, b int64, pb PinIndex) (bool, error) {
	if a == b {
		return false, nil
	}
	ca, cb := c.comps[a], c.comps[b]
	if ca == nil || cb == nil {
		return false, nil
	}
	if ca.Kind.PinWidth(pa) != cb.Kind.PinWidth(pb) {
		c.log.Debug().Int64("a", a).Int64("b", b).Msg("connect rejected: width mismatch")
		return false, nil
	}
	// Orient the wire output -> input.
	var src, dst int64
	var srcPin, dstPin int
	switch {
	case pa.Role == RoleOutput && pb.Role == RoleInput:
		src, srcPin, dst, dstPin = a, pa.Index, b, pb.Index
	case pa.Role == RoleInput && pb.Role == RoleOutput:
		src, srcPin, dst, dstPin = b, pb.Index, a, pa.Index
	default:
		return false, nil
	}
	if c.inputDriven(dst, dstPin) {
		c.log.Debug().Int64("dst", dst).Int("pin", dstPin).Msg("connect rejected: input pin occupied")
		return false, nil
	}

	l := c.g.NewLine(c.g.Node(src), c.g.Node(dst))
	w := &Wire{
		id:     l.ID(),
		from:   l.From(),
		to:     l.To(),
		srcPin: srcPin,
		dstPin: dstPin,
		width:  c.comps[src].Kind.PinWidth(Out(srcPin)),
	}
	c.g.SetLine(w)
	if err := c.Propagate(); err != nil {
		// The pass aborted before evaluating anything; undo the wire
		// and surface the loop to the caller.
		c.g.RemoveLine(src, dst, w.id)
		return false, err
	}
	return true, nil
}

// inputDriven reports whether an explicit wire already terminates at
// the given input pin.
func (c *Circuit) inputDriven(id int64, pin int) bool {
	froms := c.g.To(id)
	for froms.Next() {
		lines := c.g.Lines(froms.Node().ID(), id)
		for lines.Next() {
			w := lines.Line().(*Wire)
			if !w.virtual && w.dstPin == pin {
				return true
			}
		}
	}
	return false
}

// Wires returns every explicit wire, ordered by id. Virtual tunnel
// wires are not listed; they are a per-pass artifact.
func (c *Circuit) Wires() []*Wire {
	var out []*Wire
	c.eachWire(func(w *Wire) {
		if !w.virtual {
			out = append(out, w)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Reconfigure applies a property edit to the component's kind. The
// mutator returns the replacement kind (or nil to keep the current
// instance) together with the update flags; on a shape change the
// geometry is recomputed and wires whose pin index no longer fits are
// pruned. A propagation pass runs afterwards.
func (c *Circuit) Reconfigure(id int64, mutate func(Comp) (Comp, Update, error)) error {
	comp := c.comps[id]
	if comp == nil {
		return errors.Errorf("reconfigure: no component with id %d", id)
	}
	kind, upd, err := mutate(comp.Kind)
	if err != nil {
		return err
	}
	if kind != nil {
		comp.Kind = kind
	}
	if upd.Tunnel != nil {
		c.tunnels.Apply(id, *upd.Tunnel)
	}
	if upd.Shape {
		comp.RecomputeGeometry()
		c.pruneStaleWires(id)
	}
	return c.Propagate()
}

// pruneStaleWires removes incident explicit wires whose pin index is
// out of range for the component's current shape.
func (c *Circuit) pruneStaleWires(id int64) {
	comp := c.comps[id]
	var stale []*Wire
	for _, w := range c.wiresFrom(id, false) {
		if w.srcPin >= comp.Kind.NumOutputs() {
			stale = append(stale, w)
		}
	}
	for _, w := range c.wiresTo(id, false) {
		if w.dstPin >= comp.Kind.NumInputs() {
			stale = append(stale, w)
		}
	}
	for _, w := range stale {
		dst := c.comps[w.to.ID()]
		if dst.Kind.NumInputs() > w.dstPin {
			dst.Kind.SetPin(In(w.dstPin), nil)
		}
		c.g.RemoveLine(w.from.ID(), w.to.ID(), w.id)
	}
}

// Interact applies the component's click action (e.g. incrementing an
// Input). It reports whether state changed; a change triggers a
// propagation pass whose error, if any, is returned.
func (c *Circuit) Interact(id int64) (bool, error) {
	comp := c.comps[id]
	if comp == nil || !comp.Kind.Interact() {
		return false, nil
	}
	return true, c.Propagate()
}

// TickClock invokes Tick on every clocked component and then runs a
// propagation pass.
func (c *Circuit) TickClock() error {
	for _, id := range c.IDs() {
		if k := c.comps[id].Kind; k.Clocked() {
			k.Tick()
		}
	}
	return c.Propagate()
}

// Merge moves every component and explicit wire of other into c,
// allocating fresh ids, and returns the id mapping. other must not be
// used afterwards.
func (c *Circuit) Merge(other *Circuit) map[int64]int64 {
	remap := make(map[int64]int64, len(other.comps))
	for _, id := range other.IDs() {
		comp := other.comps[id]
		remap[id] = c.AddComponent(comp.Kind, comp.Pos)
	}
	for _, w := range other.Wires() {
		l := c.g.NewLine(c.g.Node(remap[w.from.ID()]), c.g.Node(remap[w.to.ID()]))
		c.g.SetLine(&Wire{
			id:     l.ID(),
			from:   l.From(),
			to:     l.To(),
			srcPin: w.srcPin,
			dstPin: w.dstPin,
			width:  w.width,
		})
	}
	return remap
}

// wiresFrom returns the explicit (and optionally virtual) wires leaving id.
func (c *Circuit) wiresFrom(id int64, includeVirtual bool) []*Wire {
	var out []*Wire
	tos := c.g.From(id)
	for tos.Next() {
		lines := c.g.Lines(id, tos.Node().ID())
		for lines.Next() {
			w := lines.Line().(*Wire)
			if includeVirtual || !w.virtual {
				out = append(out, w)
			}
		}
	}
	return out
}

func (c *Circuit) wiresTo(id int64, includeVirtual bool) []*Wire {
	var out []*Wire
	froms := c.g.To(id)
	for froms.Next() {
		lines := c.g.Lines(froms.Node().ID(), id)
		for lines.Next() {
			w := lines.Line().(*Wire)
			if includeVirtual || !w.virtual {
				out = append(out, w)
			}
		}
	}
	return out
}

func (c *Circuit) eachWire(fn func(*Wire)) {
	for _, id := range c.IDs() {
		for _, w := range c.wiresFrom(id, true) {
			fn(w)
		}
	}
}

func (c *Circuit) dropVirtualTouching(id int64) {
	kept := c.virtual[:0]
	for _, w := range c.virtual {
		if w.from.ID() != id && w.to.ID() != id {
			kept = append(kept, w)
		}
	}
	c.virtual = kept
}
