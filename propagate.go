package logicsim

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrCombinationalLoop is reported when the circuit contains a feedback
// cycle not broken by any clocked component. The pass that detects it
// aborts before any component is evaluated or any signal transmitted;
// only the virtual-wire refresh, which forces receivers of invalid
// tunnel nets undriven, has run by then.
var ErrCombinationalLoop = errors.New("combinational loop: cycle not broken by any clocked component")

// Propagate runs one full signal propagation pass:
//
//  1. Regenerate virtual tunnel wires from the tunnel context.
//  2. Build a dependency view of the graph that drops every edge whose
//     target is clocked (a clocked component's output depends on stored
//     state, not on its live inputs, so its inputs need not be ready
//     before it is visited).
//  3. Topologically sort that view; failure means an illegal
//     combinational loop and aborts the pass.
//  4. Visit components in order, calling Eval on each.
//  5. Transmit each evaluated component's outputs across its outgoing
//     explicit and virtual wires, re-validating widths: a mismatch
//     (possible transiently after a reconfiguration) forces both the
//     wire's cached value and the destination pin undriven.
//
// Propagation is idempotent: running it twice without an intervening
// mutation yields identical signal state.
func (c *Circuit) Propagate() error {
	c.refreshVirtualWires()
	order, err := c.evalOrder()
	if err != nil {
		return err
	}
	for _, id := range order {
		c.comps[id].Kind.Eval()
		c.transmitFrom(id)
	}
	c.log.Trace().Int("components", len(order)).Msg("propagation pass")
	return nil
}

// refreshVirtualWires discards the previous pass's virtual wires and
// synthesizes new ones: for every valid label (exactly one sender), one
// wire from the sender's pin to each receiver's pin, with the sender's
// current width. Receivers under an invalid label are forced undriven
// instead.
func (c *Circuit) refreshVirtualWires() {
	for _, w := range c.virtual {
		c.g.RemoveLine(w.from.ID(), w.to.ID(), w.id)
	}
	c.virtual = c.virtual[:0]

	for _, label := range c.tunnels.Labels() {
		_, receivers := c.tunnels.Net(label)
		sender, ok := c.tunnels.UniqueSender(label)
		if !ok {
			for _, r := range receivers {
				c.comps[r].Kind.SetPin(In(0), nil)
			}
			continue
		}
		width := c.comps[sender].Kind.PinWidth(Out(0))
		for _, r := range receivers {
			l := c.g.NewLine(c.g.Node(sender), c.g.Node(r))
			w := &Wire{
				id:      l.ID(),
				from:    l.From(),
				to:      l.To(),
				srcPin:  0,
				dstPin:  0,
				width:   width,
				virtual: true,
			}
			c.g.SetLine(w)
			c.virtual = append(c.virtual, w)
		}
	}
}

// evalOrder computes the deterministic evaluation order over the
// clock-filtered dependency view.
func (c *Circuit) evalOrder() ([]int64, error) {
	dep := simple.NewDirectedGraph()
	for id := range c.comps {
		dep.AddNode(simple.Node(id))
	}
	c.eachWire(func(w *Wire) {
		if c.comps[w.to.ID()].Kind.Clocked() {
			return
		}
		dep.SetEdge(dep.NewEdge(simple.Node(w.from.ID()), simple.Node(w.to.ID())))
	})
	sorted, err := topo.SortStabilized(dep, nil)
	if err != nil {
		return nil, errors.WithMessage(ErrCombinationalLoop, err.Error())
	}
	order := make([]int64, len(sorted))
	for i, n := range sorted {
		order[i] = n.ID()
	}
	return order, nil
}

// transmitFrom copies the just-evaluated component's output signals
// across its outgoing wires into the destination input pins.
func (c *Circuit) transmitFrom(id int64) {
	src := c.comps[id]
	for _, w := range c.wiresFrom(id, true) {
		dst := c.comps[w.to.ID()]
		srcW := src.Kind.PinWidth(Out(w.srcPin))
		dstW := dst.Kind.PinWidth(In(w.dstPin))
		if srcW != dstW {
			w.setValue(nil)
			dst.Kind.SetPin(In(w.dstPin), nil)
			continue
		}
		sig := src.Kind.Pin(Out(w.srcPin))
		dst.Kind.SetPin(In(w.dstPin), sig)
		w.setValue(sig)
	}
}
