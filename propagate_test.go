package logicsim_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
	"github.com/dmallory/logicsim/complib"
)

func sinkValue(t *testing.T, c *sim.Circuit, id int64) *sim.Signal {
	t.Helper()
	out, ok := c.Component(id).Kind.(*complib.Output)
	require.True(t, ok)
	return out.Value()
}

func TestPropagate_andGate(t *testing.T) {
	c := sim.New()
	a := c.AddComponent(complib.NewInput(1), r2.Vec{})
	b := c.AddComponent(complib.NewInput(1), r2.Vec{})
	and := c.AddComponent(complib.And(), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})

	mustConnect(t, c, a, sim.Out(0), and, sim.In(0))
	mustConnect(t, c, b, sim.Out(0), and, sim.In(1))
	mustConnect(t, c, and, sim.Out(0), out, sim.In(0))

	// Both inputs start at zero.
	require.Equal(t, uint64(0), sinkValue(t, c, out).Uint())

	// a=1, b=0.
	_, err := c.Interact(a)
	require.NoError(t, err)
	require.Equal(t, uint64(0), sinkValue(t, c, out).Uint())

	// a=1, b=1.
	_, err = c.Interact(b)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sinkValue(t, c, out).Uint())
}

func TestPropagate_strictUndrivenInputs(t *testing.T) {
	c := sim.New()
	a := c.AddComponent(complib.NewInput(1), r2.Vec{})
	and := c.AddComponent(complib.And(), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})

	// In(1) stays unwired, so the gate output must be undriven, not zero.
	mustConnect(t, c, a, sim.Out(0), and, sim.In(0))
	mustConnect(t, c, and, sim.Out(0), out, sim.In(0))

	_, err := c.Interact(a)
	require.NoError(t, err)
	require.Nil(t, sinkValue(t, c, out))
}

func TestPropagate_muxSelect(t *testing.T) {
	c := sim.New()
	d0 := c.AddComponent(complib.NewInput(4), r2.Vec{})
	d1 := c.AddComponent(complib.NewInput(4), r2.Vec{})
	sel := c.AddComponent(complib.NewInput(1), r2.Vec{})
	mux := c.AddComponent(complib.NewMux(1, 4), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(4), r2.Vec{})

	mustConnect(t, c, sel, sim.Out(0), mux, sim.In(0))
	mustConnect(t, c, d0, sim.Out(0), mux, sim.In(1))
	mustConnect(t, c, d1, sim.Out(0), mux, sim.In(2))
	mustConnect(t, c, mux, sim.Out(0), out, sim.In(0))

	c.Component(d0).Kind.(*complib.Input).SetValue(0x5)
	c.Component(d1).Kind.(*complib.Input).SetValue(0xa)
	require.NoError(t, c.Propagate())
	require.Equal(t, uint64(0x5), sinkValue(t, c, out).Uint())

	// Flip the selector to route the other data input.
	_, err := c.Interact(sel)
	require.NoError(t, err)
	require.Equal(t, uint64(0xa), sinkValue(t, c, out).Uint())
}

func TestPropagate_muxUndrivenSelector(t *testing.T) {
	c := sim.New()
	d0 := c.AddComponent(complib.NewInput(4), r2.Vec{})
	mux := c.AddComponent(complib.NewMux(1, 4), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(4), r2.Vec{})

	mustConnect(t, c, d0, sim.Out(0), mux, sim.In(1))
	mustConnect(t, c, mux, sim.Out(0), out, sim.In(0))

	c.Component(d0).Kind.(*complib.Input).SetValue(0xf)
	require.NoError(t, c.Propagate())
	require.Nil(t, sinkValue(t, c, out))
}

func TestPropagate_registerLatchesOnTick(t *testing.T) {
	c := sim.New()
	data := c.AddComponent(complib.NewInput(4), r2.Vec{})
	we := c.AddComponent(complib.NewInput(1), r2.Vec{})
	reg := c.AddComponent(complib.NewRegister(4), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(4), r2.Vec{})

	mustConnect(t, c, we, sim.Out(0), reg, sim.In(0))
	mustConnect(t, c, data, sim.Out(0), reg, sim.In(1))
	mustConnect(t, c, reg, sim.Out(0), out, sim.In(0))

	din := c.Component(data).Kind.(*complib.Input)
	din.SetValue(0x9)
	require.NoError(t, c.Propagate())

	// Write enable low: the register holds its initial zeros through
	// the tick.
	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0), sinkValue(t, c, out).Uint())

	// Raise write enable, tick: the input is latched.
	_, err := c.Interact(we)
	require.NoError(t, err)
	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0x9), sinkValue(t, c, out).Uint())

	// New data is not visible without a tick.
	din.SetValue(0x3)
	require.NoError(t, c.Propagate())
	require.Equal(t, uint64(0x9), sinkValue(t, c, out).Uint())
	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0x3), sinkValue(t, c, out).Uint())
}

func TestPropagate_tunnelFanOut(t *testing.T) {
	c := sim.New()
	in := c.AddComponent(complib.NewInput(8), r2.Vec{})
	snd := c.AddComponent(complib.NewTunnel(sim.TunnelSender, "bus", 8), r2.Vec{})
	rc1 := c.AddComponent(complib.NewTunnel(sim.TunnelReceiver, "bus", 8), r2.Vec{})
	rc2 := c.AddComponent(complib.NewTunnel(sim.TunnelReceiver, "bus", 8), r2.Vec{})
	o1 := c.AddComponent(complib.NewOutput(8), r2.Vec{})
	o2 := c.AddComponent(complib.NewOutput(8), r2.Vec{})

	mustConnect(t, c, in, sim.Out(0), snd, sim.In(0))
	mustConnect(t, c, rc1, sim.Out(0), o1, sim.In(0))
	mustConnect(t, c, rc2, sim.Out(0), o2, sim.In(0))

	c.Component(in).Kind.(*complib.Input).SetValue(0x42)
	require.NoError(t, c.Propagate())
	require.Equal(t, uint64(0x42), sinkValue(t, c, o1).Uint())
	require.Equal(t, uint64(0x42), sinkValue(t, c, o2).Uint())

	// Virtual wires never appear in the explicit wire list.
	require.Len(t, c.Wires(), 3)
}

func TestPropagate_tunnelInvalidNets(t *testing.T) {
	t.Run("noSender", func(t *testing.T) {
		c := sim.New()
		rc := c.AddComponent(complib.NewTunnel(sim.TunnelReceiver, "n", 1), r2.Vec{})
		out := c.AddComponent(complib.NewOutput(1), r2.Vec{})
		mustConnect(t, c, rc, sim.Out(0), out, sim.In(0))
		require.NoError(t, c.Propagate())
		require.Nil(t, sinkValue(t, c, out))
	})
	t.Run("twoSenders", func(t *testing.T) {
		c := sim.New()
		in := c.AddComponent(complib.NewInput(1), r2.Vec{})
		s1 := c.AddComponent(complib.NewTunnel(sim.TunnelSender, "n", 1), r2.Vec{})
		rc := c.AddComponent(complib.NewTunnel(sim.TunnelReceiver, "n", 1), r2.Vec{})
		out := c.AddComponent(complib.NewOutput(1), r2.Vec{})
		mustConnect(t, c, in, sim.Out(0), s1, sim.In(0))
		mustConnect(t, c, rc, sim.Out(0), out, sim.In(0))

		_, err := c.Interact(in)
		require.NoError(t, err)
		require.Equal(t, uint64(1), sinkValue(t, c, out).Uint())

		// A second sender under the same label poisons the net.
		c.AddComponent(complib.NewTunnel(sim.TunnelSender, "n", 1), r2.Vec{})
		require.NoError(t, c.Propagate())
		require.Nil(t, sinkValue(t, c, out))
	})
}

func TestPropagate_idempotent(t *testing.T) {
	c := sim.New()
	a := c.AddComponent(complib.NewInput(4), r2.Vec{})
	not := c.AddComponent(complib.NewGate(complib.OpNot, 4, 1), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(4), r2.Vec{})
	mustConnect(t, c, a, sim.Out(0), not, sim.In(0))
	mustConnect(t, c, not, sim.Out(0), out, sim.In(0))

	c.Component(a).Kind.(*complib.Input).SetValue(0x6)
	require.NoError(t, c.Propagate())
	first := sinkValue(t, c, out).Clone()
	require.NoError(t, c.Propagate())
	require.True(t, first.Equal(sinkValue(t, c, out)))
	require.Equal(t, uint64(0x9), first.Uint())
}

func TestPropagate_combinationalLoop(t *testing.T) {
	c := sim.New()
	in := c.AddComponent(complib.NewInput(1), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})
	n1 := c.AddComponent(complib.Not(), r2.Vec{})
	n2 := c.AddComponent(complib.Not(), r2.Vec{})
	mustConnect(t, c, in, sim.Out(0), out, sim.In(0))
	mustConnect(t, c, n1, sim.Out(0), n2, sim.In(0))

	_, err := c.Interact(in)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sinkValue(t, c, out).Uint())

	ok, err := c.TryConnect(n2, sim.Out(0), n1, sim.In(0))
	require.False(t, ok)
	require.Equal(t, sim.ErrCombinationalLoop, errors.Cause(err))

	// The closing wire was rolled back and the failed pass never got
	// to evaluation: signal state elsewhere is untouched.
	require.Len(t, c.Wires(), 2)
	require.Equal(t, uint64(1), sinkValue(t, c, out).Uint())
	require.NoError(t, c.Propagate())
}

func TestPropagate_registerBreaksCycle(t *testing.T) {
	c := sim.New()
	seed := c.AddComponent(complib.NewInput(4), r2.Vec{})
	sel := c.AddComponent(complib.NewInput(1), r2.Vec{})
	we := c.AddComponent(complib.NewInput(1), r2.Vec{})
	mux := c.AddComponent(complib.NewMux(1, 4), r2.Vec{})
	not := c.AddComponent(complib.NewGate(complib.OpNot, 4, 1), r2.Vec{})
	reg := c.AddComponent(complib.NewRegister(4), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(4), r2.Vec{})

	// reg -> not -> mux -> reg is a cycle, legal because the register is
	// clocked; the mux's other leg seeds the first value.
	mustConnect(t, c, sel, sim.Out(0), mux, sim.In(0))
	mustConnect(t, c, seed, sim.Out(0), mux, sim.In(1))
	mustConnect(t, c, not, sim.Out(0), mux, sim.In(2))
	mustConnect(t, c, we, sim.Out(0), reg, sim.In(0))
	mustConnect(t, c, mux, sim.Out(0), reg, sim.In(1))
	mustConnect(t, c, reg, sim.Out(0), not, sim.In(0))
	mustConnect(t, c, reg, sim.Out(0), out, sim.In(0))

	_, err := c.Interact(we)
	require.NoError(t, err)
	c.Component(seed).Kind.(*complib.Input).SetValue(0x6)
	require.NoError(t, c.Propagate())

	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0x6), sinkValue(t, c, out).Uint())

	// Route the inverted feedback: each further tick flips the contents.
	_, err = c.Interact(sel)
	require.NoError(t, err)
	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0x9), sinkValue(t, c, out).Uint())
	require.NoError(t, c.TickClock())
	require.Equal(t, uint64(0x6), sinkValue(t, c, out).Uint())
}

func TestPropagate_splitterRoundTrip(t *testing.T) {
	c := sim.New()
	in := c.AddComponent(complib.NewInput(4), r2.Vec{})
	split, err := complib.NewSplitter(4, []uint{2, 2}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	sp := c.AddComponent(split, r2.Vec{})
	lo := c.AddComponent(complib.NewOutput(2), r2.Vec{})
	hi := c.AddComponent(complib.NewOutput(2), r2.Vec{})

	mustConnect(t, c, in, sim.Out(0), sp, sim.In(0))
	mustConnect(t, c, sp, sim.Out(0), lo, sim.In(0))
	mustConnect(t, c, sp, sim.Out(1), hi, sim.In(0))

	c.Component(in).Kind.(*complib.Input).SetValue(0b1101)
	require.NoError(t, c.Propagate())
	require.Equal(t, uint64(0b01), sinkValue(t, c, lo).Uint())
	require.Equal(t, uint64(0b11), sinkValue(t, c, hi).Uint())
}
