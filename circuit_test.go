package logicsim_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
	"github.com/dmallory/logicsim/complib"
)

func mustConnect(t *testing.T, c *sim.Circuit, a int64, pa sim.PinIndex, b int64, pb sim.PinIndex) {
	t.Helper()
	ok, err := c.TryConnect(a, pa, b, pb)
	require.NoError(t, err)
	require.True(t, ok, "connect %d %s -> %d %s", a, pa, b, pb)
}

func TestTryConnect_rejections(t *testing.T) {
	c := sim.New()
	and := c.AddComponent(complib.And(), r2.Vec{})
	in1 := c.AddComponent(complib.NewInput(1), r2.Vec{})
	in8 := c.AddComponent(complib.NewInput(8), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})

	t.Run("selfWire", func(t *testing.T) {
		ok, err := c.TryConnect(and, sim.Out(0), and, sim.In(0))
		require.NoError(t, err)
		require.False(t, ok)
	})
	t.Run("roleMismatch", func(t *testing.T) {
		ok, err := c.TryConnect(in1, sim.Out(0), and, sim.Out(0))
		require.NoError(t, err)
		require.False(t, ok)
		ok, err = c.TryConnect(and, sim.In(0), out, sim.In(0))
		require.NoError(t, err)
		require.False(t, ok)
	})
	t.Run("widthMismatch", func(t *testing.T) {
		ok, err := c.TryConnect(in8, sim.Out(0), and, sim.In(0))
		require.NoError(t, err)
		require.False(t, ok)
	})
	t.Run("fanInCollision", func(t *testing.T) {
		mustConnect(t, c, in1, sim.Out(0), and, sim.In(0))
		before := len(c.Wires())
		ok, err := c.TryConnect(in1, sim.Out(0), and, sim.In(0))
		require.NoError(t, err)
		require.False(t, ok)
		require.Len(t, c.Wires(), before, "rejected connect mutated the graph")
	})
	t.Run("pinOrderIrrelevant", func(t *testing.T) {
		// Input-first argument order connects just as well.
		mustConnect(t, c, and, sim.In(1), in1, sim.Out(0))
	})
}

func TestRemoveComponent_neutralizesDrivenInputs(t *testing.T) {
	c := sim.New()
	in := c.AddComponent(complib.NewInput(1), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})
	mustConnect(t, c, in, sim.Out(0), out, sim.In(0))

	_, err := c.Interact(in)
	require.NoError(t, err)
	sink := c.Component(out).Kind.(*complib.Output)
	require.NotNil(t, sink.Value())

	c.RemoveComponent(in)
	require.Nil(t, c.Component(in))
	require.Nil(t, sink.Value(), "input pin kept its value after its driver vanished")
	require.Empty(t, c.Wires(), "wire outlived its endpoint")
}

func TestRemoveComponent_keepsOtherIDsStable(t *testing.T) {
	c := sim.New()
	a := c.AddComponent(complib.NewInput(1), r2.Vec{})
	b := c.AddComponent(complib.NewOutput(1), r2.Vec{})
	mustConnect(t, c, a, sim.Out(0), b, sim.In(0))

	mid := c.AddComponent(complib.Not(), r2.Vec{})
	c.RemoveComponent(mid)

	require.NotNil(t, c.Component(a))
	require.NotNil(t, c.Component(b))
	require.Len(t, c.Wires(), 1)

	// A later insertion must not reuse a live id.
	d := c.AddComponent(complib.NewOutput(1), r2.Vec{})
	require.NotEqual(t, a, d)
	require.NotEqual(t, b, d)
}

func TestReconfigure_prunesOutOfRangeWires(t *testing.T) {
	c := sim.New()
	or := c.AddComponent(complib.NewGate(complib.OpOr, 1, 3), r2.Vec{})
	ins := make([]int64, 3)
	for i := range ins {
		ins[i] = c.AddComponent(complib.NewInput(1), r2.Vec{})
		mustConnect(t, c, ins[i], sim.Out(0), or, sim.In(i))
	}
	require.Len(t, c.Wires(), 3)

	err := c.Reconfigure(or, func(k sim.Comp) (sim.Comp, sim.Update, error) {
		return k.(*complib.Gate).WithInputs(2)
	})
	require.NoError(t, err)
	require.Len(t, c.Wires(), 2, "wire into removed pin survived")
	require.Equal(t, 2, c.Component(or).Kind.NumInputs())
}

func TestReconfigure_widthChangeForcesUndriven(t *testing.T) {
	c := sim.New()
	in := c.AddComponent(complib.NewInput(1), r2.Vec{})
	out := c.AddComponent(complib.NewOutput(1), r2.Vec{})
	mustConnect(t, c, in, sim.Out(0), out, sim.In(0))

	// Widen the sink: the wire's pin indices still fit, but widths no
	// longer match, so propagation must force the input undriven.
	err := c.Reconfigure(out, func(k sim.Comp) (sim.Comp, sim.Update, error) {
		return k.(*complib.Output).WithBits(8)
	})
	require.NoError(t, err)
	require.Len(t, c.Wires(), 1)
	require.Nil(t, c.Wires()[0].Value())
	require.Nil(t, c.Component(out).Kind.(*complib.Output).Value())
}

func TestReconfigure_tunnelRename(t *testing.T) {
	c := sim.New()
	sn := c.AddComponent(complib.NewTunnel(sim.TunnelSender, "a", 1), r2.Vec{})

	err := c.Reconfigure(sn, func(k sim.Comp) (sim.Comp, sim.Update, error) {
		return k.(*complib.Tunnel).Rename("b")
	})
	require.NoError(t, err)
	if _, ok := c.Tunnels().UniqueSender("a"); ok {
		t.Error("old label still has a sender")
	}
	id, ok := c.Tunnels().UniqueSender("b")
	require.True(t, ok)
	require.Equal(t, sn, id)
}

func TestMerge_remapsIDsAndWires(t *testing.T) {
	dst := sim.New()
	keep := dst.AddComponent(complib.NewInput(1), r2.Vec{})

	src := sim.New()
	in := src.AddComponent(complib.NewInput(1), r2.Vec{})
	out := src.AddComponent(complib.NewOutput(1), r2.Vec{})
	mustConnect(t, src, in, sim.Out(0), out, sim.In(0))
	tun := src.AddComponent(complib.NewTunnel(sim.TunnelSender, "m", 1), r2.Vec{})

	remap := dst.Merge(src)
	require.Len(t, remap, 3)
	require.NotNil(t, dst.Component(keep))
	for old, now := range remap {
		require.NotNil(t, dst.Component(now), "merged component %d missing", old)
	}
	require.Len(t, dst.Wires(), 1)

	id, ok := dst.Tunnels().UniqueSender("m")
	require.True(t, ok, "tunnel membership not carried by merge")
	require.Equal(t, remap[tun], id)
}

func TestComponent_geometry(t *testing.T) {
	c := sim.New()
	id := c.AddComponent(complib.And(), sim.Tiles(10, 10))
	comp := c.Component(id)

	require.Equal(t, sim.Tiles(10, 11), comp.PinPosition(sim.In(0)))
	require.Equal(t, sim.Tiles(10, 13), comp.PinPosition(sim.In(1)))
	require.Equal(t, sim.Tiles(14, 12), comp.PinPosition(sim.Out(0)))

	require.True(t, comp.Contains(sim.Tiles(12, 12)))
	require.False(t, comp.Contains(sim.Tiles(30, 30)))

	px, ok := comp.HitPin(sim.Tiles(10, 11), 5)
	require.True(t, ok)
	require.Equal(t, sim.In(0), px)
	_, ok = comp.HitPin(sim.Tiles(20, 20), 5)
	require.False(t, ok)
}
