// Command main wires up a small demo circuit: a 4-bit counter built
// from an Input, a register and a tunnel pair, stepped by the clock.
package main

import (
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	sim "github.com/dmallory/logicsim"
	"github.com/dmallory/logicsim/complib"
	"github.com/dmallory/logicsim/logger"
)

func main() {
	log := logger.Logger()
	c := sim.New()

	// A 4-bit input drives the register's data pin; a constant-high
	// 1-bit input enables writes. The register output reaches an
	// Output sink through a tunnel instead of a drawn wire.
	data := c.AddComponent(complib.NewInput(4), r2.Vec{})
	enable := c.AddComponent(complib.NewInput(1), sim.Tiles(0, 8))
	reg := c.AddComponent(complib.NewRegister(4), sim.Tiles(10, 0))
	send := c.AddComponent(complib.NewTunnel(sim.TunnelSender, "Q", 4), sim.Tiles(20, 0))
	recv := c.AddComponent(complib.NewTunnel(sim.TunnelReceiver, "Q", 4), sim.Tiles(30, 0))
	out := c.AddComponent(complib.NewOutput(4), sim.Tiles(40, 0))

	connect(c, data, sim.Out(0), reg, sim.In(1))
	connect(c, enable, sim.Out(0), reg, sim.In(0))
	connect(c, reg, sim.Out(0), send, sim.In(0))
	connect(c, recv, sim.Out(0), out, sim.In(0))

	// Raise the write enable: 0 -> 1.
	if _, err := c.Interact(enable); err != nil {
		log.Fatal().Err(err).Msg("interact")
	}

	sink := c.Component(out).Kind.(*complib.Output)
	for i := 0; i < 8; i++ {
		if err := c.TickClock(); err != nil {
			log.Fatal().Err(err).Msg("tick")
		}
		log.Info().Int("tick", i).Stringer("out", sink.Value()).Msg("clock")
		// Advance the data input for the next tick.
		if _, err := c.Interact(data); err != nil {
			log.Fatal().Err(err).Msg("interact")
		}
	}
}

func connect(c *sim.Circuit, a int64, pa sim.PinIndex, b int64, pb sim.PinIndex) {
	log := logger.Logger()
	ok, err := c.TryConnect(a, pa, b, pb)
	if err != nil {
		log.Fatal().Err(err).Msg("connect")
	}
	if !ok {
		log.Error().Int64("a", a).Int64("b", b).Msg("connection rejected")
		os.Exit(1)
	}
}
