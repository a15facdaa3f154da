package logicsim

import "gonum.org/v1/gonum/spatial/r2"

// A Component wraps a kind with its placement on the canvas and the
// geometry derived from it: pin offsets and hit-test boxes. Geometry is
// recomputed whenever the kind's shape-relevant configuration changes.
type Component struct {
	Kind Comp
	Pos  r2.Vec

	inOff  []r2.Vec
	outOff []r2.Vec
	boxes  []r2.Box
}

// NewComponent wraps kind at the given position.
func NewComponent(kind Comp, pos r2.Vec) *Component {
	c := &Component{Kind: kind, Pos: pos}
	c.RecomputeGeometry()
	return c
}

// RecomputeGeometry refreshes pin offsets and hit boxes from the kind.
// Call it after replacing or reshaping the kind.
func (c *Component) RecomputeGeometry() {
	size := c.Kind.Size()
	if pl, ok := c.Kind.(PinLayouter); ok {
		c.inOff = pl.InputOffsets()
		c.outOff = pl.OutputOffsets()
	} else {
		c.inOff = EdgeOffsets(c.Kind.NumInputs(), 0, size.Y)
		c.outOff = EdgeOffsets(c.Kind.NumOutputs(), size.X, size.Y)
	}
	if bx, ok := c.Kind.(Boxer); ok {
		c.boxes = bx.HitBoxes()
	} else {
		c.boxes = []r2.Box{DefaultHitBox(size)}
	}
}

// DefaultHitBox pads the footprint by one tile on every side.
func DefaultHitBox(size r2.Vec) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: -TileSize, Y: -TileSize},
		Max: r2.Vec{X: size.X + TileSize, Y: size.Y + TileSize},
	}
}

// PinOffset returns the given pin's position relative to the component.
func (c *Component) PinOffset(px PinIndex) r2.Vec {
	if px.Role == RoleInput {
		return c.inOff[px.Index]
	}
	return c.outOff[px.Index]
}

// PinPosition returns the given pin's absolute canvas position.
func (c *Component) PinPosition(px PinIndex) r2.Vec {
	return r2.Add(c.Pos, c.PinOffset(px))
}

// Contains reports whether the point lies in any of the component's
// hit boxes.
func (c *Component) Contains(p r2.Vec) bool {
	for _, b := range c.boxes {
		if boxContains(boxOffset(b, c.Pos), p) {
			return true
		}
	}
	return false
}

// HitPin returns the pin whose position lies within maxDist of p, if
// any. Input pins are checked before output pins.
func (c *Component) HitPin(p r2.Vec, maxDist float64) (PinIndex, bool) {
	for i := range c.inOff {
		if withinDist(c.PinPosition(In(i)), p, maxDist) {
			return In(i), true
		}
	}
	for i := range c.outOff {
		if withinDist(c.PinPosition(Out(i)), p, maxDist) {
			return Out(i), true
		}
	}
	return PinIndex{}, false
}

func withinDist(a, b r2.Vec, d float64) bool {
	return r2.Norm(r2.Sub(a, b)) < d
}
