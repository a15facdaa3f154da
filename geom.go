package logicsim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TileSize is the canvas grid pitch. Component footprints and pin
// offsets are expressed in multiples of it.
const TileSize = 10.0

// SnapToGrid returns p snapped to the canvas grid.
func SnapToGrid(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: math.Floor(p.X/TileSize) * TileSize,
		Y: math.Floor(p.Y/TileSize) * TileSize,
	}
}

// Tiles returns a vector measured in grid tiles.
func Tiles(x, y float64) r2.Vec {
	return r2.Vec{X: x * TileSize, Y: y * TileSize}
}

func boxContains(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func boxOffset(b r2.Box, by r2.Vec) r2.Box {
	return r2.Box{Min: r2.Add(b.Min, by), Max: r2.Add(b.Max, by)}
}

// EdgeOffsets spreads n pins evenly along a vertical edge of height h
// at horizontal offset x. It is the default pin layout for kinds that
// do not implement PinLayouter.
func EdgeOffsets(n int, x, h float64) []r2.Vec {
	out := make([]r2.Vec, n)
	for i := range out {
		out[i] = r2.Vec{X: x, Y: float64(i+1) * h / float64(n+1)}
	}
	return out
}
