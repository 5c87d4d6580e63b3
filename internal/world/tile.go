package world

import (
	"fmt"
	"math"

	"github.com/combiner/clicker/internal/geom"
)

// TileSize is the edge length of one grid tile in world units.
const TileSize = 256.0

// TilePos is a discrete grid coordinate. The grid is unbounded in every
// direction; negative coordinates are ordinary tiles.
type TilePos struct {
	X, Y int
}

func Tile(x, y int) TilePos { return TilePos{X: x, Y: y} }

// FromWorld returns the tile containing p. Division floors, so (-1, -1)
// lands in tile (-1, -1) rather than (0, 0).
func FromWorld(p geom.Vec2) TilePos {
	return TilePos{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// ToWorld returns the tile's canonical origin (its minimum corner).
func (t TilePos) ToWorld() geom.Vec2 {
	return geom.Vec2{X: float64(t.X) * TileSize, Y: float64(t.Y) * TileSize}
}

// Center returns the midpoint of the tile. Machines and spots sit here.
func (t TilePos) Center() geom.Vec2 {
	return t.ToWorld().Add(geom.Vec2{X: TileSize / 2, Y: TileSize / 2})
}

func (t TilePos) Add(o TilePos) TilePos { return TilePos{t.X + o.X, t.Y + o.Y} }
func (t TilePos) Sub(o TilePos) TilePos { return TilePos{t.X - o.X, t.Y - o.Y} }

func (t TilePos) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// PlacementPath returns the tiles on the straight line from a to b,
// sampled at unit-tile granularity. The step count is the larger axis
// delta (at least 1); consecutive duplicates are dropped, so a == b
// yields a single tile.
func PlacementPath(a, b TilePos) []TilePos {
	d := b.Sub(a)
	steps := max(abs(d.X), abs(d.Y), 1)
	path := make([]TilePos, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		t := TilePos{
			X: a.X + int(math.Round(float64(d.X)*f)),
			Y: a.Y + int(math.Round(float64(d.Y)*f)),
		}
		if n := len(path); n > 0 && path[n-1] == t {
			continue
		}
		path = append(path, t)
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
