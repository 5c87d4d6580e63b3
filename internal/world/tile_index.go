package world

import (
	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/geom"
)

// TileIndex maps tiles to the entities standing in them this tick.
// It is rebuilt wholesale once per tick, so a despawned entity can never
// be found in it at the start of the next tick. Accessed only from the
// tick goroutine, no locks.
type TileIndex struct {
	cells map[TilePos][]entity.ID
	count int
}

func NewTileIndex() *TileIndex {
	return &TileIndex{cells: make(map[TilePos][]entity.ID)}
}

// Tracked is one (entity, world position) pair fed to Rebuild.
type Tracked struct {
	ID  entity.ID
	Pos geom.Vec2
}

// Rebuild clears the index and repopulates it from entries in one pass.
// Within a tile, ids keep the order they were given.
func (x *TileIndex) Rebuild(entries []Tracked) {
	x.Reset()
	for _, e := range entries {
		x.Add(e.ID, e.Pos)
	}
}

// Reset empties the index.
func (x *TileIndex) Reset() {
	clear(x.cells)
	x.count = 0
}

// Add appends id to the tile containing pos.
func (x *TileIndex) Add(id entity.ID, pos geom.Vec2) {
	t := FromWorld(pos)
	x.cells[t] = append(x.cells[t], id)
	x.count++
}

// Lookup returns the ids in tile, or nil for a tile nothing touched this
// tick. The slice is owned by the index; callers must not keep it past
// the tick.
func (x *TileIndex) Lookup(t TilePos) []entity.ID {
	return x.cells[t]
}

// Neighbourhood returns the ids in the 3x3 block of tiles around t.
func (x *TileIndex) Neighbourhood(t TilePos) []entity.ID {
	var out []entity.ID
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			out = append(out, x.cells[TilePos{t.X + dx, t.Y + dy}]...)
		}
	}
	return out
}

// Tiles is the number of occupied tiles; Count the number of entries.
func (x *TileIndex) Tiles() int { return len(x.cells) }
func (x *TileIndex) Count() int { return x.count }
