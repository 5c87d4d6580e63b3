package world

import (
	"slices"
	"testing"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/geom"
)

func TestFromWorldFloors(t *testing.T) {
	tests := []struct {
		p    geom.Vec2
		want TilePos
	}{
		{geom.V(0, 0), Tile(0, 0)},
		{geom.V(255.9, 255.9), Tile(0, 0)},
		{geom.V(256, 0), Tile(1, 0)},
		{geom.V(-0.001, 10), Tile(-1, 0)},
		{geom.V(-256, -256.5), Tile(-1, -2)},
		{geom.V(1000, -1000), Tile(3, -4)},
	}
	for _, tt := range tests {
		if got := FromWorld(tt.p); got != tt.want {
			t.Errorf("FromWorld(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestToWorldIsCanonicalOrigin(t *testing.T) {
	points := []geom.Vec2{geom.V(13, 200), geom.V(-300, 7), geom.V(512, -1), geom.V(0, 0)}
	for _, p := range points {
		tile := FromWorld(p)
		origin := tile.ToWorld()
		if origin != geom.V(float64(tile.X)*TileSize, float64(tile.Y)*TileSize) {
			t.Errorf("ToWorld(%v) = %v", tile, origin)
		}
		if again := FromWorld(origin).ToWorld(); again != origin {
			t.Errorf("not idempotent for %v: %v then %v", p, origin, again)
		}
		if FromWorld(tile.Center()) != tile {
			t.Errorf("Center of %v left the tile", tile)
		}
	}
}

func TestPlacementPath(t *testing.T) {
	tests := []struct {
		name string
		a, b TilePos
		want []TilePos
	}{
		{"single", Tile(2, 2), Tile(2, 2), []TilePos{Tile(2, 2)}},
		{"horizontal", Tile(0, 0), Tile(3, 0), []TilePos{Tile(0, 0), Tile(1, 0), Tile(2, 0), Tile(3, 0)}},
		{"backwards", Tile(0, 0), Tile(0, -2), []TilePos{Tile(0, 0), Tile(0, -1), Tile(0, -2)}},
		{"diagonal", Tile(0, 0), Tile(2, 2), []TilePos{Tile(0, 0), Tile(1, 1), Tile(2, 2)}},
		{"shallow", Tile(0, 0), Tile(4, 1), []TilePos{Tile(0, 0), Tile(1, 0), Tile(2, 1), Tile(3, 1), Tile(4, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlacementPath(tt.a, tt.b)
			if !slices.Equal(got, tt.want) {
				t.Errorf("PlacementPath(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTileIndexRebuild(t *testing.T) {
	idx := NewTileIndex()
	a, b, c := entity.NewID(1, 1), entity.NewID(2, 1), entity.NewID(3, 1)
	idx.Rebuild([]Tracked{
		{ID: a, Pos: geom.V(10, 10)},
		{ID: b, Pos: geom.V(-10, 10)},
		{ID: c, Pos: geom.V(100, 200)},
	})

	if got := idx.Lookup(Tile(0, 0)); !slices.Equal(got, []entity.ID{a, c}) {
		t.Errorf("Lookup(0,0) = %v, want [a c] in insertion order", got)
	}
	if got := idx.Lookup(Tile(-1, 0)); !slices.Equal(got, []entity.ID{b}) {
		t.Errorf("Lookup(-1,0) = %v", got)
	}
	if got := idx.Lookup(Tile(5, 5)); got != nil {
		t.Errorf("untouched tile returned %v", got)
	}
	if idx.Count() != 3 || idx.Tiles() != 2 {
		t.Errorf("Count/Tiles = %d/%d, want 3/2", idx.Count(), idx.Tiles())
	}
	if n := len(idx.Neighbourhood(Tile(0, 1))); n != 3 {
		t.Errorf("Neighbourhood(0,1) has %d ids, want 3", n)
	}

	idx.Rebuild([]Tracked{{ID: b, Pos: geom.V(10, 10)}})
	if got := idx.Lookup(Tile(0, 0)); !slices.Equal(got, []entity.ID{b}) {
		t.Errorf("after rebuild Lookup(0,0) = %v, want only b", got)
	}
	if got := idx.Lookup(Tile(-1, 0)); got != nil {
		t.Errorf("stale entry survived rebuild: %v", got)
	}
}

func TestRepeatingTimer(t *testing.T) {
	timer := NewRepeatingTimer(1e9)
	if timer.Tick(6e8) {
		t.Fatal("fired early")
	}
	if !timer.Tick(6e8) {
		t.Fatal("did not fire after a full period")
	}
	if timer.Elapsed() != 2e8 {
		t.Errorf("Elapsed = %v, want 200ms", timer.Elapsed())
	}
	if !timer.Tick(5e9) {
		t.Fatal("did not fire on long frame")
	}
	if timer.Elapsed() != 2e8 {
		t.Errorf("Elapsed after long frame = %v, want 200ms", timer.Elapsed())
	}

	var zero RepeatingTimer
	if zero.Tick(1e9) {
		t.Error("zero-period timer fired")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("none"); ok {
		t.Error("ParseKind accepted none")
	}
	if _, ok := ParseKind("teleporter"); ok {
		t.Error("ParseKind accepted an unknown name")
	}
}
