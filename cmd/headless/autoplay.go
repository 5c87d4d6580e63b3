package main

import (
	"github.com/combiner/clicker/internal/game"
	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/world"
)

// clickEvery is the number of ticks between scripted clicks.
const clickEvery = 12

type buildStep struct {
	kind world.MachineKind
	tile world.TilePos
}

// autoplayer clicks coins into existence next to the factory, sweeps the
// pointer over loose coins, and buys miner/collector columns as soon as
// the balance allows.
type autoplayer struct {
	g       *game.Game
	tick    int
	next    int
	steps   []buildStep
	clickAt geom.Vec2 // world position of the click pad
}

func newAutoplayer(g *game.Game) *autoplayer {
	var steps []buildStep
	for col := 0; col < 8; col++ {
		x := col * 2
		steps = append(steps,
			buildStep{world.Miner, world.Tile(x, 1)},
			buildStep{world.Collector, world.Tile(x, -1)},
		)
	}
	return &autoplayer{
		g:       g,
		steps:   steps,
		clickAt: world.Tile(-3, 0).Center(),
	}
}

// plan queues the next purchase when it is affordable.
func (a *autoplayer) plan() {
	if a.next >= len(a.steps) {
		return
	}
	s := a.steps[a.next]
	if !a.g.CanAfford(s.kind) {
		return
	}
	a.g.RequestPlace(s.kind, s.tile)
	a.next++
}

// Sample implements system.SampleSource.
func (a *autoplayer) Sample() gesture.Sample {
	defer func() { a.tick++ }()
	cam := a.g.Camera()
	pad := cam.WorldToScreen(a.clickAt)

	switch a.tick % clickEvery {
	case 0:
		return gesture.Sample{Screen: pad, Down: [3]bool{true}, OverSurface: true}
	case 1:
		return gesture.Sample{Screen: pad, OverSurface: true}
	}
	coins := a.g.Coins()
	if len(coins) == 0 {
		return gesture.Sample{Screen: pad, OverSurface: true}
	}
	// Sweep across the live coins, one per tick.
	c := coins[a.tick%len(coins)]
	return gesture.Sample{Screen: cam.WorldToScreen(c.Pos), OverSurface: true}
}
