package event

import (
	"math/big"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/world"
)

// Pointer gestures, emitted by InputSystem in the Input phase.

type Click struct {
	Button   gesture.Button
	Position geom.Vec2 // world position at press time
}

type Drag struct {
	Button   gesture.Button
	Offset   geom.Vec2 // world-space movement since the previous Drag
	Start    geom.Vec2 // world position at press time
	Position geom.Vec2 // current world position
	Final    bool      // emitted on release
}

type Hover struct {
	Position geom.Vec2
}

type Zoom struct {
	Steps float64 // wheel notches, positive = towards the player
}

// Build requests. Emitted by BuildSystem from tool gestures, or by the UI
// through game.Game; processed in the Command phase.

type PlaceRequest struct {
	Kind world.MachineKind
	Tile world.TilePos
}

type DeleteRequest struct {
	Tile world.TilePos
}

type PlaceResult struct {
	Kind    world.MachineKind
	Tile    world.TilePos
	Machine entity.ID
	Outcome world.PlaceOutcome
}

type DeleteResult struct {
	Tile    world.TilePos
	Kind    world.MachineKind
	Removed bool
}

// Coin traffic.

// CoinPickup is queued when a coin is claimed. CoinLifecycleSystem arms the
// despawn in emission order; the first request for a coin wins.
type CoinPickup struct {
	Coin   entity.ID
	Target geom.Vec2
	Source world.PayoutSource
}

type CoinSpawned struct {
	Coin     entity.ID
	Value    *big.Int
	Position geom.Vec2
}

// CoinCollected reports a finished credit despawn and the amount paid.
type CoinCollected struct {
	Coin   entity.ID
	Amount *big.Int
	Source world.PayoutSource
}

// MachineFired is emitted whenever a machine's action timer elapses and its
// rule did something.
type MachineFired struct {
	Machine entity.ID
	Kind    world.MachineKind
	Tile    world.TilePos
}
