package world

import (
	"math"
	"time"
)

// MachineKind tags a placed machine. The zero value means "no machine",
// which is also how an empty build tool is represented.
type MachineKind uint8

const (
	KindNone MachineKind = iota
	Miner
	Collector
	ConveyorUp
	ConveyorDown
	ConveyorLeft
	ConveyorRight
	Adder
	Multiplier
)

var kindNames = [...]string{
	KindNone:      "none",
	Miner:         "miner",
	Collector:     "collector",
	ConveyorUp:    "conveyor_up",
	ConveyorDown:  "conveyor_down",
	ConveyorLeft:  "conveyor_left",
	ConveyorRight: "conveyor_right",
	Adder:         "adder",
	Multiplier:    "multiplier",
}

// Kinds lists every placeable kind in shop order.
var Kinds = []MachineKind{
	Miner, Collector, ConveyorUp, ConveyorDown, ConveyorLeft, ConveyorRight, Adder, Multiplier,
}

func (k MachineKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a catalog name back to its kind.
func ParseKind(s string) (MachineKind, bool) {
	for k, name := range kindNames {
		if name == s && MachineKind(k) != KindNone {
			return MachineKind(k), true
		}
	}
	return KindNone, false
}

// Inputs returns the tile offsets a machine scans for coins, in priority
// order. Miners take no input.
func (k MachineKind) Inputs() []TilePos {
	switch k {
	case Collector:
		return []TilePos{{0, 1}}
	case ConveyorUp:
		return []TilePos{{0, 0}, {0, -1}}
	case ConveyorDown:
		return []TilePos{{0, 0}, {0, 1}}
	case ConveyorLeft:
		return []TilePos{{0, 0}, {1, 0}}
	case ConveyorRight:
		return []TilePos{{0, 0}, {-1, 0}}
	case Adder, Multiplier:
		return []TilePos{{-1, 0}, {1, 0}}
	}
	return nil
}

// EjectAngle is the base direction, in radians, of coins a machine emits.
// The world is y-up, so -pi/2 points down the screen.
func (k MachineKind) EjectAngle() float64 {
	switch k {
	case ConveyorUp:
		return math.Pi / 2
	case ConveyorLeft:
		return math.Pi
	case ConveyorRight:
		return 0
	}
	return -math.Pi / 2
}

// MachineSpec is the static catalog entry for a kind.
type MachineSpec struct {
	Kind   MachineKind
	Name   string
	Cost   int64
	Period time.Duration
	Spots  []TilePos // connector offsets relative to the machine tile
}

// Catalog supplies machine specs to the placement protocol.
type Catalog interface {
	Lookup(kind MachineKind) (MachineSpec, bool)
}

// PlacedMachine is a machine standing on the grid.
type PlacedMachine struct {
	Kind  MachineKind
	Tile  TilePos
	Timer RepeatingTimer
}

// RepeatingTimer fires every Period of accumulated time. It fires at most
// once per Tick; surplus time beyond one period is folded back with a
// modulo so a long frame does not queue a burst of activations.
type RepeatingTimer struct {
	Period  time.Duration
	elapsed time.Duration
}

func NewRepeatingTimer(period time.Duration) RepeatingTimer {
	return RepeatingTimer{Period: period}
}

// Tick advances the timer and reports whether it fired.
func (t *RepeatingTimer) Tick(dt time.Duration) bool {
	if t.Period <= 0 {
		return false
	}
	t.elapsed += dt
	if t.elapsed < t.Period {
		return false
	}
	t.elapsed %= t.Period
	return true
}

// Elapsed is the time accumulated towards the next activation.
func (t *RepeatingTimer) Elapsed() time.Duration { return t.elapsed }

// Spot marks a tile some machine lists as a connector point. It is hidden
// while a machine stands on the same tile.
type Spot struct {
	Tile   TilePos
	Hidden bool
}
