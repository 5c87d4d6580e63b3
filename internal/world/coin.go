package world

import (
	"math/big"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/combiner/clicker/internal/geom"
)

// PayoutSource records who claimed a coin. Only credit sources pay the
// coin's value into the balance when its despawn completes.
type PayoutSource uint8

const (
	PayoutRelay     PayoutSource = iota // consumed by a conveyor, adder or multiplier
	PayoutCollector                     // collected by a Collector machine
	PayoutHover                         // picked up under the pointer
)

func (s PayoutSource) String() string {
	switch s {
	case PayoutRelay:
		return "relay"
	case PayoutCollector:
		return "collector"
	case PayoutHover:
		return "hover"
	}
	return "unknown"
}

func (s PayoutSource) Credits() bool { return s != PayoutRelay }

// Coin is a unit of value drifting on the grid.
//
// Two tweens drive its lifecycle. The spawn tween scales it in and, until
// it completes, keeps the coin unpickable. The despawn tween is nil until a
// pickup arms it; it then flies the coin to the pickup target and shrinks
// it, and its completion removes the coin.
type Coin struct {
	Value   *big.Int
	Pos     geom.Vec2
	Vel     geom.Vec2
	Damping float64

	born    uint64 // frame the coin was created in
	age     time.Duration
	spawn   *gween.Tween
	scaleIn float32
	spawned bool

	despawn  *gween.Tween
	armedFor time.Duration
	progress float32
	from     geom.Vec2
	target   geom.Vec2
	source   PayoutSource

	claimed bool
	done    bool
}

func newCoin(value *big.Int, pos, vel geom.Vec2, damping float64, grace time.Duration, frame uint64) *Coin {
	c := &Coin{
		Value:   new(big.Int).Set(value),
		Pos:     pos,
		Vel:     vel,
		Damping: damping,
		born:    frame,
		spawn:   gween.New(0, 1, seconds(grace), ease.OutCubic),
	}
	c.scaleIn, c.spawned = c.spawn.Set(0)
	return c
}

// Pickable reports whether a pickup may claim the coin: the spawn grace
// has elapsed, no despawn is armed, and nothing claimed it this tick.
// Coins advance in the Lifecycle phase, after machines and hover have run,
// so a coin whose grace ends during frame M is first matchable in frame
// M+1: at most one frame after spawn time plus grace.
func (c *Coin) Pickable() bool {
	return c.spawned && c.despawn == nil && !c.claimed && !c.done
}

// Armed reports whether the despawn has started.
func (c *Coin) Armed() bool { return c.despawn != nil }

// Source is the payout source recorded when the despawn was armed.
func (c *Coin) Source() PayoutSource { return c.source }

// Age is the time the coin has existed, not counting its creation frame.
func (c *Coin) Age() time.Duration { return c.age }

// Scale is the display scale: growing while spawning, shrinking while
// despawning.
func (c *Coin) Scale() float64 {
	if c.despawn != nil {
		return 1 - float64(c.progress)
	}
	return float64(c.scaleIn)
}

// arm starts the despawn towards target. Later calls are no-ops.
func (c *Coin) arm(target geom.Vec2, src PayoutSource, d time.Duration) bool {
	if c.despawn != nil || c.done || !c.spawned {
		return false
	}
	c.despawn = gween.New(0, 1, seconds(d), ease.InCubic)
	c.from = c.Pos
	c.target = target
	c.source = src
	return true
}

// advance moves the coin forward by one frame and reports whether its
// despawn finished. Velocity is applied per frame, not per second.
func (c *Coin) advance(dt time.Duration) bool {
	c.age += dt
	if !c.spawned {
		c.scaleIn, c.spawned = c.spawn.Set(seconds(c.age))
	}
	if c.despawn == nil {
		c.Pos = c.Pos.Add(c.Vel)
		c.Vel = c.Vel.Scale(c.Damping)
		return false
	}
	c.armedFor += dt
	var finished bool
	c.progress, finished = c.despawn.Set(seconds(c.armedFor))
	c.Pos = c.from.Lerp(c.target, float64(c.progress))
	return finished
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
