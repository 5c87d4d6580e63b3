package system

import (
	"math"
	"math/rand"

	"github.com/combiner/clicker/internal/geom"
)

// Motion holds the velocities given to new coins. Speeds are world units
// per tick; damping multiplies the velocity every tick.
type Motion struct {
	Damping     float64
	ClickSpeed  float64
	EjectSpeed  float64
	EjectJitter float64
	EjectSpread float64 // radians
	HoverRadius float64
}

func DefaultMotion() Motion {
	return Motion{
		Damping:     0.6,
		ClickSpeed:  80,
		EjectSpeed:  80,
		EjectJitter: 30,
		EjectSpread: math.Pi / 4,
		HoverRadius: 192,
	}
}

// eject returns a velocity around base with the configured spread and
// speed jitter.
func (m Motion) eject(rng *rand.Rand, base float64) geom.Vec2 {
	angle := base + (rng.Float64()-0.5)*m.EjectSpread
	speed := m.EjectSpeed + rng.Float64()*m.EjectJitter
	return geom.FromAngle(angle).Scale(speed)
}

// scatter returns a velocity in a uniformly random direction.
func (m Motion) scatter(rng *rand.Rand) geom.Vec2 {
	return geom.FromAngle(rng.Float64() * 2 * math.Pi).Scale(m.ClickSpeed)
}
