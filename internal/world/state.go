package world

import (
	"math/big"
	"math/rand"
	"time"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/geom"
)

// Params are the tunables the coin lifecycle reads.
type Params struct {
	SpawnGrace      time.Duration
	DespawnDuration time.Duration
}

func DefaultParams() Params {
	return Params{
		SpawnGrace:      200 * time.Millisecond,
		DespawnDuration: 100 * time.Millisecond,
	}
}

// PayoutFunc converts a finished credit coin into the amount credited.
type PayoutFunc func(value *big.Int, src PayoutSource) *big.Int

// State is the whole simulation: every record, the tile index, and the
// balance. It is passed by pointer into each tick phase and touched only
// from the tick goroutine.
type State struct {
	World    *entity.World
	Coins    *entity.Arena[Coin]
	Machines *entity.Arena[PlacedMachine]
	Spots    *entity.Arena[Spot]
	Index    *TileIndex
	Balance  *Balance
	Rand     *rand.Rand
	Params   Params
	Payout   PayoutFunc
	Catalog  Catalog

	// Tool is the machine kind the build tool places; KindNone when idle.
	Tool MachineKind
	// Ghost is the tile under the pointer while a tool is selected.
	Ghost    TilePos
	HasGhost bool

	Frame   uint64
	Elapsed time.Duration

	machineAt map[TilePos]entity.ID
	spotAt    map[TilePos]entity.ID
	tracked   []Tracked
}

// NewState creates an empty grid. rng must be non-nil; tests seed it to
// pin coin trajectories.
func NewState(catalog Catalog, params Params, startBalance int64, rng *rand.Rand) *State {
	w := entity.NewWorld()
	s := &State{
		World:     w,
		Coins:     entity.NewArena[Coin](),
		Machines:  entity.NewArena[PlacedMachine](),
		Spots:     entity.NewArena[Spot](),
		Index:     NewTileIndex(),
		Balance:   NewBalance(startBalance),
		Rand:      rng,
		Params:    params,
		Payout:    RawPayout,
		Catalog:   catalog,
		machineAt: make(map[TilePos]entity.ID),
		spotAt:    make(map[TilePos]entity.ID),
	}
	w.Track(s.Coins)
	w.Track(s.Machines)
	w.Track(s.Spots)
	return s
}

// RawPayout credits the coin's value unchanged.
func RawPayout(value *big.Int, _ PayoutSource) *big.Int {
	return new(big.Int).Set(value)
}

// BeginFrame starts a new tick.
func (s *State) BeginFrame(dt time.Duration) {
	s.Frame++
	s.Elapsed += dt
}

// ---------- coins ----------

// SpawnCoin creates a coin with its spawn grace running and no despawn
// armed. It is not advanced until the next frame.
func (s *State) SpawnCoin(value *big.Int, pos, vel geom.Vec2, damping float64) entity.ID {
	id := s.World.Create()
	s.Coins.Insert(id, newCoin(value, pos, vel, damping, s.Params.SpawnGrace, s.Frame))
	return id
}

// PickableCoinAt returns the first pickable coin indexed in tile.
func (s *State) PickableCoinAt(t TilePos) (entity.ID, *Coin, bool) {
	for _, id := range s.Index.Lookup(t) {
		if c, ok := s.Coins.Get(id); ok && c.Pickable() {
			return id, c, true
		}
	}
	return 0, nil, false
}

// ClaimCoin marks a pickable coin as taken for the rest of the tick so no
// other machine or pickup can match it. Reports false if the coin is gone
// or already unavailable.
func (s *State) ClaimCoin(id entity.ID) bool {
	c, ok := s.Coins.Get(id)
	if !ok || !c.Pickable() {
		return false
	}
	c.claimed = true
	return true
}

// RequestPickup arms the coin's despawn towards target. The first request
// wins; requests for an armed or vanished coin are ignored.
func (s *State) RequestPickup(id entity.ID, target geom.Vec2, src PayoutSource) bool {
	c, ok := s.Coins.Get(id)
	if !ok {
		return false
	}
	return c.arm(target, src, s.Params.DespawnDuration)
}

// Despawned describes a coin whose despawn finished this frame.
type Despawned struct {
	ID     entity.ID
	Value  *big.Int
	Source PayoutSource
	Paid   *big.Int // nil for relay pickups
}

// TickCoins advances every coin created before this frame. Finished
// despawns credit the balance when their source is a credit source and
// are queued for destruction.
func (s *State) TickCoins(dt time.Duration) []Despawned {
	var out []Despawned
	s.Coins.Each(func(id entity.ID, c *Coin) {
		if c.done || c.born == s.Frame {
			return
		}
		if !c.advance(dt) {
			return
		}
		c.done = true
		d := Despawned{ID: id, Value: c.Value, Source: c.source}
		if c.source.Credits() {
			d.Paid = s.Payout(c.Value, c.source)
			s.Balance.Add(d.Paid)
		}
		s.World.MarkForDestruction(id)
		out = append(out, d)
	})
	return out
}

// ---------- index ----------

// RebuildIndex repopulates the tile index from coins whose despawn has not
// started, machines and spots.
func (s *State) RebuildIndex() {
	s.tracked = s.tracked[:0]
	s.Coins.Each(func(id entity.ID, c *Coin) {
		if !c.Armed() && !c.done {
			s.tracked = append(s.tracked, Tracked{ID: id, Pos: c.Pos})
		}
	})
	s.Machines.Each(func(id entity.ID, m *PlacedMachine) {
		s.tracked = append(s.tracked, Tracked{ID: id, Pos: m.Tile.Center()})
	})
	s.Spots.Each(func(id entity.ID, sp *Spot) {
		s.tracked = append(s.tracked, Tracked{ID: id, Pos: sp.Tile.Center()})
	})
	s.Index.Rebuild(s.tracked)
}
