package system

import (
	"math/big"
	"time"

	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/world"
)

// CoinInteractSystem spawns a coin on every left click made without a
// build tool and claims pickable coins under the hovering pointer.
// Phase 3 (Interact).
type CoinInteractSystem struct {
	state     *world.State
	bus       *event.Bus
	motion    Motion
	clickCoin *big.Int
}

func NewCoinInteractSystem(state *world.State, bus *event.Bus, motion Motion, clickValue int64) *CoinInteractSystem {
	return &CoinInteractSystem{
		state:     state,
		bus:       bus,
		motion:    motion,
		clickCoin: big.NewInt(clickValue),
	}
}

func (s *CoinInteractSystem) Phase() coresys.Phase { return coresys.PhaseInteract }

func (s *CoinInteractSystem) Update(_ time.Duration) {
	st := s.state
	for _, c := range event.Read[event.Click](s.bus) {
		if c.Button != gesture.Left || st.Tool != world.KindNone {
			continue
		}
		id := st.SpawnCoin(s.clickCoin, c.Position, s.motion.scatter(st.Rand), s.motion.Damping)
		event.Emit(s.bus, event.CoinSpawned{Coin: id, Value: new(big.Int).Set(s.clickCoin), Position: c.Position})
	}

	for _, h := range event.Read[event.Hover](s.bus) {
		for _, id := range st.Index.Neighbourhood(world.FromWorld(h.Position)) {
			coin, ok := st.Coins.Get(id)
			if !ok || coin.Pos.Dist(h.Position) > s.motion.HoverRadius {
				continue
			}
			if st.ClaimCoin(id) {
				event.Emit(s.bus, event.CoinPickup{Coin: id, Target: h.Position, Source: world.PayoutHover})
			}
		}
	}
}
