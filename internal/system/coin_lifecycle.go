package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/world"
)

// CoinLifecycleSystem arms despawns for this tick's pickups, then advances
// every coin. Pickups are applied in emission order and the first one for
// a coin wins; later ones are dropped. Finished credit despawns pay into
// the balance. Phase 5 (Lifecycle).
type CoinLifecycleSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewCoinLifecycleSystem(state *world.State, bus *event.Bus, log *zap.Logger) *CoinLifecycleSystem {
	return &CoinLifecycleSystem{state: state, bus: bus, log: log}
}

func (s *CoinLifecycleSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }

func (s *CoinLifecycleSystem) Update(dt time.Duration) {
	for _, p := range event.Read[event.CoinPickup](s.bus) {
		if !s.state.RequestPickup(p.Coin, p.Target, p.Source) {
			s.log.Debug("pickup dropped", zap.Uint64("coin", uint64(p.Coin)), zap.Stringer("source", p.Source))
		}
	}

	for _, d := range s.state.TickCoins(dt) {
		if d.Paid == nil {
			continue
		}
		event.Emit(s.bus, event.CoinCollected{Coin: d.ID, Amount: d.Paid, Source: d.Source})
	}
}
