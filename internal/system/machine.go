package system

import (
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/world"
)

var one = big.NewInt(1)

// MachineSystem advances every machine's action timer and runs its rule
// when the timer fires. Machines fire in placement order; a coin matched
// by one machine is claimed at once, so a later machine in the same tick
// sees it as unavailable. Phase 4 (Machine).
type MachineSystem struct {
	state  *world.State
	bus    *event.Bus
	motion Motion
	log    *zap.Logger
}

func NewMachineSystem(state *world.State, bus *event.Bus, motion Motion, log *zap.Logger) *MachineSystem {
	return &MachineSystem{state: state, bus: bus, motion: motion, log: log}
}

func (s *MachineSystem) Phase() coresys.Phase { return coresys.PhaseMachine }

func (s *MachineSystem) Update(dt time.Duration) {
	s.state.Machines.Each(func(id entity.ID, m *world.PlacedMachine) {
		if !m.Timer.Tick(dt) {
			return
		}
		if s.fire(m) {
			event.Emit(s.bus, event.MachineFired{Machine: id, Kind: m.Kind, Tile: m.Tile})
		}
	})
}

// fire applies m's rule and reports whether it did anything. Finding no
// eligible coin is the normal idle case.
func (s *MachineSystem) fire(m *world.PlacedMachine) bool {
	st := s.state
	at := m.Tile.Center()
	switch m.Kind {
	case world.Miner:
		s.emit(m, one)
		return true

	case world.Collector:
		for _, off := range m.Kind.Inputs() {
			if id, ok := s.take(m.Tile.Add(off)); ok {
				event.Emit(s.bus, event.CoinPickup{Coin: id, Target: at, Source: world.PayoutCollector})
				return true
			}
		}

	case world.ConveyorUp, world.ConveyorDown, world.ConveyorLeft, world.ConveyorRight:
		for _, off := range m.Kind.Inputs() {
			id, ok := s.take(m.Tile.Add(off))
			if !ok {
				continue
			}
			coin, _ := st.Coins.Get(id)
			event.Emit(s.bus, event.CoinPickup{Coin: id, Target: at, Source: world.PayoutRelay})
			s.emit(m, coin.Value)
			return true
		}

	case world.Adder, world.Multiplier:
		in := m.Kind.Inputs()
		leftID, left, okL := st.PickableCoinAt(m.Tile.Add(in[0]))
		rightID, right, okR := st.PickableCoinAt(m.Tile.Add(in[1]))
		if !okL || !okR {
			return false
		}
		st.ClaimCoin(leftID)
		st.ClaimCoin(rightID)
		event.Emit(s.bus, event.CoinPickup{Coin: leftID, Target: at, Source: world.PayoutRelay})
		event.Emit(s.bus, event.CoinPickup{Coin: rightID, Target: at, Source: world.PayoutRelay})

		v := new(big.Int)
		if m.Kind == world.Adder {
			v.Add(left.Value, right.Value)
		} else {
			v.Mul(left.Value, right.Value)
		}
		s.emit(m, v)
		return true

	default:
		s.log.Warn("machine of unknown kind", zap.Stringer("kind", m.Kind), zap.Stringer("tile", m.Tile))
	}
	return false
}

// take claims the first pickable coin in tile.
func (s *MachineSystem) take(t world.TilePos) (entity.ID, bool) {
	id, _, ok := s.state.PickableCoinAt(t)
	if !ok || !s.state.ClaimCoin(id) {
		return 0, false
	}
	return id, true
}

// emit spawns a coin of value v at the machine, ejected in its direction.
func (s *MachineSystem) emit(m *world.PlacedMachine, v *big.Int) {
	pos := m.Tile.Center()
	vel := s.motion.eject(s.state.Rand, m.Kind.EjectAngle())
	id := s.state.SpawnCoin(v, pos, vel, s.motion.Damping)
	event.Emit(s.bus, event.CoinSpawned{Coin: id, Value: new(big.Int).Set(v), Position: pos})
}
