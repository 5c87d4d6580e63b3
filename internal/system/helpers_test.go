package system

import (
	"math/big"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/core/event"
	"github.com/combiner/clicker/internal/data"
	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/world"
)

// fixture wires the simulation phases by hand so a test can run them one
// at a time.
type fixture struct {
	t         *testing.T
	st        *world.State
	bus       *event.Bus
	build     *BuildSystem
	index     *IndexSystem
	interact  *CoinInteractSystem
	machines  *MachineSystem
	lifecycle *CoinLifecycleSystem
	cleanup   *CleanupSystem
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	catalog, err := data.DefaultMachineCatalog()
	if err != nil {
		t.Fatal(err)
	}
	log := zaptest.NewLogger(t)
	st := world.NewState(catalog, world.DefaultParams(), balance, rand.New(rand.NewSource(7)))
	st.BeginFrame(0)
	bus := event.NewBus()
	motion := DefaultMotion()
	return &fixture{
		t:         t,
		st:        st,
		bus:       bus,
		build:     NewBuildSystem(st, bus, log),
		index:     NewIndexSystem(st),
		interact:  NewCoinInteractSystem(st, bus, motion, 1),
		machines:  NewMachineSystem(st, bus, motion, log),
		lifecycle: NewCoinLifecycleSystem(st, bus, log),
		cleanup:   NewCleanupSystem(st.World, bus),
	}
}

// coin drops a still coin at the centre of tile.
func (f *fixture) coin(tile world.TilePos, value int64) entity.ID {
	return f.st.SpawnCoin(big.NewInt(value), tile.Center(), geom.Vec2{}, 0.6)
}

// settle lets every existing coin finish its spawn grace.
func (f *fixture) settle() {
	f.st.BeginFrame(f.st.Params.SpawnGrace)
	f.st.TickCoins(f.st.Params.SpawnGrace)
}

func (f *fixture) place(kind world.MachineKind, tile world.TilePos) {
	f.t.Helper()
	if _, out := f.st.Place(kind, tile); out != world.Placed {
		f.t.Fatalf("place %v at %v: %v", kind, tile, out)
	}
}

// tick runs the index, machine and lifecycle phases for one frame.
func (f *fixture) tick(dt time.Duration) {
	f.st.BeginFrame(dt)
	f.index.Update(dt)
	f.interact.Update(dt)
	f.machines.Update(dt)
	f.lifecycle.Update(dt)
}

func (f *fixture) endTick() {
	f.cleanup.Update(0)
}

func pickups(bus *event.Bus, src world.PayoutSource) int {
	n := 0
	for _, p := range event.Read[event.CoinPickup](bus) {
		if p.Source == src {
			n++
		}
	}
	return n
}
