// Package game drives the simulation: it owns the state, the event bus and
// the phase runner, and is the only surface the frontends talk to.
package game

import (
	"math/big"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/camera"
	"github.com/combiner/clicker/internal/config"
	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/data"
	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/scripting"
	"github.com/combiner/clicker/internal/system"
	"github.com/combiner/clicker/internal/world"
)

// Options carries everything New needs. Zero fields get defaults, except
// Config, Catalog and Log, which are required.
type Options struct {
	Config  *config.Config
	Catalog *data.MachineCatalog
	Economy scripting.EconomyRules
	Source  system.SampleSource
	Rand    *rand.Rand
	Log     *zap.Logger
}

// Game is one gameplay session. Not safe for concurrent use; call every
// method from the goroutine that calls Tick.
type Game struct {
	state   *world.State
	bus     *event.Bus
	runner  *coresys.Runner
	cam     *camera.Camera
	input   *system.InputSystem
	catalog *data.MachineCatalog
	log     *zap.Logger
}

func New(opts Options) *Game {
	cfg := opts.Config
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	econ := opts.Economy
	if econ == (scripting.EconomyRules{}) {
		econ = scripting.DefaultEconomy()
	}
	src := opts.Source
	if src == nil {
		src = system.IdleSource{}
	}

	params := world.Params{
		SpawnGrace:      cfg.Simulation.SpawnGrace,
		DespawnDuration: cfg.Simulation.DespawnDuration,
	}
	state := world.NewState(opts.Catalog, params, cfg.Simulation.StartingBalance, rng)
	state.Payout = econ.Payout

	cam := camera.New(camera.Rect{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
	}, cfg.Input.InitialZoom)
	cam.SetZoomLimits(cfg.Input.MinZoom, cfg.Input.MaxZoom)

	motion := system.Motion{
		Damping:     cfg.Simulation.CoinDamping,
		ClickSpeed:  cfg.Simulation.ClickCoinSpeed,
		EjectSpeed:  cfg.Simulation.EjectSpeed,
		EjectJitter: cfg.Simulation.EjectSpeedJitter,
		EjectSpread: cfg.Simulation.EjectSpread,
		HoverRadius: cfg.Simulation.HoverRadius,
	}
	rec := gesture.NewRecognizer(gesture.Thresholds{
		ClickDuration: cfg.Input.ClickDuration,
		ClickDistance: cfg.Input.ClickDistance,
	})

	bus := event.NewBus()
	log := opts.Log
	g := &Game{
		state:   state,
		bus:     bus,
		runner:  coresys.NewRunner(),
		cam:     cam,
		input:   system.NewInputSystem(src, rec, cam, bus, log),
		catalog: opts.Catalog,
		log:     log,
	}

	g.runner.Register(g.input)
	g.runner.Register(system.NewCameraSystem(cam, state, bus, cfg.Input.ZoomStep))
	g.runner.Register(system.NewBuildSystem(state, bus, log))
	g.runner.Register(system.NewIndexSystem(state))
	g.runner.Register(system.NewCoinInteractSystem(state, bus, motion, econ.ClickCoinValue))
	g.runner.Register(system.NewMachineSystem(state, bus, motion, log))
	g.runner.Register(system.NewCoinLifecycleSystem(state, bus, log))
	g.runner.Register(system.NewCleanupSystem(state.World, bus))
	log.Debug("simulation ready", zap.Int("systems", g.runner.Len()), zap.Int("machine_kinds", opts.Catalog.Count()))
	return g
}

// Tick advances the simulation by dt.
func (g *Game) Tick(dt time.Duration) {
	g.state.BeginFrame(dt)
	g.runner.Tick(dt)
}

// Subscribe registers an observer for events of type T. Observers run at
// the end of each tick.
func Subscribe[T any](g *Game, fn func(T)) {
	event.Subscribe(g.bus, fn)
}

func (g *Game) SetSource(src system.SampleSource) { g.input.SetSource(src) }

// ---------- build tool ----------

// SelectTool arms the build tool with kind. Like the shop buttons, it only
// succeeds when the balance covers the machine.
func (g *Game) SelectTool(kind world.MachineKind) bool {
	if !g.state.CanAfford(kind) {
		return false
	}
	g.state.Tool = kind
	return true
}

func (g *Game) ClearTool() {
	g.state.Tool = world.KindNone
	g.state.HasGhost = false
}

func (g *Game) Tool() world.MachineKind { return g.state.Tool }

// Ghost is the tile the build preview sits on, if a tool is selected.
func (g *Game) Ghost() (world.TilePos, bool) {
	return g.state.Ghost, g.state.HasGhost && g.state.Tool != world.KindNone
}

// RequestPlace queues a placement for the next tick. The outcome arrives
// as an event.PlaceResult.
func (g *Game) RequestPlace(kind world.MachineKind, tile world.TilePos) {
	event.Emit(g.bus, event.PlaceRequest{Kind: kind, Tile: tile})
}

// RequestDelete queues a demolition for the next tick.
func (g *Game) RequestDelete(tile world.TilePos) {
	event.Emit(g.bus, event.DeleteRequest{Tile: tile})
}

// ---------- read-only views ----------

func (g *Game) Balance() *big.Int                  { return g.state.Balance.Value() }
func (g *Game) CanAfford(k world.MachineKind) bool { return g.state.CanAfford(k) }
func (g *Game) Camera() *camera.Camera             { return g.cam }
func (g *Game) Catalog() *data.MachineCatalog      { return g.catalog }
func (g *Game) Interaction() gesture.Interaction   { return g.input.Interaction() }
func (g *Game) Elapsed() time.Duration             { return g.state.Elapsed }

// IndexStats reports the occupied tiles and total entries of the last
// tile index rebuild.
func (g *Game) IndexStats() (tiles, entries int) {
	return g.state.Index.Tiles(), g.state.Index.Count()
}

type CoinView struct {
	ID    entity.ID
	Pos   geom.Vec2
	Value *big.Int
	Scale float64
}

type MachineView struct {
	ID   entity.ID
	Kind world.MachineKind
	Tile world.TilePos
}

type SpotView struct {
	Tile   world.TilePos
	Hidden bool
}

// Coins lists live coins in spawn order.
func (g *Game) Coins() []CoinView {
	out := make([]CoinView, 0, g.state.Coins.Len())
	g.state.Coins.Each(func(id entity.ID, c *world.Coin) {
		out = append(out, CoinView{ID: id, Pos: c.Pos, Value: new(big.Int).Set(c.Value), Scale: c.Scale()})
	})
	return out
}

// Machines lists placed machines in placement order.
func (g *Game) Machines() []MachineView {
	out := make([]MachineView, 0, g.state.Machines.Len())
	g.state.Machines.Each(func(id entity.ID, m *world.PlacedMachine) {
		out = append(out, MachineView{ID: id, Kind: m.Kind, Tile: m.Tile})
	})
	return out
}

func (g *Game) Spots() []SpotView {
	out := make([]SpotView, 0, g.state.Spots.Len())
	g.state.Spots.Each(func(_ entity.ID, s *world.Spot) {
		out = append(out, SpotView{Tile: s.Tile, Hidden: s.Hidden})
	})
	return out
}
