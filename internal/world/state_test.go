package world

import (
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/geom"
)

type specTable map[MachineKind]MachineSpec

func (t specTable) Lookup(k MachineKind) (MachineSpec, bool) {
	s, ok := t[k]
	return s, ok
}

var testCatalog = specTable{
	Miner:     {Kind: Miner, Cost: 20, Period: time.Second, Spots: []TilePos{{0, -1}}},
	Collector: {Kind: Collector, Cost: 200, Period: 100 * time.Millisecond, Spots: []TilePos{{0, 1}}},
	Adder:     {Kind: Adder, Cost: 500, Period: time.Second, Spots: []TilePos{{-1, 0}, {1, 0}, {0, -1}}},
}

func newTestState(balance int64) *State {
	s := NewState(testCatalog, DefaultParams(), balance, rand.New(rand.NewSource(1)))
	s.BeginFrame(0)
	return s
}

func step(s *State, dt time.Duration) []Despawned {
	s.BeginFrame(dt)
	return s.TickCoins(dt)
}

func TestCoinSpawnGrace(t *testing.T) {
	s := newTestState(0)
	id := s.SpawnCoin(big.NewInt(1), geom.V(10, 10), geom.Vec2{}, 0.6)
	coin, _ := s.Coins.Get(id)

	if coin.Pickable() {
		t.Fatal("coin pickable at creation")
	}
	step(s, 100*time.Millisecond)
	step(s, 99*time.Millisecond)
	if coin.Pickable() {
		t.Fatalf("coin pickable at age %v", coin.Age())
	}
	if s.RequestPickup(id, geom.Vec2{}, PayoutHover) {
		t.Fatal("pickup armed during grace")
	}
	step(s, 2*time.Millisecond)
	if !coin.Pickable() {
		t.Fatalf("coin not pickable at age %v", coin.Age())
	}
	if coin.Scale() != 1 {
		t.Errorf("Scale after grace = %v, want 1", coin.Scale())
	}
}

func TestCoinNotAdvancedInCreationFrame(t *testing.T) {
	s := newTestState(0)
	id := s.SpawnCoin(big.NewInt(1), geom.Vec2{}, geom.V(10, 0), 0.5)
	s.TickCoins(time.Second)
	coin, _ := s.Coins.Get(id)
	if coin.Age() != 0 || coin.Pos.X != 0 {
		t.Fatalf("coin advanced in its creation frame: age %v pos %v", coin.Age(), coin.Pos)
	}

	step(s, 16*time.Millisecond)
	step(s, 16*time.Millisecond)
	if coin.Pos.X != 15 || coin.Vel.X != 2.5 {
		t.Errorf("after two frames pos=%v vel=%v, want x=15 vx=2.5", coin.Pos, coin.Vel)
	}
}

func pickableCoin(t *testing.T, s *State, value int64, pos geom.Vec2) entity.ID {
	t.Helper()
	id := s.SpawnCoin(big.NewInt(value), pos, geom.Vec2{}, 0.6)
	step(s, s.Params.SpawnGrace)
	if c, _ := s.Coins.Get(id); !c.Pickable() {
		t.Fatal("coin not pickable after grace")
	}
	return id
}

func TestCreditPickupPaysOnce(t *testing.T) {
	s := newTestState(0)
	id := pickableCoin(t, s, 7, geom.V(10, 10))

	if !s.RequestPickup(id, geom.V(500, 500), PayoutCollector) {
		t.Fatal("first pickup rejected")
	}
	if s.RequestPickup(id, geom.Vec2{}, PayoutRelay) {
		t.Fatal("second pickup armed an armed coin")
	}
	coin, _ := s.Coins.Get(id)
	if coin.Source() != PayoutCollector || coin.Pickable() {
		t.Fatalf("source=%v pickable=%v", coin.Source(), coin.Pickable())
	}

	if done := step(s, 50*time.Millisecond); len(done) != 0 {
		t.Fatalf("despawn finished early: %v", done)
	}
	if coin.Scale() <= 0 || coin.Scale() >= 1 {
		t.Errorf("mid-despawn scale = %v", coin.Scale())
	}
	done := step(s, 50*time.Millisecond)
	if len(done) != 1 || done[0].ID != id || done[0].Paid.Int64() != 7 {
		t.Fatalf("despawn result = %+v", done)
	}
	if coin.Pos != geom.V(500, 500) {
		t.Errorf("coin ended at %v, want pickup target", coin.Pos)
	}
	if s.Balance.String() != "7" {
		t.Errorf("balance = %s, want 7", s.Balance)
	}

	if again := step(s, 50*time.Millisecond); len(again) != 0 {
		t.Errorf("finished coin reported twice")
	}
	s.World.FlushDestroyQueue()
	if s.Coins.Len() != 0 {
		t.Errorf("coin survived cleanup")
	}
	if s.RequestPickup(id, geom.Vec2{}, PayoutHover) {
		t.Error("pickup of despawned coin accepted")
	}
	if s.Balance.String() != "7" {
		t.Errorf("balance = %s after cleanup, want 7", s.Balance)
	}
}

func TestRelayPickupDiscardsValue(t *testing.T) {
	s := newTestState(3)
	id := pickableCoin(t, s, 50, geom.V(10, 10))
	s.RequestPickup(id, geom.V(0, 0), PayoutRelay)
	done := step(s, 100*time.Millisecond)
	if len(done) != 1 || done[0].Paid != nil {
		t.Fatalf("relay despawn = %+v", done)
	}
	if s.Balance.String() != "3" {
		t.Errorf("balance = %s, want 3", s.Balance)
	}
}

func TestPayoutFunc(t *testing.T) {
	s := newTestState(0)
	s.Payout = func(v *big.Int, _ PayoutSource) *big.Int {
		return new(big.Int).Mul(v, v)
	}
	id := pickableCoin(t, s, 6, geom.V(10, 10))
	s.RequestPickup(id, geom.Vec2{}, PayoutHover)
	step(s, 100*time.Millisecond)
	if s.Balance.String() != "36" {
		t.Errorf("balance = %s, want 36", s.Balance)
	}
}

func TestClaimCoin(t *testing.T) {
	s := newTestState(0)
	id := pickableCoin(t, s, 1, geom.V(10, 10))
	s.RebuildIndex()

	got, _, ok := s.PickableCoinAt(Tile(0, 0))
	if !ok || got != id {
		t.Fatalf("PickableCoinAt = %v, %v", got, ok)
	}
	if !s.ClaimCoin(id) {
		t.Fatal("claim of pickable coin failed")
	}
	if s.ClaimCoin(id) {
		t.Fatal("coin claimed twice")
	}
	if _, _, ok := s.PickableCoinAt(Tile(0, 0)); ok {
		t.Fatal("claimed coin still reported pickable")
	}
	if !s.RequestPickup(id, geom.Vec2{}, PayoutRelay) {
		t.Fatal("claimer could not arm the despawn")
	}
}

func TestRebuildIndexTracksAllKinds(t *testing.T) {
	s := newTestState(1000)
	coin := pickableCoin(t, s, 1, geom.V(10, 10))
	armed := pickableCoin(t, s, 1, geom.V(20, 20))
	s.RequestPickup(armed, geom.Vec2{}, PayoutHover)
	machine, _ := s.Place(Miner, Tile(0, 0))

	s.RebuildIndex()
	ids := s.Index.Lookup(Tile(0, 0))
	if len(ids) != 2 || ids[0] != coin || ids[1] != machine {
		t.Errorf("Lookup(0,0) = %v, want [coin machine]", ids)
	}
	if n := len(s.Index.Lookup(Tile(0, -1))); n != 1 {
		t.Errorf("spot tile holds %d ids, want 1", n)
	}
}

func TestPlaceFunds(t *testing.T) {
	s := newTestState(15)
	if _, out := s.Place(Miner, Tile(0, 0)); out != RejectedFunds {
		t.Fatalf("outcome = %v, want insufficient_funds", out)
	}
	if s.Balance.String() != "15" || s.Machines.Len() != 0 {
		t.Fatalf("rejection changed state: balance %s machines %d", s.Balance, s.Machines.Len())
	}

	s = newTestState(25)
	id, out := s.Place(Miner, Tile(0, 0))
	if out != Placed {
		t.Fatalf("outcome = %v, want placed", out)
	}
	if s.Balance.String() != "5" {
		t.Errorf("balance = %s, want 5", s.Balance)
	}
	m, ok := s.Machines.Get(id)
	if !ok || m.Kind != Miner || m.Tile != Tile(0, 0) || m.Timer.Period != time.Second {
		t.Fatalf("machine = %+v", m)
	}

	s.Balance.Add(big.NewInt(1000))
	if _, out := s.Place(Miner, Tile(0, 0)); out != RejectedOccupied {
		t.Errorf("second place outcome = %v, want occupied", out)
	}
	if s.Balance.String() != "1005" {
		t.Errorf("occupied rejection charged: balance %s", s.Balance)
	}
	if _, out := s.Place(Multiplier, Tile(4, 4)); out != RejectedUnknownKind {
		t.Errorf("uncatalogued kind outcome = %v", out)
	}
}

func TestSpotsHideRevealAndOrphan(t *testing.T) {
	s := newTestState(10000)
	s.Place(Miner, Tile(0, 0))
	sp, ok := s.SpotAt(Tile(0, -1))
	if !ok || sp.Hidden {
		t.Fatalf("spot below miner: %+v, %v", sp, ok)
	}

	s.Place(Miner, Tile(0, -1))
	if !sp.Hidden {
		t.Error("spot under a machine is visible")
	}
	if _, ok := s.SpotAt(Tile(0, -2)); !ok {
		t.Error("second miner laid no spot")
	}

	if kind, ok := s.Delete(Tile(0, -1)); !ok || kind != Miner {
		t.Fatalf("Delete = %v, %v", kind, ok)
	}
	if sp.Hidden {
		t.Error("spot not revealed after demolition")
	}
	if _, ok := s.SpotAt(Tile(0, -2)); ok {
		t.Error("orphaned spot survived")
	}

	s.Delete(Tile(0, 0))
	if s.Spots.Len() != 0 || s.Machines.Len() != 0 {
		t.Errorf("left %d spots, %d machines", s.Spots.Len(), s.Machines.Len())
	}
	if _, ok := s.Delete(Tile(0, 0)); ok {
		t.Error("delete of empty tile reported success")
	}
}

func TestSharedSpotSurvivesNeighbourDemolition(t *testing.T) {
	s := newTestState(10000)
	s.Place(Adder, Tile(0, 0))
	s.Place(Adder, Tile(2, 0))
	if s.Spots.Len() != 5 {
		t.Fatalf("spots = %d, want 5", s.Spots.Len())
	}

	s.Delete(Tile(0, 0))
	if _, ok := s.SpotAt(Tile(1, 0)); !ok {
		t.Error("shared spot removed")
	}
	for _, gone := range []TilePos{Tile(-1, 0), Tile(0, -1)} {
		if _, ok := s.SpotAt(gone); ok {
			t.Errorf("orphan spot at %v survived", gone)
		}
	}
	if s.Spots.Len() != 3 {
		t.Errorf("spots = %d, want 3", s.Spots.Len())
	}
	if _, out := s.Place(Adder, Tile(0, 0)); out != Placed {
		t.Errorf("re-place on freed tile: %v", out)
	}
}
