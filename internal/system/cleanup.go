package system

import (
	"time"

	"github.com/combiner/clicker/internal/core/entity"
	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end,
// hands the tick's events to subscribers, and clears the bus.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *entity.World
	bus   *event.Bus
}

func NewCleanupSystem(world *entity.World, bus *event.Bus) *CleanupSystem {
	return &CleanupSystem{world: world, bus: bus}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
	s.bus.DispatchAll()
	s.bus.Clear()
}
