package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/world"
)

// BuildSystem turns tool gestures into placement and demolition requests
// and executes every request queued this tick, UI requests first.
// Phase 1 (Command), after CameraSystem, so the index rebuilt in the next
// phase already reflects this tick's placements.
type BuildSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewBuildSystem(state *world.State, bus *event.Bus, log *zap.Logger) *BuildSystem {
	return &BuildSystem{state: state, bus: bus, log: log}
}

func (s *BuildSystem) Phase() coresys.Phase { return coresys.PhaseCommand }

func (s *BuildSystem) Update(_ time.Duration) {
	s.handleGestures()
	s.processRequests()
}

func (s *BuildSystem) handleGestures() {
	st := s.state
	for _, c := range event.Read[event.Click](s.bus) {
		tile := world.FromWorld(c.Position)
		switch c.Button {
		case gesture.Left:
			if st.Tool != world.KindNone {
				event.Emit(s.bus, event.PlaceRequest{Kind: st.Tool, Tile: tile})
			}
		case gesture.Right:
			if st.Tool != world.KindNone {
				s.log.Debug("build tool cancelled", zap.Stringer("kind", st.Tool))
				st.Tool = world.KindNone
				st.HasGhost = false
				continue
			}
			event.Emit(s.bus, event.DeleteRequest{Tile: tile})
		}
	}

	for _, d := range event.Read[event.Drag](s.bus) {
		if d.Button != gesture.Left || !d.Final || st.Tool == world.KindNone {
			continue
		}
		for _, tile := range world.PlacementPath(world.FromWorld(d.Start), world.FromWorld(d.Position)) {
			event.Emit(s.bus, event.PlaceRequest{Kind: st.Tool, Tile: tile})
		}
	}

	for _, h := range event.Read[event.Hover](s.bus) {
		if st.Tool == world.KindNone {
			st.HasGhost = false
			continue
		}
		st.Ghost = world.FromWorld(h.Position)
		st.HasGhost = true
	}
}

func (s *BuildSystem) processRequests() {
	for _, req := range event.Read[event.PlaceRequest](s.bus) {
		id, outcome := s.state.Place(req.Kind, req.Tile)
		if outcome != world.Placed {
			s.log.Debug("placement rejected",
				zap.Stringer("kind", req.Kind),
				zap.Stringer("tile", req.Tile),
				zap.Stringer("reason", outcome),
				zap.Stringer("balance", s.state.Balance))
		} else {
			s.log.Debug("machine placed", zap.Stringer("kind", req.Kind), zap.Stringer("tile", req.Tile))
		}
		event.Emit(s.bus, event.PlaceResult{Kind: req.Kind, Tile: req.Tile, Machine: id, Outcome: outcome})
	}

	for _, req := range event.Read[event.DeleteRequest](s.bus) {
		kind, ok := s.state.Delete(req.Tile)
		if ok {
			s.log.Debug("machine demolished", zap.Stringer("kind", kind), zap.Stringer("tile", req.Tile))
		}
		event.Emit(s.bus, event.DeleteResult{Tile: req.Tile, Kind: kind, Removed: ok})
	}
}
