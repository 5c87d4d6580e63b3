package system

import (
	"time"

	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/world"
)

// IndexSystem rebuilds the tile index from scratch. Phase 2 (Index).
type IndexSystem struct {
	state *world.State
}

func NewIndexSystem(state *world.State) *IndexSystem {
	return &IndexSystem{state: state}
}

func (s *IndexSystem) Phase() coresys.Phase { return coresys.PhaseIndex }

func (s *IndexSystem) Update(_ time.Duration) {
	s.state.RebuildIndex()
}
