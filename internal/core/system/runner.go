package system

import (
	"fmt"
	"time"
)

// Runner drives one tick through every phase. Each phase keeps its systems
// in registration order, so no sorting is needed.
type Runner struct {
	phases [phaseCount][]System
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register appends s to its phase. A phase outside the pipeline is a
// wiring bug and panics at startup.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system %T registered for unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
}

// Tick runs every phase in order with the same dt.
func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
			s.Update(dt)
		}
	}
}

// Len reports how many systems are registered.
func (r *Runner) Len() int {
	n := 0
	for _, systems := range r.phases {
		n += len(systems)
	}
	return n
}
