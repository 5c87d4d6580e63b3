package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/gesture"
)

// SampleSource yields the raw pointer state once per tick. The platform
// layer implements it over ebiten; tests script it.
type SampleSource interface {
	Sample() gesture.Sample
}

// IdleSource reports a pointer that is never over the play field.
type IdleSource struct{}

func (IdleSource) Sample() gesture.Sample { return gesture.Sample{} }

// InputSystem runs the gesture recognizer over this tick's pointer sample
// and publishes Click, Drag, Hover and Zoom events. Phase 0 (Input).
type InputSystem struct {
	src   SampleSource
	rec   *gesture.Recognizer
	proj  gesture.Projector
	bus   *event.Bus
	clock time.Duration
	log   *zap.Logger
}

func NewInputSystem(src SampleSource, rec *gesture.Recognizer, proj gesture.Projector, bus *event.Bus, log *zap.Logger) *InputSystem {
	return &InputSystem{src: src, rec: rec, proj: proj, bus: bus, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// SetSource swaps the pointer source, e.g. when a window opens.
func (s *InputSystem) SetSource(src SampleSource) { s.src = src }

// Interaction exposes the combined pointer state for UI arbitration.
func (s *InputSystem) Interaction() gesture.Interaction { return s.rec.Interaction() }

func (s *InputSystem) Update(dt time.Duration) {
	s.clock += dt
	smp := s.src.Sample()
	smp.Time = s.clock

	for _, g := range s.rec.Update(smp, s.proj) {
		switch g.Kind {
		case gesture.Click:
			event.Emit(s.bus, event.Click{Button: g.Button, Position: g.Position})
			s.log.Debug("click", zap.Stringer("button", g.Button),
				zap.Float64("x", g.Position.X), zap.Float64("y", g.Position.Y))
		case gesture.Drag:
			event.Emit(s.bus, event.Drag{
				Button:   g.Button,
				Offset:   g.Offset,
				Start:    g.Start,
				Position: g.Position,
				Final:    g.Final,
			})
		case gesture.Hover:
			event.Emit(s.bus, event.Hover{Position: g.Position})
		case gesture.Zoom:
			event.Emit(s.bus, event.Zoom{Steps: g.Steps})
		}
	}
}
