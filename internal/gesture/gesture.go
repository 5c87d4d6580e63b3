// Package gesture turns raw pointer samples into Click, Drag, Hover and
// Zoom gestures. Each mouse button runs its own state machine:
//
//	Idle -> Pressed{t0, screen0, world0} -> Dragging{last} | Idle
//
// A release counts as a click only when it comes before ClickDuration and
// within ClickDistance screen pixels of the press. Drag offsets are
// reported in world space through the camera, so panning and drag
// placement behave the same at every zoom level.
package gesture

import (
	"time"

	"github.com/combiner/clicker/internal/geom"
)

type Button uint8

const (
	Left Button = iota
	Middle
	Right
	numButtons
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	}
	return "unknown"
}

// State is one button's recognizer state.
type State uint8

const (
	Idle State = iota
	Pressed
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Interaction is the combined state across buttons, ordered by priority.
type Interaction uint8

const (
	InteractionIdle Interaction = iota
	InteractionHovering
	InteractionDragging
)

func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionHovering:
		return "hovering"
	case InteractionDragging:
		return "dragging"
	}
	return "unknown"
}

type Kind uint8

const (
	Click Kind = iota
	Drag
	Hover
	Zoom
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case Drag:
		return "drag"
	case Hover:
		return "hover"
	case Zoom:
		return "zoom"
	}
	return "unknown"
}

// Gesture is one recognized event. Positions are world coordinates.
type Gesture struct {
	Kind   Kind
	Button Button

	// Position is the press position for Click, the current pointer
	// position for Drag and Hover.
	Position geom.Vec2
	// Start is the press position of a Drag.
	Start geom.Vec2
	// Offset is the world-space movement a Drag covers.
	Offset geom.Vec2
	// Final marks the Drag emitted on release.
	Final bool
	// Steps is the wheel movement of a Zoom.
	Steps float64
}

// Sample is the raw pointer state for one frame.
type Sample struct {
	Time        time.Duration // monotonic, from the start of the session
	Screen      geom.Vec2
	Down        [numButtons]bool
	OverSurface bool // pointer is over the play field, not a UI widget
	Wheel       float64
}

// Projector maps screen coordinates into the world. *camera.Camera
// satisfies it.
type Projector interface {
	ScreenToWorld(s geom.Vec2) geom.Vec2
	ScreenDeltaToWorld(d geom.Vec2) geom.Vec2
}

type Thresholds struct {
	ClickDuration time.Duration
	ClickDistance float64 // screen pixels
}

func DefaultThresholds() Thresholds {
	return Thresholds{ClickDuration: 200 * time.Millisecond, ClickDistance: 10}
}

type buttonState struct {
	state   State
	t0      time.Duration
	screen0 geom.Vec2
	world0  geom.Vec2
	last    geom.Vec2
}

// Recognizer holds the per-button state machines. Not safe for
// concurrent use; it runs on the tick goroutine.
type Recognizer struct {
	th       Thresholds
	buttons  [numButtons]buttonState
	prevDown [numButtons]bool
	hovering bool
	out      []Gesture
}

func NewRecognizer(th Thresholds) *Recognizer {
	return &Recognizer{th: th, out: make([]Gesture, 0, 8)}
}

// State returns the state of one button.
func (r *Recognizer) State(b Button) State {
	if b >= numButtons {
		return Idle
	}
	return r.buttons[b].state
}

// Interaction is the highest-priority state across buttons:
// Dragging > Hovering > Idle.
func (r *Recognizer) Interaction() Interaction {
	for _, b := range r.buttons {
		if b.state == Dragging {
			return InteractionDragging
		}
	}
	if r.hovering {
		return InteractionHovering
	}
	return InteractionIdle
}

// Update feeds one sample and returns the gestures it completes, buttons
// in Left, Middle, Right order, then Hover, then Zoom. The returned slice
// is reused by the next call.
func (r *Recognizer) Update(s Sample, proj Projector) []Gesture {
	r.out = r.out[:0]
	transitioned := false
	for i := range r.buttons {
		if r.step(Button(i), s, proj) {
			transitioned = true
		}
		r.prevDown[i] = s.Down[i]
	}

	r.hovering = false
	if s.OverSurface && !transitioned && r.allIdle() {
		r.hovering = true
		r.out = append(r.out, Gesture{Kind: Hover, Position: proj.ScreenToWorld(s.Screen)})
	}
	if s.Wheel != 0 && s.OverSurface {
		r.out = append(r.out, Gesture{Kind: Zoom, Steps: s.Wheel})
	}
	return r.out
}

// step advances one button and reports whether it changed state.
func (r *Recognizer) step(b Button, s Sample, proj Projector) bool {
	st := &r.buttons[b]
	down := s.Down[b]

	switch st.state {
	case Idle:
		// A release with no press behind it falls through here and is ignored.
		if !down || r.prevDown[b] || !s.OverSurface {
			return false
		}
		*st = buttonState{
			state:   Pressed,
			t0:      s.Time,
			screen0: s.Screen,
			world0:  proj.ScreenToWorld(s.Screen),
			last:    s.Screen,
		}
		return true

	case Pressed:
		elapsed := s.Time - st.t0
		moved := s.Screen.Dist(st.screen0)
		withinClick := elapsed < r.th.ClickDuration && moved < r.th.ClickDistance
		if !down {
			if withinClick {
				r.out = append(r.out, Gesture{Kind: Click, Button: b, Position: st.world0})
			} else {
				r.emitDrag(b, st, s, proj, true)
			}
			st.state = Idle
			return true
		}
		if withinClick {
			return false
		}
		r.emitDrag(b, st, s, proj, false)
		st.state = Dragging
		return true

	case Dragging:
		r.emitDrag(b, st, s, proj, !down)
		if !down {
			st.state = Idle
			return true
		}
	}
	return false
}

// emitDrag reports the movement since the last drag sample and moves the
// reference point forward.
func (r *Recognizer) emitDrag(b Button, st *buttonState, s Sample, proj Projector, final bool) {
	r.out = append(r.out, Gesture{
		Kind:     Drag,
		Button:   b,
		Position: proj.ScreenToWorld(s.Screen),
		Start:    st.world0,
		Offset:   proj.ScreenDeltaToWorld(s.Screen.Sub(st.last)),
		Final:    final,
	})
	st.last = s.Screen
}

func (r *Recognizer) allIdle() bool {
	for _, b := range r.buttons {
		if b.state != Idle {
			return false
		}
	}
	return true
}
