package system

import (
	"time"

	"github.com/combiner/clicker/internal/camera"
	"github.com/combiner/clicker/internal/core/event"
	coresys "github.com/combiner/clicker/internal/core/system"
	"github.com/combiner/clicker/internal/gesture"
	"github.com/combiner/clicker/internal/world"
)

// CameraSystem pans on middle drags, and on left drags while no build
// tool is selected, and zooms on the wheel. Phase 1 (Command), registered
// ahead of BuildSystem.
type CameraSystem struct {
	cam      *camera.Camera
	state    *world.State
	bus      *event.Bus
	zoomStep float64
}

func NewCameraSystem(cam *camera.Camera, state *world.State, bus *event.Bus, zoomStep float64) *CameraSystem {
	return &CameraSystem{cam: cam, state: state, bus: bus, zoomStep: zoomStep}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseCommand }

func (s *CameraSystem) Update(dt time.Duration) {
	s.cam.Update(float32(dt.Seconds()))

	for _, d := range event.Read[event.Drag](s.bus) {
		pan := d.Button == gesture.Middle ||
			(d.Button == gesture.Left && s.state.Tool == world.KindNone)
		if pan {
			// Moving the view with the pointer means moving the camera against it.
			s.cam.Translate(d.Offset.Scale(-1))
		}
	}
	for _, z := range event.Read[event.Zoom](s.bus) {
		s.cam.ZoomBy(z.Steps, s.zoomStep)
	}
}
