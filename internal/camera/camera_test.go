package camera

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/combiner/clicker/internal/geom"
)

const epsilon = 1e-9

func approxVec(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func newTestCamera(zoom float64) *Camera {
	return New(Rect{Width: 800, Height: 600}, zoom)
}

func TestWorldOriginMapsToViewportCenter(t *testing.T) {
	cam := newTestCamera(1)
	got := cam.WorldToScreen(geom.V(0, 0))
	if !approxVec(got, geom.V(400, 300)) {
		t.Errorf("WorldToScreen(0,0) = %v, want (400,300)", got)
	}
}

func TestWorldIsYUp(t *testing.T) {
	cam := newTestCamera(1)
	got := cam.WorldToScreen(geom.V(0, 10))
	if !approxVec(got, geom.V(400, 290)) {
		t.Errorf("WorldToScreen(0,10) = %v, want (400,290)", got)
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	cam := newTestCamera(0.25)
	cam.X, cam.Y, cam.Rotation = 130, -75, 0.3
	cam.MarkDirty()

	points := []geom.Vec2{geom.V(0, 0), geom.V(512, -256), geom.V(-1000, 333)}
	for _, p := range points {
		back := cam.ScreenToWorld(cam.WorldToScreen(p))
		if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
			t.Errorf("round trip %v -> %v", p, back)
		}
	}
}

func TestScreenDeltaToWorld(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		rotation float64
		camX     float64
		delta    geom.Vec2
		want     geom.Vec2
	}{
		{"zoomed out right", 0.25, 0, 0, geom.V(4, 0), geom.V(16, 0)},
		{"screen down is world down", 0.25, 0, 0, geom.V(0, 4), geom.V(0, -16)},
		{"position ignored", 1, 0, 5000, geom.V(3, 0), geom.V(3, 0)},
		{"quarter turn", 0.5, math.Pi / 2, 0, geom.V(0, 1), geom.V(2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera(tt.zoom)
			cam.Rotation = tt.rotation
			cam.X = tt.camX
			cam.MarkDirty()
			got := cam.ScreenDeltaToWorld(tt.delta)
			if !approxVec(got, tt.want) {
				t.Errorf("ScreenDeltaToWorld(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestTranslateMovesView(t *testing.T) {
	cam := newTestCamera(1)
	cam.WorldToScreen(geom.V(0, 0)) // prime the cache
	cam.Translate(geom.V(100, 50))
	got := cam.WorldToScreen(geom.V(100, 50))
	if !approxVec(got, geom.V(400, 300)) {
		t.Errorf("camera centre maps to %v, want (400,300)", got)
	}
}

func TestZoomByClamps(t *testing.T) {
	cam := newTestCamera(0.25)
	cam.SetZoomLimits(0.05, 1)

	cam.ZoomBy(1, 0.2)
	if math.Abs(cam.Zoom-0.3125) > epsilon {
		t.Errorf("zoom after one step = %v, want 0.3125", cam.Zoom)
	}
	cam.ZoomBy(-100, 0.2)
	if cam.Zoom != 0.05 {
		t.Errorf("zoom after big zoom-out = %v, want 0.05", cam.Zoom)
	}
	cam.ZoomBy(10, 0.2)
	if cam.Zoom != 1 {
		t.Errorf("zoom after factor<=0 = %v, want max 1", cam.Zoom)
	}
}

func TestScrollTo(t *testing.T) {
	cam := newTestCamera(1)
	cam.ScrollTo(100, -50, 1, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}
	cam.Update(0.5)
	if math.Abs(cam.X-50) > 1e-3 || math.Abs(cam.Y+25) > 1e-3 {
		t.Errorf("halfway = (%v,%v), want (50,-25)", cam.X, cam.Y)
	}
	cam.Update(0.6)
	if cam.X != 100 || cam.Y != -50 {
		t.Errorf("end = (%v,%v), want (100,-50)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("Scrolling() = true after finish")
	}
}
