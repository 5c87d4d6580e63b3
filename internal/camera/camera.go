// Package camera converts between screen pixels and the y-up world plane.
package camera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/combiner/clicker/internal/geom"
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view onto the world: position, zoom, rotation, and viewport.
// The world is y-up, screen space is y-down.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is pixels per world unit (0.25 shows four world units per pixel).
	Zoom float64
	// Rotation is the camera rotation in radians.
	Rotation float64
	// Viewport is the screen-space rectangle the camera maps onto.
	Viewport Rect

	MinZoom, MaxZoom float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// New creates a Camera centred on the world origin.
func New(viewport Rect, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		Zoom:     zoom,
		Viewport: viewport,
		MinZoom:  zoom,
		MaxZoom:  zoom,
		dirty:    true,
	}
}

// SetZoomLimits bounds ZoomBy. The current zoom is clamped immediately.
func (c *Camera) SetZoomLimits(min, max float64) {
	if min <= 0 || max < min {
		return
	}
	c.MinZoom, c.MaxZoom = min, max
	c.setZoom(c.Zoom)
}

// SetViewport resizes the screen rectangle, e.g. after a window resize.
func (c *Camera) SetViewport(v Rect) {
	if v != c.Viewport {
		c.Viewport = v
		c.dirty = true
	}
}

// Translate moves the camera by a world-space offset.
func (c *Camera) Translate(d geom.Vec2) {
	if d.IsZero() {
		return
	}
	c.X += d.X
	c.Y += d.Y
	c.dirty = true
}

// ZoomBy applies wheel steps: each positive step shrinks the visible world by
// step (0.2 = 20%), negative steps grow it. The result is clamped to the limits.
func (c *Camera) ZoomBy(steps, step float64) {
	if steps == 0 {
		return
	}
	factor := 1 - steps*step
	if factor <= 0 {
		c.setZoom(c.MaxZoom)
		return
	}
	// The visible world scales by factor, so pixels-per-unit scales by 1/factor.
	c.setZoom(c.Zoom / factor)
}

func (c *Camera) setZoom(z float64) {
	z = math.Max(c.MinZoom, math.Min(z, c.MaxZoom))
	if z != c.Zoom {
		c.Zoom = z
		c.dirty = true
	}
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances a running scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * FlipY * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	xx := z * cos
	xy := -z * sin
	// FlipY negates the second row.
	yx := -z * sin
	yy := -z * cos
	tx := cx - (xx*c.X + xy*c.Y)
	ty := cy - (yx*c.X + yy*c.Y)

	c.viewMatrix = [6]float64{xx, yx, xy, yy, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(w geom.Vec2) geom.Vec2 {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, w)
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(s geom.Vec2) geom.Vec2 {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, s)
}

// ScreenDeltaToWorld converts a screen-space displacement to world space.
// Only rotation, zoom and the y flip apply; camera position does not.
func (c *Camera) ScreenDeltaToWorld(d geom.Vec2) geom.Vec2 {
	c.computeViewMatrix()
	m := c.invViewMatrix
	return geom.Vec2{X: m[0]*d.X + m[2]*d.Y, Y: m[1]*d.X + m[3]*d.Y}
}

// MarkDirty forces a recomputation of the view matrix after direct field edits.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine inverts a 2D affine matrix stored as [a b c d tx ty].
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p geom.Vec2) geom.Vec2 {
	return geom.Vec2{X: m[0]*p.X + m[2]*p.Y + m[4], Y: m[1]*p.X + m[3]*p.Y + m[5]}
}
