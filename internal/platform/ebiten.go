// Package platform adapts ebiten's polled input to the simulation's
// pointer samples.
package platform

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/combiner/clicker/internal/geom"
	"github.com/combiner/clicker/internal/gesture"
)

var buttons = [...]struct {
	b gesture.Button
	e ebiten.MouseButton
}{
	{gesture.Left, ebiten.MouseButtonLeft},
	{gesture.Middle, ebiten.MouseButtonMiddle},
	{gesture.Right, ebiten.MouseButtonRight},
}

// Source reads the mouse once per Update. Screen is the logical screen
// returned from Layout; Panels are HUD rectangles that shadow the play
// field for hover purposes.
type Source struct {
	Screen image.Rectangle
	Panels []image.Rectangle
}

func NewSource(width, height int) *Source {
	return &Source{Screen: image.Rect(0, 0, width, height)}
}

// Sample implements system.SampleSource. Time is filled in by the caller.
func (s *Source) Sample() gesture.Sample {
	x, y := ebiten.CursorPosition()
	var smp gesture.Sample
	smp.Screen = geom.V(float64(x), float64(y))
	for _, b := range buttons {
		smp.Down[b.b] = ebiten.IsMouseButtonPressed(b.e)
	}
	_, smp.Wheel = ebiten.Wheel()
	smp.OverSurface = s.overSurface(image.Pt(x, y))
	return smp
}

func (s *Source) overSurface(p image.Point) bool {
	if !p.In(s.Screen) {
		return false
	}
	for _, r := range s.Panels {
		if p.In(r) {
			return false
		}
	}
	return true
}
