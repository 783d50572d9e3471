// Package viewport maps between screen pixels and world coordinates on the
// infinite board.
//
// A screen point s and a world point w are related by
//
//	s = w*Scale + Translate
//
// so panning and zooming never touch the world-space coordinates of drawn
// objects.
package viewport

import (
	"math"

	"InfiniteBoard/internal/geom"
)

const (
	MinScale = 0.1
	MaxScale = 5.0

	// ZoomStep is the scale change applied per wheel notch.
	ZoomStep = 0.1
)

// Viewport holds the current pan and zoom. The zero value is not usable, use New.
type Viewport struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// New returns the identity viewport.
func New() Viewport {
	return Viewport{Scale: 1}
}

// Translate returns the translation as a point.
func (v Viewport) Translate() geom.Point {
	return geom.Pt(v.TranslateX, v.TranslateY)
}

// ToWorld converts a screen point to world space.
func (v Viewport) ToWorld(s geom.Point) geom.Point {
	return s.Sub(v.Translate()).Div(v.Scale)
}

// ToScreen converts a world point to screen space.
func (v Viewport) ToScreen(w geom.Point) geom.Point {
	return w.Mul(v.Scale).Add(v.Translate())
}

// Zoom changes the scale by delta, clamped to [MinScale, MaxScale], keeping
// the world point under anchor fixed on screen.
func (v *Viewport) Zoom(anchor geom.Point, delta float64) {
	if !anchor.IsFinite() || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	world := v.ToWorld(anchor)
	v.Scale = clamp(v.Scale+delta, MinScale, MaxScale)
	t := anchor.Sub(world.Mul(v.Scale))
	v.TranslateX, v.TranslateY = t.X, t.Y
}

// Pan shifts the translation by a screen-space delta divided by the scale.
func (v *Viewport) Pan(delta geom.Point) {
	if !delta.IsFinite() {
		return
	}
	d := delta.Div(v.Scale)
	v.TranslateX += d.X
	v.TranslateY += d.Y
}

// Percent returns the scale as a rounded zoom percentage.
func (v Viewport) Percent() int {
	return int(math.Round(v.Scale * 100))
}

// VisibleArea returns the world-space area shown by a width x height screen.
func (v Viewport) VisibleArea(width, height float64) geom.Area {
	return geom.Rect(v.ToWorld(geom.Pt(0, 0)), v.ToWorld(geom.Pt(width, height)))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}
	return x
}

// Device returns the viewport scaled for a display with ratio device pixels
// per screen unit. The result is meant for rendering only and is not clamped.
func (v Viewport) Device(ratio float64) Viewport {
	return Viewport{Scale: v.Scale * ratio, TranslateX: v.TranslateX * ratio, TranslateY: v.TranslateY * ratio}
}
