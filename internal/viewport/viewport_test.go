package viewport

import (
	"math"
	"testing"

	"InfiniteBoard/internal/geom"

	"github.com/tdewolff/test"
)

const eps = 1e-9

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestInverse(t *testing.T) {
	views := []Viewport{
		New(),
		{Scale: 2, TranslateX: 15, TranslateY: -7},
		{Scale: 0.1, TranslateX: -300.5, TranslateY: 42},
		{Scale: 4.3, TranslateX: 0.25, TranslateY: 1e4},
	}
	pts := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: -37.5, Y: 12.25}, {X: 1920, Y: 1080}}
	for _, v := range views {
		for _, p := range pts {
			test.That(t, near(v.ToScreen(v.ToWorld(p)), p), v, p)
			test.That(t, near(v.ToWorld(v.ToScreen(p)), p), v, p)
		}
	}
}

func TestZoomAnchored(t *testing.T) {
	v := Viewport{Scale: 1, TranslateX: 12, TranslateY: -30}
	anchor := geom.Pt(320, 240)
	deltas := []float64{0.1, 0.1, -0.3, 0.5, 1.2, -0.1}
	for _, d := range deltas {
		before := v.ToWorld(anchor)
		v.Zoom(anchor, d)
		test.That(t, near(v.ToWorld(anchor), before), d)
		test.That(t, near(v.ToScreen(v.ToWorld(anchor)), anchor), d)
	}
}

func TestZoomClampIn(t *testing.T) {
	v := New()
	for i := 0; i < 100; i++ {
		v.Zoom(geom.Pt(10, 10), ZoomStep)
		test.That(t, v.Scale <= MaxScale, v.Scale)
	}
	test.T(t, v.Scale, 5.0)
}

func TestZoomClampOut(t *testing.T) {
	v := New()
	for i := 0; i < 100; i++ {
		v.Zoom(geom.Pt(10, 10), -ZoomStep)
		test.That(t, v.Scale >= MinScale, v.Scale)
	}
	test.T(t, v.Scale, 0.1)
}

func TestZoomClampedKeepsAnchor(t *testing.T) {
	v := Viewport{Scale: 4.95}
	anchor := geom.Pt(100, 50)
	before := v.ToWorld(anchor)
	v.Zoom(anchor, 1)
	test.T(t, v.Scale, 5.0)
	test.That(t, near(v.ToWorld(anchor), before))
}

func TestPan(t *testing.T) {
	v := Viewport{Scale: 2}
	v.Pan(geom.Pt(20, 0))
	test.Float(t, v.TranslateX, 10)
	test.Float(t, v.TranslateY, 0)
	v.Pan(geom.Pt(-4, 6))
	test.Float(t, v.TranslateX, 8)
	test.Float(t, v.TranslateY, 3)
}

func TestNonFiniteIgnored(t *testing.T) {
	v := New()
	v.Pan(geom.Pt(math.NaN(), 1))
	v.Zoom(geom.Pt(0, 0), math.Inf(1))
	v.Zoom(geom.Pt(math.Inf(-1), 0), 0.1)
	test.T(t, v, New())
}

func TestPercentAndVisibleArea(t *testing.T) {
	v := Viewport{Scale: 2, TranslateX: 100, TranslateY: 50}
	test.T(t, v.Percent(), 200)
	test.T(t, v.VisibleArea(200, 100), geom.Area{X: -50, Y: -25, Width: 100, Height: 50})
}

func TestDevice(t *testing.T) {
	v := Viewport{Scale: 1.5, TranslateX: 10, TranslateY: -4}
	d := v.Device(2)
	w := geom.Pt(7, 3)
	test.That(t, near(d.ToScreen(w), v.ToScreen(w).Mul(2)))
}
