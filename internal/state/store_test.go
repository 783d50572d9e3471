package state

import (
	"image/color"
	"testing"

	"InfiniteBoard/internal/geom"

	"github.com/tdewolff/test"
)

func stroke(x float64) Object {
	return Object{Body: Stroke{Outline: []geom.Point{{X: x, Y: 0}, {X: x + 1, Y: 0}, {X: x + 1, Y: 1}}}}
}

func ids(objects []Object) []ID {
	out := make([]ID, 0, len(objects))
	for _, o := range objects {
		out = append(out, o.ID)
	}
	return out
}

func TestStoreIDsIncrease(t *testing.T) {
	s := NewStore()
	prev := ID(-1)
	for i := 0; i < 50; i++ {
		id := s.Add(stroke(float64(i)))
		test.That(t, id > prev, id, prev)
		prev = id
	}
	test.T(t, s.Len(), 50)
}

func TestStoreOrderAfterDelete(t *testing.T) {
	s := NewStore()
	a := s.Add(stroke(1))
	b := s.Add(stroke(2))
	s.Delete(a)
	c := s.Add(stroke(3))
	test.T(t, ids(s.List()), []ID{b, c})

	_, ok := s.Get(a)
	test.That(t, !ok)
	got, ok := s.Get(c)
	test.That(t, ok)
	test.T(t, got.ID, c)
}

func TestStoreDeleteMiddleKeepsIndex(t *testing.T) {
	s := NewStore()
	var all []ID
	for i := 0; i < 5; i++ {
		all = append(all, s.Add(stroke(float64(i))))
	}
	s.Delete(all[1])
	s.Delete(all[3])
	test.T(t, ids(s.List()), []ID{all[0], all[2], all[4]})

	width := 7.0
	s.Update(all[4], Patch{StrokeWidth: &width})
	got, _ := s.Get(all[4])
	test.Float(t, got.Style.StrokeWidth, 7)
}

func TestStoreUnknownIDsAreNoops(t *testing.T) {
	s := NewStore()
	a := s.Add(stroke(1))
	before := s.List()

	width := 3.0
	s.Update(a+100, Patch{StrokeWidth: &width})
	s.Delete(a + 100)
	test.T(t, s.List(), before)
}

func TestStoreUpdateMergesOnlySetFields(t *testing.T) {
	s := NewStore()
	red := color.NRGBA{R: 255, A: 255}
	id := s.Add(Object{
		Style: Style{StrokeColor: red, StrokeWidth: 2, Opacity: 1},
		Body:  Stroke{Outline: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	})

	opacity := 0.5
	s.Update(id, Patch{Opacity: &opacity})
	got, _ := s.Get(id)
	test.T(t, got.Style, Style{StrokeColor: red, StrokeWidth: 2, Opacity: 0.5})
	test.T(t, got.Kind(), KindStroke)

	s.Update(id, Patch{Body: Shape{Type: ShapeCircle, Area: geom.Area{Width: 4, Height: 4}}})
	got, _ = s.Get(id)
	test.T(t, got.Kind(), KindShape)
	test.T(t, got.Style.StrokeColor, red)
}

func TestStoreClearKeepsSequence(t *testing.T) {
	s := NewStore()
	a := s.Add(stroke(1))
	s.Add(stroke(2))
	s.Clear()
	test.T(t, s.Len(), 0)
	test.T(t, len(s.List()), 0)

	c := s.Add(stroke(3))
	test.That(t, c > a+1, c)
	test.T(t, ids(s.List()), []ID{c})
}

func TestStoreRejectsMissingKind(t *testing.T) {
	s := NewStore()
	test.T(t, s.Add(Object{}), ID(-1))
	test.T(t, s.Len(), 0)
}

func TestStoreRejectsPointerBodies(t *testing.T) {
	s := NewStore()
	test.T(t, s.Add(Object{Body: (*Stroke)(nil)}), ID(-1))
	test.T(t, s.Add(Object{Body: &Stroke{Outline: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}}), ID(-1))
	test.T(t, s.Add(Object{Body: &Shape{Type: ShapeCircle}}), ID(-1))
	test.T(t, s.Len(), 0)

	id := s.Add(stroke(0))
	s.Update(id, Patch{Body: &Stroke{}})
	s.Update(id, Patch{Body: (*Text)(nil)})
	got, _ := s.Get(id)
	test.T(t, got.Kind(), KindStroke)
	test.T(t, len(got.Body.(Stroke).Outline), 3)

	test.T(t, Object{Body: (*Stroke)(nil)}.Kind(), Kind(255))
}

func TestStoreCopiesOutline(t *testing.T) {
	s := NewStore()
	outline := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	id := s.Add(Object{Body: EraserStroke{Outline: outline}})
	outline[0] = geom.Pt(50, 50)

	got, _ := s.Get(id)
	test.T(t, got.Body.(EraserStroke).Outline[0], geom.Pt(0, 0))
	test.T(t, got.Composite(), CompositeErase)
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	calls := 0
	cancel := s.Subscribe(func() { calls++ })
	id := s.Add(stroke(1))
	s.Delete(id)
	s.Delete(id)
	s.Clear()
	test.T(t, calls, 3)

	cancel()
	s.Add(stroke(2))
	test.T(t, calls, 3)
}

func TestStoreBounds(t *testing.T) {
	s := NewStore()
	_, ok := s.Bounds()
	test.That(t, !ok)

	s.Add(stroke(0))
	s.Add(Object{Body: Shape{Type: ShapeRectangle, Area: geom.Area{X: 10, Y: -5, Width: 5, Height: 5}}})
	b, ok := s.Bounds()
	test.That(t, ok)
	test.T(t, b, geom.Area{X: 0, Y: -5, Width: 15, Height: 6})
}

func TestObjectComposite(t *testing.T) {
	test.T(t, Object{Body: Stroke{}}.Composite(), CompositeOver)
	test.T(t, Object{Body: EraserStroke{}}.Composite(), CompositeErase)
	test.T(t, Object{Body: Text{Content: "hi"}}.Composite(), CompositeOver)
	test.T(t, KindEraser.String(), "eraser-stroke")
}
