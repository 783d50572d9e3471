package render

import (
	"image"
	"image/color"
	"testing"
	"time"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"

	"github.com/tdewolff/test"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func square(x, y, w float64) []geom.Point {
	return []geom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + w}, {X: x, Y: y + w}}
}

func plain() *Renderer {
	opts := DefaultOptions()
	opts.GridSize = 0
	return New(opts)
}

func strokeObj(outline []geom.Point, c color.NRGBA) state.Object {
	return state.Object{Style: state.Style{StrokeColor: c, Opacity: 1}, Body: state.Stroke{Outline: outline}}
}

func TestRenderStroke(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View:    viewport.New(),
		Objects: []state.Object{strokeObj(square(10, 10, 10), red)},
	})
	test.T(t, dst.RGBAAt(15, 15), color.RGBA{0xff, 0, 0, 0xff})
	test.T(t, dst.RGBAAt(5, 5), white)
	test.T(t, dst.RGBAAt(25, 15), white)
}

func TestRenderFollowsViewport(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View:    viewport.Viewport{Scale: 2, TranslateX: -10, TranslateY: 0},
		Objects: []state.Object{strokeObj(square(10, 10, 5), red)},
	})
	// World (10..15) maps to screen (10..20) horizontally and (20..30) vertically.
	test.T(t, dst.RGBAAt(15, 25), color.RGBA{0xff, 0, 0, 0xff})
	test.T(t, dst.RGBAAt(15, 15), white)
	test.T(t, dst.RGBAAt(25, 25), white)
}

func TestRenderPaintOrder(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			strokeObj(square(0, 0, 30), red),
			strokeObj(square(10, 10, 10), blue),
		},
	})
	test.T(t, dst.RGBAAt(15, 15), color.RGBA{0, 0, 0xff, 0xff})
	test.T(t, dst.RGBAAt(5, 5), color.RGBA{0xff, 0, 0, 0xff})
}

func TestRenderEraserRemovesCoverage(t *testing.T) {
	opts := DefaultOptions()
	opts.GridSize = 10
	opts.GridWidth = 2
	r := New(opts)

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	r.Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			strokeObj(square(0, 0, 40), red),
			{Body: state.EraserStroke{Outline: square(12, 12, 16)}},
		},
	})
	test.T(t, dst.RGBAAt(5, 5), color.RGBA{0xff, 0, 0, 0xff})
	// Erased pixels show the background layer again, grid included.
	test.T(t, dst.RGBAAt(15, 15), white)
	test.T(t, dst.RGBAAt(20, 15), color.RGBA{0xf0, 0xf0, 0xf0, 0xff})
}

func TestRenderEraserOnlyAffectsEarlierObjects(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			strokeObj(square(0, 0, 40), red),
			{Body: state.EraserStroke{Outline: square(10, 10, 20)}},
			strokeObj(square(12, 12, 6), blue),
		},
	})
	test.T(t, dst.RGBAAt(15, 15), color.RGBA{0, 0, 0xff, 0xff})
	test.T(t, dst.RGBAAt(25, 25), white)
}

func TestRenderLayerTransparentWhenErased(t *testing.T) {
	layer := image.NewRGBA(image.Rect(0, 0, 20, 20))
	plain().RenderLayer(layer, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			strokeObj(square(0, 0, 20), red),
			{Body: state.EraserStroke{Outline: square(5, 5, 10)}},
		},
	})
	test.T(t, layer.RGBAAt(10, 10), color.RGBA{})
	test.T(t, layer.RGBAAt(2, 2), color.RGBA{0xff, 0, 0, 0xff})
}

func TestRenderOpacity(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	obj := strokeObj(square(0, 0, 20), color.NRGBA{A: 0xff})
	obj.Style.Opacity = 0.5
	plain().Render(dst, Scene{View: viewport.New(), Objects: []state.Object{obj}})
	c := dst.RGBAAt(10, 10)
	test.That(t, c.R > 100 && c.R < 155, c)
}

func TestRenderPreview(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View:         viewport.New(),
		Objects:      []state.Object{strokeObj(square(0, 0, 40), red)},
		Preview:      square(10, 10, 10),
		PreviewErase: true,
	})
	test.T(t, dst.RGBAAt(15, 15), white)

	plain().Render(dst, Scene{
		View:         viewport.New(),
		Preview:      square(10, 10, 10),
		PreviewStyle: state.Style{StrokeColor: blue, Opacity: 1},
	})
	test.T(t, dst.RGBAAt(15, 15), color.RGBA{0, 0, 0xff, 0xff})
}

func TestRenderGrid(t *testing.T) {
	opts := DefaultOptions()
	opts.GridWidth = 2
	dst := image.NewRGBA(image.Rect(0, 0, 80, 80))
	New(opts).Render(dst, Scene{View: viewport.New()})
	grid := color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	test.T(t, dst.RGBAAt(50, 20), grid)
	test.T(t, dst.RGBAAt(20, 50), grid)
	test.T(t, dst.RGBAAt(20, 20), white)

	// Zoomed far out the grid is suppressed.
	New(opts).Render(dst, Scene{View: viewport.Viewport{Scale: 0.05}})
	test.T(t, dst.RGBAAt(50, 20), white)
}

func TestRenderGridFarAway(t *testing.T) {
	for _, tx := range []float64{-1e18, 1e18, -1e300} {
		done := make(chan struct{})
		dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
		go func() {
			defer close(done)
			New(DefaultOptions()).Render(dst, Scene{View: viewport.Viewport{Scale: 1, TranslateX: tx, TranslateY: tx}})
		}()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			test.Fail(t, "render did not return for translate", tx)
		}
	}
}

func TestGridSteps(t *testing.T) {
	start, n, ok := gridSteps(-10, 120, 50)
	test.That(t, ok)
	test.Float(t, start, -50)
	test.T(t, n, 3)

	_, _, ok = gridSteps(1e18, 1e18+64, 50)
	test.That(t, !ok)
}

func TestRenderShapes(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			{
				Style: state.Style{FillColor: red, StrokeColor: blue, StrokeWidth: 4, Opacity: 1},
				Body:  state.Shape{Type: state.ShapeRectangle, Area: geom.Area{X: 10, Y: 10, Width: 40, Height: 40}},
			},
		},
	})
	test.T(t, dst.RGBAAt(30, 30), color.RGBA{0xff, 0, 0, 0xff})
	test.T(t, dst.RGBAAt(10, 30), color.RGBA{0, 0, 0xff, 0xff})
	test.T(t, dst.RGBAAt(3, 3), white)

	for _, typ := range []state.ShapeType{state.ShapeCircle, state.ShapeEllipse, state.ShapePolygon} {
		plain().Render(dst, Scene{
			View: viewport.New(),
			Objects: []state.Object{{
				Style: state.Style{FillColor: red, Opacity: 1},
				Body:  state.Shape{Type: typ, Area: geom.Area{X: 10, Y: 10, Width: 40, Height: 40}, Rotation: 0.3},
			}},
		})
		test.T(t, dst.RGBAAt(30, 30), color.RGBA{0xff, 0, 0, 0xff}, typ)
		test.T(t, dst.RGBAAt(11, 11), white, typ)
	}
}

func countNonWhite(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != white {
				n++
			}
		}
	}
	return n
}

func TestRenderText(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 60))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{{
			Style: state.Style{StrokeColor: color.NRGBA{A: 0xff}, Opacity: 1},
			Body:  state.Text{Origin: geom.Pt(10, 40), Content: "Hi", FontSize: 26},
		}},
	})
	test.That(t, countNonWhite(dst) > 20)
}

func TestRenderImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{0, 0xff, 0, 0xff})
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{{
			Style: state.Style{Opacity: 1},
			Body:  state.Image{Area: geom.Area{X: 10, Y: 10, Width: 20, Height: 20}, Source: src},
		}},
	})
	c := dst.RGBAAt(20, 20)
	test.That(t, c.G > 0xf0 && c.R < 0x10 && c.B < 0x10, c)
	test.T(t, dst.RGBAAt(5, 5), white)
}

func TestRenderSkipsDegenerate(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	plain().Render(dst, Scene{
		View: viewport.New(),
		Objects: []state.Object{
			strokeObj([]geom.Point{{X: 5, Y: 5}}, red),
			{Body: state.EraserStroke{}},
			{},
			{Body: (*state.Stroke)(nil)},
			{Style: state.Style{StrokeColor: red, Opacity: 1}, Body: &state.Stroke{Outline: square(2, 2, 10)}},
		},
	})
	test.That(t, countNonWhite(dst) == 0)
}
