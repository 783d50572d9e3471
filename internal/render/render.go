// Package render paints the board into an RGBA image.
//
// The scene is drawn in two layers. The background layer holds the paper
// color and the grid. The drawing layer holds the objects in paint order;
// eraser objects remove coverage from the drawing layer only, so erasing
// reveals the grid rather than punching holes into the output.
package render

import (
	"image"
	"image/color"
	"math"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"

	"golang.org/x/image/draw"
)

// Options configures the background layer.
type Options struct {
	Background color.NRGBA
	GridColor  color.NRGBA
	GridSize   float64 // world units between grid lines, 0 disables the grid
	GridWidth  float64 // world units
}

// DefaultOptions matches the paper look of the board: white with a faint
// 50 unit grid.
func DefaultOptions() Options {
	return Options{
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		GridColor:  color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		GridSize:   50,
		GridWidth:  0.5,
	}
}

// minGridSpacing is the smallest on-screen grid spacing in pixels that is
// still drawn.
const minGridSpacing = 4.0

// Scene is everything needed to paint one frame.
type Scene struct {
	View    viewport.Viewport
	Objects []state.Object

	// Preview is the outline of the stroke being drawn, nil if none.
	Preview      []geom.Point
	PreviewErase bool
	PreviewStyle state.Style
}

// Renderer paints scenes. It holds no per-frame state and may be shared.
type Renderer struct {
	opts Options
}

// New returns a renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render paints scene onto dst, replacing its content.
func (r *Renderer) Render(dst *image.RGBA, scene Scene) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(r.opts.Background), image.Point{}, draw.Src)
	r.drawGrid(dst, scene.View)

	layer := image.NewRGBA(bounds)
	r.RenderLayer(layer, scene)
	draw.Draw(dst, bounds, layer, bounds.Min, draw.Over)
}

// RenderLayer paints only the drawing layer onto dst, on top of its current
// content. Erasers remove coverage from dst.
func (r *Renderer) RenderLayer(dst *image.RGBA, scene Scene) {
	b := dst.Bounds()
	view := scene.View
	visible := geom.Rect(
		view.ToWorld(geom.Pt(float64(b.Min.X), float64(b.Min.Y))),
		view.ToWorld(geom.Pt(float64(b.Max.X), float64(b.Max.Y))),
	)
	for _, obj := range scene.Objects {
		if !state.ValidBody(obj.Body) {
			continue
		}
		margin := obj.Style.StrokeWidth + 1
		if !obj.Body.Bounds().Expand(margin).Overlaps(visible) {
			continue
		}
		r.drawObject(dst, view, obj)
	}
	if len(scene.Preview) > 2 {
		outline := toScreen(view, scene.Preview)
		if scene.PreviewErase {
			erase(dst, [][]geom.Point{outline})
		} else {
			fill(dst, [][]geom.Point{outline}, uniform(scene.PreviewStyle.StrokeColor, scene.PreviewStyle.Opacity))
		}
	}
}

func (r *Renderer) drawObject(dst *image.RGBA, view viewport.Viewport, obj state.Object) {
	switch body := obj.Body.(type) {
	case state.Stroke:
		if len(body.Outline) < 3 {
			return
		}
		fill(dst, [][]geom.Point{toScreen(view, body.Outline)}, uniform(obj.Style.StrokeColor, obj.Style.Opacity))
	case state.EraserStroke:
		if len(body.Outline) < 3 {
			return
		}
		erase(dst, [][]geom.Point{toScreen(view, body.Outline)})
	case state.Shape:
		drawShape(dst, view, body, obj.Style)
	case state.Text:
		drawText(dst, view, body, obj.Style)
	case state.Image:
		drawImage(dst, view, body, obj.Style)
	}
}

func (r *Renderer) drawGrid(dst *image.RGBA, view viewport.Viewport) {
	size := r.opts.GridSize
	if !(size > 0) || size*view.Scale < minGridSpacing || r.opts.GridColor.A == 0 {
		return
	}
	b := dst.Bounds()
	area := geom.Rect(
		view.ToWorld(geom.Pt(float64(b.Min.X), float64(b.Min.Y))),
		view.ToWorld(geom.Pt(float64(b.Max.X), float64(b.Max.Y))),
	)
	width := math.Max(1, r.opts.GridWidth*view.Scale)
	h := width / 2

	var lines [][]geom.Point
	x0, nx, okx := gridSteps(area.X, area.X+area.Width, size)
	y0, ny, oky := gridSteps(area.Y, area.Y+area.Height, size)
	if !okx || !oky || nx > b.Dx() || ny > b.Dy() {
		return
	}
	for i := 0; i <= nx; i++ {
		sx := view.ToScreen(geom.Pt(x0+float64(i)*size, 0)).X
		lines = append(lines, []geom.Point{
			{X: sx - h, Y: float64(b.Min.Y)}, {X: sx + h, Y: float64(b.Min.Y)},
			{X: sx + h, Y: float64(b.Max.Y)}, {X: sx - h, Y: float64(b.Max.Y)},
		})
	}
	for i := 0; i <= ny; i++ {
		sy := view.ToScreen(geom.Pt(0, y0+float64(i)*size)).Y
		lines = append(lines, []geom.Point{
			{X: float64(b.Min.X), Y: sy - h}, {X: float64(b.Max.X), Y: sy - h},
			{X: float64(b.Max.X), Y: sy + h}, {X: float64(b.Min.X), Y: sy + h},
		})
	}
	fill(dst, lines, image.NewUniform(r.opts.GridColor))
}

// gridSteps returns the first grid line at or below lo and the number of
// further lines up to hi. ok is false when the coordinates are too large for
// size to be resolved.
func gridSteps(lo, hi, size float64) (start float64, n int, ok bool) {
	start = math.Floor(lo/size) * size
	count := math.Floor((hi - start) / size)
	if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 || start+size == start {
		return 0, 0, false
	}
	return start, int(count), true
}

func toScreen(view viewport.Viewport, pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = view.ToScreen(p)
	}
	return out
}

// uniform returns c with its alpha scaled by opacity.
func uniform(c color.NRGBA, opacity float64) *image.Uniform {
	c.A = uint8(math.Round(float64(c.A) * clamp01(opacity)))
	return image.NewUniform(c)
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}
