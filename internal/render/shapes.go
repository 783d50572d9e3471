package render

import (
	"image"
	"image/color"
	"math"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

const defaultPolygonSides = 5

// shapeOutline returns the world-space outline of s, rotated around the
// center of its area.
func shapeOutline(s state.Shape) []geom.Point {
	c := s.Area.Center()
	rx, ry := s.Area.Width/2, s.Area.Height/2

	var pts []geom.Point
	switch s.Type {
	case state.ShapeCircle:
		r := math.Min(rx, ry)
		pts = disc(c, r, r)
	case state.ShapeEllipse:
		pts = disc(c, rx, ry)
	case state.ShapePolygon:
		n := s.Sides
		if n < 3 {
			n = defaultPolygonSides
		}
		for i := 0; i < n; i++ {
			a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
			sn, co := math.Sincos(a)
			pts = append(pts, geom.Pt(c.X+rx*co, c.Y+ry*sn))
		}
	default:
		pts = []geom.Point{s.Area.Min(), {X: s.Area.X + s.Area.Width, Y: s.Area.Y}, s.Area.Max(), {X: s.Area.X, Y: s.Area.Y + s.Area.Height}}
	}
	if s.Rotation != 0 {
		for i, p := range pts {
			pts[i] = p.RotateAround(c, s.Rotation)
		}
	}
	return pts
}

func drawShape(dst *image.RGBA, view viewport.Viewport, s state.Shape, style state.Style) {
	outline := toScreen(view, shapeOutline(s))
	if style.FillColor.A != 0 {
		fill(dst, [][]geom.Point{outline}, uniform(style.FillColor, style.Opacity))
	}
	if style.StrokeColor.A != 0 && style.StrokeWidth > 0 {
		fill(dst, segments(outline, style.StrokeWidth*view.Scale, true), uniform(style.StrokeColor, style.Opacity))
	}
}

// textFace is the only face available to the renderer; glyphs are scaled to
// the requested font size.
var textFace = basicfont.Face7x13

func drawText(dst *image.RGBA, view viewport.Viewport, t state.Text, style state.Style) {
	if t.Content == "" || !(t.FontSize > 0) {
		return
	}
	d := font.Drawer{
		Src:  image.NewUniform(style.StrokeColor),
		Face: textFace,
		Dot:  fixed.P(0, textFace.Ascent),
	}
	w := d.MeasureString(t.Content).Ceil()
	if w <= 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, w, textFace.Height))
	d.Dst = glyphs
	d.DrawString(t.Content)

	k := t.FontSize * view.Scale / float64(textFace.Height)
	origin := view.ToScreen(t.Origin)
	top := origin.Y - float64(textFace.Ascent)*k
	transform(dst, glyphs, k, k, origin.X, top, style.Opacity)
}

func drawImage(dst *image.RGBA, view viewport.Viewport, img state.Image, style state.Style) {
	if img.Source == nil {
		return
	}
	sb := img.Source.Bounds()
	if sb.Empty() || !(img.Area.Width > 0) || !(img.Area.Height > 0) {
		return
	}
	kx := img.Area.Width * view.Scale / float64(sb.Dx())
	ky := img.Area.Height * view.Scale / float64(sb.Dy())
	origin := view.ToScreen(img.Area.Min())
	transform(dst, img.Source, kx, ky, origin.X-float64(sb.Min.X)*kx, origin.Y-float64(sb.Min.Y)*ky, style.Opacity)
}

// transform draws src scaled by (kx, ky) and translated by (tx, ty) onto dst.
func transform(dst *image.RGBA, src image.Image, kx, ky, tx, ty, opacity float64) {
	m := f64.Aff3{kx, 0, tx, 0, ky, ty}
	var opts *draw.Options
	if a := clamp01(opacity); a < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(a * 255))})}
	}
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), draw.Over, opts)
}
