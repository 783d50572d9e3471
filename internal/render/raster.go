package render

import (
	"image"
	"math"

	"InfiniteBoard/internal/geom"

	"golang.org/x/image/vector"
)

// coverage rasterizes the polygons, given in dst pixel coordinates, into a
// rasterizer sized to their bounding box clipped to clip. ok is false when
// nothing is visible.
func coverage(polys [][]geom.Point, clip image.Rectangle) (ras *vector.Rasterizer, rect image.Rectangle, ok bool) {
	var pts []geom.Point
	for _, poly := range polys {
		pts = append(pts, poly...)
	}
	bounds, ok := geom.BoundsOf(pts, 1)
	if !ok || !geom.AllFinite(pts) {
		return nil, image.Rectangle{}, false
	}
	rect = image.Rect(
		int(math.Floor(bounds.X)), int(math.Floor(bounds.Y)),
		int(math.Ceil(bounds.X+bounds.Width)), int(math.Ceil(bounds.Y+bounds.Height)),
	).Intersect(clip)
	if rect.Empty() {
		return nil, image.Rectangle{}, false
	}

	ras = vector.NewRasterizer(rect.Dx(), rect.Dy())
	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		ras.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		ras.ClosePath()
	}
	return ras, rect, true
}

// fill paints the polygons onto dst with src using source-over.
func fill(dst *image.RGBA, polys [][]geom.Point, src image.Image) {
	ras, rect, ok := coverage(polys, dst.Bounds())
	if !ok {
		return
	}
	ras.Draw(dst, rect, src, image.Point{})
}

// erase removes the coverage of the polygons from dst:
//
//	dst = dst * (1 - coverage)
//
// dst is premultiplied, so scaling all four channels keeps colors intact.
func erase(dst *image.RGBA, polys [][]geom.Point) {
	ras, rect, ok := coverage(polys, dst.Bounds())
	if !ok {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			a := mask.Pix[y*mask.Stride+x]
			if a == 0 {
				continue
			}
			keep := uint32(255 - a)
			i := dst.PixOffset(rect.Min.X+x, rect.Min.Y+y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8((uint32(dst.Pix[i+c])*keep + 127) / 255)
			}
		}
	}
}

// segments returns one quad per edge of the polyline plus a disc at every
// vertex, approximating a round-joined stroke of the given width. All
// polygons share the same winding so overlaps accumulate.
func segments(poly []geom.Point, width float64, closed bool) [][]geom.Point {
	if len(poly) == 0 || !(width > 0) {
		return nil
	}
	h := width / 2
	var out [][]geom.Point
	n := len(poly) - 1
	if closed {
		n = len(poly)
	}
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%len(poly)]
		d := b.Sub(a)
		if d.Len() == 0 {
			continue
		}
		off := d.Unit().Perp().Mul(h)
		out = append(out, []geom.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
	}
	for _, p := range poly {
		out = append(out, disc(p, h, h))
	}
	return out
}

// disc approximates an axis-aligned ellipse with radii rx, ry around c.
func disc(c geom.Point, rx, ry float64) []geom.Point {
	n := int(math.Max(8, math.Min(64, math.Ceil(math.Max(rx, ry)))))
	pts := make([]geom.Point, n)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = geom.Pt(c.X+rx*co, c.Y+ry*s)
	}
	return pts
}
