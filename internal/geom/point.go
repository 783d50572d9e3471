// Package geom contains the world-space value types shared by the board:
// points and axis-aligned areas.
package geom

import "math"

// Point is a position or a vector in world or screen space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

func (p Point) Add(q Point) Point             { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point             { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point           { return Point{p.X * f, p.Y * f} }
func (p Point) Div(f float64) Point           { return Point{p.X / f, p.Y / f} }
func (p Point) Neg() Point                    { return Point{-p.X, -p.Y} }
func (p Point) Dot(q Point) float64           { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64                  { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64          { return p.Sub(q).Len() }
func (p Point) Equals(q Point) bool           { return p.X == q.X && p.Y == q.Y }
func (p Point) IsFinite() bool                { return isFinite(p.X) && isFinite(p.Y) }
func (p Point) Lerp(q Point, t float64) Point { return p.Add(q.Sub(p).Mul(t)) }

// Dist2 is the squared distance between p and q.
func (p Point) Dist2(q Point) float64 {
	d := p.Sub(q)
	return d.X*d.X + d.Y*d.Y
}

// Perp returns p rotated by a quarter turn, (y, -x).
func (p Point) Perp() Point { return Point{p.Y, -p.X} }

// Unit returns p scaled to unit length. The zero vector yields NaN components.
func (p Point) Unit() Point { return p.Div(p.Len()) }

// RotateAround rotates p around c by r radians.
func (p Point) RotateAround(c Point, r float64) Point {
	s, co := math.Sincos(r)
	d := p.Sub(c)
	return Point{d.X*co - d.Y*s + c.X, d.X*s + d.Y*co + c.Y}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// AllFinite reports whether every point has finite coordinates.
func AllFinite(pts []Point) bool {
	for _, p := range pts {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// PolygonArea returns the signed shoelace area of the closed polygon pts.
func PolygonArea(pts []Point) float64 {
	a := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}
