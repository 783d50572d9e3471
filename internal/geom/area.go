package geom

// Area is an axis-aligned rectangle. A zero Width or Height is allowed and
// describes a degenerate area that still has a position.
type Area struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rect builds the area spanned by two corners in any order.
func Rect(a, b Point) Area {
	minX, maxX := a.X, b.X
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Area{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BoundsOf returns the bounding box of points grown by padding on every side.
// The second result is false when points is empty.
func BoundsOf(points []Point, padding float64) (Area, bool) {
	if len(points) == 0 {
		return Area{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, point := range points {
		if point.X < minX {
			minX = point.X
		}
		if point.X > maxX {
			maxX = point.X
		}
		if point.Y < minY {
			minY = point.Y
		}
		if point.Y > maxY {
			maxY = point.Y
		}
	}
	return Area{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}, true
}

func (a Area) Min() Point    { return Point{a.X, a.Y} }
func (a Area) Max() Point    { return Point{a.X + a.Width, a.Y + a.Height} }
func (a Area) Center() Point { return Point{a.X + a.Width/2, a.Y + a.Height/2} }

// Overlaps reports whether a and b share any point, edges included.
func (a Area) Overlaps(b Area) bool {
	return !(a.X+a.Width < b.X || b.X+b.Width < a.X ||
		a.Y+a.Height < b.Y || b.Y+b.Height < a.Y)
}

// Contains reports whether p lies inside a, edges included.
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X <= a.X+a.Width &&
		p.Y >= a.Y && p.Y <= a.Y+a.Height
}

// Union returns the smallest area covering a and b.
func (a Area) Union(b Area) Area {
	minX := a.X
	if b.X < minX {
		minX = b.X
	}
	minY := a.Y
	if b.Y < minY {
		minY = b.Y
	}
	maxX := a.X + a.Width
	if b.X+b.Width > maxX {
		maxX = b.X + b.Width
	}
	maxY := a.Y + a.Height
	if b.Y+b.Height > maxY {
		maxY = b.Y + b.Height
	}
	return Area{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows a by d on every side; a negative d shrinks it.
func (a Area) Expand(d float64) Area {
	return Area{X: a.X - d, Y: a.Y - d, Width: a.Width + 2*d, Height: a.Height + 2*d}
}
