// Package freehand turns a sampled pointer path into the outline of a
// tapered, pressure-simulated ink stroke.
//
// The pressure of every sample is simulated from the local pointer speed:
// fast movement thins the line, slow movement thickens it. The outline is a
// closed polygon made of the left edge, a rounded end cap, the right edge in
// reverse and a rounded start cap.
package freehand

import (
	"fmt"
	"math"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/logx"
)

// Shaping parameters. They are fixed for every stroke on the board.
const (
	Thinning   = 0.6
	Smoothing  = 0.5
	Streamline = 0.5

	// SizeFactor scales the brush size into the outline diameter, which is
	// never smaller than MinSize.
	SizeFactor = 0.8
	MinSize    = 2.0

	pressureRate    = 0.275
	defaultPressure = 0.5

	startCapSteps = 13
	endCapSteps   = 29
	cornerSteps   = 13
)

// fixedPi is nudged past π so that cap arcs close without a visible seam.
const fixedPi = math.Pi + 0.0001

// sample is a streamlined input point with its running geometry.
type sample struct {
	point    geom.Point
	pressure float64
	vector   geom.Point // unit direction from this sample back to the previous one
	distance float64
	running  float64
}

// Outline returns the closed outline of a stroke drawn through points with the
// given brush size. Fewer than two points are returned unchanged. The result
// never aliases points.
//
// Outline never fails: a numerical fault while shaping degrades to a copy of
// the raw input so that the gesture is not lost.
func Outline(points []geom.Point, size float64) (outline []geom.Point) {
	raw := append([]geom.Point(nil), points...)
	if len(points) < 2 {
		return raw
	}

	defer func() {
		if r := recover(); r != nil {
			logx.Logger().Warn("[SMOOTH] recovered, using raw path", "err", fmt.Sprint(r), "points", len(points))
			outline = raw
		}
	}()

	size = math.Max(MinSize, size*SizeFactor)
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return raw
	}
	outline = outlinePoints(streamline(points, size), size)
	if len(outline) == 0 || !geom.AllFinite(outline) {
		logx.Logger().Warn("[SMOOTH] degenerate outline, using raw path", "points", len(points))
		return raw
	}
	return outline
}

// streamline eases every sample toward the previous one and drops samples
// that do not move the line forward.
func streamline(points []geom.Point, size float64) []sample {
	t := 0.15 + (1-Streamline)*0.85

	pts := points
	if len(pts) == 2 {
		first, last := pts[0], pts[1]
		pts = []geom.Point{first}
		for i := 1; i < 5; i++ {
			pts = append(pts, first.Lerp(last, float64(i)/4))
		}
	}

	samples := []sample{{
		point:    pts[0],
		pressure: defaultPressure,
		vector:   geom.Pt(1, 1),
	}}
	prev := samples[0]
	running := 0.0
	reachedMin := false
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		point := prev.point.Lerp(pts[i], t)
		if point.Equals(prev.point) {
			continue
		}
		distance := point.Dist(prev.point)
		running += distance
		if i < last && !reachedMin {
			if running < size {
				continue
			}
			reachedMin = true
		}
		prev = sample{
			point:    point,
			pressure: defaultPressure,
			vector:   prev.point.Sub(point).Unit(),
			distance: distance,
			running:  running,
		}
		samples = append(samples, prev)
	}
	if len(samples) > 1 {
		samples[0].vector = samples[1].vector
	} else {
		samples[0].vector = geom.Point{}
	}
	return samples
}

func simulatedPressure(prev, distance, size float64) float64 {
	sp := math.Min(1, distance/size)
	rp := math.Min(1, 1-sp)
	return math.Min(1, prev+(rp-prev)*(sp*pressureRate))
}

func radiusFor(size, pressure float64) float64 {
	return size * (0.5 - Thinning*(0.5-pressure))
}

// outlinePoints offsets the streamlined samples to both sides and caps the ends.
func outlinePoints(samples []sample, size float64) []geom.Point {
	total := samples[len(samples)-1].running
	minDistance := math.Pow(size*Smoothing, 2)

	// Seed the pressure from the opening samples so the stroke does not start
	// with a blob.
	prevPressure := samples[0].pressure
	for i := 0; i < len(samples) && i < 10; i++ {
		pressure := simulatedPressure(prevPressure, samples[i].distance, size)
		prevPressure = (prevPressure + pressure) / 2
	}

	var left, right []geom.Point
	radius := radiusFor(size, samples[len(samples)-1].pressure)
	firstRadius := math.NaN()
	prevVector := samples[0].vector
	pl, pr := samples[0].point, samples[0].point
	tl, tr := pl, pr
	prevSharp := false

	for i, s := range samples {
		if i < len(samples)-1 && total-s.running < 3 {
			continue
		}

		pressure := simulatedPressure(prevPressure, s.distance, size)
		radius = math.Max(0.01, radiusFor(size, pressure))
		if math.IsNaN(firstRadius) {
			firstRadius = radius
		}

		nextVector := s.vector
		nextDot := 1.0
		if i < len(samples)-1 {
			nextVector = samples[i+1].vector
			nextDot = s.vector.Dot(nextVector)
		}
		prevDot := s.vector.Dot(prevVector)

		sharp := prevDot < 0 && !prevSharp
		nextSharp := nextDot < 0
		if sharp || nextSharp {
			// Wrap the corner with a half disc.
			offset := prevVector.Perp().Mul(radius)
			for step := 0; step <= cornerSteps; step++ {
				a := fixedPi * float64(step) / cornerSteps
				tl = s.point.Sub(offset).RotateAround(s.point, a)
				left = append(left, tl)
				tr = s.point.Add(offset).RotateAround(s.point, -a)
				right = append(right, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == len(samples)-1 {
			offset := s.vector.Perp().Mul(radius)
			left = append(left, s.point.Sub(offset))
			right = append(right, s.point.Add(offset))
			continue
		}

		offset := nextVector.Lerp(s.vector, nextDot).Perp().Mul(radius)
		tl = s.point.Sub(offset)
		if i <= 1 || pl.Dist2(tl) > minDistance {
			left = append(left, tl)
			pl = tl
		}
		tr = s.point.Add(offset)
		if i <= 1 || pr.Dist2(tr) > minDistance {
			right = append(right, tr)
			pr = tr
		}
		prevPressure = pressure
		prevVector = s.vector
	}

	first := samples[0].point
	if len(samples) == 1 {
		// Nothing moved: draw a dot.
		lastPoint := first.Add(geom.Pt(1, 1))
		r := firstRadius
		if math.IsNaN(r) {
			r = radius
		}
		start := first.Add(first.Sub(lastPoint).Perp().Unit().Mul(-r))
		var dot []geom.Point
		for step := 1; step <= startCapSteps; step++ {
			dot = append(dot, start.RotateAround(first, fixedPi*2*float64(step)/startCapSteps))
		}
		return dot
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	var startCap []geom.Point
	for step := 1; step <= startCapSteps; step++ {
		startCap = append(startCap, right[0].RotateAround(first, fixedPi*float64(step)/startCapSteps))
	}

	lastPoint := samples[len(samples)-1].point
	direction := samples[len(samples)-1].vector.Neg().Perp()
	start := lastPoint.Add(direction.Mul(radius))
	var endCap []geom.Point
	for step := 1; step < endCapSteps; step++ {
		endCap = append(endCap, start.RotateAround(lastPoint, fixedPi*3*float64(step)/endCapSteps))
	}

	outline := make([]geom.Point, 0, len(left)+len(endCap)+len(right)+len(startCap))
	outline = append(outline, left...)
	outline = append(outline, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	outline = append(outline, startCap...)
	return outline
}
