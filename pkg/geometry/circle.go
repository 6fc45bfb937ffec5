package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Unit normal; the points run counter-clockwise around it
	Sweep  float64 // Angle in degrees swept from the first to the last point
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitCircleToPoints3D fits a circle to a sequence of 3D points lying on an arc.
// The circle is taken through the first, middle and last points; the remaining
// points only contribute to StdDev.
//
// For three points with a = p1 - p3 and b = p2 - p3 the circumcenter is
//
//	c = p3 + ((|a|²b - |b|²a) × (a × b)) / (2|a × b|²)
func FitCircleToPoints3D(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}

	p1 := points[0]
	p2 := points[len(points)/2]
	p3 := points[len(points)-1]

	fit, err := CircleThroughPoints(p1, p2, p3)
	if err != nil {
		return nil, err
	}

	// Fit quality over all points
	var sumError float64
	for _, p := range points {
		d := p.Distance(fit.Center) - fit.Radius
		sumError += d * d
	}
	fit.StdDev = math.Sqrt(sumError / float64(len(points)))

	return fit, nil
}

// CircleThroughPoints returns the circle running from start through mid to end.
// Normal is oriented so that the traversal start -> mid -> end is counter-clockwise,
// and Sweep is the angle from start to end in that direction (0, 360).
func CircleThroughPoints(start, mid, end Vector3) (*CircleFit, error) {
	a := start.Sub(end)
	b := mid.Sub(end)
	axb := a.Cross(b)
	denom := 2.0 * axb.Dot(axb)
	if denom < ZeroMagnitudeTolerance {
		return nil, fmt.Errorf("points are collinear")
	}

	num := b.Mul(a.Dot(a)).Sub(a.Mul(b.Dot(b))).Cross(axb)
	center := end.Add(num.Mul(1.0 / denom))
	radius := center.Distance(start)

	normal, err := mid.Sub(start).Cross(end.Sub(mid)).Normalize()
	if err != nil {
		return nil, fmt.Errorf("points are collinear")
	}

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: normal,
		Sweep:  SweepAngle(center, normal, start, end),
	}, nil
}

// SweepAngle returns the counter-clockwise angle about normal from start to end,
// both measured from center, in degrees within [0, 360).
func SweepAngle(center, normal, start, end Vector3) float64 {
	u := start.Sub(center)
	w := end.Sub(center)
	theta := math.Atan2(normal.Dot(u.Cross(w)), u.Dot(w))
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return Degrees(theta)
}
