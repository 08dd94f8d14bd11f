// Package geometry implements the circle geometry behind the equidistant
// boundary-point problem on the unit square.
//
// # Problem
//
// Two points are drawn uniformly at random in the unit square. A boundary
// point equidistant from both exists exactly when the perpendicular bisector
// of the pair crosses the square's boundary. By symmetry the analysis fixes
// the first point in the region where the bottom edge is the nearest edge
// and asks whether the bisector meets the bottom edge inside [0,1].
//
// # Valid region
//
// For a fixed first point p, the bisector foot lies in [0,1] exactly when
// the second point falls inside exactly one of the two disks centered at the
// bottom corners (0,0) and (1,0), with radii equal to p's distance to each
// corner. Clipped to the unit square, the area of that symmetric difference
// is the sum of the two quarter-disk areas minus the full lens where the
// disks overlap.
package geometry

import "math"

// XTolerance is the minimum horizontal separation between two points for
// their bisector foot to be computed stably. Pairs closer than this in x are
// excluded rather than classified.
const XTolerance = 1e-8

// Point is a position in the unit square.
type Point struct {
	X float64
	Y float64
}

// InBottomRegion reports whether the bottom edge is the nearest boundary
// edge to p. The region is the triangle 0 <= y <= 0.5, y <= x, y <= 1-x.
func InBottomRegion(p Point) bool {
	return p.Y >= 0 && p.Y <= 0.5 && p.Y <= p.X && p.Y <= 1-p.X
}

// CornerRadii returns the distances from p to the bottom corners (0,0)
// and (1,0).
func CornerRadii(p Point) (r1, r2 float64) {
	r1 = math.Hypot(p.X, p.Y)
	r2 = math.Hypot(1-p.X, p.Y)
	return r1, r2
}

// BisectorFoot returns the x-coordinate of the point on the bottom edge
// equidistant from p1 and p2. ok is false when the x-coordinates are within
// XTolerance of each other, in which case the bisector is near-vertical and
// the foot is undefined or numerically unstable.
func BisectorFoot(p1, p2 Point) (a float64, ok bool) {
	dx := p2.X - p1.X
	if math.Abs(dx) < XTolerance {
		return 0, false
	}
	a = (p2.X*p2.X - p1.X*p1.X + p2.Y*p2.Y - p1.Y*p1.Y) / (2 * dx)
	return a, true
}

// OnBottomEdge reports whether a bisector foot lands on the bottom edge.
// Both endpoints count.
func OnBottomEdge(a float64) bool {
	return a >= 0 && a <= 1
}

// LensArea returns the intersection area of two circles with radii r1 and r2
// whose centers are distance 1 apart. A zero-radius circle has no area to
// intersect.
//
// The half-angles subtended at each center by the chord through the circle
// intersection points follow from the law of cosines on the triangle formed
// by the two centers and either intersection point. Floating-point roundoff
// can push the cosine arguments slightly outside [-1,1], so they are clamped
// before Acos.
func LensArea(r1, r2 float64) float64 {
	if r1 == 0 || r2 == 0 {
		return 0
	}
	angle1 := 2 * math.Acos(clamp((r1*r1+1-r2*r2)/(2*r1)))
	angle2 := 2 * math.Acos(clamp((r2*r2+1-r1*r1)/(2*r2)))
	return 0.5 * (r1*r1*(angle1-math.Sin(angle1)) + r2*r2*(angle2-math.Sin(angle2)))
}

// ValidArea returns the area of second points in the unit square admitting
// an equidistant point on the bottom edge, for a first point p in the
// bottom region. The result is non-negative and never exceeds pi/2.
func ValidArea(p Point) float64 {
	r1, r2 := CornerRadii(p)
	return math.Pi*r1*r1/4 + math.Pi*r2*r2/4 - LensArea(r1, r2)
}

// clamp bounds x to [-1,1].
func clamp(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
