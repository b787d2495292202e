// Package geom holds the tolerance-based predicates shared by the
// triangulation engine.
package geom

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

const Tolerance = 1e-9

// To compensate for imprecision in floats, equality is tolerance based. If we
// don't account for this, nearly horizontal edges flip their upper and lower
// ends depending on rounding noise.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Compare orders points by height. The point with the greater Y is "above";
// when the Y values are equal, the one with the smaller X is above. This
// simulates a slightly rotated coordinate system, so distinct points are
// never level with each other.
//
// Returns 1 if p is above q, -1 if it is below, and 0 only for identical
// points.
func Compare(p, q orb.Point) int {
	if !Equal(p[1], q[1]) {
		if p[1] > q[1] {
			return 1
		}
		return -1
	}
	switch {
	case p[0] < q[0]:
		return 1
	case p[0] > q[0]:
		return -1
	case p[1] > q[1]:
		return 1
	case p[1] < q[1]:
		return -1
	}
	return 0
}

func Above(p, q orb.Point) bool {
	return Compare(p, q) > 0
}

func Below(p, q orb.Point) bool {
	return Compare(p, q) < 0
}

// Cross is twice the signed area of the triangle a, b, c. It is positive when
// the points wind counterclockwise.
func Cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// Orientation of the triangle a, b, c: 1 for counterclockwise, -1 for
// clockwise and 0 when the points are collinear within tolerance.
func Orientation(a, b, c orb.Point) int {
	area := Cross(a, b, c)
	if area > Tolerance {
		return 1
	}
	if area < -Tolerance {
		return -1
	}
	return 0
}

func IsCCW(a, b, c orb.Point) bool {
	return Orientation(a, b, c) > 0
}

func IsCW(a, b, c orb.Point) bool {
	return Orientation(a, b, c) < 0
}

// InCircle reports whether p lies strictly inside the circumcircle of a, b, c.
// The winding of a, b, c does not matter.
func InCircle(p, a, b, c orb.Point) bool {
	if Cross(a, b, c) < 0 {
		b, c = c, b
	}
	adx, ady := a[0]-p[0], a[1]-p[1]
	bdx, bdy := b[0]-p[0], b[1]-p[1]
	cdx, cdy := c[0]-p[0], c[1]-p[1]

	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) -
		(bdx*bdx+bdy*bdy)*(adx*cdy-cdx*ady) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	return det > Tolerance
}

// Straddles reports whether p and q lie strictly on opposite sides of the line
// through a and b.
func Straddles(a, b, p, q orb.Point) bool {
	return Orientation(a, b, p)*Orientation(a, b, q) < 0
}

// InCone reports whether p lies strictly inside the angle at apex spanned
// counterclockwise from the ray apex->a to the ray apex->b. The angle must be
// convex.
func InCone(p, apex, a, b orb.Point) bool {
	return IsCCW(apex, a, p) && IsCW(apex, b, p)
}

// SegmentsCross reports a proper crossing of the segments a-b and c-d: each
// segment has the endpoints of the other strictly on opposite sides.
func SegmentsCross(a, b, c, d orb.Point) bool {
	return Straddles(a, b, c, d) && Straddles(c, d, a, b)
}

// OnSegmentInterior reports whether p lies on the segment a-b, excluding its
// endpoints.
func OnSegmentInterior(p, a, b orb.Point) bool {
	if p == a || p == b || Orientation(a, b, p) != 0 {
		return false
	}
	dot := (p[0]-a[0])*(b[0]-a[0]) + (p[1]-a[1])*(b[1]-a[1])
	lengthSq := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	return dot > 0 && dot < lengthSq
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// ConvexHull returns the indices of the hull of points in counterclockwise
// order. Points lying on a hull edge are kept, so every consecutive pair of
// the result is free of other input points. Returns nil when the points do
// not span any area.
func ConvexHull(points []orb.Point) []int {
	if len(points) < 3 {
		return nil
	}
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		p, q := points[order[i]], points[order[j]]
		if p[0] != q[0] {
			return p[0] < q[0]
		}
		return p[1] < q[1]
	})

	chain := func(indices []int) []int {
		var h []int
		for _, i := range indices {
			for len(h) >= 2 && Cross(points[h[len(h)-2]], points[h[len(h)-1]], points[i]) < -Tolerance {
				h = h[:len(h)-1]
			}
			h = append(h, i)
		}
		return h
	}

	lower := chain(order)
	reversed := make([]int, len(order))
	for i, idx := range order {
		reversed[len(order)-1-i] = idx
	}
	upper := chain(reversed)

	hull := append(lower[:len(lower)-1:len(lower)-1], upper[:len(upper)-1]...)

	var area float64
	for i := range hull {
		a := points[hull[i]]
		b := points[hull[CircularIndex(i+1, len(hull))]]
		area += a[0]*b[1] - b[0]*a[1]
	}
	if area <= Tolerance {
		return nil
	}
	return hull
}
