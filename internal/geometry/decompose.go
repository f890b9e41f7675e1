// Package geometry implements the polygon decomposition pipeline and
// the Separating-Axis-Theorem intersection test that back the placement
// engine. SAT only works on convex polygons, so concave input is
// triangulated; malformed input falls back to its convex hull rather
// than failing a generation run.
package geometry

import (
	"math"
	"sort"

	"github.com/piwi3910/patterngen/internal/model"
)

// Epsilon is the tolerance for point deduplication and colinearity.
const Epsilon = 1e-6

// cross returns the z component of (b-a) x (c-b): the turning direction
// at vertex b.
func cross(a, b, c model.Point2D) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// SignedArea computes the signed area of a ring: positive for
// counter-clockwise winding.
func SignedArea(points []model.Point2D) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return area / 2
}

// Sanitize cleans a raw ring: consecutive near-duplicate points are
// dropped, a trailing point that closes the ring is removed, and
// colinear vertices are removed iteratively until stable or the
// iteration budget runs out.
func Sanitize(points []model.Point2D) []model.Point2D {
	if len(points) == 0 {
		return nil
	}

	out := make([]model.Point2D, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && nearlyEqual(p, out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && nearlyEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	budget := len(out) + 1
	for iter := 0; iter < budget; iter++ {
		removed := false
		for i := 0; i < len(out) && len(out) > 3; i++ {
			n := len(out)
			prev := out[(i+n-1)%n]
			next := out[(i+1)%n]
			if math.Abs(cross(prev, out[i], next)) < Epsilon {
				out = append(out[:i], out[i+1:]...)
				removed = true
				i--
			}
		}
		if !removed {
			break
		}
	}
	return out
}

// IsConvex reports whether the ring is convex. A ring with near-zero
// area counts as convex (degenerate).
func IsConvex(points []model.Point2D) bool {
	n := len(points)
	if n < 3 {
		return true
	}
	if math.Abs(SignedArea(points)) < Epsilon {
		return true
	}
	sign := 0.0
	for i := 0; i < n; i++ {
		c := cross(points[(i+n-1)%n], points[i], points[(i+1)%n])
		if math.Abs(c) < Epsilon {
			continue
		}
		if sign == 0 {
			sign = c
		} else if sign*c < 0 {
			return false
		}
	}
	return true
}

// Triangulate decomposes a simple polygon into triangles by ear
// clipping. It returns ok=false when no ear can be found within the n²
// iteration budget (typically a self-intersecting ring).
func Triangulate(points []model.Point2D) ([][]model.Point2D, bool) {
	n := len(points)
	if n < 3 {
		return nil, false
	}
	if n == 3 {
		return [][]model.Point2D{{points[0], points[1], points[2]}}, true
	}

	winding := 1.0
	if SignedArea(points) < 0 {
		winding = -1
	}

	ring := append([]model.Point2D(nil), points...)
	triangles := make([][]model.Point2D, 0, n-2)
	budget := n * n
	i := 0

	for len(ring) > 3 {
		if budget <= 0 {
			return nil, false
		}
		budget--

		m := len(ring)
		i %= m
		prev := ring[(i+m-1)%m]
		cur := ring[i]
		next := ring[(i+1)%m]

		// An ear is locally convex w.r.t. the overall winding and its
		// triangle contains no other ring vertex.
		if cross(prev, cur, next)*winding > Epsilon && earIsEmpty(ring, i, winding) {
			triangles = append(triangles, []model.Point2D{prev, cur, next})
			ring = append(ring[:i], ring[i+1:]...)
			i = 0
			continue
		}
		i++
	}

	triangles = append(triangles, []model.Point2D{ring[0], ring[1], ring[2]})
	return triangles, true
}

// earIsEmpty checks that no ring vertex other than the ear's own three
// lies inside the candidate ear triangle.
func earIsEmpty(ring []model.Point2D, i int, winding float64) bool {
	m := len(ring)
	ip := (i + m - 1) % m
	in := (i + 1) % m
	a, b, c := ring[ip], ring[i], ring[in]

	for j := 0; j < m; j++ {
		if j == ip || j == i || j == in {
			continue
		}
		if triangleContains(a, b, c, ring[j], winding) {
			return false
		}
	}
	return true
}

// triangleContains tests point p against triangle abc using the
// barycentric-sign check, oriented by the ring winding. Boundary points
// count as contained, which conservatively blocks the ear.
func triangleContains(a, b, c, p model.Point2D, winding float64) bool {
	d1 := cross(a, b, p) * winding
	d2 := cross(b, c, p) * winding
	d3 := cross(c, a, p) * winding
	return d1 > -Epsilon && d2 > -Epsilon && d3 > -Epsilon
}

// ConvexHull computes the convex hull of a point set with the
// monotone-chain (Andrew's) algorithm. Input order does not matter;
// duplicates are discarded. The hull is returned counter-clockwise.
func ConvexHull(points []model.Point2D) []model.Point2D {
	pts := append([]model.Point2D(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	dedup := pts[:0]
	for _, p := range pts {
		if len(dedup) == 0 || !nearlyEqual(p, dedup[len(dedup)-1]) {
			dedup = append(dedup, p)
		}
	}
	pts = dedup

	n := len(pts)
	if n < 3 {
		return nil
	}

	hull := make([]model.Point2D, 0, 2*n)
	for _, p := range pts { // lower chain
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= Epsilon {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- { // upper chain
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= Epsilon {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1] // last point repeats the first

	if len(hull) < 3 {
		return nil
	}
	return hull
}

func nearlyEqual(a, b model.Point2D) bool {
	return math.Abs(a.X-b.X) < Epsilon && math.Abs(a.Y-b.Y) < Epsilon
}
