package geometry

import (
	"math"

	"github.com/piwi3910/patterngen/internal/model"
)

// CollisionPolygon is a convex polygon prepared for SAT testing: its
// unit edge normals are the candidate separating axes, and the centroid
// plus bounding radius feed the broad-phase circle check. Built once
// per distinct shape and reused for every placement attempt, since
// decomposition and normal computation are not cheap.
type CollisionPolygon struct {
	Points         []model.Point2D
	Normals        []model.Point2D // unit edge normals, one per edge
	Centroid       model.Point2D
	BoundingRadius float64 // max distance from centroid to any vertex
}

// NewCollisionPolygon precomputes the SAT data for a convex ring.
func NewCollisionPolygon(points []model.Point2D) *CollisionPolygon {
	n := len(points)
	poly := &CollisionPolygon{
		Points:  points,
		Normals: make([]model.Point2D, 0, n),
	}

	var cx, cy float64
	for i := 0; i < n; i++ {
		cx += points[i].X
		cy += points[i].Y

		j := (i + 1) % n
		ex := points[j].X - points[i].X
		ey := points[j].Y - points[i].Y
		length := math.Hypot(ex, ey)
		if length < Epsilon {
			continue
		}
		poly.Normals = append(poly.Normals, model.Point2D{X: ey / length, Y: -ex / length})
	}
	poly.Centroid = model.Point2D{X: cx / float64(n), Y: cy / float64(n)}

	for _, p := range points {
		d := math.Hypot(p.X-poly.Centroid.X, p.Y-poly.Centroid.Y)
		if d > poly.BoundingRadius {
			poly.BoundingRadius = d
		}
	}
	return poly
}

// Decompose turns a collision shape into simple convex polygons ready
// for SAT. Each resolved ring goes through sanitize → convexity test →
// ear clipping → convex-hull fallback. Rings that stay degenerate after
// every fallback contribute nothing: skipping a bad shape is safer than
// aborting a generation run.
func Decompose(shape model.CollisionShape, circleSegments int) []*CollisionPolygon {
	var polys []*CollisionPolygon
	for _, ring := range shape.Rings(circleSegments) {
		polys = append(polys, decomposeRing(ring)...)
	}
	return polys
}

func decomposeRing(ring model.Outline) []*CollisionPolygon {
	points := Sanitize(ring)
	if len(points) < 3 {
		return nil
	}

	if IsConvex(points) {
		return []*CollisionPolygon{NewCollisionPolygon(points)}
	}

	if triangles, ok := Triangulate(points); ok {
		polys := make([]*CollisionPolygon, 0, len(triangles))
		for _, t := range triangles {
			polys = append(polys, NewCollisionPolygon(t))
		}
		return polys
	}

	hull := ConvexHull(points)
	if len(hull) < 3 {
		return nil
	}
	return []*CollisionPolygon{NewCollisionPolygon(hull)}
}

// ShapeBoundingRadius returns the distance from the local origin to the
// farthest vertex across all decomposed polygons. Unlike the per-polygon
// radius it is anchored at the origin, so it bounds the whole shape
// regardless of how the shape was centered.
func ShapeBoundingRadius(polys []*CollisionPolygon) float64 {
	var radius float64
	for _, poly := range polys {
		for _, p := range poly.Points {
			d := math.Hypot(p.X, p.Y)
			if d > radius {
				radius = d
			}
		}
	}
	return radius
}
