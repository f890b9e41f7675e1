package geometry

import (
	"math"

	"github.com/piwi3910/patterngen/internal/model"
)

// BoundingCirclesIntersect is the cheap pre-filter run before any
// narrow-phase work: it compares the squared center distance against
// the squared sum of both bounding radii (each scaled by its transform)
// plus the buffer.
func BoundingCirclesIntersect(radiusA float64, ta model.CollisionTransform, radiusB float64, tb model.CollisionTransform, buffer float64) bool {
	dx := ta.Position.X - tb.Position.X
	dy := ta.Position.Y - tb.Position.Y
	reach := radiusA*ta.Scale + radiusB*tb.Scale + buffer
	return dx*dx+dy*dy <= reach*reach
}

// PolygonsIntersect runs the SAT test between two convex polygons under
// independent position/rotation/scale transforms. buffer enlarges both
// projection intervals symmetrically by buffer/2, turning the test into
// "are the shapes closer than buffer" so the minimum-spacing constraint
// reuses this one routine.
func PolygonsIntersect(a *CollisionPolygon, ta model.CollisionTransform, b *CollisionPolygon, tb model.CollisionTransform, buffer float64) bool {
	half := buffer / 2
	sinA, cosA := math.Sincos(ta.Rotation)
	sinB, cosB := math.Sincos(tb.Rotation)

	for _, n := range a.Normals {
		axis := model.Point2D{X: n.X*cosA - n.Y*sinA, Y: n.X*sinA + n.Y*cosA}
		if intervalsSeparated(axis, a, ta, sinA, cosA, b, tb, sinB, cosB, half) {
			return false
		}
	}
	for _, n := range b.Normals {
		axis := model.Point2D{X: n.X*cosB - n.Y*sinB, Y: n.X*sinB + n.Y*cosB}
		if intervalsSeparated(axis, a, ta, sinA, cosA, b, tb, sinB, cosB, half) {
			return false
		}
	}
	return true
}

// intervalsSeparated projects both polygons onto a world-space axis and
// reports whether the buffered intervals miss each other.
func intervalsSeparated(axis model.Point2D, a *CollisionPolygon, ta model.CollisionTransform, sinA, cosA float64, b *CollisionPolygon, tb model.CollisionTransform, sinB, cosB float64, half float64) bool {
	minA, maxA := projectInterval(axis, a.Points, ta, sinA, cosA)
	minB, maxB := projectInterval(axis, b.Points, tb, sinB, cosB)
	return maxA+half < minB-half || maxB+half < minA-half
}

// projectInterval computes the [min,max] projection of a transformed
// polygon onto a world axis without materializing world-space points:
// the axis is rotated into local space, each local point is projected
// there, and the precomputed position projection is added back.
func projectInterval(axis model.Point2D, points []model.Point2D, t model.CollisionTransform, sin, cos float64) (float64, float64) {
	posProj := axis.X*t.Position.X + axis.Y*t.Position.Y
	lx := axis.X*cos + axis.Y*sin
	ly := -axis.X*sin + axis.Y*cos

	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range points {
		v := posProj + t.Scale*(lx*p.X+ly*p.Y)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// ShapesIntersect tests two decomposed shapes pairwise, sub-polygon by
// sub-polygon. Each pair is pre-filtered by its own transformed
// centroid bounding circle (buffered by buffer/2); any intersecting
// pair means the shapes intersect.
func ShapesIntersect(polysA []*CollisionPolygon, ta model.CollisionTransform, polysB []*CollisionPolygon, tb model.CollisionTransform, buffer float64) bool {
	half := buffer / 2
	sinA, cosA := math.Sincos(ta.Rotation)
	sinB, cosB := math.Sincos(tb.Rotation)

	for _, a := range polysA {
		caX := ta.Position.X + ta.Scale*(a.Centroid.X*cosA-a.Centroid.Y*sinA)
		caY := ta.Position.Y + ta.Scale*(a.Centroid.X*sinA+a.Centroid.Y*cosA)
		ra := a.BoundingRadius*ta.Scale + half

		for _, b := range polysB {
			cbX := tb.Position.X + tb.Scale*(b.Centroid.X*cosB-b.Centroid.Y*sinB)
			cbY := tb.Position.Y + tb.Scale*(b.Centroid.X*sinB+b.Centroid.Y*cosB)
			rb := b.BoundingRadius*tb.Scale + half

			dx := caX - cbX
			dy := caY - cbY
			reach := ra + rb
			if dx*dx+dy*dy > reach*reach {
				continue
			}
			if PolygonsIntersect(a, ta, b, tb, buffer) {
				return true
			}
		}
	}
	return false
}
