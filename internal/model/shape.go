package model

import "math"

// ShapeKind discriminates the collision shape variants. The set is
// closed: decomposition switches exhaustively over it.
type ShapeKind string

const (
	ShapeCircle               ShapeKind = "circle"
	ShapeRectangle            ShapeKind = "rectangle"
	ShapePolygon              ShapeKind = "polygon"
	ShapeMultiPolygon         ShapeKind = "multiPolygon"
	ShapeAnchoredPolygon      ShapeKind = "anchoredPolygon"
	ShapeAnchoredMultiPolygon ShapeKind = "anchoredMultiPolygon"
	ShapeCenteredPolygon      ShapeKind = "centeredPolygon"
	ShapeCenteredMultiPolygon ShapeKind = "centeredMultiPolygon"
)

// Circle tessellation bounds for collision purposes.
const (
	DefaultCircleSegments = 12
	MinCircleSegments     = 6
)

// CollisionShape describes a collision footprint in item-local space.
// It is a tagged union: Kind selects which payload fields are
// meaningful. Shapes are pure data with no identity; they are owned by
// the item descriptor that references them.
type CollisionShape struct {
	Kind ShapeKind `json:"kind"`

	// Circle / Rectangle
	Center Point2D `json:"center,omitzero"`
	Radius float64 `json:"radius,omitempty"`
	Size   Size2D  `json:"size,omitzero"`

	// Anchored variants: points are relative to a container of Size
	// whose origin sits at Anchor (unit fractions in 0..1).
	Anchor Point2D `json:"anchor,omitzero"`

	// Single-polygon variants
	Points Outline `json:"points,omitempty"`

	// Multi-polygon variants
	PointSets []Outline `json:"point_sets,omitempty"`
}

func NewCircleShape(center Point2D, radius float64) CollisionShape {
	return CollisionShape{Kind: ShapeCircle, Center: center, Radius: radius}
}

func NewRectangleShape(center Point2D, size Size2D) CollisionShape {
	return CollisionShape{Kind: ShapeRectangle, Center: center, Size: size}
}

func NewPolygonShape(points Outline) CollisionShape {
	return CollisionShape{Kind: ShapePolygon, Points: points}
}

func NewMultiPolygonShape(pointSets []Outline) CollisionShape {
	return CollisionShape{Kind: ShapeMultiPolygon, PointSets: pointSets}
}

func NewAnchoredPolygonShape(points Outline, anchor Point2D, size Size2D) CollisionShape {
	return CollisionShape{Kind: ShapeAnchoredPolygon, Points: points, Anchor: anchor, Size: size}
}

func NewAnchoredMultiPolygonShape(pointSets []Outline, anchor Point2D, size Size2D) CollisionShape {
	return CollisionShape{Kind: ShapeAnchoredMultiPolygon, PointSets: pointSets, Anchor: anchor, Size: size}
}

func NewCenteredPolygonShape(points Outline) CollisionShape {
	return CollisionShape{Kind: ShapeCenteredPolygon, Points: points}
}

func NewCenteredMultiPolygonShape(pointSets []Outline) CollisionShape {
	return CollisionShape{Kind: ShapeCenteredMultiPolygon, PointSets: pointSets}
}

// Rings resolves the shape to one or more point rings in a centered
// local frame: circles are tessellated, rectangles become their four
// corners, anchored variants are translated by -(anchor*size - size/2),
// and plain polygons are centered on their bounding-box center.
// circleSegments <= 0 selects the default tessellation.
func (s CollisionShape) Rings(circleSegments int) []Outline {
	switch s.Kind {
	case ShapeCircle:
		return []Outline{circleRing(s.Center, s.Radius, circleSegments)}

	case ShapeRectangle:
		hw := s.Size.Width / 2
		hh := s.Size.Height / 2
		return []Outline{{
			{X: s.Center.X - hw, Y: s.Center.Y - hh},
			{X: s.Center.X + hw, Y: s.Center.Y - hh},
			{X: s.Center.X + hw, Y: s.Center.Y + hh},
			{X: s.Center.X - hw, Y: s.Center.Y + hh},
		}}

	case ShapePolygon:
		return []Outline{centerOnBounds(s.Points)}

	case ShapeMultiPolygon:
		rings := make([]Outline, 0, len(s.PointSets))
		for _, ps := range s.PointSets {
			rings = append(rings, centerOnBounds(ps))
		}
		return rings

	case ShapeAnchoredPolygon:
		return []Outline{s.anchoredRing(s.Points)}

	case ShapeAnchoredMultiPolygon:
		rings := make([]Outline, 0, len(s.PointSets))
		for _, ps := range s.PointSets {
			rings = append(rings, s.anchoredRing(ps))
		}
		return rings

	case ShapeCenteredPolygon:
		return []Outline{s.Points}

	case ShapeCenteredMultiPolygon:
		return s.PointSets
	}
	return nil
}

// anchoredRing translates anchored-frame points into the centered frame.
func (s CollisionShape) anchoredRing(points Outline) Outline {
	dx := s.Anchor.X*s.Size.Width - 0.5*s.Size.Width
	dy := s.Anchor.Y*s.Size.Height - 0.5*s.Size.Height
	return points.Translate(-dx, -dy)
}

// circleRing approximates a circle as a regular polygon.
func circleRing(center Point2D, radius float64, segments int) Outline {
	if segments <= 0 {
		segments = DefaultCircleSegments
	}
	if segments < MinCircleSegments {
		segments = MinCircleSegments
	}
	ring := make(Outline, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return ring
}

// centerOnBounds translates points so their bounding-box center sits at
// the origin.
func centerOnBounds(points Outline) Outline {
	if len(points) == 0 {
		return points
	}
	min, max := points.BoundingBox()
	cx := (min.X + max.X) / 2
	cy := (min.Y + max.Y) / 2
	return points.Translate(-cx, -cy)
}
