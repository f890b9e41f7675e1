package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in tile units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size2D represents a width/height pair in tile units.
type Size2D struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Range is a closed numeric interval. A fixed value is expressed as
// Min == Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Fixed returns a range that always resolves to the given value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Normalized returns the range with non-finite endpoints replaced by
// zero and its endpoints ordered. Inverted authoring input becomes a
// usable interval instead of defeating downstream bounds computation.
func (r Range) Normalized() Range {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) {
		r.Min = 0
	}
	if math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
		r.Max = 0
	}
	if r.Max < r.Min {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area computes the absolute area of the outline using the shoelace formula.
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// CollisionTransform describes where and how a shape instance sits in
// tile space. It is ephemeral: recomputed for every placement attempt.
type CollisionTransform struct {
	Position Point2D `json:"position"`
	Rotation float64 `json:"rotation"` // radians
	Scale    float64 `json:"scale"`
}

// PlacementItem describes one placeable item candidate. Immutable for
// the duration of a placement run.
type PlacementItem struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Weight        float64        `json:"weight"`         // >0 biases selection probability
	RotationRange Range          `json:"rotation_range"` // degrees
	ScaleRange    Range          `json:"scale_range"`
	Shape         CollisionShape `json:"shape"`
}

// NewPlacementItem creates an item with a fresh ID, unit weight, and
// fixed scale/rotation.
func NewPlacementItem(label string, shape CollisionShape) PlacementItem {
	return PlacementItem{
		ID:            uuid.New().String()[:8],
		Label:         label,
		Weight:        1,
		RotationRange: Fixed(0),
		ScaleRange:    Fixed(1),
		Shape:         shape,
	}
}

// PlacedItem is the engine's output unit: one accepted placement.
// Never mutated after creation.
type PlacedItem struct {
	ItemID   string         `json:"item_id"`
	Position Point2D        `json:"position"`
	Rotation float64        `json:"rotation"` // radians
	Scale    float64        `json:"scale"`
	Shape    CollisionShape `json:"shape"`
}

// Transform returns the placement's collision transform.
func (p PlacedItem) Transform() CollisionTransform {
	return CollisionTransform{Position: p.Position, Rotation: p.Rotation, Scale: p.Scale}
}
