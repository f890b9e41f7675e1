package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlacementItem_Defaults(t *testing.T) {
	item := NewPlacementItem("tree", NewCircleShape(Point2D{}, 5))

	assert.Len(t, item.ID, 8)
	assert.Equal(t, "tree", item.Label)
	assert.Equal(t, 1.0, item.Weight)
	assert.Equal(t, Fixed(0), item.RotationRange)
	assert.Equal(t, Fixed(1), item.ScaleRange)

	other := NewPlacementItem("tree", NewCircleShape(Point2D{}, 5))
	assert.NotEqual(t, item.ID, other.ID, "each item gets a unique ID")
}

func TestRange_Normalized(t *testing.T) {
	assert.Equal(t, Range{Min: 1, Max: 5}, Range{Min: 5, Max: 1}.Normalized(),
		"inverted endpoints are swapped")
	assert.Equal(t, Range{Min: 2, Max: 3}, Range{Min: 2, Max: 3}.Normalized())
	assert.Equal(t, Fixed(4), Fixed(4).Normalized())

	assert.Equal(t, Range{Min: 0, Max: 1}, Range{Min: math.NaN(), Max: 1}.Normalized())
	assert.Equal(t, Range{Min: 0, Max: 2}, Range{Min: 2, Max: math.Inf(1)}.Normalized())
}

func TestOutline_BoundingBoxAndArea(t *testing.T) {
	o := Outline{{X: 1, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 6}, {X: 1, Y: 6}}

	min, max := o.BoundingBox()
	assert.Equal(t, Point2D{X: 1, Y: 2}, min)
	assert.Equal(t, Point2D{X: 5, Y: 6}, max)
	assert.InDelta(t, 16, o.Area(), 1e-9)

	// Winding does not affect the absolute area.
	reversed := Outline{{X: 1, Y: 6}, {X: 5, Y: 6}, {X: 5, Y: 2}, {X: 1, Y: 2}}
	assert.InDelta(t, 16, reversed.Area(), 1e-9)

	assert.Zero(t, Outline{{X: 0, Y: 0}, {X: 1, Y: 1}}.Area())
}

func TestOutline_Translate(t *testing.T) {
	o := Outline{{X: 1, Y: 1}}
	moved := o.Translate(2, -3)
	assert.Equal(t, Outline{{X: 3, Y: -2}}, moved)
	assert.Equal(t, Outline{{X: 1, Y: 1}}, o, "translate never mutates the receiver")
}

func TestRings_Circle(t *testing.T) {
	shape := NewCircleShape(Point2D{X: 2, Y: 3}, 5)

	rings := shape.Rings(12)
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 12)
	for _, p := range rings[0] {
		assert.InDelta(t, 5, math.Hypot(p.X-2, p.Y-3), 1e-9, "all vertices sit on the circle")
	}

	// Default and minimum tessellation.
	assert.Len(t, shape.Rings(0)[0], DefaultCircleSegments)
	assert.Len(t, shape.Rings(2)[0], MinCircleSegments)
}

func TestRings_Rectangle(t *testing.T) {
	shape := NewRectangleShape(Point2D{X: 1, Y: 1}, Size2D{Width: 4, Height: 2})

	rings := shape.Rings(0)
	require.Len(t, rings, 1)
	assert.ElementsMatch(t, Outline{
		{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: -1, Y: 2},
	}, rings[0])
}

func TestRings_PlainPolygonRecentered(t *testing.T) {
	shape := NewPolygonShape(Outline{
		{X: 10, Y: 10}, {X: 14, Y: 10}, {X: 14, Y: 12}, {X: 10, Y: 12},
	})

	rings := shape.Rings(0)
	require.Len(t, rings, 1)

	min, max := rings[0].BoundingBox()
	assert.InDelta(t, 0, (min.X+max.X)/2, 1e-9, "bounding-box center moves to the origin")
	assert.InDelta(t, 0, (min.Y+max.Y)/2, 1e-9)
}

func TestRings_CenteredPolygonUntouched(t *testing.T) {
	points := Outline{{X: 10, Y: 10}, {X: 14, Y: 10}, {X: 12, Y: 14}}
	shape := NewCenteredPolygonShape(points)

	rings := shape.Rings(0)
	require.Len(t, rings, 1)
	assert.Equal(t, points, rings[0])
}

func TestRings_AnchoredPolygonTranslation(t *testing.T) {
	// Points shift by -(anchor*size - size/2) on each axis. A 10x10
	// container with anchor (1,1) shifts its points by -5,-5.
	shape := NewAnchoredPolygonShape(
		Outline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Point2D{X: 1, Y: 1},
		Size2D{Width: 10, Height: 10},
	)

	rings := shape.Rings(0)
	require.Len(t, rings, 1)
	assert.Equal(t, Point2D{X: -5, Y: -5}, rings[0][0])
	assert.Equal(t, Point2D{X: 5, Y: 5}, rings[0][2])

	// Center anchor leaves the points alone.
	centered := NewAnchoredPolygonShape(
		Outline{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
		Point2D{X: 0.5, Y: 0.5},
		Size2D{Width: 10, Height: 10},
	)
	assert.Equal(t, Point2D{X: -1, Y: -1}, centered.Rings(0)[0][0])
}

func TestRings_MultiPolygonVariants(t *testing.T) {
	sets := []Outline{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}},
	}

	assert.Len(t, NewMultiPolygonShape(sets).Rings(0), 2)
	assert.Len(t, NewCenteredMultiPolygonShape(sets).Rings(0), 2)
	assert.Equal(t, sets[1], NewCenteredMultiPolygonShape(sets).Rings(0)[1])
}

func TestSettings_Normalized(t *testing.T) {
	s := Settings{
		Mode:             "bogus",
		EdgeBehavior:     "sideways",
		MinimumSpacing:   -5,
		Density:          7,
		MaximumItemCount: -1,
		MaxAttempts:      0,
		CellSize:         0,
		OffsetStrategy:   "zigzag",
		OffsetFraction:   -0.2,
		CircleSegments:   3,
	}.Normalized()

	assert.Equal(t, ModeOrganic, s.Mode)
	assert.Equal(t, EdgeFinite, s.EdgeBehavior)
	assert.Zero(t, s.MinimumSpacing)
	assert.Equal(t, 1.0, s.Density)
	assert.Zero(t, s.MaximumItemCount)
	assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts)
	assert.Equal(t, 1.0, s.CellSize)
	assert.Equal(t, OffsetNone, s.OffsetStrategy)
	assert.Equal(t, 0.5, s.OffsetFraction)
	assert.Equal(t, MinCircleSegments, s.CircleSegments)

	// Valid settings pass through untouched.
	def := DefaultSettings()
	assert.Equal(t, def, def.Normalized())

	// An explicit zero offset fraction means "no shift" and survives.
	def.OffsetFraction = 0
	assert.Zero(t, def.Normalized().OffsetFraction)
}

func TestScene_InputKey(t *testing.T) {
	scene := NewScene("key", 100, 50)
	scene.Items = append(scene.Items, PlacementItem{ID: "x", Weight: 1,
		Shape: NewCircleShape(Point2D{}, 3)})

	key := scene.InputKey()
	assert.NotZero(t, key)
	assert.Equal(t, key, scene.InputKey(), "the key is stable across calls")

	changed := scene
	changed.Settings.Seed++
	assert.NotEqual(t, key, changed.InputKey(), "any input change moves the key")

	renamed := scene
	renamed.Name = "other"
	assert.NotEqual(t, key, renamed.InputKey())
}

func TestPlacedItem_Transform(t *testing.T) {
	p := PlacedItem{
		Position: Point2D{X: 3, Y: 4},
		Rotation: 1.5,
		Scale:    2,
	}
	assert.Equal(t, CollisionTransform{
		Position: Point2D{X: 3, Y: 4},
		Rotation: 1.5,
		Scale:    2,
	}, p.Transform())
}
