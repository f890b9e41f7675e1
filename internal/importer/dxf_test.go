package importer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/patterngen/internal/model"
)

func TestChainSegments_ClosesLoop(t *testing.T) {
	// Four sides of a unit square, supplied out of order and with mixed
	// direction.
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 1, Y: 0}},
		{start: model.Point2D{X: 0, Y: 1}, end: model.Point2D{X: 0, Y: 0}},
		{start: model.Point2D{X: 1, Y: 1}, end: model.Point2D{X: 1, Y: 0}}, // reversed
		{start: model.Point2D{X: 1, Y: 1}, end: model.Point2D{X: 0, Y: 1}},
	}

	outlines := chainSegments(segs, 0.01)

	require.Len(t, outlines, 1)
	assert.Len(t, outlines[0], 4, "closing duplicate point is dropped")
	assert.InDelta(t, 1, outlines[0].Area(), 1e-9)
}

func TestChainSegments_MultipleLoopsSortedByArea(t *testing.T) {
	square := func(origin model.Point2D, size float64) []segment {
		a := origin
		b := model.Point2D{X: origin.X + size, Y: origin.Y}
		c := model.Point2D{X: origin.X + size, Y: origin.Y + size}
		d := model.Point2D{X: origin.X, Y: origin.Y + size}
		return []segment{{a, b}, {b, c}, {c, d}, {d, a}}
	}

	segs := append(square(model.Point2D{}, 1), square(model.Point2D{X: 10, Y: 10}, 3)...)
	outlines := chainSegments(segs, 0.01)

	require.Len(t, outlines, 2)
	assert.InDelta(t, 9, outlines[0].Area(), 1e-9, "largest outline first")
	assert.InDelta(t, 1, outlines[1].Area(), 1e-9)
}

func TestChainSegments_OpenChainHasZeroArea(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 1, Y: 0}},
		{start: model.Point2D{X: 1, Y: 0}, end: model.Point2D{X: 2, Y: 0}},
	}
	// An open polyline still yields 3 points but zero area; the DXF
	// importer's degenerate-shape check rejects it downstream.
	outlines := chainSegments(segs, 0.01)
	require.Len(t, outlines, 1)
	assert.Zero(t, outlines[0].Area())
}

func TestArcPoints(t *testing.T) {
	pts := arcPoints(model.Point2D{X: 1, Y: 1}, 2, 0, math.Pi, 8)

	require.Len(t, pts, 9)
	assert.InDelta(t, 3, pts[0].X, 1e-9)
	assert.InDelta(t, 1, pts[0].Y, 1e-9)
	assert.InDelta(t, -1, pts[8].X, 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 2, math.Hypot(p.X-1, p.Y-1), 1e-9)
	}
}

func TestBulgeArcPoints_SemicircleBulge(t *testing.T) {
	// Bulge 1 is a half circle between the endpoints.
	pts := bulgeArcPoints(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}, 1, 16)

	require.Len(t, pts, 17)
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, 2, pts[16].X, 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p.X-1, p.Y), 1e-6, "points lie on the unit circle around (1,0)")
	}
}

func TestPointsClose(t *testing.T) {
	assert.True(t, pointsClose(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 0.005, Y: 0}, 0.01))
	assert.False(t, pointsClose(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 0.02, Y: 0}, 0.01))
}
