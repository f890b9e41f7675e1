// Package engine fills a tile with weighted, randomly chosen items so
// that no two placed footprints overlap (optionally within a minimum
// spacing buffer). Runs are deterministic per seed, sequential by data
// dependency, and cooperatively cancellable: a cancelled run returns
// the placements accepted so far.
package engine

import (
	"context"
	"math"
	"reflect"

	"github.com/piwi3910/patterngen/internal/geometry"
	"github.com/piwi3910/patterngen/internal/model"
)

// Engine runs placement for one scene at a time. Each Generate call
// owns its own RNG, collider arena, and grid, so separate engines (or
// separate calls) may run in parallel without shared state.
type Engine struct {
	Settings model.Settings
}

// New creates an engine with normalized settings.
func New(settings model.Settings) *Engine {
	return &Engine{Settings: settings.Normalized()}
}

// Generate runs one placement pass over the scene and returns an
// immutable result snapshot. Cancellation through ctx is not an error:
// the result carries the accepted-so-far prefix.
func (e *Engine) Generate(ctx context.Context, scene model.Scene) model.Result {
	settings := e.Settings.Normalized()
	if scene.Width <= 0 {
		scene.Width = 1
	}
	if scene.Height <= 0 {
		scene.Height = 1
	}
	scene.Settings = settings
	scene.Items = normalizedItems(scene.Items)

	var placements []model.PlacedItem
	var target int
	switch settings.Mode {
	case model.ModeLattice:
		placements, target = e.generateLattice(ctx, scene, settings)
	default:
		placements, target = e.generateOrganic(ctx, scene, settings)
	}

	return model.Result{
		Placements:  placements,
		InputKey:    scene.InputKey(),
		TargetCount: target,
	}
}

// normalizedItems clamps item-level numeric ranges before placement.
// The grid cell size is derived from ScaleRange.Max, so an inverted or
// non-finite range must be repaired here or the broad-phase scan radius
// would undercount what a placed footprint can reach.
func normalizedItems(items []model.PlacementItem) []model.PlacementItem {
	out := make([]model.PlacementItem, len(items))
	for i, item := range items {
		item.ScaleRange = item.ScaleRange.Normalized()
		item.RotationRange = item.RotationRange.Normalized()
		out[i] = item
	}
	return out
}

// placedCollider is one registered footprint in the run's arena. The
// arena is append-only and addressed by stable integer index from the
// grid; entries are never removed or mutated in place.
type placedCollider struct {
	polys     []*geometry.CollisionPolygon
	transform model.CollisionTransform
	radius    float64 // unscaled shape bounding radius from the local origin
}

// run is the per-invocation state: decomposition cache, collider arena,
// and broad-phase grid, owned exclusively by one Generate call.
type run struct {
	settings model.Settings
	width    float64
	height   float64
	wrap     bool
	rng      *RNG

	cache     map[string]polyCacheEntry
	colliders []placedCollider
	grid      *spatialGrid
	scratch   []int
}

// polyCacheEntry remembers which shape a cached decomposition came
// from. A pinned placement may carry an item's ID but a different
// shape, so the ID alone is not a safe key.
type polyCacheEntry struct {
	shape model.CollisionShape
	polys []*geometry.CollisionPolygon
}

// polysFor returns the decomposed polygons for a shape, cached by item
// ID for the lifetime of the run. A cache hit is only served when the
// stored shape matches; a same-ID different-shape request decomposes
// fresh and takes over the slot.
func (r *run) polysFor(itemID string, shape model.CollisionShape) []*geometry.CollisionPolygon {
	if itemID == "" {
		return geometry.Decompose(shape, r.settings.CircleSegments)
	}
	if entry, ok := r.cache[itemID]; ok && reflect.DeepEqual(entry.shape, shape) {
		return entry.polys
	}
	polys := geometry.Decompose(shape, r.settings.CircleSegments)
	r.cache[itemID] = polyCacheEntry{shape: shape, polys: polys}
	return polys
}

// register appends a collider to the arena and indexes it in the grid
// under its position (passed through the same wrap function queries
// use).
func (r *run) register(polys []*geometry.CollisionPolygon, t model.CollisionTransform) {
	idx := len(r.colliders)
	r.colliders = append(r.colliders, placedCollider{
		polys:     polys,
		transform: t,
		radius:    geometry.ShapeBoundingRadius(polys),
	})
	r.grid.insert(idx, t.Position)
}

// fits reports whether a candidate footprint can be placed without
// intersecting any registered neighbor, with buffer spacing applied.
func (r *run) fits(polys []*geometry.CollisionPolygon, t model.CollisionTransform, buffer float64) bool {
	candRadius := geometry.ShapeBoundingRadius(polys)

	r.scratch = r.grid.neighbors(t.Position, r.scratch[:0])
	for _, ci := range r.scratch {
		nb := &r.colliders[ci]
		if r.collides(polys, candRadius, t, nb, buffer) {
			return false
		}
	}
	return true
}

// collides tests the candidate against one neighbor, shifting the
// neighbor to its relevant periodic images under seamless wrapping.
func (r *run) collides(polys []*geometry.CollisionPolygon, candRadius float64, t model.CollisionTransform, nb *placedCollider, buffer float64) bool {
	if !r.wrap {
		return r.pairIntersects(polys, candRadius, t, nb, nb.transform.Position, buffer)
	}

	// When the buffered interaction radius is below half the shorter
	// tile dimension, the single nearest periodic image is exact.
	interaction := candRadius*t.Scale + nb.radius*nb.transform.Scale + buffer
	if interaction < math.Min(r.width, r.height)/2 {
		pos := nb.transform.Position
		pos.X += math.Round((t.Position.X-pos.X)/r.width) * r.width
		pos.Y += math.Round((t.Position.Y-pos.Y)/r.height) * r.height
		return r.pairIntersects(polys, candRadius, t, nb, pos, buffer)
	}

	// Items nearly as large as the tile: check the full 3x3 periodic
	// lattice, since no single image is guaranteed nearest.
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			pos := model.Point2D{
				X: nb.transform.Position.X + float64(dx)*r.width,
				Y: nb.transform.Position.Y + float64(dy)*r.height,
			}
			if r.pairIntersects(polys, candRadius, t, nb, pos, buffer) {
				return true
			}
		}
	}
	return false
}

func (r *run) pairIntersects(polys []*geometry.CollisionPolygon, candRadius float64, t model.CollisionTransform, nb *placedCollider, nbPos model.Point2D, buffer float64) bool {
	nbT := nb.transform
	nbT.Position = nbPos
	if !geometry.BoundingCirclesIntersect(candRadius, t, nb.radius, nbT, buffer) {
		return false
	}
	return geometry.ShapesIntersect(polys, t, nb.polys, nbT, buffer)
}

// maxItemRadius returns the largest world-space bounding radius any
// candidate item or pinned obstacle can reach, for sizing grid cells.
func (r *run) maxItemRadius(items []model.PlacementItem, pinned []model.PlacedItem) float64 {
	var max float64
	for _, item := range items {
		radius := geometry.ShapeBoundingRadius(r.polysFor(item.ID, item.Shape)) * item.ScaleRange.Max
		if radius > max {
			max = radius
		}
	}
	for _, p := range pinned {
		radius := geometry.ShapeBoundingRadius(r.polysFor(p.ItemID, p.Shape)) * p.Scale
		if radius > max {
			max = radius
		}
	}
	return max
}

func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
