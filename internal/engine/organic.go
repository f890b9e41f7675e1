package engine

import (
	"context"
	"math"

	"github.com/piwi3910/patterngen/internal/model"
)

// generateOrganic fills the tile by rejection sampling: weighted item
// pick, random transform, broad-phase grid query, SAT confirmation.
// Slots are strictly sequential because each acceptance depends on the
// grid state left by all previous slots. Returns the placements and the
// computed target count.
func (e *Engine) generateOrganic(ctx context.Context, scene model.Scene, settings model.Settings) ([]model.PlacedItem, int) {
	spacing := settings.MinimumSpacing
	area := scene.Width * scene.Height
	density := settings.Density

	target := int(math.Round(area / math.Max(spacing*spacing, 1) * density))
	if target < 0 {
		target = 0
	}
	if target > settings.MaximumItemCount {
		target = settings.MaximumItemCount
	}

	r := &run{
		settings: settings,
		width:    scene.Width,
		height:   scene.Height,
		wrap:     settings.EdgeBehavior == model.EdgeSeamlessWrapping,
		rng:      NewRNG(settings.Seed),
		cache:    make(map[string]polyCacheEntry),
	}

	cellSize := math.Max(2*r.maxItemRadius(scene.Items, scene.Pinned)+spacing, 1)
	r.grid = newSpatialGrid(scene.Width, scene.Height, cellSize, r.wrap)

	// Pinned obstacles go into the registry first; they occupy budget
	// but never produce output.
	for _, p := range scene.Pinned {
		r.register(r.polysFor(p.ItemID, p.Shape), p.Transform())
	}

	slots := target - len(scene.Pinned)
	if slots < 0 {
		slots = 0
	}

	weights := make([]float64, len(scene.Items))
	for i, item := range scene.Items {
		weights[i] = item.Weight
	}

	placements := make([]model.PlacedItem, 0, slots)
	if len(scene.Items) == 0 {
		return placements, target
	}

	for slot := 0; slot < slots; slot++ {
		if cancelled(ctx) {
			return placements, target
		}

		item := scene.Items[r.rng.WeightedIndex(weights)]
		scale := r.rng.FloatRange(item.ScaleRange.Min, item.ScaleRange.Max)
		rotation := r.rng.FloatRange(item.RotationRange.Min, item.RotationRange.Max) * math.Pi / 180
		polys := r.polysFor(item.ID, item.Shape)

		// A slot that exhausts its attempts is skipped, not an error:
		// at high density unfilled probabilistic slots are expected.
		for attempt := 0; attempt < settings.MaxAttempts; attempt++ {
			if cancelled(ctx) {
				return placements, target
			}

			t := model.CollisionTransform{
				Position: r.rng.PointIn(scene.Width, scene.Height),
				Rotation: rotation,
				Scale:    scale,
			}
			if !r.fits(polys, t, spacing) {
				continue
			}

			placements = append(placements, model.PlacedItem{
				ItemID:   item.ID,
				Position: t.Position,
				Rotation: t.Rotation,
				Scale:    t.Scale,
				Shape:    item.Shape,
			})
			r.register(polys, t)
			break
		}
	}
	return placements, target
}
