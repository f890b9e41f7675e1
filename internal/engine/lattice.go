package engine

import (
	"context"
	"math"

	"github.com/piwi3910/patterngen/internal/model"
)

// generateLattice places items on a regular grid. Lattice placement is
// deterministic: each cell's item comes from the repeating sequence,
// scale and rotation are the low end of the item's ranges, and the only
// collision validation is against pinned obstacles, since the lattice
// spacing itself guarantees no overlap among generated cells. Returns
// the placements and the total cell count.
func (e *Engine) generateLattice(ctx context.Context, scene model.Scene, settings model.Settings) ([]model.PlacedItem, int) {
	items := orderedItems(scene.Items, settings.ItemOrder)
	if len(items) == 0 {
		return nil, 0
	}

	wrap := settings.EdgeBehavior == model.EdgeSeamlessWrapping

	// An offset strategy shifts alternating rows or columns; under
	// seamless wrapping the shifted parity pattern only tiles cleanly
	// when that axis has an even cell count.
	evenRows := wrap && (settings.OffsetStrategy == model.OffsetRowShift || settings.OffsetStrategy == model.OffsetCheckerShift)
	evenCols := wrap && (settings.OffsetStrategy == model.OffsetColumnShift || settings.OffsetStrategy == model.OffsetCheckerShift)

	cols := resolveAxisCount(scene.Width, settings.CellSize, axisMultiple(len(items), evenCols))
	rows := resolveAxisCount(scene.Height, settings.CellSize, axisMultiple(len(items), evenRows))
	cellW := scene.Width / float64(cols)
	cellH := scene.Height / float64(rows)

	r := &run{
		settings: settings,
		width:    scene.Width,
		height:   scene.Height,
		wrap:     wrap,
		cache:    make(map[string]polyCacheEntry),
	}
	cellSize := math.Max(2*r.maxItemRadius(items, scene.Pinned), 1)
	r.grid = newSpatialGrid(scene.Width, scene.Height, cellSize, wrap)
	for _, p := range scene.Pinned {
		r.register(r.polysFor(p.ItemID, p.Shape), p.Transform())
	}

	placements := make([]model.PlacedItem, 0, rows*cols)
	for row := 0; row < rows; row++ {
		if cancelled(ctx) {
			return placements, rows * cols
		}
		for col := 0; col < cols; col++ {
			idx := (row*cols + col) % len(items)
			item := items[idx]

			pos := model.Point2D{
				X: (float64(col) + 0.5) * cellW,
				Y: (float64(row) + 0.5) * cellH,
			}
			switch settings.OffsetStrategy {
			case model.OffsetRowShift:
				if row%2 == 1 {
					pos.X += settings.OffsetFraction * cellW
				}
			case model.OffsetColumnShift:
				if col%2 == 1 {
					pos.Y += settings.OffsetFraction * cellH
				}
			case model.OffsetCheckerShift:
				if (row+col)%2 == 1 {
					pos.X += settings.OffsetFraction * cellW
					pos.Y += settings.OffsetFraction * cellH
				}
			}

			if wrap {
				pos.X = wrapCoord(pos.X, scene.Width)
				pos.Y = wrapCoord(pos.Y, scene.Height)
			} else if pos.X < 0 || pos.X >= scene.Width || pos.Y < 0 || pos.Y >= scene.Height {
				continue
			}

			t := model.CollisionTransform{
				Position: pos,
				Rotation: item.RotationRange.Min * math.Pi / 180,
				Scale:    item.ScaleRange.Min,
			}
			if len(scene.Pinned) > 0 && !r.fits(r.polysFor(item.ID, item.Shape), t, 0) {
				continue
			}

			placements = append(placements, model.PlacedItem{
				ItemID:   item.ID,
				Position: t.Position,
				Rotation: t.Rotation,
				Scale:    t.Scale,
				Shape:    item.Shape,
			})
		}
	}
	return placements, rows * cols
}

// orderedItems applies the explicit item-order ID sequence when given;
// unknown IDs are skipped. An empty order keeps the scene order.
func orderedItems(items []model.PlacementItem, order []string) []model.PlacementItem {
	if len(order) == 0 {
		return items
	}
	byID := make(map[string]model.PlacementItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]model.PlacementItem, 0, len(order))
	for _, id := range order {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	if len(ordered) == 0 {
		return items
	}
	return ordered
}

// axisMultiple is the required multiple for a cell count on one axis:
// the item sequence must divide into full cycles, and an even count is
// needed when the offset parity has to tile seamlessly.
func axisMultiple(itemCount int, needEven bool) int {
	if itemCount < 1 {
		itemCount = 1
	}
	if needEven {
		return lcm(itemCount, 2)
	}
	return itemCount
}

// resolveAxisCount starts from round(dimension / desiredCellSize) and
// snaps to the multiple whose resulting cell size is closest to the
// desired size.
func resolveAxisCount(dimension, desiredCellSize float64, multiple int) int {
	base := int(math.Round(dimension / desiredCellSize))
	if base < 1 {
		base = 1
	}
	if multiple <= 1 {
		return base
	}

	floor := (base / multiple) * multiple
	if floor < multiple {
		floor = multiple
	}
	ceil := floor
	if floor < base {
		ceil = floor + multiple
	}
	if floor == ceil {
		return floor
	}

	floorDiff := math.Abs(dimension/float64(floor) - desiredCellSize)
	ceilDiff := math.Abs(dimension/float64(ceil) - desiredCellSize)
	if floorDiff <= ceilDiff {
		return floor
	}
	return ceil
}

func wrapCoord(v, size float64) float64 {
	w := math.Mod(v, size)
	if w < 0 {
		w += size
	}
	return w
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
