package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/patterngen/internal/model"
)

// segment is a line segment between two 2D points, used for chaining
// disconnected LINE/ARC entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// chainTolerance is the maximum endpoint distance for two segments to
// count as connected.
const chainTolerance = 0.01

// ImportDXF imports collision footprints from a DXF file. Each closed
// shape (LWPOLYLINE, CIRCLE, or chain of connected LINEs/ARCs) becomes
// one placement item whose collision shape is the outline polygon.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, arcPoints(
				model.Point2D{X: e.Center[0], Y: e.Center[1]}, e.Radius, 0, 2*math.Pi, 64)[:64])

		case *entity.Arc:
			startRad := e.Angle[0] * math.Pi / 180
			endRad := e.Angle[1] * math.Pi / 180
			if endRad <= startRad {
				endRad += 2 * math.Pi
			}
			pts := arcPoints(
				model.Point2D{X: e.Circle.Center[0], Y: e.Circle.Center[1]},
				e.Circle.Radius, startRad, endRad, 32)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	for _, chained := range chainSegments(segments, chainTolerance) {
		if len(chained) >= 3 {
			outlines = append(outlines, chained)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		min, max := outline.BoundingBox()
		if max.X-min.X < chainTolerance || max.Y-min.Y < chainTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", max.X-min.X, max.Y-min.Y))
			continue
		}
		item := model.NewPlacementItem(
			fmt.Sprintf("DXF Shape %d", i+1),
			model.NewPolygonShape(outline),
		)
		result.Items = append(result.Items, item)
	}

	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline

	for i := 0; i < len(lw.Vertices); i++ {
		current := model.Point2D{X: lw.Vertices[i][0], Y: lw.Vertices[i][1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			next := (i + 1) % len(lw.Vertices)
			arc := bulgeArcPoints(current,
				model.Point2D{X: lw.Vertices[next][0], Y: lw.Vertices[next][1]}, bulge, 32)
			// The next vertex is added naturally on the next iteration.
			outline = append(outline, arc[:len(arc)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints
// and a DXF bulge factor (the tangent of a quarter of the included angle).
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Outline {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return model.Outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	center := model.Point2D{X: mx + perpX*dist, Y: my + perpY*dist}

	startAngle := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	endAngle := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	return arcPoints(center, radius, startAngle, endAngle, numSegments)
}

// arcPoints samples numSegments+1 points along a circular arc.
func arcPoints(center model.Point2D, radius, startAngle, endAngle float64, numSegments int) model.Outline {
	pts := make(model.Outline, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts[i] = model.Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return pts
}

// chainSegments connects individual segments into closed outlines.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := model.Outline{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1] // drop the duplicate closing point
		}
		if len(chain) >= 3 {
			outlines = append(outlines, chain)
		}
	}

	// Largest outlines first for consistent item numbering.
	sort.Slice(outlines, func(i, j int) bool {
		return outlines[i].Area() > outlines[j].Area()
	})

	return outlines
}

func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
