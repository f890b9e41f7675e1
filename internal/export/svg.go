package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jbeda/geom"

	"github.com/piwi3910/patterngen/internal/model"
)

// SVG is a minimal SVG serialization helper.
type SVG struct {
	writer io.Writer
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{w}
}

func (svg *SVG) printf(format string, a ...interface{}) {
	fmt.Fprintf(svg.writer, format, a...)
}

func (svg *SVG) Start(viewBox geom.Rect) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) Rect(r geom.Rect, style string) {
	svg.printf("<rect x='%f' y='%f' width='%f' height='%f' style='%s'/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), style)
}

func (svg *SVG) Polygon(points []geom.Coord, style string) {
	svg.printf("<polygon points='")
	for i, p := range points {
		if i > 0 {
			svg.printf(" ")
		}
		svg.printf("%f,%f", p.X, p.Y)
	}
	svg.printf("' style='%s'/>\n", style)
}

const (
	tileStyle      = "fill: none; stroke: black; stroke-width: 0.5"
	footprintStyle = "fill: #4caf50; fill-opacity: 0.6; stroke: #1b5e20; stroke-width: 0.25"
	pinnedStyle    = "fill: #9e9e9e; fill-opacity: 0.6; stroke: #424242; stroke-width: 0.25"
	ghostStyle     = "fill: #4caf50; fill-opacity: 0.2; stroke: none"
)

// ExportSVG writes a preview of the placement footprints. Under
// seamless wrapping the eight surrounding periodic images are drawn
// faintly as well, so seam continuity can be inspected visually.
func ExportSVG(path string, scene model.Scene, result model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	wrap := scene.Settings.EdgeBehavior == model.EdgeSeamlessWrapping
	margin := 0.0
	if wrap {
		margin = scene.Width * 0.25
	}

	svg := NewSVG(f)
	svg.Start(geom.Rect{
		Min: geom.Coord{X: -margin, Y: -margin},
		Max: geom.Coord{X: scene.Width + margin, Y: scene.Height + margin},
	})

	if wrap {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				offX := float64(dx) * scene.Width
				offY := float64(dy) * scene.Height
				for _, p := range result.Placements {
					drawPlacementSVG(svg, p, scene.Settings.CircleSegments, offX, offY, ghostStyle)
				}
			}
		}
	}

	for _, p := range scene.Pinned {
		drawPlacementSVG(svg, p, scene.Settings.CircleSegments, 0, 0, pinnedStyle)
	}
	for _, p := range result.Placements {
		drawPlacementSVG(svg, p, scene.Settings.CircleSegments, 0, 0, footprintStyle)
	}

	svg.Rect(geom.Rect{
		Min: geom.Coord{X: 0, Y: 0},
		Max: geom.Coord{X: scene.Width, Y: scene.Height},
	}, tileStyle)

	svg.End()
	return nil
}

func drawPlacementSVG(svg *SVG, p model.PlacedItem, circleSegments int, offX, offY float64, style string) {
	for _, ring := range worldRings(p, circleSegments) {
		coords := make([]geom.Coord, len(ring))
		for i, pt := range ring {
			coords[i] = geom.Coord{X: pt.X + offX, Y: pt.Y + offY}
		}
		svg.Polygon(coords, style)
	}
}
