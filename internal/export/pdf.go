// Package export renders placement results for review: a PDF proof
// sheet and an SVG preview. Both draw collision footprints only; item
// artwork rendering belongs to the host application.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/patterngen/internal/model"
)

// footprintColor represents an RGB color for a placed footprint.
type footprintColor struct {
	R, G, B int
}

var footprintColors = []footprintColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a one-page proof sheet: the tile outline with
// every placed footprint, plus a stats line.
func ExportPDF(path string, scene model.Scene, result model.Result) error {
	if scene.Width <= 0 || scene.Height <= 0 {
		return fmt.Errorf("tile has no area")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f)", scene.Name, scene.Width, scene.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Placed: %d | Target: %d | Seed: %d | Mode: %s | Edges: %s",
		len(result.Placements), result.TargetCount, scene.Settings.Seed,
		scene.Settings.Mode, scene.Settings.EdgeBehavior)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the tile to fit the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/scene.Width, drawHeight/scene.Height)
	canvasW := scene.Width * scale
	canvasH := scene.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Tile background
	pdf.SetFillColor(250, 250, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Pinned obstacles in gray, placed footprints in the color cycle
	pdf.SetLineWidth(0.3)
	for _, p := range scene.Pinned {
		pdf.SetFillColor(180, 180, 180)
		pdf.SetDrawColor(90, 90, 90)
		drawFootprint(pdf, p, scene.Settings.CircleSegments, scale, offsetX, offsetY)
	}
	for i, p := range result.Placements {
		col := footprintColors[i%len(footprintColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		drawFootprint(pdf, p, scene.Settings.CircleSegments, scale, offsetX, offsetY)
	}

	return pdf.OutputFileAndClose(path)
}

// drawFootprint renders each ring of a placement's collision shape as a
// filled polygon in page coordinates.
func drawFootprint(pdf *fpdf.Fpdf, p model.PlacedItem, circleSegments int, scale, offsetX, offsetY float64) {
	for _, ring := range worldRings(p, circleSegments) {
		points := make([]fpdf.PointType, len(ring))
		for i, pt := range ring {
			points[i] = fpdf.PointType{
				X: offsetX + pt.X*scale,
				Y: offsetY + pt.Y*scale,
			}
		}
		pdf.Polygon(points, "FD")
	}
}

// worldRings resolves a placement's shape rings and applies its
// transform, yielding tile-space outlines.
func worldRings(p model.PlacedItem, circleSegments int) []model.Outline {
	sin, cos := math.Sincos(p.Rotation)
	rings := p.Shape.Rings(circleSegments)
	world := make([]model.Outline, len(rings))
	for i, ring := range rings {
		out := make(model.Outline, len(ring))
		for j, pt := range ring {
			out[j] = model.Point2D{
				X: p.Position.X + p.Scale*(pt.X*cos-pt.Y*sin),
				Y: p.Position.Y + p.Scale*(pt.X*sin+pt.Y*cos),
			}
		}
		world[i] = out
	}
	return world
}
