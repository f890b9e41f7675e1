// Package importer provides CSV, Excel, and DXF import for placement
// item lists. CSV/Excel rows describe items with weights, scale and
// rotation ranges, and a basic collision shape; DXF files contribute
// arbitrary polygon footprints. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/patterngen/internal/model"
)

// ImportResult holds the results of an import operation. Bad rows
// produce warnings, never hard failures: a usable partial item list
// beats an aborted import.
type ImportResult struct {
	Items    []model.PlacementItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label       int
	Weight      int
	Shape       int
	Radius      int
	Width       int
	Height      int
	MinScale    int
	MaxScale    int
	MinRotation int
	MaxRotation int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":       {"label", "name", "item", "item name", "description", "desc"},
	"weight":      {"weight", "probability", "prob", "bias", "frequency", "freq"},
	"shape":       {"shape", "shape type", "kind", "footprint"},
	"radius":      {"radius", "r"},
	"width":       {"width", "w"},
	"height":      {"height", "h"},
	"minscale":    {"minscale", "min scale", "scale min", "min_scale"},
	"maxscale":    {"maxscale", "max scale", "scale max", "max_scale"},
	"minrotation": {"minrotation", "min rotation", "rotation min", "min_rotation"},
	"maxrotation": {"maxrotation", "max rotation", "rotation max", "max_rotation"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected,
// or a default positional mapping and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label: -1, Weight: -1, Shape: -1, Radius: -1, Width: -1, Height: -1,
		MinScale: -1, MaxScale: -1, MinRotation: -1, MaxRotation: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "label":
			if mapping.Label == -1 {
				mapping.Label = i
			}
		case "weight":
			if mapping.Weight == -1 {
				mapping.Weight = i
			}
		case "shape":
			if mapping.Shape == -1 {
				mapping.Shape = i
			}
		case "radius":
			if mapping.Radius == -1 {
				mapping.Radius = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
		case "minscale":
			if mapping.MinScale == -1 {
				mapping.MinScale = i
			}
		case "maxscale":
			if mapping.MaxScale == -1 {
				mapping.MaxScale = i
			}
		case "minrotation":
			if mapping.MinRotation == -1 {
				mapping.MinRotation = i
			}
		case "maxrotation":
			if mapping.MaxRotation == -1 {
				mapping.MaxRotation = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: label, shape, radius, width, height
		return ColumnMapping{
			Label: 0, Shape: 1, Radius: 2, Width: 3, Height: 4,
			Weight: -1, MinScale: -1, MaxScale: -1, MinRotation: -1, MaxRotation: -1,
		}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(row []string, idx int, fallback float64) (float64, bool) {
	cell := getCell(row, idx)
	if cell == "" {
		return fallback, true
	}
	cell = strings.ReplaceAll(cell, ",", ".")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return fallback, false
	}
	return v, true
}

// parseRow converts one data row into a PlacementItem. Returns the item,
// an error message (row unusable), and a warning (row usable with fixes).
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.PlacementItem, string, string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", itemCount+1)
	}

	radius, okR := parseFloat(row, mapping.Radius, 0)
	width, okW := parseFloat(row, mapping.Width, 0)
	height, okH := parseFloat(row, mapping.Height, 0)
	if !okR || !okW || !okH {
		return model.PlacementItem{}, fmt.Sprintf("%s: unparseable dimension value", rowLabel), ""
	}

	shapeKind := strings.ToLower(getCell(row, mapping.Shape))
	var shape model.CollisionShape
	switch {
	case shapeKind == "circle" || (shapeKind == "" && radius > 0):
		if radius <= 0 {
			return model.PlacementItem{}, fmt.Sprintf("%s: circle needs a positive radius", rowLabel), ""
		}
		shape = model.NewCircleShape(model.Point2D{}, radius)
	case shapeKind == "rectangle" || shapeKind == "rect" || shapeKind == "":
		if width <= 0 || height <= 0 {
			return model.PlacementItem{}, fmt.Sprintf("%s: rectangle needs positive width and height", rowLabel), ""
		}
		shape = model.NewRectangleShape(model.Point2D{}, model.Size2D{Width: width, Height: height})
	default:
		return model.PlacementItem{}, fmt.Sprintf("%s: unknown shape %q", rowLabel, shapeKind), ""
	}

	item := model.NewPlacementItem(label, shape)

	if weight, ok := parseFloat(row, mapping.Weight, 1); ok && weight > 0 {
		item.Weight = weight
	} else if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: bad weight, using 1", rowLabel))
	}

	minScale, okMin := parseFloat(row, mapping.MinScale, 1)
	maxScale, okMax := parseFloat(row, mapping.MaxScale, minScale)
	if !okMin || !okMax || minScale <= 0 || maxScale < minScale {
		warnings = append(warnings, fmt.Sprintf("%s: bad scale range, using 1", rowLabel))
		minScale, maxScale = 1, 1
	}
	item.ScaleRange = model.Range{Min: minScale, Max: maxScale}

	minRot, okMin := parseFloat(row, mapping.MinRotation, 0)
	maxRot, okMax := parseFloat(row, mapping.MaxRotation, minRot)
	if !okMin || !okMax || maxRot < minRot {
		warnings = append(warnings, fmt.Sprintf("%s: bad rotation range, using 0", rowLabel))
		minRot, maxRot = 0, 0
	}
	item.RotationRange = model.Range{Min: minRot, Max: maxRot}

	return item, "", strings.Join(warnings, "; ")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports items from a CSV file with delimiter auto-detection.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read file: %v", err)}}
	}
	return ImportCSVFromReader(bytes.NewReader(data), DetectCSVDelimiter(data))
}

// ImportCSVFromReader imports items from CSV data with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	r := csv.NewReader(reader)
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse CSV: %v", err)}}
	}
	return importFromRows(rows, "line")
}

// ImportExcel imports items from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Workbook contains no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read sheet %q: %v", sheets[0], err)}}
	}
	return importFromRows(rows, "row")
}

// importFromRows runs the shared header-detection and row-parsing logic.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	start := 0
	var mapping ColumnMapping
	hasHeader := false
	for start < len(rows) {
		if isEmptyRow(rows[start]) {
			start++
			continue
		}
		mapping, hasHeader = DetectColumns(rows[start])
		if hasHeader {
			start++
		}
		break
	}
	if start >= len(rows) {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warning := parseRow(rows[i], mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Warnings = append(result.Warnings, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 {
		result.Errors = append(result.Errors, "No usable item rows found")
	}
	return result
}
