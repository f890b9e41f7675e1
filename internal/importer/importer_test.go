package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/patterngen/internal/model"
)

func TestDetectCSVDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectCSVDelimiter([]byte("a,b,c\n1,2,3\n")))
	assert.Equal(t, ';', DetectCSVDelimiter([]byte("a;b;c\n1;2;3\n")))
	assert.Equal(t, '\t', DetectCSVDelimiter([]byte("a\tb\tc\n1\t2\t3\n")))
	assert.Equal(t, '|', DetectCSVDelimiter([]byte("a|b|c\n1|2|3\n")))
}

func TestDetectColumns_HeaderAliases(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Name", "Shape", "Radius", "WIDTH", "height", "Weight"})

	require.True(t, hasHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Shape)
	assert.Equal(t, 2, mapping.Radius)
	assert.Equal(t, 3, mapping.Width)
	assert.Equal(t, 4, mapping.Height)
	assert.Equal(t, 5, mapping.Weight)
	assert.Equal(t, -1, mapping.MinScale)
}

func TestDetectColumns_PositionalFallback(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Oak", "circle", "5", "", ""})

	assert.False(t, hasHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Shape)
	assert.Equal(t, 2, mapping.Radius)
}

func TestImportCSVFromReader_WithHeader(t *testing.T) {
	csv := `name,shape,radius,width,height,weight,min scale,max scale
Oak,circle,5,,,3,0.8,1.2
Crate,rectangle,,4,2,1,,
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 2)

	oak := result.Items[0]
	assert.Equal(t, "Oak", oak.Label)
	assert.Equal(t, model.ShapeCircle, oak.Shape.Kind)
	assert.Equal(t, 5.0, oak.Shape.Radius)
	assert.Equal(t, 3.0, oak.Weight)
	assert.Equal(t, model.Range{Min: 0.8, Max: 1.2}, oak.ScaleRange)

	crate := result.Items[1]
	assert.Equal(t, model.ShapeRectangle, crate.Shape.Kind)
	assert.Equal(t, 4.0, crate.Shape.Size.Width)
	assert.Equal(t, 2.0, crate.Shape.Size.Height)
	assert.Equal(t, model.Fixed(1), crate.ScaleRange)
}

func TestImportCSVFromReader_NoHeaderPositional(t *testing.T) {
	csv := "Oak,circle,5\nCrate,rectangle,,4,2\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Oak", result.Items[0].Label)
	assert.Equal(t, "Crate", result.Items[1].Label)
}

func TestImportCSVFromReader_BadRowsBecomeWarnings(t *testing.T) {
	csv := `name,shape,radius
Good,circle,5
NoRadius,circle,
Bogus,hexagon,3
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Good", result.Items[0].Label)
	assert.Len(t, result.Warnings, 2)
}

func TestImportCSVFromReader_BadOptionalValuesFallBack(t *testing.T) {
	csv := `name,shape,radius,weight,min rotation,max rotation
Oak,circle,5,notanumber,90,45
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 1.0, result.Items[0].Weight, "bad weight falls back to 1")
	assert.Equal(t, model.Fixed(0), result.Items[0].RotationRange, "inverted range falls back to 0")
	assert.NotEmpty(t, result.Warnings)
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	csv := "name;shape;radius\nOak;circle;2,5\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ';')

	require.Empty(t, result.Errors)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 2.5, result.Items[0].Shape.Radius)
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Items)
}

func TestImportCSVFromReader_BlankRowsSkipped(t *testing.T) {
	csv := "\nname,shape,radius\n\nOak,circle,5\n\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	require.Empty(t, result.Errors)
	assert.Len(t, result.Items, 1)
}

func TestParseRow_DefaultLabel(t *testing.T) {
	mapping, _ := DetectColumns([]string{"name", "shape", "radius"})
	item, errMsg, _ := parseRow([]string{"", "circle", "5"}, mapping, "line 2", 0)

	require.Empty(t, errMsg)
	assert.Equal(t, "Item 1", item.Label)
}
