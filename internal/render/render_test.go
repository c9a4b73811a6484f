package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/gapdash/internal/chart"
	"github.com/ppiankov/gapdash/internal/dataset"
)

const testCSV = `country,continent,year,lifeExp,pop,gdpPercap
Canada,Americas,2002,79.77,31000000,33328.97
Germany,Europe,2002,78.67,82000000,30035.80
Nigeria,Africa,2002,46.61,119000000,1615.29
Canada,Americas,2007,80.65,33000000,36319.24
`

func testSpecs(t *testing.T) map[string]*chart.Spec {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(testCSV))
	require.NoError(t, err)
	labels, err := chart.LabelsFor("ru")
	require.NoError(t, err)
	b := chart.NewBuilder(ds, labels)

	line, err := b.Line([]string{"Canada", "Germany"}, "pop")
	require.NoError(t, err)
	bubble, err := b.Bubble("gdpPercap", "lifeExp", "pop", 2002)
	require.NoError(t, err)
	top, err := b.TopPopulation(2002)
	require.NoError(t, err)
	pie, err := b.ContinentPopulation(2002)
	require.NoError(t, err)

	return map[string]*chart.Spec{"line": line, "bubble": bubble, "top": top, "pie": pie}
}

func TestWrite_SVG(t *testing.T) {
	for name, spec := range testSpecs(t) {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, spec, FormatSVG, DefaultOptions()))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestWrite_PNG(t *testing.T) {
	spec := testSpecs(t)["pie"]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, spec, "PNG", OptionsFromInches(4, 3)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "missing png signature")
}

func TestWrite_EmptySpecs(t *testing.T) {
	specs := []*chart.Spec{
		{Kind: chart.KindLine, Series: []chart.Series{}},
		{Kind: chart.KindScatter, Series: []chart.Series{{}}},
		{Kind: chart.KindBar, Series: []chart.Series{{}}},
		{Kind: chart.KindPie, Series: []chart.Series{{}}},
	}
	for _, spec := range specs {
		var buf bytes.Buffer
		assert.NoError(t, Write(&buf, spec, FormatSVG, DefaultOptions()), string(spec.Kind))
	}
}

func TestWrite_JSON(t *testing.T) {
	spec := testSpecs(t)["top"]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, spec, FormatJSON, DefaultOptions()))

	var got chart.Spec
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, spec.Title, got.Title)
	assert.Equal(t, "h", got.Orientation)
	assert.Equal(t, 3, got.Len())
}

func TestWrite_XLSX(t *testing.T) {
	spec := testSpecs(t)["top"]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, spec, FormatXLSX, DefaultOptions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Страна", "Население"}, rows[0])
	// largest bar is last in the spec
	assert.Equal(t, "Nigeria", rows[3][0])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, testSpecs(t)["pie"], "gif", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ContentType("gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	ct, err := ContentType(".svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", ct)
}

func TestBubbleRadius(t *testing.T) {
	assert.Equal(t, float64(maxBubbleRadius), float64(bubbleRadius(100, 100)))
	assert.Equal(t, float64(minBubbleRadius), float64(bubbleRadius(0, 100)))
	assert.InDelta(t, maxBubbleRadius/2.0, float64(bubbleRadius(25, 100)), 1e-9)
}
