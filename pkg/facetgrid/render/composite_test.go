package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/grid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

func testGroups(t *testing.T) ([]models.Group, []*models.AxisBounds) {
	t.Helper()
	tbl := &models.Table{Columns: []string{"label", "subject", "f1"}}
	for i, s := range []string{"g1", "g1", "g1", "g2", "g2", "g3"} {
		label := "A"
		if i%2 == 1 {
			label = "B"
		}
		tbl.Rows = append(tbl.Rows, models.Row{"label": label, "subject": s, "f1": float64(i + 1)})
	}
	groups, err := grid.Partition(tbl, "subject")
	require.NoError(t, err)
	bounds, err := grid.ResolveBounds(groups, "f1", nil)
	require.NoError(t, err)
	return groups, bounds
}

var testColumns = Columns{GroupColumn: "subject", LabelColumn: "label", Feature: "f1"}

func encode(t *testing.T, img *Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := vgimg.PngCanvas{Canvas: img.Canvas()}.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestComposite(t *testing.T) {
	groups, bounds := testGroups(t)
	layout, err := grid.Plan(len(groups), 2)
	require.NoError(t, err)

	img, err := Composite(layout, groups, bounds, testColumns, DefaultStyle(), log.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, img.Drawn)

	decoded, err := png.Decode(bytes.NewReader(encode(t, img)))
	require.NoError(t, err)
	// 2 columns × 4in and 2 rows × 3in at 100 DPI.
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())

	// The inactive bottom-right cell stays blank.
	r, g, b, _ := decoded.At(600, 450).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestCompositeDeterministic(t *testing.T) {
	groups, bounds := testGroups(t)
	layout, err := grid.Plan(len(groups), 3)
	require.NoError(t, err)

	a, err := Composite(layout, groups, bounds, testColumns, DefaultStyle(), nil)
	require.NoError(t, err)
	b, err := Composite(layout, groups, bounds, testColumns, DefaultStyle(), nil)
	require.NoError(t, err)
	assert.Equal(t, encode(t, a), encode(t, b))
}

func TestCompositeEmptyGroup(t *testing.T) {
	groups, bounds := testGroups(t)
	groups[1].Table = groups[1].Table.View(nil)
	bounds[1] = nil
	layout, err := grid.Plan(len(groups), 3)
	require.NoError(t, err)

	var logs bytes.Buffer
	img, err := Composite(layout, groups, bounds, testColumns, DefaultStyle(), log.NewLogfmtLogger(&logs))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Drawn)
	assert.Contains(t, logs.String(), "empty group")

	decoded, err := png.Decode(bytes.NewReader(encode(t, img)))
	require.NoError(t, err)
	// Centre of the suppressed middle cell.
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(decoded.At(600, 150)))
}

func TestCompositeZeroGroups(t *testing.T) {
	layout, err := grid.Plan(0, 4)
	require.NoError(t, err)

	img, err := Composite(layout, nil, nil, testColumns, DefaultStyle(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, img.Drawn)

	decoded, err := png.Decode(bytes.NewReader(encode(t, img)))
	require.NoError(t, err)
	assert.Equal(t, 1600, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestCellPlot(t *testing.T) {
	tbl := &models.Table{Columns: []string{"label", "subject", "f1"}}
	for _, v := range []float64{1, 2, 3, 4, 100} {
		tbl.Rows = append(tbl.Rows, models.Row{"label": "B", "subject": "g1", "f1": v})
	}
	for _, v := range []float64{5, 6, 7} {
		tbl.Rows = append(tbl.Rows, models.Row{"label": "A", "subject": "g1", "f1": v})
	}
	g := models.Group{Key: models.KeyOf("g1"), Table: tbl}
	b := models.AxisBounds{Min: 1, Max: 110}
	style := DefaultStyle()

	p, err := cellPlot(g, b, testColumns, style)
	require.NoError(t, err)
	assert.Equal(t, "subject: g1", p.Title.Text)
	assert.Equal(t, vg.Points(10), p.Title.TextStyle.Font.Size)
	assert.Equal(t, "label", p.X.Label.Text)
	assert.Equal(t, vg.Points(8), p.X.Label.TextStyle.Font.Size)
	assert.Equal(t, vg.Points(8), p.X.Tick.Label.Font.Size)
	assert.Equal(t, vg.Points(8), p.Y.Tick.Label.Font.Size)
	assert.Empty(t, p.Y.Label.Text)
	assert.Equal(t, b.Min, p.Y.Min)
	assert.Equal(t, b.Max, p.Y.Max)

	// 100 lies far outside the whiskers of label B.
	withOutliers, err := plotter.NewBoxPlot(style.BoxWidth, 0, plotter.Values{1, 2, 3, 4, 100})
	require.NoError(t, err)
	require.NotEmpty(t, withOutliers.Outside)

	boxes, names, err := labelBoxes(g, testColumns, style)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
	require.Len(t, boxes, 2)
	for i, box := range boxes {
		assert.Empty(t, box.Outside, "box %d", i)
		assert.Equal(t, float64(i), box.Location)
	}
}

func TestCellPlotIntegerGroupTitle(t *testing.T) {
	tbl := &models.Table{
		Columns: []string{"label", "subject", "f1"},
		Rows:    []models.Row{{"label": "A", "subject": int64(1000000), "f1": 1.0}},
	}
	g := models.Group{Key: models.KeyOf(int64(1000000)), Table: tbl}

	p, err := cellPlot(g, models.AxisBounds{Min: 1, Max: 1.1}, testColumns, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, "subject: 1000000", p.Title.Text)
}
