package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// exampleTable is five rows over two labels and two groups.
func exampleTable() *models.Table {
	return &models.Table{
		Columns: []string{"label", "subject", "f1"},
		Rows: []models.Row{
			{"label": "A", "subject": "g1", "f1": int64(1)},
			{"label": "A", "subject": "g1", "f1": int64(2)},
			{"label": "B", "subject": "g2", "f1": int64(3)},
			{"label": "B", "subject": "g2", "f1": int64(4)},
			{"label": "B", "subject": "g2", "f1": int64(5)},
		},
	}
}

func TestFilter(t *testing.T) {
	tbl := exampleTable()

	got, err := Filter(tbl, "label", models.NewKeySet("B"))
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	for i, row := range got.Rows {
		assert.Equal(t, "B", row["label"])
		assert.Equal(t, int64(i+3), row["f1"])
	}

	empty, err := Filter(tbl, "label", models.NewKeySet())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, tbl.Columns, empty.Columns)

	_, err = Filter(tbl, "nope", models.NewKeySet("A"))
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestFilterIdempotent(t *testing.T) {
	allowed := models.NewKeySet("A", "B")
	once, err := Filter(exampleTable(), "label", allowed)
	require.NoError(t, err)
	twice, err := Filter(once, "label", allowed)
	require.NoError(t, err)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestPartition(t *testing.T) {
	groups, err := Partition(exampleTable(), "subject")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, models.KeyOf("g1"), groups[0].Key)
	assert.Equal(t, 2, groups[0].Table.Len())
	assert.Equal(t, models.KeyOf("g2"), groups[1].Key)
	assert.Equal(t, 3, groups[1].Table.Len())

	none, err := Partition(models.NewTable([]string{"subject"}), "subject")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPartitionNumericOrder(t *testing.T) {
	tbl := &models.Table{Columns: []string{"g"}}
	for _, v := range []interface{}{int64(10), int64(2), 2.0, int64(1), int64(10)} {
		tbl.Rows = append(tbl.Rows, models.Row{"g": v})
	}
	groups, err := Partition(tbl, "g")
	require.NoError(t, err)

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key.String())
	}
	// Numeric ascending, not lexicographic; int64(2) and 2.0 are one group.
	assert.Equal(t, []string{"1", "2", "10"}, keys)
	assert.Equal(t, 2, groups[1].Table.Len())
}

func TestPartitionLargeIDs(t *testing.T) {
	tbl := &models.Table{Columns: []string{"g"}}
	for _, v := range []int64{9007199254740993, 9007199254740992, 9007199254740993} {
		tbl.Rows = append(tbl.Rows, models.Row{"g": v})
	}
	groups, err := Partition(tbl, "g")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "9007199254740992", groups[0].Key.String())
	assert.Equal(t, 1, groups[0].Table.Len())
	assert.Equal(t, "9007199254740993", groups[1].Key.String())
	assert.Equal(t, 2, groups[1].Table.Len())

	kept, err := Filter(tbl, "g", models.NewKeySet(int64(9007199254740992)))
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Len())
}

func TestPartitionTotalAndDisjoint(t *testing.T) {
	tbl := &models.Table{Columns: []string{"g", "i"}}
	for i := 0; i < 50; i++ {
		tbl.Rows = append(tbl.Rows, models.Row{"g": int64(i % 7), "i": int64(i)})
	}
	groups, err := Partition(tbl, "g")
	require.NoError(t, err)

	seen := make(map[int64]int)
	for _, g := range groups {
		last := int64(-1)
		for _, row := range g.Table.Rows {
			i := row["i"].(int64)
			assert.Greater(t, i, last, "rows keep their order")
			last = i
			seen[i]++
		}
	}
	require.Len(t, seen, 50)
	for i, n := range seen {
		assert.Equal(t, 1, n, "row %d", i)
	}
}

func TestResolveBoundsPerGroup(t *testing.T) {
	groups, err := Partition(exampleTable(), "subject")
	require.NoError(t, err)

	bounds, err := ResolveBounds(groups, "f1", nil)
	require.NoError(t, err)
	require.Len(t, bounds, 2)
	assert.Equal(t, 1.0, bounds[0].Min)
	assert.InDelta(t, 2.2, bounds[0].Max, 1e-9)
	assert.Equal(t, 3.0, bounds[1].Min)
	assert.InDelta(t, 5.5, bounds[1].Max, 1e-9)
	for _, b := range bounds {
		assert.GreaterOrEqual(t, b.Max, b.Min)
	}
}

func TestResolveBoundsFixed(t *testing.T) {
	groups, err := Partition(exampleTable(), "subject")
	require.NoError(t, err)

	fixed := models.AxisBounds{Min: -1, Max: 10}
	bounds, err := ResolveBounds(groups, "f1", &fixed)
	require.NoError(t, err)
	for _, b := range bounds {
		assert.Equal(t, fixed, *b)
	}

	_, err = ResolveBounds(groups, "f1", &models.AxisBounds{Min: 2, Max: 1})
	assert.ErrorIs(t, err, models.ErrInvalidBounds)
}

func TestResolveBoundsEmptyGroup(t *testing.T) {
	tbl := exampleTable()
	groups := []models.Group{
		{Key: models.KeyOf("g0"), Table: tbl.View(nil)},
		{Key: models.KeyOf("g1"), Table: tbl},
	}
	bounds, err := ResolveBounds(groups, "f1", nil)
	require.NoError(t, err)
	assert.Nil(t, bounds[0])
	require.NotNil(t, bounds[1])
}

func TestDefaultFixedBounds(t *testing.T) {
	b, ok, err := DefaultFixedBounds(exampleTable(), "f1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, b.Min)
	assert.InDelta(t, 5.5, b.Max, 1e-9)

	_, ok, err = DefaultFixedBounds(models.NewTable([]string{"f1"}), "f1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDataBoundsNegative(t *testing.T) {
	tbl := &models.Table{Columns: []string{"f"}, Rows: []models.Row{{"f": -2.0}, {"f": -2.0}}}
	b, ok, err := DataBounds(tbl, "f")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -2.0, b.Min)
	assert.GreaterOrEqual(t, b.Max, b.Min)
}

func TestValuesNonNumeric(t *testing.T) {
	tbl := &models.Table{Columns: []string{"f"}, Rows: []models.Row{{"f": int64(1)}, {"f": "oops"}}}
	_, err := Values(tbl, "f")
	assert.ErrorIs(t, err, models.ErrNonNumeric)
	var valErr *models.ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 1, valErr.Row)
}

func TestPlan(t *testing.T) {
	for g := 0; g <= 40; g++ {
		for c := 1; c <= 9; c++ {
			l, err := Plan(g, c)
			require.NoError(t, err)

			wantRows := (g + c - 1) / c
			assert.Equal(t, wantRows, l.Rows, "G=%d C=%d", g, c)
			assert.Equal(t, c, l.Cols)
			require.Len(t, l.Cells, wantRows*c)
			assert.Equal(t, g, l.Active())

			for i, cell := range l.Cells {
				assert.Equal(t, i, cell.Index)
				assert.Equal(t, i/c, cell.Row)
				assert.Equal(t, i%c, cell.Col)
				if i < g {
					assert.True(t, cell.Active)
					assert.Equal(t, i, cell.Group)
				} else {
					assert.False(t, cell.Active)
					assert.Equal(t, -1, cell.Group)
				}
			}
		}
	}
}

func TestPlanExamples(t *testing.T) {
	l, err := Plan(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Rows)
	assert.Equal(t, 2, l.Cols)
	assert.True(t, l.At(0, 0).Active)

	l, err = Plan(1, 1)
	require.NoError(t, err)
	require.Len(t, l.Cells, 1)
	assert.Equal(t, 0, l.Cells[0].Group)

	l, err = Plan(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Rows)
	assert.Empty(t, l.Cells)

	_, err = Plan(3, 0)
	assert.ErrorIs(t, err, ErrInvalidColumns)
}
