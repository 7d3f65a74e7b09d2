package grid

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Margin scales the observed maximum so the top point is not clipped.
const Margin = 1.1

// Values returns the feature column of t as floats.
func Values(t *models.Table, feature string) ([]float64, error) {
	if _, err := t.Lookup(feature); err != nil {
		return nil, err
	}
	xs := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		x, ok := models.Float(row[feature])
		if !ok {
			return nil, &models.ValueError{Column: feature, Row: i, Value: row[feature], Err: models.ErrNonNumeric}
		}
		xs[i] = x
	}
	return xs, nil
}

// DataBounds returns (min, max*Margin) of the feature over t. ok is false
// when t has no rows.
func DataBounds(t *models.Table, feature string) (b models.AxisBounds, ok bool, err error) {
	xs, err := Values(t, feature)
	if err != nil || len(xs) == 0 {
		return models.AxisBounds{}, false, err
	}
	lo, hi := stats.Sample{Xs: xs}.Bounds()
	b = models.AxisBounds{Min: lo, Max: hi * Margin}
	// A negative maximum moves down under the margin; keep Max >= Min.
	if b.Max < b.Min {
		b.Max = b.Min
	}
	return b, true, nil
}

// DefaultFixedBounds returns the shared bounds used in fixed mode when the
// caller supplies none: the data bounds of the whole filtered table.
func DefaultFixedBounds(filtered *models.Table, feature string) (models.AxisBounds, bool, error) {
	return DataBounds(filtered, feature)
}

// ResolveBounds returns the y-range for each group. With fixed set, every
// non-empty group gets *fixed; otherwise each group gets its own data
// bounds. Entries for empty groups are nil.
func ResolveBounds(groups []models.Group, feature string, fixed *models.AxisBounds) ([]*models.AxisBounds, error) {
	if fixed != nil {
		if err := fixed.Validate(); err != nil {
			return nil, err
		}
	}
	out := make([]*models.AxisBounds, len(groups))
	for i, g := range groups {
		b, ok, err := DataBounds(g.Table, feature)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if fixed != nil {
			b = *fixed
		}
		out[i] = &b
	}
	return out, nil
}
