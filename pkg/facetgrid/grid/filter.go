// Package grid partitions a table into groups, resolves per-group axis
// bounds and plans the R×C layout of the composite plot.
package grid

import (
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Filter returns the rows of t whose labelCol value is in allowed, in their
// original order. An empty allowed set yields an empty table.
func Filter(t *models.Table, labelCol string, allowed models.KeySet) (*models.Table, error) {
	if _, err := t.Lookup(labelCol); err != nil {
		return nil, err
	}
	rows := make([]models.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if allowed.Has(row[labelCol]) {
			rows = append(rows, row)
		}
	}
	return t.View(rows), nil
}
