package facetgrid

import (
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// ReservedColumn is never offered as a feature.
const ReservedColumn = "task"

// Description lists what a table offers for a given label and group
// column.
type Description struct {
	Columns    []string `json:"columns"`
	Candidates []string `json:"feature_candidates"`
	Labels     []string `json:"labels"`
	Rows       int      `json:"rows"`
}

// FeatureCandidates returns the columns of t other than labelCol, groupCol
// and ReservedColumn, in table order.
func FeatureCandidates(t *models.Table, labelCol, groupCol string) []string {
	var out []string
	for _, c := range t.Columns {
		if c == labelCol || c == groupCol || c == ReservedColumn {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Describe reports the columns, feature candidates and sorted distinct
// labels of t.
func Describe(t *models.Table, labelCol, groupCol string) (*Description, error) {
	if _, err := t.Lookup(groupCol); err != nil {
		return nil, err
	}
	keys, err := t.Distinct(labelCol)
	if err != nil {
		return nil, err
	}
	d := &Description{
		Columns:    t.Columns,
		Candidates: FeatureCandidates(t, labelCol, groupCol),
		Rows:       t.Len(),
	}
	for _, k := range keys {
		d.Labels = append(d.Labels, k.String())
	}
	return d, nil
}
