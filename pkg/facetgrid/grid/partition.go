package grid

import (
	"sort"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Partition splits t by the distinct values of col. Groups are sorted by
// key; each group's rows keep their order in t.
func Partition(t *models.Table, col string) ([]models.Group, error) {
	if _, err := t.Lookup(col); err != nil {
		return nil, err
	}

	index := make(map[models.Key]int)
	var groups []models.Group
	var rows [][]models.Row
	for _, row := range t.Rows {
		k := models.KeyOf(row[col])
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, models.Group{Key: k})
			rows = append(rows, nil)
		}
		rows[i] = append(rows[i], row)
	}
	for i := range groups {
		groups[i].Table = t.View(rows[i])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key.Less(groups[j].Key)
	})
	return groups, nil
}
