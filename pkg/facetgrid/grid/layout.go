package grid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// ErrInvalidColumns indicates a grid column count below one.
var ErrInvalidColumns = errors.New("grid column count must be at least 1")

// Plan lays out groups in a grid with cols columns. The grid has
// ceil(groups/cols) rows; cell i holds group i in row-major order and cells
// past the last group are inactive.
func Plan(groups, cols int) (models.Layout, error) {
	if cols < 1 {
		return models.Layout{}, fmt.Errorf("%w: got %d", ErrInvalidColumns, cols)
	}
	if groups < 0 {
		return models.Layout{}, fmt.Errorf("negative group count %d", groups)
	}

	rows := (groups + cols - 1) / cols
	l := models.Layout{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]models.GridCell, rows*cols),
	}
	for i := range l.Cells {
		c := models.GridCell{Index: i, Row: i / cols, Col: i % cols, Group: -1}
		if i < groups {
			c.Group = i
			c.Active = true
		}
		l.Cells[i] = c
	}
	return l, nil
}
