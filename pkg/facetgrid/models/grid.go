package models

import (
	"fmt"
	"math"
)

// Group is a distinct value of the group column together with its rows.
type Group struct {
	// Key identifies the group.
	Key Key
	// Table is a view over the matching rows of the filtered table.
	Table *Table
}

// AxisBounds is a y-axis range.
type AxisBounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Validate checks that both ends are finite and Max >= Min.
func (b AxisBounds) Validate() error {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) {
		return fmt.Errorf("%w: (%v, %v) is not finite", ErrInvalidBounds, b.Min, b.Max)
	}
	if b.Max < b.Min {
		return fmt.Errorf("%w: max %v is below min %v", ErrInvalidBounds, b.Max, b.Min)
	}
	return nil
}

// GridCell is one slot of the composite grid.
type GridCell struct {
	// Index is the row-major position of the cell.
	Index int `json:"index"`
	// Row is the 0-based grid row.
	Row int `json:"row"`
	// Col is the 0-based grid column.
	Col int `json:"col"`
	// Group is the index of the group drawn in this cell, or -1.
	Group int `json:"group"`
	// Active is false for cells past the last group.
	Active bool `json:"active"`
}

// Layout is an R×C grid of cells in row-major order.
type Layout struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells []GridCell `json:"cells"`
}

// Active returns the number of cells holding a group.
func (l Layout) Active() int {
	n := 0
	for _, c := range l.Cells {
		if c.Active {
			n++
		}
	}
	return n
}

// At returns the cell at (row, col).
func (l Layout) At(row, col int) GridCell {
	return l.Cells[row*l.Cols+col]
}
