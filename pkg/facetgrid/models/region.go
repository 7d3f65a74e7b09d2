package models

// Region is an inclusive, 1-based cell range of a worksheet.
type Region struct {
	// R1 is the start row.
	R1 int `json:"r1"`
	// C1 is the start column.
	C1 int `json:"c1"`
	// R2 is the end row.
	R2 int `json:"r2"`
	// C2 is the end column.
	C2 int `json:"c2"`
}

// Contains reports whether the 1-based cell (row, col) lies inside r.
func (r Region) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}
