// Package models defines data structures shared by the facet grid pipeline.
package models

// Row maps column name to cell value. Values are int64, float64 or string.
type Row map[string]interface{}

// Table is an ordered set of rows over named columns.
type Table struct {
	// Columns lists the column names in header order.
	Columns []string `json:"columns"`
	// Rows contains the table rows in their original order.
	Rows []Row `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Lookup returns the index of the named column.
func (t *Table) Lookup(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, &ColumnError{Column: name, Err: ErrColumnNotFound}
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, err := t.Lookup(name)
	return err == nil
}

// View returns a table sharing t's columns over the given rows.
// The rows are not copied.
func (t *Table) View(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows}
}

// Distinct returns the distinct keys of a column, sorted.
func (t *Table) Distinct(column string) ([]Key, error) {
	if _, err := t.Lookup(column); err != nil {
		return nil, err
	}
	seen := make(map[Key]struct{})
	var keys []Key
	for _, row := range t.Rows {
		k := KeyOf(row[column])
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys, nil
}
