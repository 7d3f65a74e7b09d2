package models

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound indicates a column name that is not in the table header.
var ErrColumnNotFound = errors.New("column not found")

// ErrNonNumeric indicates a feature value that is not a number.
var ErrNonNumeric = errors.New("non-numeric value")

// ErrInvalidBounds indicates an axis range whose maximum is below its minimum.
var ErrInvalidBounds = errors.New("invalid axis bounds")

// ColumnError reports a problem with a named column.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// ValueError reports a cell that cannot be used as a feature value.
type ValueError struct {
	Column string
	Row    int // 0-based index within the table being read
	Value  interface{}
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("column %q row %d: %v (%v)", e.Column, e.Row, e.Err, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
