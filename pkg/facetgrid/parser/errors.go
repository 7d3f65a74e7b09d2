package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates a file extension with no loader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoHeader indicates an input with no header row.
var ErrNoHeader = errors.New("no header row")

// ErrDuplicateColumn indicates two header cells with the same name.
var ErrDuplicateColumn = errors.New("duplicate column")

// LoadError represents an error while reading a table.
type LoadError struct {
	Source string
	Sheet  string // empty for CSV
	Err    error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %s (sheet %q): %v", e.Source, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
