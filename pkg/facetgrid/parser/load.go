package parser

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Load reads a CSV or XLSX file. sheet is ignored for CSV.
func Load(path, sheet string) (*models.Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Source: path, Err: ErrFileNotFound}
	}
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return LoadFrom(f, filepath.Base(path), sheet)
}

// LoadFrom reads a table from r, choosing the format from name's extension.
func LoadFrom(r io.Reader, name, sheet string) (*models.Table, error) {
	var (
		t   *models.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		t, err = LoadCSV(r)
		sheet = ""
	case ".xlsx", ".xlsm":
		t, err = LoadXLSX(r, sheet)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &LoadError{Source: name, Sheet: sheet, Err: err}
	}
	return t, nil
}
