package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// LoadXLSX reads one sheet of a workbook. An empty sheet name selects the
// first sheet. The table region is the sheet's first print area when one
// is defined, otherwise the bounding box of its non-empty cells; the first
// region row is the header.
func LoadXLSX(r io.Reader, sheet string) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}

	region, ok := sheetRegion(f, sheet, rows)
	if !ok {
		return nil, ErrNoHeader
	}
	cells := crop(rows, region)

	columns, err := headerColumns(cells[0])
	if err != nil {
		return nil, err
	}
	t := models.NewTable(columns)
	for _, rec := range cells[1:] {
		if blank(rec) {
			continue
		}
		t.Rows = append(t.Rows, buildRow(columns, rec))
	}
	return t, nil
}

func sheetRegion(f *excelize.File, sheet string, rows [][]string) (models.Region, bool) {
	if areas := PrintAreas(f)[sheet]; len(areas) > 0 {
		return areas[0], true
	}
	return dataBounds(rows)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}
