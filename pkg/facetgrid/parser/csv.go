package parser

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// LoadCSV reads a CSV stream whose first record is the header.
func LoadCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	columns, err := headerColumns(header)
	if err != nil {
		return nil, err
	}

	t := models.NewTable(columns)
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read record %d", line)
		}
		t.Rows = append(t.Rows, buildRow(columns, rec))
	}
	return t, nil
}

// buildRow maps a record onto the header. Short records are padded
// with Missing; extra fields are dropped.
func buildRow(columns, rec []string) models.Row {
	row := make(models.Row, len(columns))
	for i, name := range columns {
		if i < len(rec) {
			row[name] = ParseValue(rec[i])
		} else {
			row[name] = Missing
		}
	}
	return row
}

// headerColumns names empty header cells "Unnamed: <i>" and rejects
// duplicates.
func headerColumns(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		if h == "" {
			h = unnamedColumn(i)
		}
		if _, ok := seen[h]; ok {
			return nil, errors.Wrapf(ErrDuplicateColumn, "%q", h)
		}
		seen[h] = struct{}{}
		columns[i] = h
	}
	if len(columns) == 0 {
		return nil, ErrNoHeader
	}
	return columns, nil
}

func unnamedColumn(i int) string {
	return "Unnamed: " + strconv.Itoa(i)
}
