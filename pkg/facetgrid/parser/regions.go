package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// PrintAreas returns the print areas defined for each sheet of a workbook.
func PrintAreas(f *excelize.File) map[string][]models.Region {
	result := make(map[string][]models.Region)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses 'Sheet'!$A$1:$D$10 or Sheet!$A$1:$D$10,
// possibly comma separated.
func parsePrintAreaReference(ref string) (string, []models.Region) {
	var areas []models.Region
	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := parseRange(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// parseRange parses a range such as $A$1:$D$10.
func parseRange(s string) (models.Region, bool) {
	parts := strings.Split(strings.ReplaceAll(s, "$", ""), ":")
	if len(parts) != 2 {
		return models.Region{}, false
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Region{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Region{}, false
	}
	return models.Region{R1: r1, C1: c1, R2: r2, C2: c2}, true
}

// dataBounds returns the region covering every non-empty cell, or false
// when rows holds no data.
func dataBounds(rows [][]string) (models.Region, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	if minRow < 0 {
		return models.Region{}, false
	}
	return models.Region{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// crop returns the cells of rows inside region, padded to its width.
func crop(rows [][]string, region models.Region) [][]string {
	width := region.C2 - region.C1 + 1
	var out [][]string
	for r := region.R1; r <= region.R2; r++ {
		line := make([]string, width)
		if r-1 < len(rows) {
			row := rows[r-1]
			for c := region.C1; c <= region.C2 && c-1 < len(row); c++ {
				line[c-region.C1] = row[c-1]
			}
		}
		out = append(out, line)
	}
	return out
}
