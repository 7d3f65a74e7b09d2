// Package parser loads CSV and XLSX files into tables.
package parser

import (
	"strconv"
	"strings"
)

// Missing is the value a missing cell is normalized to.
var Missing interface{} = int64(0)

// missingMarkers are the cell texts treated as absent.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// IsMissing reports whether s denotes an absent value.
func IsMissing(s string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseValue parses a cell. Missing cells become Missing, integers
// int64, decimals float64 and everything else a string with surrounding
// whitespace removed.
func ParseValue(s string) interface{} {
	if IsMissing(s) {
		return Missing
	}
	s = strings.TrimSpace(s)
	if v := parseValue(s); v != nil {
		return v
	}
	return s
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or nil.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return nil
}
