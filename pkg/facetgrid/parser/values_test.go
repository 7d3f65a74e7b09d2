package parser

import (
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{" 7 ", int64(7)},
		{"hello", "hello"},
		{" x ", "x"},
		{"\tgroup a\n", "group a"},
		{"", int64(0)},
		{"NA", int64(0)},
		{"NaN", int64(0)},
		{"nan", int64(0)},
		{"null", int64(0)},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
