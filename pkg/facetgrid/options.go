// Package facetgrid renders a grid of per-group box plots from a table.
package facetgrid

import (
	"os"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/grid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Options is one render request.
type Options struct {
	// LabelColumn is the x-axis category inside each cell.
	LabelColumn string `yaml:"label_column"`
	// GroupColumn splits the table into one cell per distinct value.
	GroupColumn string `yaml:"group_column"`
	// Feature is the numeric column to plot. Empty selects the first
	// candidate column.
	Feature string `yaml:"feature"`
	// Columns is the number of grid columns.
	Columns int `yaml:"columns"`
	// FixedY applies one y-range to every cell.
	FixedY bool `yaml:"fixed_y"`
	// YMin and YMax override the fixed range. Each defaults to the
	// filtered table's data bounds when nil.
	YMin *float64 `yaml:"y_min,omitempty"`
	YMax *float64 `yaml:"y_max,omitempty"`
	// Labels restricts the label values drawn. Nil keeps every label;
	// an empty non-nil slice keeps none.
	Labels []string `yaml:"labels,omitempty"`
	// Sheet selects the worksheet of an XLSX input.
	Sheet string `yaml:"sheet,omitempty"`

	// Logger receives pipeline diagnostics. Nil discards them.
	Logger log.Logger `yaml:"-"`
}

// DefaultOptions returns default render options.
func DefaultOptions() Options {
	return Options{
		LabelColumn: "label",
		GroupColumn: "subject",
		Columns:     6,
	}
}

// LoadOptions reads options from a YAML file on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "parse config %s", path)
	}
	return opts, nil
}

// Validate checks the settings that do not depend on the table.
func (o Options) Validate() error {
	if o.Columns < 1 {
		return errors.Wrapf(grid.ErrInvalidColumns, "columns=%d", o.Columns)
	}
	if o.FixedY && o.YMin != nil && o.YMax != nil {
		if err := (models.AxisBounds{Min: *o.YMin, Max: *o.YMax}).Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}
