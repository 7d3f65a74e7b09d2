package facetgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/grid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// ErrNoFeature indicates that no column is left to plot once the label,
// group and reserved columns are excluded.
var ErrNoFeature = errors.New("no valid features available for visualization")

// ErrNotCandidate indicates a feature that is a label, group or reserved
// column.
var ErrNotCandidate = errors.New("not a feature candidate")

// ErrUnknownLabel indicates a requested label value the table does not
// contain.
var ErrUnknownLabel = errors.New("unknown label value")

// LabelError reports requested label values missing from the table.
type LabelError struct {
	Column string
	Labels []string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("column %q: %v %q", e.Column, ErrUnknownLabel, e.Labels)
}

func (e *LabelError) Unwrap() error {
	return ErrUnknownLabel
}

// IsConfigurationError reports whether err stems from the request rather
// than from rendering. Such errors are reported before anything is drawn.
func IsConfigurationError(err error) bool {
	var colErr *models.ColumnError
	var valErr *models.ValueError
	return errors.Is(err, ErrNoFeature) ||
		errors.Is(err, ErrNotCandidate) ||
		errors.Is(err, ErrUnknownLabel) ||
		errors.Is(err, grid.ErrInvalidColumns) ||
		errors.Is(err, models.ErrInvalidBounds) ||
		errors.As(err, &colErr) ||
		errors.As(err, &valErr)
}
