package facetgrid

import (
	"fmt"
	"sort"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/grid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/output"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/parser"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/render"
)

// Result is the outcome of one render.
type Result struct {
	// Feature is the plotted column.
	Feature string
	// Filename is the download name of PNG.
	Filename string
	// PNG is the encoded composite.
	PNG []byte
	// Image is the rendered composite.
	Image *render.Image
	// Layout is the grid the groups were placed in.
	Layout models.Layout
	// Groups are the partitions of the filtered table, in cell order.
	Groups []models.Group
	// Bounds holds the y-range of each group; nil for empty groups.
	Bounds []*models.AxisBounds
	// Status reports how many groups were rendered.
	Status string
}

// Status formats the status line for a group count.
func Status(groups int) string {
	return fmt.Sprintf("Displaying composite plot for %d groups in a grid layout.", groups)
}

// RenderFile loads a CSV or XLSX file and renders it.
func RenderFile(path string, opts Options) (*Result, error) {
	t, err := parser.Load(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	return Render(t, opts)
}

// Render runs filter, partition, bounds, layout, draw and encode over t.
// Configuration errors are returned before anything is drawn.
func Render(t *models.Table, opts Options) (*Result, error) {
	logger := opts.logger()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if _, err := t.Lookup(opts.LabelColumn); err != nil {
		return nil, err
	}
	if _, err := t.Lookup(opts.GroupColumn); err != nil {
		return nil, err
	}
	feature, err := selectFeature(t, opts)
	if err != nil {
		return nil, err
	}
	allowed, err := labelSet(t, opts)
	if err != nil {
		return nil, err
	}

	filtered, err := grid.Filter(t, opts.LabelColumn, allowed)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "filtered table", "rows", t.Len(), "kept", filtered.Len())

	groups, err := grid.Partition(filtered, opts.GroupColumn)
	if err != nil {
		return nil, err
	}

	fixed, err := fixedBounds(filtered, feature, opts)
	if err != nil {
		return nil, err
	}
	bounds, err := grid.ResolveBounds(groups, feature, fixed)
	if err != nil {
		return nil, err
	}

	layout, err := grid.Plan(len(groups), opts.Columns)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "planned layout", "groups", len(groups), "rows", layout.Rows, "cols", layout.Cols)

	cols := render.Columns{GroupColumn: opts.GroupColumn, LabelColumn: opts.LabelColumn, Feature: feature}
	img, err := render.Composite(layout, groups, bounds, cols, render.DefaultStyle(), logger)
	if err != nil {
		return nil, errors.Wrap(err, "render composite")
	}
	png, err := output.ToPNG(img)
	if err != nil {
		return nil, err
	}

	return &Result{
		Feature:  feature,
		Filename: output.Filename(feature),
		PNG:      png,
		Image:    img,
		Layout:   layout,
		Groups:   groups,
		Bounds:   bounds,
		Status:   Status(len(groups)),
	}, nil
}

func selectFeature(t *models.Table, opts Options) (string, error) {
	candidates := FeatureCandidates(t, opts.LabelColumn, opts.GroupColumn)
	if len(candidates) == 0 {
		return "", ErrNoFeature
	}
	if opts.Feature == "" {
		return candidates[0], nil
	}
	if _, err := t.Lookup(opts.Feature); err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c == opts.Feature {
			return c, nil
		}
	}
	return "", &models.ColumnError{Column: opts.Feature, Err: ErrNotCandidate}
}

// labelSet resolves opts.Labels against the distinct labels of t.
func labelSet(t *models.Table, opts Options) (models.KeySet, error) {
	known, err := t.Distinct(opts.LabelColumn)
	if err != nil {
		return nil, err
	}
	set := make(models.KeySet, len(known))
	if opts.Labels == nil {
		for _, k := range known {
			set[k] = struct{}{}
		}
		return set, nil
	}

	knownSet := make(models.KeySet, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var unknown []string
	for _, s := range opts.Labels {
		k := models.KeyOf(parser.ParseValue(s))
		if _, ok := knownSet[k]; !ok {
			unknown = append(unknown, s)
			continue
		}
		set[k] = struct{}{}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &LabelError{Column: opts.LabelColumn, Labels: unknown}
	}
	return set, nil
}

// fixedBounds returns the shared range in fixed mode, nil otherwise.
// Missing endpoints default to the filtered table's data bounds.
func fixedBounds(filtered *models.Table, feature string, opts Options) (*models.AxisBounds, error) {
	if !opts.FixedY {
		return nil, nil
	}
	b, ok, err := grid.DefaultFixedBounds(filtered, feature)
	if err != nil {
		return nil, err
	}
	if !ok && (opts.YMin == nil || opts.YMax == nil) {
		// Nothing to draw and nothing to derive a default from.
		return nil, nil
	}
	if opts.YMin != nil {
		b.Min = *opts.YMin
	}
	if opts.YMax != nil {
		b.Max = *opts.YMax
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
