package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid"
)

// optionsFromForm overlays the form fields of r on defaults.
//
// Labels come from repeated "labels" fields or a comma separated
// "labels_csv" field. A "labels" field present with only empty values
// selects no labels.
func optionsFromForm(r *http.Request, defaults facetgrid.Options) (facetgrid.Options, error) {
	opts := defaults
	opts.LabelColumn = formValue(r, "label", opts.LabelColumn)
	opts.GroupColumn = formValue(r, "group", opts.GroupColumn)
	opts.Feature = formValue(r, "feature", opts.Feature)
	opts.Sheet = formValue(r, "sheet", opts.Sheet)

	if v := r.FormValue("cols"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Wrapf(err, "cols %q", v)
		}
		opts.Columns = n
	}
	if v := r.FormValue("fixed_y"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrapf(err, "fixed_y %q", v)
		}
		opts.FixedY = b
	}
	for _, f := range []struct {
		name string
		dst  **float64
	}{{"y_min", &opts.YMin}, {"y_max", &opts.YMax}} {
		v := strings.TrimSpace(r.FormValue(f.name))
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrapf(err, "%s %q", f.name, v)
		}
		*f.dst = &x
	}

	if vs, ok := r.Form["labels"]; ok {
		opts.Labels = nonEmpty(vs)
	} else if v := strings.TrimSpace(r.FormValue("labels_csv")); v != "" {
		opts.Labels = nonEmpty(strings.Split(v, ","))
	}
	return opts, nil
}

func formValue(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

// nonEmpty returns the trimmed non-empty values; never nil.
func nonEmpty(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
