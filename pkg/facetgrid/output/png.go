// Package output serializes rendered composites.
package output

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/render"
)

// ContentType is the MIME type of ToPNG's output.
const ContentType = "image/png"

// ToPNG encodes the composite as PNG, fully in memory.
func ToPNG(img *render.Image) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img.Canvas()}).WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for a feature's composite.
func Filename(feature string) string {
	return strings.ReplaceAll(feature, " ", "_") + ".png"
}
