// Package render draws the composite grid of per-group box plots.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/grid"
	"github.com/ukaji3/facetgrid-go/pkg/facetgrid/models"
)

// Style holds the fixed geometry and font sizes of a composite.
type Style struct {
	// CellWidth and CellHeight size one grid cell.
	CellWidth  vg.Length
	CellHeight vg.Length
	// DPI is the raster resolution.
	DPI int
	// TitleSize is the font size of each cell title.
	TitleSize vg.Length
	// LabelSize is the font size of the x-axis label and tick labels.
	LabelSize vg.Length
	// BoxWidth is the width of a single box.
	BoxWidth vg.Length
	// Pad separates adjacent cells.
	Pad vg.Length
}

// DefaultStyle returns 4in × 3in cells at 100 DPI with 10pt titles and
// 8pt labels.
func DefaultStyle() Style {
	return Style{
		CellWidth:  4 * vg.Inch,
		CellHeight: 3 * vg.Inch,
		DPI:        100,
		TitleSize:  vg.Points(10),
		LabelSize:  vg.Points(8),
		BoxWidth:   vg.Points(20),
		Pad:        vg.Points(6),
	}
}

// Columns names the columns a composite draws.
type Columns struct {
	GroupColumn string
	LabelColumn string
	Feature     string
}

// Image is a rendered composite.
type Image struct {
	// Layout is the grid the image was drawn from.
	Layout models.Layout
	// Drawn is the number of cells that received a plot.
	Drawn int

	canvas *vgimg.Canvas
}

// Canvas returns the underlying raster canvas.
func (img *Image) Canvas() *vgimg.Canvas {
	return img.canvas
}

// Image returns the rasterized pixels.
func (img *Image) Image() image.Image {
	return img.canvas.Image()
}

// Composite draws one box plot per active cell of layout. groups and bounds
// are indexed by GridCell.Group. Cells whose group is empty or whose bounds
// are nil are left blank.
func Composite(layout models.Layout, groups []models.Group, bounds []*models.AxisBounds, cols Columns, style Style, logger log.Logger) (*Image, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	rows := layout.Rows
	if rows == 0 {
		// Keep a blank strip so the export is still a valid image.
		rows = 1
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(layout.Cols)*style.CellWidth, vg.Length(rows)*style.CellHeight),
		vgimg.UseDPI(style.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	img := &Image{Layout: layout, canvas: c}
	if layout.Rows == 0 {
		return img, nil
	}

	plots := make([][]*plot.Plot, layout.Rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, layout.Cols)
	}
	for _, cell := range layout.Cells {
		if !cell.Active {
			continue
		}
		g := groups[cell.Group]
		b := bounds[cell.Group]
		if g.Table.Len() == 0 || b == nil {
			level.Warn(logger).Log("msg", "empty group, cell left blank", "group", g.Key.String(), "row", cell.Row, "col", cell.Col)
			continue
		}
		p, err := cellPlot(g, *b, cols, style)
		if err != nil {
			return nil, errors.Wrapf(err, "group %s", g.Key)
		}
		plots[cell.Row][cell.Col] = p
		img.Drawn++
	}

	tiles := draw.Tiles{
		Rows:      layout.Rows,
		Cols:      layout.Cols,
		PadX:      style.Pad,
		PadY:      style.Pad,
		PadTop:    style.Pad,
		PadBottom: style.Pad,
		PadLeft:   style.Pad,
		PadRight:  style.Pad,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for r := range plots {
		for col, p := range plots[r] {
			if p != nil {
				p.Draw(canvases[r][col])
			}
		}
	}
	return img, nil
}

// cellPlot builds the box plot of one group: one box per label, outliers
// hidden, y-range fixed to b.
func cellPlot(g models.Group, b models.AxisBounds, cols Columns, style Style) (*plot.Plot, error) {
	boxes, names, err := labelBoxes(g, cols, style)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", cols.GroupColumn, g.Key)
	p.Title.TextStyle.Font.Size = style.TitleSize
	p.X.Label.Text = cols.LabelColumn
	p.X.Label.TextStyle.Font.Size = style.LabelSize
	p.Y.Label.Text = ""
	p.X.Tick.Label.Font.Size = style.LabelSize
	p.Y.Tick.Label.Font.Size = style.LabelSize

	for _, box := range boxes {
		p.Add(box)
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}

	p.Y.Min = b.Min
	p.Y.Max = b.Max
	return p, nil
}

// labelBoxes returns one box per label of g in key order, with the label
// names for the x axis.
func labelBoxes(g models.Group, cols Columns, style Style) ([]*plotter.BoxPlot, []string, error) {
	byLabel, err := grid.Partition(g.Table, cols.LabelColumn)
	if err != nil {
		return nil, nil, err
	}
	boxes := make([]*plotter.BoxPlot, len(byLabel))
	names := make([]string, len(byLabel))
	for i, lg := range byLabel {
		xs, err := grid.Values(lg.Table, cols.Feature)
		if err != nil {
			return nil, nil, err
		}
		box, err := plotter.NewBoxPlot(style.BoxWidth, float64(i), plotter.Values(xs))
		if err != nil {
			return nil, nil, err
		}
		box.Outside = nil
		box.FillColor = plotutil.Color(i)
		boxes[i] = box
		names[i] = lg.Key.String()
	}
	return boxes, names, nil
}
