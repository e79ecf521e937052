package facet

import (
	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2/gtable"
)

// Facet splits the data of a plot into panels and arranges the rendered
// panels together with their axes and strips in a gtable.Table.
//
// The methods are called once per render pass in the order they are
// listed. Implementations keep no state between calls.
type Facet interface {
	// ComputeLayout computes the panels from the data of all layers.
	// The first layer is the plot data.
	ComputeLayout(layers []*table.Table) (*Layout, error)

	// MapData adds the PANEL column to the data of one layer.
	MapData(data *table.Table, layout *Layout) (*table.Table, error)

	// InitScales creates the scales of every scale group.
	InitScales(layout *Layout, x, y Scaler) *ScaleSet

	// TrainScales trains the scales on the mapped layer data.
	TrainScales(set *ScaleSet, layout *Layout, layers []*table.Table) error

	// DrawPanels arranges the panel grobs, one per entry of
	// layout.Panels, with axes and strips.
	DrawPanels(panels []gtable.Grob, layout *Layout, scales *ScaleSet, coord Coord, style *Style) (*gtable.Table, error)

	// DrawLabels adds the axis titles around the panels.
	DrawLabels(t *gtable.Table, labels Labels, style *Style) *gtable.Table
}

// facetBase provides the behaviour shared by all facets.
type facetBase struct{}

func (facetBase) MapData(data *table.Table, layout *Layout) (*table.Table, error) {
	return MapData(data, layout)
}

func (facetBase) InitScales(layout *Layout, x, y Scaler) *ScaleSet {
	return InitScales(layout, x, y)
}

func (facetBase) TrainScales(set *ScaleSet, layout *Layout, layers []*table.Table) error {
	return TrainScales(set, layout, layers)
}

func (facetBase) DrawLabels(t *gtable.Table, labels Labels, style *Style) *gtable.Table {
	return DrawLabels(t, labels, style)
}

// ----------------------------------------------------------------------------
// Labels

// Labels are the axis title grobs placed around the panel region. Nil
// entries take no space.
type Labels struct {
	XTop, XBottom gtable.Grob
	YLeft, YRight gtable.Grob
}

// DrawLabels adds a row above and below the panel region holding the x
// titles and a column left and right of it holding the y titles. Each
// track is as large as its title and the titles span exactly the panel
// columns (rows).
func DrawLabels(t *gtable.Table, labels Labels, style *Style) *gtable.Table {
	region, ok := gtable.FindPanelRegion(t)
	if !ok {
		return t
	}
	xt, xb := orZero(labels.XTop), orZero(labels.XBottom)
	yl, yr := orZero(labels.YLeft), orZero(labels.YRight)

	t.PrependRows(gtable.MaxExtentUnit([]gtable.Grob{xt}, gtable.Height))
	t.Add(xt, "xlab-t", 0, region.Left, 0, region.Right)
	t.AppendRows(gtable.MaxExtentUnit([]gtable.Grob{xb}, gtable.Height))
	last := t.NumRows() - 1
	t.Add(xb, "xlab-b", last, region.Left, last, region.Right)

	region, _ = gtable.FindPanelRegion(t)
	t.PrependCols(gtable.MaxExtentUnit([]gtable.Grob{yl}, gtable.Width))
	t.Add(yl, "ylab-l", region.Top, 0, region.Bottom, 0)
	t.AppendCols(gtable.MaxExtentUnit([]gtable.Grob{yr}, gtable.Width))
	last = t.NumCols() - 1
	t.Add(yr, "ylab-r", region.Top, last, region.Bottom, last)
	return t
}

// ----------------------------------------------------------------------------
// Null

// Null is the facet of a plot with a single panel.
type Null struct {
	facetBase
}

// ComputeLayout implements Facet.
func (Null) ComputeLayout(layers []*table.Table) (*Layout, error) {
	l := nullLayout()
	l.Possible = columnNames(layers)
	return l, nil
}

// DrawPanels implements Facet. The panel is surrounded by its four axes.
func (Null) DrawPanels(panels []gtable.Grob, layout *Layout, scales *ScaleSet, coord Coord, style *Style) (*gtable.Table, error) {
	if len(panels) != 1 || len(layout.Panels) != 1 {
		return nil, usageErrorf("a plot without facets needs exactly one panel, got %d", len(panels))
	}
	x, y := scales.PanelScales(layout.Panels[0])
	top, bottom := coord.RenderAxisH(x, style)
	left, right := coord.RenderAxisV(y, style)

	t := gtable.New(
		[]gtable.Unit{extent(left, gtable.Width), gtable.Null, extent(right, gtable.Width)},
		[]gtable.Unit{extent(top, gtable.Height), gtable.Null, extent(bottom, gtable.Height)})
	t.Add(panels[0], "panel", 1, 1, 1, 1)
	t.Add(top, "axis-t", 0, 1, 0, 1)
	t.Add(bottom, "axis-b", 2, 1, 2, 1)
	t.Add(left, "axis-l", 1, 0, 1, 0)
	t.Add(right, "axis-r", 1, 2, 1, 2)
	return t, nil
}

func extent(g gtable.Grob, d gtable.Dim) gtable.Unit {
	return gtable.MaxExtentUnit([]gtable.Grob{g}, d)
}
