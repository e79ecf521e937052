package facet

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2/gtable"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Aes maps aesthetics like x, y, colour or label to expressions which
// are evaluated on the layer data, e.g.
//
//	Aes{"x": "displ", "y": "hwy", "colour": "factor(cyl)"}
type Aes map[string]string

// Aesthetics which are drawn from a palette and are encoded as level
// numbers if the data is not numeric.
var discreteAesthetics = []string{"colour", "fill", "shape", "linetype"}

// A Layer draws data with a geom.
type Layer struct {
	// Data is the layer data. If nil the plot data is used.
	Data *table.Table

	// Aes is merged over the plot's aesthetics.
	Aes Aes

	Geom Geom
}

// Plot is a faceted plot.
type Plot struct {
	Data   *table.Table
	Aes    Aes
	Layers []Layer

	// Facet splits the data into panels. Nil means a single panel.
	Facet Facet

	// X and Y are the master scales cloned for every scale group. If
	// nil a continuous or discrete scale is chosen based on the data.
	X, Y Scaler

	// Coord draws the axes. Defaults to Cartesian.
	Coord Coord

	// Style defaults to DefaultFacetStyle(12).
	Style *Style

	Title, SubTitle string

	// XLab and YLab default to the scale titles or the x and y
	// expressions.
	XLab, YLab string
}

// Built is the result of a render pass.
type Built struct {
	Layout *Layout
	Scales *ScaleSet

	// Data holds for each layer the evaluated aesthetics and the PANEL
	// column.
	Data []*table.Table

	Table *gtable.Table
	Style *Style
}

// Build runs a complete render pass: it computes the layout, maps the
// layer data to panels, evaluates the aesthetics, trains the scales and
// assembles panels, axes, strips and titles into a table.
//
// Every call works on fresh state; p is not modified.
func (p *Plot) Build() (*Built, error) {
	f := p.Facet
	if f == nil {
		f = Null{}
	}
	coord := p.Coord
	if coord == nil {
		coord = Cartesian{}
	}
	style := p.Style
	if style == nil {
		s := DefaultFacetStyle(12)
		style = &s
	}

	raw := make([]*table.Table, len(p.Layers))
	for i, l := range p.Layers {
		raw[i] = l.Data
		if raw[i] == nil {
			raw[i] = p.Data
		}
	}
	layout, err := f.ComputeLayout(append([]*table.Table{p.Data}, raw...))
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("layout computed", "panels", layout.NumPanels(), "layout", "\n"+layout.String())

	mapped := make([]*table.Table, len(p.Layers))
	for i, l := range p.Layers {
		m, err := f.MapData(raw[i], layout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layerName(i+1), err)
		}
		m, err = evalAes(m, p.layerAes(l))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layerName(i+1), err)
		}
		mapped[i] = m
	}

	x, y := p.X, p.Y
	if x == nil {
		x = defaultScale(XAesthetics, mapped)
	}
	if y == nil {
		y = defaultScale(YAesthetics, mapped)
	}
	scales := f.InitScales(layout, x, y)
	if err := f.TrainScales(scales, layout, mapped); err != nil {
		return nil, err
	}
	scales.Finalize()

	panels := make([]gtable.Grob, len(layout.Panels))
	split := make([]map[int]*table.Table, len(mapped))
	for i, m := range mapped {
		split[i] = splitByPanel(m)
	}
	for i, pl := range layout.Panels {
		panel := &Panel{PanelLayout: pl, Style: style}
		panel.X, panel.Y = scales.PanelScales(pl)
		for j, l := range p.Layers {
			panel.Layers = append(panel.Layers, split[j][pl.Panel])
			panel.Geoms = append(panel.Geoms, l.Geom)
		}
		panels[i] = panel
	}

	t, err := f.DrawPanels(panels, layout, scales, coord, style)
	if err != nil {
		return nil, err
	}
	labels := Labels{
		XBottom: titleGrob(p.label(p.XLab, x, "x"), style.XAxis.Title),
		YLeft:   titleGrob(p.label(p.YLab, y, "y"), style.YAxis.Title),
	}
	t = f.DrawLabels(t, labels, style)
	p.addTitles(t, style)

	return &Built{Layout: layout, Scales: scales, Data: mapped, Table: t, Style: style}, nil
}

// Draw draws the built plot onto c.
func (b *Built) Draw(c draw.Canvas) {
	if bg := b.Style.Background; bg != nil {
		c.SetColor(bg)
		c.Fill(c.Rectangle.Path())
	}
	b.Table.Draw(c)
}

func (p *Plot) layerAes(l Layer) Aes {
	aes := make(Aes, len(p.Aes)+len(l.Aes))
	for k, v := range p.Aes {
		aes[aesName(k)] = v
	}
	for k, v := range l.Aes {
		aes[aesName(k)] = v
	}
	return aes
}

func aesName(name string) string {
	if name == "color" {
		return "colour"
	}
	return name
}

// evalAes replaces the columns of data by the evaluated aesthetics. The
// PANEL column is kept.
func evalAes(data *table.Table, aes Aes) (*table.Table, error) {
	ctx := &EvalContext{Data: data}
	b := new(table.Builder)
	for _, name := range sortedKeys(aes) {
		e, err := ParseExpr(aes[name])
		if err != nil {
			return nil, err
		}
		vals, err := ctx.Eval(e)
		if err != nil {
			return nil, fmt.Errorf("aesthetic %s: %w", name, err)
		}
		if vals == nil {
			return nil, usageErrorf("aesthetic %s: unknown column %q", name, aes[name])
		}
		for _, d := range discreteAesthetics {
			if name == d {
				vals = encodeLevels(vals)
			}
		}
		b.Add(name, column(vals))
	}
	b.Add(ColPanel, data.MustColumn(ColPanel))
	return b.Done(), nil
}

func sortedKeys(aes Aes) []string {
	names := make([]string, 0, len(aes))
	for k := range aes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// encodeLevels replaces non-numeric values by the number of their level
// in sorted order. Numbers and colors are kept.
func encodeLevels(vals []interface{}) []interface{} {
	var levels []interface{}
	seen := make(map[string]bool)
	for _, v := range vals {
		switch v.(type) {
		case nil, float64, color.Color:
			continue
		}
		if k := key([]interface{}{v}); !seen[k] {
			seen[k] = true
			levels = append(levels, v)
		}
	}
	if len(levels) == 0 {
		return vals
	}
	sortValues(levels)
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[key([]interface{}{l})] = i
	}
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
		if j, ok := index[key([]interface{}{v})]; ok {
			out[i] = float64(j)
		}
	}
	return out
}

// defaultScale returns a continuous scale for aes unless the first
// value found in the data is neither a number nor a time.
func defaultScale(aes []string, layers []*table.Table) Scaler {
	for _, t := range layers {
		for _, a := range aes {
			for _, v := range toValues(t.Column(a)) {
				switch v.(type) {
				case nil:
					continue
				case float64, int64, uint64, time.Time:
					return NewScale(aes...)
				}
				return NewDiscreteScale(aes...)
			}
		}
	}
	return NewScale(aes...)
}

// splitByPanel splits t into one table per PANEL value.
func splitByPanel(t *table.Table) map[int]*table.Table {
	var panel []int
	slice.Convert(&panel, t.MustColumn(ColPanel))
	rows := make(map[int][]int)
	for r, id := range panel {
		rows[id] = append(rows[id], r)
	}
	out := make(map[int]*table.Table, len(rows))
	for id, idx := range rows {
		b := new(table.Builder)
		for _, name := range t.Columns() {
			b.Add(name, slice.Select(t.Column(name), idx))
		}
		out[id] = b.Done()
	}
	return out
}

// label returns the axis title: explicit, the scale title or the
// expression mapped to aes.
func (p *Plot) label(explicit string, s Scaler, aes string) string {
	if explicit != "" {
		return explicit
	}
	switch s := s.(type) {
	case *Scale:
		if s.Title != "" {
			return s.Title
		}
	case *DiscreteScale:
		if s.Title != "" {
			return s.Title
		}
	}
	if e, ok := p.Aes[aes]; ok {
		return e
	}
	for _, l := range p.Layers {
		if e, ok := l.Aes[aes]; ok {
			return e
		}
	}
	return aes
}

func titleGrob(text string, sty draw.TextStyle) gtable.Grob {
	if text == "" {
		return nil
	}
	return gtable.Text{Text: text, Style: sty, Pad: 2}
}

// addTitles prepends the subtitle and title rows spanning all columns.
func (p *Plot) addTitles(t *gtable.Table, style *Style) {
	for _, title := range []struct {
		name, text string
		sty        draw.TextStyle
	}{
		{"subtitle", p.SubTitle, style.SubTitle},
		{"title", p.Title, style.Title},
	} {
		if title.text == "" {
			continue
		}
		g := gtable.Text{Text: title.text, Style: title.sty, Pad: 2}
		_, h := g.Size()
		if title.name == "title" && style.TitleHeight > h {
			h = style.TitleHeight
		}
		t.PrependRows(gtable.Fixed(h))
		t.Add(g, title.name, 0, 0, 0, t.NumCols()-1)
	}
}

// MustBuild is like Build but panics on error.
func (p *Plot) MustBuild() *Built {
	b, err := p.Build()
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the minimum size of the built plot.
func (b *Built) Size() (w, h vg.Length) {
	return b.Table.Size()
}
