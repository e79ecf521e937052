// Package geom provides basic geometric objects to display data in a plot.
//
// The overall concept is loosely based in ggplot2's geoms. Each geom
// reads the aesthetic columns of the layer rows mapped to a panel:
// required ones like x and y and optional ones like colour, fill, alpha,
// shape, size and linetype. Positions are data values placed by the
// panel's scales; colour, shape and linetype are colors or level numbers
// selecting from the plotutil palettes.
//
// The different geoms have singular names like Rect or Point even if
// they may draw several rectangles or points to match the naming in ggplot2.
package geom

import (
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2"
	"github.com/vdobler/facet/v2/data"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ----------------------------------------------------------------------------
// Point

// Point draws points / symbols at x and y.
type Point struct {
	Default draw.GlyphStyle
}

// Draw implements facet.Geom.
func (p Point) Draw(panel *facet.Panel, t *table.Table) {
	xs, ys := data.Values(t, "x"), data.Values(t, "y")
	if xs == nil || ys == nil {
		return
	}
	aes := readAesthetics(t)

	baseColor := p.Default.Color
	if baseColor == nil {
		baseColor = panel.Style.GeomDefault.Color
	}
	size := p.Default.Radius
	if size == 0 {
		size = panel.Style.GeomDefault.Size
	}

	for i := range xs {
		center, ok := panel.Position(xs[i], ys[i])
		if !ok {
			continue
		}
		col, ok := aes.color(baseColor, i)
		if !ok {
			continue
		}
		radius, ok := aes.sizeOf(size, i)
		if !ok || radius == 0 {
			continue
		}
		sty := draw.GlyphStyle{
			Color:  col,
			Radius: radius,
			Shape:  aes.glyph(p.Default.Shape, i),
		}
		panel.Canvas.DrawGlyph(sty, center)
	}
}

// ----------------------------------------------------------------------------
// Path

// Path connects the points of each group in data order through straight
// line segments. Rows are grouped by the group column or, if absent, by
// the colour column. The aesthetics map the individual line segments
// based on their first point.
//
// (To draw them in order of x values see Line.)
type Path struct {
	Default draw.LineStyle
}

// vertex is a point of a path in scale space with the row it stems from.
type vertex struct {
	x, y float64
	row  int
}

// Draw implements facet.Geom.
func (p Path) Draw(panel *facet.Panel, t *table.Table) {
	p.draw(panel, t, vertices(panel, t))
}

func (p Path) draw(panel *facet.Panel, t *table.Table, paths [][]vertex) {
	aes := readAesthetics(t)

	baseColor := p.Default.Color
	if baseColor == nil {
		baseColor = panel.Style.GeomDefault.Color
	}
	width := p.Default.Width
	if width == 0 {
		width = panel.Style.GeomDefault.LineWidth
	}

	canvas := panel.Canvas
	for _, path := range paths {
		for k := 0; k < len(path)-1; k++ {
			i := path[k].row
			left, _ := panel.MapXY(path[k].x, path[k].y) // Clipping done below.
			right, _ := panel.MapXY(path[k+1].x, path[k+1].y)

			col, ok := aes.color(baseColor, i)
			if !ok {
				continue
			}
			w, ok := aes.sizeOf(width, i)
			if !ok || w == 0 {
				continue
			}
			sty := draw.LineStyle{
				Color:  col,
				Width:  w,
				Dashes: aes.dashes(p.Default.Dashes, i),
			}
			canvas.StrokeLines(sty, canvas.ClipLinesXY([]vg.Point{left, right})...)
		}
	}
}

// vertices returns the mappable (x, y) points of t split into groups.
func vertices(panel *facet.Panel, t *table.Table) [][]vertex {
	xs, ys := data.Values(t, "x"), data.Values(t, "y")
	if xs == nil || ys == nil {
		return nil
	}
	groups := data.Values(t, "group")
	if groups == nil {
		groups = data.Values(t, "colour")
	}

	var paths [][]vertex
	index := make(map[interface{}]int)
	for i := range xs {
		x, y, ok := panel.ScaleXY(xs[i], ys[i])
		if !ok {
			continue
		}
		var g interface{}
		if groups != nil {
			g = groups[i]
		}
		j, seen := index[g]
		if !seen {
			j = len(paths)
			index[g] = j
			paths = append(paths, nil)
		}
		paths[j] = append(paths[j], vertex{x: x, y: y, row: i})
	}
	return paths
}

// ----------------------------------------------------------------------------
// Line

// Line connects the points of each group in order of the x values by
// straight line segments.
//
// (To draw them in data order see Path.)
type Line struct {
	Default draw.LineStyle
}

// Draw implements facet.Geom.
func (l Line) Draw(panel *facet.Panel, t *table.Table) {
	paths := vertices(panel, t)
	for _, path := range paths {
		sort.SliceStable(path, func(i, j int) bool { return path[i].x < path[j].x })
	}
	Path(l).draw(panel, t, paths)
}

// ----------------------------------------------------------------------------
// Step

// Step produces a stairstep plot of the given data.
type Step struct {
	// Vertical changes the step to "vertical then horizontal".
	Vertical bool

	Default draw.LineStyle
}

// Draw implements facet.Geom.
func (s Step) Draw(panel *facet.Panel, t *table.Table) {
	paths := vertices(panel, t)
	for i, path := range paths {
		sort.SliceStable(path, func(i, j int) bool { return path[i].x < path[j].x })
		paths[i] = stairs(path, s.Vertical)
	}
	Path{Default: s.Default}.draw(panel, t, paths)
}

// stairs inserts a corner between each pair of consecutive vertices.
func stairs(path []vertex, vertical bool) []vertex {
	if len(path) < 2 {
		return path
	}
	out := make([]vertex, 0, 2*len(path)-1)
	for i, v := range path {
		if i > 0 {
			prev := path[i-1]
			corner := vertex{x: v.x, y: prev.y, row: prev.row}
			if vertical {
				corner = vertex{x: prev.x, y: v.y, row: prev.row}
			}
			out = append(out, corner)
		}
		out = append(out, v)
	}
	return out
}

// ----------------------------------------------------------------------------
// Segment

// Segment draws line segments from (x, y) to (xend, yend).
type Segment struct {
	Default draw.LineStyle
}

// Draw implements facet.Geom.
func (s Segment) Draw(panel *facet.Panel, t *table.Table) {
	xyuv, rows := corners(panel, t, "x", "y", "xend", "yend")
	paths := make([][]vertex, xyuv.Len())
	for k := range paths {
		x, y, u, v := xyuv.XYUV(k)
		paths[k] = []vertex{{x: x, y: y, row: rows[k]}, {x: u, y: v, row: rows[k]}}
	}
	Path{Default: s.Default}.draw(panel, t, paths)
}

// corners maps the four position columns of t to scale space. Rows with
// an unmappable position are skipped; rows holds the row of each entry.
func corners(panel *facet.Panel, t *table.Table, x, y, u, v string) (data.XYUVs, []int) {
	xs, ys := data.Values(t, x), data.Values(t, y)
	us, vs := data.Values(t, u), data.Values(t, v)
	if xs == nil || ys == nil || us == nil || vs == nil {
		return nil, nil
	}
	var xyuv data.XYUVs
	var rows []int
	for i := range xs {
		sx, sy, ok1 := panel.ScaleXY(xs[i], ys[i])
		su, sv, ok2 := panel.ScaleXY(us[i], vs[i])
		if !ok1 || !ok2 {
			continue
		}
		xyuv = append(xyuv, struct{ X, Y, U, V float64 }{sx, sy, su, sv})
		rows = append(rows, i)
	}
	return xyuv, rows
}

// ----------------------------------------------------------------------------
// Rect

// Rect draws the rectangles spanned by xmin, xmax, ymin and ymax.
// The coordinates are the outside coordinates, i.e. if the border is drawn for
// the rectangle then this border is drawn inside the rectangle given by the
// coordinates.
type Rect struct {
	Default BoxStyle
}

// Draw implements facet.Geom.
func (r Rect) Draw(panel *facet.Panel, t *table.Table) {
	xyuv, rows := corners(panel, t, "xmin", "ymin", "xmax", "ymax")
	aes := readAesthetics(t)

	fill := r.Default.Fill
	if fill == nil {
		fill = panel.Style.GeomDefault.Fill
	}
	border := r.Default.Border

	canvas := panel.Canvas
	for k := 0; k < xyuv.Len(); k++ {
		i := rows[k]
		x, y, u, v := xyuv.XYUV(k)
		min, minok := panel.MapXY(x, y)
		max, maxok := panel.MapXY(u, v)
		if !minok && !maxok {
			continue // both corners outside of scale range
		}
		rect := clipRect(vg.Rectangle{Min: min, Max: max}, canvas)

		if fillCol, ok := aes.fillColor(fill, i); ok {
			canvas.SetColor(fillCol)
			canvas.Fill(rect.Path())
		}
		width, ok := aes.sizeOf(border.Width, i)
		if !ok || width <= 0 {
			continue
		}
		if borderCol, ok := aes.color(border.Color, i); ok {
			w := 0.499 * width
			rect.Min.X += w
			rect.Min.Y += w
			rect.Max.X -= w
			rect.Max.Y -= w
			canvas.SetColor(borderCol)
			canvas.SetLineWidth(width)
			canvas.SetLineDash(aes.dashes(border.Dashes, i), border.DashOffs)
			canvas.Stroke(rect.Path())
		}
	}
}

// ----------------------------------------------------------------------------
// HLine

// HLine draws horizontal reference (or rule) lines at the yintercept
// values.
type HLine struct {
	Default draw.LineStyle
}

// Draw implements facet.Geom.
func (h HLine) Draw(panel *facet.Panel, t *table.Table) {
	rule(panel, t, "yintercept", h.Default, func(c draw.Canvas, v interface{}) (vg.Point, vg.Point, bool) {
		y, ok := panel.MapY(v)
		return vg.Point{X: c.Min.X, Y: y}, vg.Point{X: c.Max.X, Y: y}, ok
	})
}

// ----------------------------------------------------------------------------
// VLine

// VLine draws vertical reference (or rule) lines at the xintercept
// values.
type VLine struct {
	Default draw.LineStyle
}

// Draw implements facet.Geom.
func (v VLine) Draw(panel *facet.Panel, t *table.Table) {
	rule(panel, t, "xintercept", v.Default, func(c draw.Canvas, val interface{}) (vg.Point, vg.Point, bool) {
		x, ok := panel.MapX(val)
		return vg.Point{X: x, Y: c.Min.Y}, vg.Point{X: x, Y: c.Max.Y}, ok
	})
}

// rule draws one line across the panel per value of column.
func rule(panel *facet.Panel, t *table.Table, column string, def draw.LineStyle,
	ends func(c draw.Canvas, v interface{}) (vg.Point, vg.Point, bool)) {
	vals := data.Values(t, column)
	aes := readAesthetics(t)

	baseColor := def.Color
	if baseColor == nil {
		baseColor = panel.Style.GeomDefault.Color
	}
	width := def.Width
	if width == 0 {
		width = panel.Style.GeomDefault.LineWidth
	}
	for i, v := range vals {
		a, b, ok := ends(panel.Canvas, v)
		if !ok {
			continue
		}
		col, ok := aes.color(baseColor, i)
		if !ok {
			continue
		}
		w, ok := aes.sizeOf(width, i)
		if !ok || w == 0 {
			continue
		}
		sty := draw.LineStyle{Color: col, Width: w, Dashes: aes.dashes(def.Dashes, i)}
		panel.Canvas.StrokeLine2(sty, a.X, a.Y, b.X, b.Y)
	}
}

// ----------------------------------------------------------------------------
// Text

// Text draws the label column at x and y.
type Text struct {
	Default draw.TextStyle
}

// Draw implements facet.Geom.
func (t Text) Draw(panel *facet.Panel, tab *table.Table) {
	xs, ys := data.Values(tab, "x"), data.Values(tab, "y")
	labels := data.Strings(tab, "label")
	if xs == nil || ys == nil || labels == nil {
		return
	}
	aes := readAesthetics(tab)

	baseColor := t.Default.Color
	if baseColor == nil {
		baseColor = panel.Style.GeomDefault.Color
	}
	font := panel.Style.GeomDefault.Font
	if t.Default.Font != (vg.Font{}) {
		font = t.Default.Font
	}

	for i := range xs {
		center, ok := panel.Position(xs[i], ys[i])
		if !ok {
			continue
		}
		col, ok := aes.color(baseColor, i)
		if !ok {
			continue
		}
		size, ok := aes.sizeOf(font.Size, i)
		if !ok || size == 0 {
			continue
		}

		sty := t.Default
		sty.Color = col
		sty.Font = font
		sty.Font.Size = size
		if sty.XAlign == 0 && sty.YAlign == 0 {
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
		}
		panel.Canvas.FillText(sty, center, labels[i])
	}
}
