package facet

import (
	"math"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Geom draws the rows of one layer which were mapped to a panel. The
// aesthetic columns (x, y, ...) hold data values which are placed with
// Panel.Position.
type Geom interface {
	Draw(p *Panel, data *table.Table)
}

// ----------------------------------------------------------------------------
// Panel

// A Panel represents one panel in a faceted plot. It is the grob placed
// in the panel cell of the assembled table.
type Panel struct {
	PanelLayout

	X, Y PositionScaler

	// Layers holds for every layer the rows mapped to this panel and
	// Geoms the geom drawing them.
	Layers []*table.Table
	Geoms  []Geom

	Style *Style

	// Canvas is the area of the panel. It is valid while the panel is
	// drawn.
	Canvas draw.Canvas
}

// Size implements gtable.Grob. Panels take whatever space is left.
func (p *Panel) Size() (w, h vg.Length) { return 0, 0 }

// Draw implements gtable.Grob: the background and grid lines and then
// the geoms of all layers in order.
func (p *Panel) Draw(c draw.Canvas) {
	p.Canvas = c
	if bg := p.Style.Panel.Background; bg != nil {
		c.SetColor(bg)
		c.Fill(c.Rectangle.Path())
	}
	p.drawGrid()
	for i, g := range p.Geoms {
		if g == nil || i >= len(p.Layers) || p.Layers[i] == nil || p.Layers[i].Len() == 0 {
			continue
		}
		g.Draw(p, p.Layers[i])
	}
}

func (p *Panel) drawGrid() {
	c := p.Canvas
	for _, t := range axisTicks(p.X) {
		sty := p.Style.Grid.Major
		if t.IsMinor() {
			sty = p.Style.Grid.Minor
		}
		if sty.Color == nil || sty.Width <= 0 {
			continue
		}
		x := vg.Length(p.X.Project(t.Value, p.xRange()))
		c.StrokeLine2(sty, x, c.Min.Y, x, c.Max.Y)
	}
	for _, t := range axisTicks(p.Y) {
		sty := p.Style.Grid.Major
		if t.IsMinor() {
			sty = p.Style.Grid.Minor
		}
		if sty.Color == nil || sty.Width <= 0 {
			continue
		}
		y := vg.Length(p.Y.Project(t.Value, p.yRange()))
		c.StrokeLine2(sty, c.Min.X, y, c.Max.X, y)
	}
}

func (p *Panel) xRange() Interval {
	return Interval{float64(p.Canvas.Min.X), float64(p.Canvas.Max.X)}
}

func (p *Panel) yRange() Interval {
	return Interval{float64(p.Canvas.Min.Y), float64(p.Canvas.Max.Y)}
}

// MapXY maps the coordinate (x,y) in scale space to a canvas point. The
// second result is false if the point lies outside the panel.
func (p *Panel) MapXY(x, y float64) (vg.Point, bool) {
	if p.X == nil || p.Y == nil {
		return vg.Point{}, false
	}
	px := p.X.Project(x, p.xRange())
	py := p.Y.Project(y, p.yRange())
	if math.IsNaN(px) || math.IsNaN(py) {
		return vg.Point{}, false
	}
	pt := vg.Point{X: vg.Length(px), Y: vg.Length(py)}
	return pt, p.contains(pt)
}

// Position maps the data values xv and yv through the panel's scales to
// a canvas point.
func (p *Panel) Position(xv, yv interface{}) (vg.Point, bool) {
	x, y, ok := p.ScaleXY(xv, yv)
	if !ok {
		return vg.Point{}, false
	}
	return p.MapXY(x, y)
}

// ScaleXY maps the data values xv and yv to scale space.
func (p *Panel) ScaleXY(xv, yv interface{}) (x, y float64, ok bool) {
	if p.X == nil || p.Y == nil {
		return 0, 0, false
	}
	x, okx := p.X.Map(xv)
	y, oky := p.Y.Map(yv)
	return x, y, okx && oky
}

// MapX maps the data value v to a horizontal canvas position. The
// second result is false if v cannot be mapped or lies outside the panel.
func (p *Panel) MapX(v interface{}) (vg.Length, bool) {
	if p.X == nil {
		return 0, false
	}
	x, ok := p.X.Map(v)
	if !ok {
		return 0, false
	}
	px := p.X.Project(x, p.xRange())
	if math.IsNaN(px) {
		return 0, false
	}
	c := vg.Length(px)
	return c, p.contains(vg.Point{X: c, Y: p.Canvas.Min.Y})
}

// MapY is like MapX for vertical positions.
func (p *Panel) MapY(v interface{}) (vg.Length, bool) {
	if p.Y == nil {
		return 0, false
	}
	y, ok := p.Y.Map(v)
	if !ok {
		return 0, false
	}
	py := p.Y.Project(y, p.yRange())
	if math.IsNaN(py) {
		return 0, false
	}
	c := vg.Length(py)
	return c, p.contains(vg.Point{X: p.Canvas.Min.X, Y: c})
}

// InRangeXY reports whether (x,y) in scale space lies inside the panel.
func (p *Panel) InRangeXY(x, y float64) bool {
	_, ok := p.MapXY(x, y)
	return ok
}

func (p *Panel) contains(pt vg.Point) bool {
	const slop = 1e-6
	c := p.Canvas
	return pt.X >= c.Min.X-slop && pt.X <= c.Max.X+slop &&
		pt.Y >= c.Min.Y-slop && pt.Y <= c.Max.Y+slop
}
