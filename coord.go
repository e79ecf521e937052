package facet

import (
	"github.com/vdobler/facet/v2/gtable"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Coord renders the axes of a position scale. The returned grobs may
// be gtable.Zero for sides without an axis.
type Coord interface {
	RenderAxisH(x PositionScaler, style *Style) (top, bottom gtable.Grob)
	RenderAxisV(y PositionScaler, style *Style) (left, right gtable.Grob)
}

// Cartesian is the plain cartesian coordinate system with the x axis
// below and the y axis left of the panels.
type Cartesian struct {
	// Mirror draws the axes on the opposite sides, too.
	Mirror bool
}

// RenderAxisH implements Coord.
func (c Cartesian) RenderAxisH(x PositionScaler, style *Style) (top, bottom gtable.Grob) {
	if x == nil {
		return gtable.Zero, gtable.Zero
	}
	top = gtable.Zero
	if c.Mirror {
		top = &axisGrob{scale: x, side: sideTop, style: style}
	}
	return top, &axisGrob{scale: x, side: sideBottom, style: style}
}

// RenderAxisV implements Coord.
func (c Cartesian) RenderAxisV(y PositionScaler, style *Style) (left, right gtable.Grob) {
	if y == nil {
		return gtable.Zero, gtable.Zero
	}
	right = gtable.Zero
	if c.Mirror {
		right = &axisGrob{scale: y, side: sideRight, style: style}
	}
	return &axisGrob{scale: y, side: sideLeft, style: style}, right
}

type side int

const (
	sideBottom side = iota
	sideTop
	sideLeft
	sideRight
)

func (s side) horizontal() bool { return s == sideBottom || s == sideTop }

// axisGrob draws the ticks and tick labels of a scale along the edge of
// its area which touches the panel.
type axisGrob struct {
	scale PositionScaler
	side  side
	style *Style
}

const tickLabelPad = vg.Length(2)

func (a *axisGrob) tickStyles() (major, minor draw.LineStyle, majorLen, minorLen vg.Length, label draw.TextStyle) {
	if a.side.horizontal() {
		ax := a.style.XAxis
		return ax.MajorTick.LineStyle, ax.MinorTick.LineStyle,
			ax.MajorTick.Length, ax.MinorTick.Length, ax.MajorTick.Label
	}
	ax := a.style.YAxis
	return ax.MajorTick.LineStyle, ax.MinorTick.LineStyle,
		ax.MajorTick.Length, ax.MinorTick.Length, ax.MajorTick.Label
}

// Size implements gtable.Grob. Axes stretch along the panel and have
// the extent of the longest tick plus the largest label across.
func (a *axisGrob) Size() (w, h vg.Length) {
	_, _, majorLen, minorLen, label := a.tickStyles()
	across := majorLen
	if minorLen > across {
		across = minorLen
	}
	var labelExt vg.Length
	for _, t := range a.scale.Ticks() {
		if t.IsMinor() {
			continue
		}
		e := label.Height(t.Label)
		if !a.side.horizontal() {
			e = label.Width(t.Label)
		}
		if e > labelExt {
			labelExt = e
		}
	}
	if labelExt > 0 {
		across += tickLabelPad + labelExt
	}
	if a.side.horizontal() {
		return 0, across
	}
	return across, 0
}

// Draw implements gtable.Grob.
func (a *axisGrob) Draw(c draw.Canvas) {
	major, minor, majorLen, minorLen, label := a.tickStyles()
	line := a.style.XAxis.Line
	if !a.side.horizontal() {
		line = a.style.YAxis.Line
	}

	// p0 is the point on the panel edge, dir points away from the panel.
	var p0 vg.Point
	var dir vg.Point
	switch a.side {
	case sideBottom:
		p0, dir = vg.Point{X: c.Min.X, Y: c.Max.Y}, vg.Point{Y: -1}
		label.XAlign, label.YAlign = draw.XCenter, draw.YTop
	case sideTop:
		p0, dir = c.Min, vg.Point{Y: 1}
		label.XAlign, label.YAlign = draw.XCenter, draw.YBottom
	case sideLeft:
		p0, dir = vg.Point{X: c.Max.X, Y: c.Min.Y}, vg.Point{X: -1}
		label.XAlign, label.YAlign = draw.XRight, draw.YCenter
	case sideRight:
		p0, dir = c.Min, vg.Point{X: 1}
		label.XAlign, label.YAlign = draw.XLeft, draw.YCenter
	}

	along := Interval{float64(c.Min.X), float64(c.Max.X)}
	if !a.side.horizontal() {
		along = Interval{float64(c.Min.Y), float64(c.Max.Y)}
	}
	at := func(v float64) vg.Point {
		pos := vg.Length(a.scale.Project(v, along))
		if a.side.horizontal() {
			return vg.Point{X: pos, Y: p0.Y}
		}
		return vg.Point{X: p0.X, Y: pos}
	}
	out := func(p vg.Point, l vg.Length) vg.Point {
		return vg.Point{X: p.X + dir.X*l, Y: p.Y + dir.Y*l}
	}

	if line.Color != nil && line.Width > 0 {
		end := vg.Point{X: c.Max.X, Y: p0.Y}
		if !a.side.horizontal() {
			end = vg.Point{X: p0.X, Y: c.Max.Y}
		}
		c.StrokeLine2(line, p0.X, p0.Y, end.X, end.Y)
	}

	for _, tick := range a.scale.Ticks() {
		p := at(tick.Value)
		sty, length := major, majorLen
		if tick.IsMinor() {
			sty, length = minor, minorLen
		}
		if sty.Color != nil && sty.Width > 0 && length > 0 {
			q := out(p, length)
			c.StrokeLine2(sty, p.X, p.Y, q.X, q.Y)
		}
		if tick.IsMinor() || label.Color == nil {
			continue
		}
		c.FillText(label, out(p, majorLen+tickLabelPad), tick.Label)
	}
}

// axisTicks returns the ticks of s which may be nil.
func axisTicks(s PositionScaler) []plot.Tick {
	if s == nil {
		return nil
	}
	return s.Ticks()
}
