package gtable

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Grob is a graphical object which can be placed in a Table.
type Grob interface {
	// Size returns the natural width and height of the grob.
	// A zero extent means the grob takes whatever space it is given.
	Size() (w, h vg.Length)

	// Draw draws the grob into the rectangle of c.
	Draw(c draw.Canvas)
}

// ----------------------------------------------------------------------------
// Zero

type zeroGrob struct{}

func (zeroGrob) Size() (w, h vg.Length) { return 0, 0 }
func (zeroGrob) Draw(draw.Canvas)       {}

// Zero is the empty placeholder grob. It has no extent and draws nothing.
var Zero Grob = zeroGrob{}

// IsZero reports whether g is nil or the Zero grob.
func IsZero(g Grob) bool {
	if g == nil {
		return true
	}
	_, ok := g.(zeroGrob)
	return ok
}

// orZero returns g or Zero if g is nil.
func orZero(g Grob) Grob {
	if g == nil {
		return Zero
	}
	return g
}

// ----------------------------------------------------------------------------
// Rect

// Rect fills and optionally strokes the area it is drawn into.
type Rect struct {
	Fill   color.Color
	Border draw.LineStyle
}

// Size implements Grob. A Rect adapts to any area.
func (r Rect) Size() (w, h vg.Length) { return 0, 0 }

// Draw implements Grob.
func (r Rect) Draw(c draw.Canvas) {
	if r.Fill != nil {
		c.SetColor(r.Fill)
		c.Fill(c.Rectangle.Path())
	}
	if r.Border.Color == nil || r.Border.Width <= 0 {
		return
	}
	min, max := c.Min, c.Max
	c.StrokeLines(r.Border, []vg.Point{
		min, {X: max.X, Y: min.Y}, max, {X: min.X, Y: max.Y}, min,
	})
}

// ----------------------------------------------------------------------------
// Text

// Text is a (possibly multi-line and rotated) text centered in its area.
type Text struct {
	Text  string
	Style draw.TextStyle
	Pad   vg.Length // Pad is added on all four sides.
}

// rotated reports whether the text runs vertically.
func (t Text) rotated() bool {
	r := math.Mod(math.Abs(t.Style.Rotation), math.Pi)
	return math.Abs(r-math.Pi/2) < 0.1
}

// Size implements Grob.
func (t Text) Size() (w, h vg.Length) {
	if t.Text == "" {
		return 0, 0
	}
	w = t.Style.Width(t.Text) + 2*t.Pad
	h = t.Style.Height(t.Text) + 2*t.Pad
	if t.rotated() {
		w, h = h, w
	}
	return w, h
}

// Draw implements Grob.
func (t Text) Draw(c draw.Canvas) {
	if t.Text == "" || t.Style.Color == nil {
		return
	}
	sty := t.Style
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	c.FillText(sty, c.Center(), t.Text)
}

// ----------------------------------------------------------------------------
// Tree

// Tree draws its children on top of each other in the same area, the
// first child at the bottom. Its size is the maximum of its childrens'
// sizes.
type Tree []Grob

// Size implements Grob.
func (tr Tree) Size() (w, h vg.Length) {
	for _, g := range tr {
		gw, gh := orZero(g).Size()
		if gw > w {
			w = gw
		}
		if gh > h {
			h = gh
		}
	}
	return w, h
}

// Draw implements Grob.
func (tr Tree) Draw(c draw.Canvas) {
	for _, g := range tr {
		orZero(g).Draw(c)
	}
}
