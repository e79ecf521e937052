package geom

import (
	"image/color"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2/data"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// aesthetics are the optional aesthetic columns of a layer. Missing
// columns are nil.
type aesthetics struct {
	colour   []interface{}
	fill     []interface{}
	shape    []interface{}
	linetype []interface{}
	alpha    []float64
	size     []float64
}

func readAesthetics(t *table.Table) aesthetics {
	a := aesthetics{
		colour:   data.Values(t, "colour"),
		fill:     data.Values(t, "fill"),
		shape:    data.Values(t, "shape"),
		linetype: data.Values(t, "linetype"),
	}
	a.alpha, _ = data.Floats(t, "alpha")
	a.size, _ = data.Floats(t, "size")
	return a
}

// color returns the line color of row i.
func (a aesthetics) color(base color.Color, i int) (color.Color, bool) {
	return determineColor(base, a.colour, a.alpha, i)
}

// fillColor returns the fill color of row i.
func (a aesthetics) fillColor(base color.Color, i int) (color.Color, bool) {
	return determineColor(base, a.fill, a.alpha, i)
}

// glyph returns the glyph shape of row i.
func (a aesthetics) glyph(base draw.GlyphDrawer, i int) draw.GlyphDrawer {
	if a.shape != nil {
		if k, ok := data.Index(a.shape[i]); ok {
			return plotutil.Shape(k)
		}
	}
	if base == nil {
		return draw.CircleGlyph{}
	}
	return base
}

// dashes returns the dash pattern of row i.
func (a aesthetics) dashes(base []vg.Length, i int) []vg.Length {
	if a.linetype != nil {
		if k, ok := data.Index(a.linetype[i]); ok {
			return plotutil.Dashes(k)
		}
	}
	return base
}

// sizeOf returns the size of row i in points. Rows with a negative or
// missing size are not drawn.
func (a aesthetics) sizeOf(base vg.Length, i int) (vg.Length, bool) {
	if a.size == nil {
		return base, true
	}
	s := a.size[i]
	if math.IsNaN(s) || s < 0 {
		return 0, false
	}
	return vg.Length(s), true
}

// BoxStyle combines a line style for the border with a fill color for
// the interior of a geom.
type BoxStyle struct {
	Fill   color.Color
	Border draw.LineStyle
}

// CanonicRectangle returns the canonical form of r, i.e. its Min points
// having smaller coordinates than its Max point.
func CanonicRectangle(r vg.Rectangle) vg.Rectangle {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// clipRect clips rect to canvas. The returned rectangle is in the canonical form.
func clipRect(rect vg.Rectangle, canvas draw.Canvas) vg.Rectangle {
	rect = CanonicRectangle(rect)
	limit := CanonicRectangle(canvas.Rectangle)

	if rect.Min.X < limit.Min.X {
		rect.Min.X = limit.Min.X
	}
	if rect.Min.Y < limit.Min.Y {
		rect.Min.Y = limit.Min.Y
	}
	if rect.Max.X > limit.Max.X {
		rect.Max.X = limit.Max.X
	}
	if rect.Max.Y > limit.Max.Y {
		rect.Max.Y = limit.Max.Y
	}
	return rect
}

// determineColor returns the color of row i: taken from vals if present
// (a color or the number of a plotutil color) and faded by alpha. The
// second result is false if row i must not be drawn.
func determineColor(col color.Color, vals []interface{}, alpha []float64, i int) (color.Color, bool) {
	if vals != nil {
		switch v := vals[i].(type) {
		case nil:
			return nil, false
		case color.Color:
			col = v
		default:
			k, ok := data.Index(v)
			if !ok {
				return nil, false
			}
			col = plotutil.Color(k)
		}
	}

	if col == nil {
		return col, false
	}

	if alpha != nil {
		a := alpha[i]
		if a < 0 || a > 1 || math.IsNaN(a) {
			return col, false
		}
		r, g, b, ca := col.RGBA()
		col = color.NRGBA64{
			uint16(r),
			uint16(g),
			uint16(b),
			uint16(float64(ca) * a),
		}
	}

	return col, true
}
