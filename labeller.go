package facet

import (
	"math"
	"strings"

	"github.com/vdobler/facet/v2/gtable"
	"gonum.org/v1/plot/vg"
)

// A Labeller produces the strip text of a panel from the names and the
// values of its facet variables.
type Labeller func(vars []string, values []interface{}) string

// LabelValue labels a strip with the values only, e.g. "4, f".
func LabelValue(vars []string, values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

// LabelBoth labels a strip with variable names and values, e.g.
// "cyl: 4, drv: f".
func LabelBoth(vars []string, values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = vars[i] + ": " + formatValue(v)
	}
	return strings.Join(parts, ", ")
}

// stripGrob returns a strip showing text. Horizontal strips sit above
// or below panels, vertical strips beside them.
func stripGrob(text string, horizontal bool, style *Style) gtable.Grob {
	if horizontal {
		sty := style.HStrip.TextStyle
		sty.Rotation = 0
		return strip{
			Tree: gtable.Tree{
				gtable.Rect{Fill: style.HStrip.Background},
				gtable.Text{Text: text, Style: sty, Pad: 2},
			},
			min: style.HStrip.Height,
		}
	}
	sty := style.VStrip.TextStyle
	if sty.Rotation == 0 {
		sty.Rotation = -math.Pi / 2
	}
	return strip{
		Tree: gtable.Tree{
			gtable.Rect{Fill: style.VStrip.Background},
			gtable.Text{Text: text, Style: sty, Pad: 2},
		},
		min:      style.VStrip.Width,
		vertical: true,
	}
}

// strip is a tree of background and text which is at least min high
// (or wide for vertical strips) and stretches along the panel.
type strip struct {
	gtable.Tree
	min      vg.Length
	vertical bool
}

func (s strip) Size() (w, h vg.Length) {
	w, h = s.Tree.Size()
	if s.vertical {
		if w < s.min {
			w = s.min
		}
		return w, 0
	}
	if h < s.min {
		h = s.min
	}
	return 0, h
}

// labelStrips returns the strip of every panel of layout labelling the
// variables selected by vars.
func labelStrips(layout *Layout, vars []int, lab Labeller, horizontal bool, style *Style) map[int]gtable.Grob {
	if lab == nil {
		lab = LabelValue
	}
	names := pick(layout.Vars, vars)
	strips := make(map[int]gtable.Grob, len(layout.Panels))
	for _, p := range layout.Panels {
		values := make([]interface{}, len(vars))
		for k, j := range vars {
			values[k] = p.Values[j]
		}
		strips[p.Panel] = stripGrob(lab(names, values), horizontal, style)
	}
	return strips
}
