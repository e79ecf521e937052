package gtable

import "gonum.org/v1/plot/vg"

// PanelPrefix is the name prefix of all cells holding a panel.
const PanelPrefix = "panel"

// Extent is a rectangular range of table rows and columns, 0-based and
// inclusive.
type Extent struct {
	Top, Right, Bottom, Left int
}

// Span is a range of rows (Top/Bottom) or columns (Left/Right), 0-based
// and inclusive.
type Span struct {
	From, To int
}

// FindPanelRegion returns the smallest extent covering all panel cells
// of t. The second return value is false if t has no panel cell.
func FindPanelRegion(t *Table) (Extent, bool) {
	panels := t.CellsWithPrefix(PanelPrefix)
	if len(panels) == 0 {
		return Extent{}, false
	}
	e := Extent{
		Top: panels[0].Top, Right: panels[0].Right,
		Bottom: panels[0].Bottom, Left: panels[0].Left,
	}
	for _, c := range panels[1:] {
		if c.Top < e.Top {
			e.Top = c.Top
		}
		if c.Right > e.Right {
			e.Right = c.Right
		}
		if c.Bottom > e.Bottom {
			e.Bottom = c.Bottom
		}
		if c.Left < e.Left {
			e.Left = c.Left
		}
	}
	return e, true
}

// PanelCols returns the distinct column spans of the panel cells in t in
// the order the cells were added.
func PanelCols(t *Table) []Span {
	return panelSpans(t, func(c *Cell) Span { return Span{c.Left, c.Right} })
}

// PanelRows returns the distinct row spans of the panel cells in t in
// the order the cells were added.
func PanelRows(t *Table) []Span {
	return panelSpans(t, func(c *Cell) Span { return Span{c.Top, c.Bottom} })
}

func panelSpans(t *Table, span func(*Cell) Span) []Span {
	var spans []Span
	seen := make(map[Span]bool)
	for _, c := range t.CellsWithPrefix(PanelPrefix) {
		s := span(c)
		if seen[s] {
			continue
		}
		seen[s] = true
		spans = append(spans, s)
	}
	return spans
}

// Dim selects the horizontal or vertical extent of a grob.
type Dim int

const (
	Width Dim = iota
	Height
)

// MaxExtent returns the largest width or height of all grobs.
// Nil grobs count as zero.
func MaxExtent(grobs []Grob, d Dim) vg.Length {
	var max vg.Length
	for _, g := range grobs {
		w, h := orZero(g).Size()
		x := w
		if d == Height {
			x = h
		}
		if x > max {
			max = x
		}
	}
	return max
}

// MaxExtentUnit is like MaxExtent but returns a fixed Unit suitable as
// a row height or column width.
func MaxExtentUnit(grobs []Grob, d Dim) Unit {
	return Fixed(MaxExtent(grobs, d))
}
