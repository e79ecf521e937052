package facet

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2/gtable"
	"gonum.org/v1/plot/vg"
)

// Grid lays out panels in a matrix: the row variables select the panel
// row and the column variables the panel column.
type Grid struct {
	facetBase

	// Spec has two dimensions, rows and columns.
	Spec *Spec

	// AsTable puts the first row level at the top. Otherwise it is at
	// the bottom.
	AsTable bool

	// Drop omits levels which do not appear in the data.
	Drop bool

	// Scales is "fixed" (default), "free", "free_x" or "free_y". Free x
	// scales are shared by the panels of a column, free y scales by the
	// panels of a row.
	Scales string

	// Switch moves the column strips to the bottom ("x"), the row
	// strips to the left ("y") or both ("both").
	Switch string

	Labeller Labeller
}

// NewGrid returns a Grid facet. rows and cols are anything accepted by
// ParseSpec; if cols is nil, rows may be a formula "rows ~ cols".
func NewGrid(rows, cols interface{}) (*Grid, error) {
	s, err := gridSpec(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Grid{Spec: s, AsTable: true, Drop: true}, nil
}

func (g *Grid) dims() (rows, cols []Expr) {
	if g.Spec == nil {
		return nil, nil
	}
	switch len(g.Spec.Dims) {
	case 0:
		return nil, nil
	case 1:
		return g.Spec.Dims[0], nil
	}
	return g.Spec.Dims[0], g.Spec.Dims[1]
}

// ComputeLayout implements Facet.
func (g *Grid) ComputeLayout(layers []*table.Table) (*Layout, error) {
	rowExprs, colExprs := g.dims()
	possible := possibleColumns(layers)
	if len(rowExprs)+len(colExprs) == 0 {
		l := nullLayout()
		l.Possible = columnNames(layers)
		return l, nil
	}
	freeX, freeY, err := parseScales(g.Scales)
	if err != nil {
		return nil, err
	}

	rows, err := combineVars(layers, rowExprs, possible, g.Drop)
	if err != nil {
		return nil, err
	}
	cols, err := combineVars(layers, colExprs, possible, g.Drop)
	if err != nil {
		return nil, err
	}
	base := crossJoin(rows, cols)

	nr := len(rowExprs)
	reversed := make([]bool, len(base.vars))
	if !g.AsTable {
		for i := 0; i < nr; i++ {
			reversed[i] = true
		}
	}
	lv := base.levelIndex(reversed)
	all := base.allColumns()
	ids := base.rank(all, lv)
	rowIDs, colIDs := ones(base.len()), ones(base.len())
	if nr > 0 {
		rowIDs = base.rank(all[:nr], lv)
	}
	if nr < len(all) {
		colIDs = base.rank(all[nr:], lv)
	}

	exprs := append(append([]Expr(nil), rowExprs...), colExprs...)
	l := layoutFromCombos(base, exprs, possible, ids)
	for i := range l.Panels {
		p := &l.Panels[i]
		p.Row, p.Col = rowIDs[i], colIDs[i]
		p.ScaleX, p.ScaleY = 1, 1
		if freeX {
			p.ScaleX = p.Col
		}
		if freeY {
			p.ScaleY = p.Row
		}
	}
	l.sortPanels()
	logger.Debug("grid layout", "panels", len(l.Panels), "rows", l.NumRows(), "cols", l.NumCols())
	return l, nil
}

func ones(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

// DrawPanels implements Facet. The panels form a matrix separated by the
// panel padding. Column strips run along the top, row strips along the
// right side; the axes are placed outside the strips, one per panel
// column and row.
func (g *Grid) DrawPanels(panels []gtable.Grob, layout *Layout, scales *ScaleSet, coord Coord, style *Style) (*gtable.Table, error) {
	if len(panels) != len(layout.Panels) {
		return nil, fmt.Errorf("facet: got %d panel grobs for %d panels", len(panels), len(layout.Panels))
	}
	var switchX, switchY bool
	switch g.Switch {
	case "":
	case "x":
		switchX = true
	case "y":
		switchY = true
	case "both":
		switchX, switchY = true, true
	default:
		return nil, usageErrorf("switch must be x, y or both, not %q", g.Switch)
	}

	nrow, ncol := layout.NumRows(), layout.NumCols()
	heights := gridTracks(nrow, style.Panel.PadY)
	widths := gridTracks(ncol, style.Panel.PadX)
	t := gtable.New(widths, heights)

	// Tracks: axis, strip, panels with spacing, strip, axis.
	const (
		axisBefore  = 0
		stripBefore = 1
	)
	panelTrack := func(i int) int { return 2 + 2*(i-1) }
	stripAfter := func(n int) int { return panelTrack(n) + 1 }
	axisAfter := func(n int) int { return panelTrack(n) + 2 }

	for i, p := range layout.Panels {
		r, c := panelTrack(p.Row), panelTrack(p.Col)
		t.Add(panels[i], fmt.Sprintf("panel-%d-%d", p.Row, p.Col), r, c, r, c)
	}

	nr := 0
	if rowExprs, _ := g.dims(); len(layout.Vars) > 0 {
		nr = len(rowExprs)
	}
	rowVars, colVars := seq(0, nr), seq(nr, len(layout.Vars))
	colStrips := labelStrips(layout, colVars, g.Labeller, true, style)
	rowStrips := labelStrips(layout, rowVars, g.Labeller, false, style)

	for col := 1; col <= ncol; col++ {
		p, ok := firstPanel(layout, func(p PanelLayout) bool { return p.Col == col })
		if !ok {
			continue
		}
		c := panelTrack(col)
		x, _ := scales.PanelScales(p)
		top, bottom := coord.RenderAxisH(x, style)
		t.Add(top, fmt.Sprintf("axis-t-%d", col), axisBefore, c, axisBefore, c)
		t.Add(bottom, fmt.Sprintf("axis-b-%d", col), axisAfter(nrow), c, axisAfter(nrow), c)
		if len(colVars) > 0 {
			row, name := stripBefore, "strip-t"
			if switchX {
				row, name = stripAfter(nrow), "strip-b"
			}
			t.Add(colStrips[p.Panel], fmt.Sprintf("%s-%d", name, col), row, c, row, c)
		}
	}
	for row := 1; row <= nrow; row++ {
		p, ok := firstPanel(layout, func(p PanelLayout) bool { return p.Row == row })
		if !ok {
			continue
		}
		r := panelTrack(row)
		_, y := scales.PanelScales(p)
		left, right := coord.RenderAxisV(y, style)
		t.Add(left, fmt.Sprintf("axis-l-%d", row), r, axisBefore, r, axisBefore)
		t.Add(right, fmt.Sprintf("axis-r-%d", row), r, axisAfter(ncol), r, axisAfter(ncol))
		if len(rowVars) > 0 {
			col, name := stripAfter(ncol), "strip-r"
			if switchY {
				col, name = stripBefore, "strip-l"
			}
			t.Add(rowStrips[p.Panel], fmt.Sprintf("%s-%d", name, row), r, col, r, col)
		}
	}

	for _, c := range t.Cells {
		w, h := orZero(c.Grob).Size()
		if c.Top == c.Bottom {
			grow(t.Heights, c.Top, h)
		}
		if c.Left == c.Right {
			grow(t.Widths, c.Left, w)
		}
	}
	return t, nil
}

// gridTracks returns axis and strip tracks on both ends and n Null panel
// tracks separated by spacing.
func gridTracks(n int, spacing vg.Length) []gtable.Unit {
	units := []gtable.Unit{gtable.Fixed(0), gtable.Fixed(0)}
	for i := 0; i < n; i++ {
		if i > 0 {
			units = append(units, gtable.Fixed(spacing))
		}
		units = append(units, gtable.Null)
	}
	return append(units, gtable.Fixed(0), gtable.Fixed(0))
}

func firstPanel(layout *Layout, match func(PanelLayout) bool) (PanelLayout, bool) {
	for _, p := range layout.Panels {
		if match(p) {
			return p, true
		}
	}
	return PanelLayout{}, false
}

func seq(from, to int) []int {
	var s []int
	for i := from; i < to; i++ {
		s = append(s, i)
	}
	return s
}
