package facet

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/vdobler/facet/v2/gtable"
	"gonum.org/v1/plot/vg"
)

// Wrap lays out the panels of a single facet dimension in a
// rectangle, filling it row by row (or column by column).
type Wrap struct {
	facetBase

	Spec *Spec

	// NCol and NRow fix the number of columns and rows. If zero they
	// are chosen to make the layout roughly square.
	NCol, NRow int

	// Dir is "h" to fill the rows first (default) or "v" to fill the
	// columns first.
	Dir string

	// AsTable places the first panel top left. Otherwise it is placed
	// bottom left.
	AsTable bool

	// Drop omits combinations of facet values which do not appear in
	// the data.
	Drop bool

	// Scales is "fixed" (default), "free", "free_x" or "free_y".
	Scales string

	// StripPosition is "top" (default), "bottom", "left" or "right".
	StripPosition string

	Labeller Labeller
}

// NewWrap returns a Wrap facet on the variables described by facets
// which may be anything accepted by ParseSpec. A formula contributes the
// variables of both sides.
func NewWrap(facets interface{}) (*Wrap, error) {
	s, err := ParseSpec(facets)
	if err != nil {
		return nil, err
	}
	return &Wrap{Spec: s.Flatten(), AsTable: true, Drop: true}, nil
}

func (w *Wrap) exprs() []Expr {
	if w.Spec == nil {
		return nil
	}
	return w.Spec.Flatten().Dims[0]
}

// ComputeLayout implements Facet.
func (w *Wrap) ComputeLayout(layers []*table.Table) (*Layout, error) {
	exprs := w.exprs()
	possible := possibleColumns(layers)
	if len(exprs) == 0 {
		l := nullLayout()
		l.Possible = columnNames(layers)
		return l, nil
	}
	freeX, freeY, err := parseScales(w.Scales)
	if err != nil {
		return nil, err
	}
	vertical, err := parseDir(w.Dir)
	if err != nil {
		return nil, err
	}

	base, err := combineVars(layers, exprs, possible, w.Drop)
	if err != nil {
		return nil, err
	}
	ids := base.rank(base.allColumns(), base.levelIndex(nil))
	n := base.len()

	nrow, ncol := w.NRow, w.NCol
	if vertical {
		nrow, ncol = ncol, nrow
	}
	nrow, ncol, err = wrapDims(n, nrow, ncol)
	if err != nil {
		return nil, err
	}

	l := layoutFromCombos(base, exprs, possible, ids)
	for i := range l.Panels {
		p := &l.Panels[i]
		id := p.Panel
		if w.AsTable {
			p.Row = (id-1)/ncol + 1
		} else {
			p.Row = nrow - (id-1)/ncol
		}
		p.Col = (id-1)%ncol + 1
		if vertical {
			p.Row, p.Col = p.Col, p.Row
		}
		p.ScaleX, p.ScaleY = 1, 1
		if freeX {
			p.ScaleX = id
		}
		if freeY {
			p.ScaleY = id
		}
	}
	l.sortPanels()
	logger.Debug("wrap layout", "panels", n, "rows", l.NumRows(), "cols", l.NumCols())
	return l, nil
}

// wrapDims determines the number of rows and columns needed for n
// panels. Zero nrow or ncol are computed.
func wrapDims(n, nrow, ncol int) (int, int, error) {
	switch {
	case nrow <= 0 && ncol <= 0:
		// Like R's n2mfrow but wider than high.
		switch {
		case n <= 3:
			nrow, ncol = 1, n
		case n <= 6:
			nrow, ncol = 2, (n+1)/2
		case n <= 12:
			nrow, ncol = 3, (n+2)/3
		default:
			ncol = int(math.Ceil(math.Sqrt(float64(n))))
			nrow = int(math.Ceil(float64(n) / float64(ncol)))
		}
	case ncol <= 0:
		ncol = (n + nrow - 1) / nrow
	case nrow <= 0:
		nrow = (n + ncol - 1) / ncol
	}
	if nrow*ncol < n {
		return 0, 0, usageErrorf("need %d panels, but together NRow and NCol only provide %d", n, nrow*ncol)
	}
	return nrow, ncol, nil
}

func parseScales(scales string) (freeX, freeY bool, err error) {
	switch scales {
	case "", "fixed":
		return false, false, nil
	case "free":
		return true, true, nil
	case "free_x":
		return true, false, nil
	case "free_y":
		return false, true, nil
	}
	return false, false, usageErrorf("scales must be fixed, free, free_x or free_y, not %q", scales)
}

func parseDir(dir string) (vertical bool, err error) {
	switch dir {
	case "", "h":
		return false, nil
	case "v":
		return true, nil
	}
	return false, usageErrorf("dir must be h or v, not %q", dir)
}

// Offsets of the tracks inside the block of one wrapped panel. Blocks
// are separated by a spacing track.
const (
	blockAxisBefore = iota
	blockStripBefore
	blockPanel
	blockStripAfter
	blockAxisAfter
	blockSize
)

// DrawPanels implements Facet. Every panel is the center of a block of
// five rows
//
//	axis-t, strip-t, panel, strip-b, axis-b
//
// and five columns
//
//	axis-l, strip-l, panel, strip-r, axis-r
//
// Unless the scales are free, axes are only drawn on sides without a
// neighbouring panel.
func (w *Wrap) DrawPanels(panels []gtable.Grob, layout *Layout, scales *ScaleSet, coord Coord, style *Style) (*gtable.Table, error) {
	if len(panels) != len(layout.Panels) {
		return nil, fmt.Errorf("facet: got %d panel grobs for %d panels", len(panels), len(layout.Panels))
	}
	freeX, freeY, err := parseScales(w.Scales)
	if err != nil {
		return nil, err
	}
	stripRow, stripCol := blockStripBefore, blockPanel
	switch w.StripPosition {
	case "", "top":
	case "bottom":
		stripRow = blockStripAfter
	case "left":
		stripRow, stripCol = blockPanel, blockStripBefore
	case "right":
		stripRow, stripCol = blockPanel, blockStripAfter
	default:
		return nil, usageErrorf("strip position must be top, bottom, left or right, not %q", w.StripPosition)
	}
	// Without facet variables the single panel has no strip.
	var strips map[int]gtable.Grob
	if len(layout.Vars) > 0 {
		vars := make([]int, len(layout.Vars))
		for i := range vars {
			vars[i] = i
		}
		strips = labelStrips(layout, vars, w.Labeller, stripRow != blockPanel, style)
	}

	nrow, ncol := layout.NumRows(), layout.NumCols()
	heights := blockTracks(nrow, style.Panel.PadY)
	widths := blockTracks(ncol, style.Panel.PadX)

	type cell struct {
		name     string
		g        gtable.Grob
		row, col int
	}
	var cells []cell
	for i, p := range layout.Panels {
		r0, c0 := (p.Row-1)*(blockSize+1), (p.Col-1)*(blockSize+1)
		x, y := scales.PanelScales(p)
		top, bottom := coord.RenderAxisH(x, style)
		left, right := coord.RenderAxisV(y, style)
		if !freeX {
			if _, ok := layout.At(p.Row-1, p.Col); ok {
				top = gtable.Zero
			}
			if _, ok := layout.At(p.Row+1, p.Col); ok {
				bottom = gtable.Zero
			}
		}
		if !freeY {
			if _, ok := layout.At(p.Row, p.Col-1); ok {
				left = gtable.Zero
			}
			if _, ok := layout.At(p.Row, p.Col+1); ok {
				right = gtable.Zero
			}
		}

		suffix := fmt.Sprintf("-%d-%d", p.Row, p.Col)
		stripName := map[[2]int]string{
			{blockStripBefore, blockPanel}: "strip-t",
			{blockStripAfter, blockPanel}:  "strip-b",
			{blockPanel, blockStripBefore}: "strip-l",
			{blockPanel, blockStripAfter}:  "strip-r",
		}[[2]int{stripRow, stripCol}]
		for _, c := range []cell{
			{"panel", panels[i], blockPanel, blockPanel},
			{"axis-t", top, blockAxisBefore, blockPanel},
			{"axis-b", bottom, blockAxisAfter, blockPanel},
			{"axis-l", left, blockPanel, blockAxisBefore},
			{"axis-r", right, blockPanel, blockAxisAfter},
			{stripName, strips[p.Panel], stripRow, stripCol},
		} {
			c.name += suffix
			c.row += r0
			c.col += c0
			gw, gh := orZero(c.g).Size()
			grow(heights, c.row, gh)
			grow(widths, c.col, gw)
			cells = append(cells, c)
		}
	}

	t := gtable.New(widths, heights)
	for _, c := range cells {
		t.Add(c.g, c.name, c.row, c.col, c.row, c.col)
	}
	return t, nil
}

// blockTracks returns the tracks of n blocks: a Null panel track in the
// middle of each block and the blocks separated by spacing.
func blockTracks(n int, spacing vg.Length) []gtable.Unit {
	if n == 0 {
		return nil
	}
	units := make([]gtable.Unit, n*(blockSize+1)-1)
	for i := range units {
		switch i % (blockSize + 1) {
		case blockPanel:
			units[i] = gtable.Null
		case blockSize:
			units[i] = gtable.Fixed(spacing)
		default:
			units[i] = gtable.Fixed(0)
		}
	}
	return units
}

// grow enlarges the fixed track i to at least l.
func grow(units []gtable.Unit, i int, l vg.Length) {
	if u := units[i]; !u.Flexible && l > u.Length {
		units[i] = gtable.Fixed(l)
	}
}

func orZero(g gtable.Grob) gtable.Grob {
	if g == nil {
		return gtable.Zero
	}
	return g
}
