package facet

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Names of the structural columns of a layout table.
const (
	ColPanel  = "PANEL"
	ColRow    = "ROW"
	ColCol    = "COL"
	ColScaleX = "SCALE_X"
	ColScaleY = "SCALE_Y"
)

// PanelLayout describes one panel of a faceted plot.
type PanelLayout struct {
	Panel          int // Panel is the unique id of the panel.
	Row, Col       int // Row and Col are the 1-based grid position.
	ScaleX, ScaleY int // ScaleX and ScaleY select the scale group.

	// Values are the values of the facet variables, one per Layout.Vars.
	Values []interface{}
}

// Layout is the layout table of a faceted plot: one PanelLayout per
// panel, ordered by panel id.
type Layout struct {
	// Vars are the names of the facet variables.
	Vars []string

	// Exprs are the facet expressions evaluated by MapData. Layouts
	// read from a table facet on bare columns named by Vars.
	Exprs []Expr

	Panels []PanelLayout

	// Possible lists the column names of all layers the layout was
	// computed from.
	Possible []string

	index map[string]int
}

// nullLayout is the layout of a plot without faceting.
func nullLayout() *Layout {
	return &Layout{
		Panels: []PanelLayout{{Panel: 1, Row: 1, Col: 1, ScaleX: 1, ScaleY: 1}},
	}
}

// NumPanels returns the number of panels in l.
func (l *Layout) NumPanels() int { return len(l.Panels) }

// NumScalesX returns the number of x scale groups.
func (l *Layout) NumScalesX() int {
	n := 0
	for _, p := range l.Panels {
		if p.ScaleX > n {
			n = p.ScaleX
		}
	}
	return n
}

// NumScalesY returns the number of y scale groups.
func (l *Layout) NumScalesY() int {
	n := 0
	for _, p := range l.Panels {
		if p.ScaleY > n {
			n = p.ScaleY
		}
	}
	return n
}

// NumRows returns the number of panel rows.
func (l *Layout) NumRows() int {
	n := 0
	for _, p := range l.Panels {
		if p.Row > n {
			n = p.Row
		}
	}
	return n
}

// NumCols returns the number of panel columns.
func (l *Layout) NumCols() int {
	n := 0
	for _, p := range l.Panels {
		if p.Col > n {
			n = p.Col
		}
	}
	return n
}

// Panel returns the layout of the panel with the given id.
func (l *Layout) Panel(id int) (PanelLayout, bool) {
	if id >= 1 && id <= len(l.Panels) && l.Panels[id-1].Panel == id {
		return l.Panels[id-1], true
	}
	for _, p := range l.Panels {
		if p.Panel == id {
			return p, true
		}
	}
	return PanelLayout{}, false
}

// At returns the panel at grid position (row, col).
func (l *Layout) At(row, col int) (PanelLayout, bool) {
	for _, p := range l.Panels {
		if p.Row == row && p.Col == col {
			return p, true
		}
	}
	return PanelLayout{}, false
}

// Lookup returns the id of the panel whose facet variables have the given
// values. The values must be normalized like the ones returned by
// EvalContext.Eval.
func (l *Layout) Lookup(values []interface{}) (int, bool) {
	if l.index == nil {
		l.index = make(map[string]int, len(l.Panels))
		for _, p := range l.Panels {
			l.index[key(p.Values)] = p.Panel
		}
	}
	id, ok := l.index[key(values)]
	return id, ok
}

// Validate checks that the panel ids are unique and the scale groups are
// numbered densely from 1.
func (l *Layout) Validate() error {
	if len(l.Panels) == 0 {
		return usageErrorf("layout has no panels")
	}
	seen := make(map[int]bool, len(l.Panels))
	for _, p := range l.Panels {
		if seen[p.Panel] {
			return usageErrorf("layout has duplicate panel %d", p.Panel)
		}
		seen[p.Panel] = true
		if len(p.Values) != len(l.Vars) {
			return usageErrorf("panel %d has %d values for %d facet variables", p.Panel, len(p.Values), len(l.Vars))
		}
	}
	if err := dense(l.Panels, ColScaleX, func(p PanelLayout) int { return p.ScaleX }); err != nil {
		return err
	}
	return dense(l.Panels, ColScaleY, func(p PanelLayout) int { return p.ScaleY })
}

func dense(panels []PanelLayout, name string, f func(PanelLayout) int) error {
	used := make(map[int]bool)
	max := 0
	for _, p := range panels {
		g := f(p)
		if g < 1 {
			return usageErrorf("panel %d has %s %d, must be positive", p.Panel, name, g)
		}
		used[g] = true
		if g > max {
			max = g
		}
	}
	if len(used) != max {
		return usageErrorf("%s groups are not numbered densely from 1 to %d", name, max)
	}
	return nil
}

// Table returns l as a table with the columns PANEL, ROW, COL, SCALE_X,
// SCALE_Y followed by one column per facet variable.
func (l *Layout) Table() *table.Table {
	n := len(l.Panels)
	panel, row, col := make([]int, n), make([]int, n), make([]int, n)
	sx, sy := make([]int, n), make([]int, n)
	for i, p := range l.Panels {
		panel[i], row[i], col[i], sx[i], sy[i] = p.Panel, p.Row, p.Col, p.ScaleX, p.ScaleY
	}
	b := new(table.Builder).
		Add(ColPanel, panel).Add(ColRow, row).Add(ColCol, col).
		Add(ColScaleX, sx).Add(ColScaleY, sy)
	for j, v := range l.Vars {
		vals := make([]interface{}, n)
		for i, p := range l.Panels {
			vals[i] = p.Values[j]
		}
		b.Add(v, column(vals))
	}
	return b.Done()
}

// LayoutFromTable reads a layout from a table as produced by
// Layout.Table. The columns PANEL, SCALE_X and SCALE_Y are required; a
// missing ROW or COL defaults to 1. All other columns are facet
// variables.
func LayoutFromTable(t *table.Table) (*Layout, error) {
	var missing []string
	for _, c := range []string{ColPanel, ColScaleX, ColScaleY} {
		if t.Column(c) == nil {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, usageErrorf("layout table is missing the column(s) %s", strings.Join(missing, ", "))
	}

	l := &Layout{Panels: make([]PanelLayout, t.Len())}
	structural := map[string]func(p *PanelLayout) *int{
		ColPanel:  func(p *PanelLayout) *int { return &p.Panel },
		ColRow:    func(p *PanelLayout) *int { return &p.Row },
		ColCol:    func(p *PanelLayout) *int { return &p.Col },
		ColScaleX: func(p *PanelLayout) *int { return &p.ScaleX },
		ColScaleY: func(p *PanelLayout) *int { return &p.ScaleY },
	}
	for i := range l.Panels {
		l.Panels[i].Row, l.Panels[i].Col = 1, 1
	}
	for _, name := range t.Columns() {
		field, ok := structural[name]
		if !ok {
			l.Vars = append(l.Vars, name)
			l.Exprs = append(l.Exprs, Var(name))
			continue
		}
		ints, err := intColumn(t, name)
		if err != nil {
			return nil, err
		}
		for i, v := range ints {
			*field(&l.Panels[i]) = v
		}
	}
	for j, name := range l.Vars {
		vals := toValues(t.Column(name))
		for i := range l.Panels {
			if j == 0 {
				l.Panels[i].Values = make([]interface{}, len(l.Vars))
			}
			l.Panels[i].Values[j] = vals[i]
		}
	}
	l.sortPanels()
	return l, nil
}

func intColumn(t *table.Table, name string) ([]int, error) {
	vals := toValues(t.Column(name))
	ints := make([]int, len(vals))
	for i, v := range vals {
		x, ok := v.(float64)
		if !ok || x != math.Trunc(x) {
			return nil, usageErrorf("layout column %s must hold integers, got %v in row %d", name, v, i+1)
		}
		ints[i] = int(x)
	}
	return ints, nil
}

func (l *Layout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-3s %-3s %-7s %-7s", ColPanel, ColRow, ColCol, ColScaleX, ColScaleY)
	for _, v := range l.Vars {
		fmt.Fprintf(&b, " %s", v)
	}
	b.WriteByte('\n')
	for _, p := range l.Panels {
		fmt.Fprintf(&b, "%-5d %-3d %-3d %-7d %-7d", p.Panel, p.Row, p.Col, p.ScaleX, p.ScaleY)
		for _, v := range p.Values {
			fmt.Fprintf(&b, " %s", formatValue(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// layoutFromCombos builds a layout with one panel per row of c, in the
// order of c. The caller fills in the positions and calls sortPanels.
func layoutFromCombos(c *combos, exprs []Expr, possible map[string]bool, ids []int) *Layout {
	l := &Layout{Vars: c.vars, Exprs: exprs, Panels: make([]PanelLayout, len(c.rows))}
	for i, r := range c.rows {
		l.Panels[i] = PanelLayout{Panel: ids[i], Values: r}
	}
	for name := range possible {
		l.Possible = append(l.Possible, name)
	}
	sort.Strings(l.Possible)
	return l
}

func (l *Layout) sortPanels() {
	sort.SliceStable(l.Panels, func(i, j int) bool { return l.Panels[i].Panel < l.Panels[j].Panel })
	l.index = nil
}
