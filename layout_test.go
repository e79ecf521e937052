package facet

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// mpg is a tiny data set: class a, b, c and drive x, y.
var mpg = new(table.Builder).
	Add("cls", []string{"a", "b", "c", "a"}).
	Add("drv", []string{"x", "x", "y", "y"}).
	Add("displ", []float64{1.8, 2.0, 4.2, 5.7}).
	Add("hwy", []int{29, 31, 23, 17}).
	Done()

// positions returns panel, row, col, scale x and scale y of every panel.
func positions(l *Layout) [][5]int {
	pos := make([][5]int, len(l.Panels))
	for i, p := range l.Panels {
		pos[i] = [5]int{p.Panel, p.Row, p.Col, p.ScaleX, p.ScaleY}
	}
	return pos
}

func values(l *Layout) []string {
	vals := make([]string, len(l.Panels))
	for i, p := range l.Panels {
		s := make([]string, len(p.Values))
		for j, v := range p.Values {
			s[j] = formatValue(v)
		}
		vals[i] = strings.Join(s, ",")
	}
	return vals
}

func newWrap(t *testing.T, spec interface{}) *Wrap {
	t.Helper()
	w, err := NewWrap(spec)
	if err != nil {
		t.Fatalf("NewWrap(%v) failed: %v", spec, err)
	}
	return w
}

func TestWrapLayout(t *testing.T) {
	tests := []struct {
		name   string
		modify func(w *Wrap)
		spec   string
		pos    [][5]int
		vals   []string
	}{
		{
			name: "single variable",
			spec: "cls",
			pos:  [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}, {3, 1, 3, 1, 1}},
			vals: []string{"a", "b", "c"},
		},
		{
			name: "two variables",
			spec: "cls; drv",
			pos:  [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}, {3, 2, 1, 1, 1}, {4, 2, 2, 1, 1}},
			vals: []string{"a,x", "a,y", "b,x", "c,y"},
		},
		{
			name:   "keep unused combinations",
			spec:   "cls; drv",
			modify: func(w *Wrap) { w.Drop = false },
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}, {3, 1, 3, 1, 1},
				{4, 2, 1, 1, 1}, {5, 2, 2, 1, 1}, {6, 2, 3, 1, 1}},
			vals: []string{"a,x", "a,y", "b,x", "b,y", "c,x", "c,y"},
		},
		{
			name:   "bottom up",
			spec:   "cls",
			modify: func(w *Wrap) { w.NCol, w.AsTable = 2, false },
			pos:    [][5]int{{1, 2, 1, 1, 1}, {2, 2, 2, 1, 1}, {3, 1, 1, 1, 1}},
			vals:   []string{"a", "b", "c"},
		},
		{
			name:   "vertical",
			spec:   "cls",
			modify: func(w *Wrap) { w.Dir = "v" },
			pos:    [][5]int{{1, 1, 1, 1, 1}, {2, 2, 1, 1, 1}, {3, 3, 1, 1, 1}},
			vals:   []string{"a", "b", "c"},
		},
		{
			name:   "vertical with fixed rows",
			spec:   "cls; drv",
			modify: func(w *Wrap) { w.Dir, w.NRow = "v", 3 },
			pos:    [][5]int{{1, 1, 1, 1, 1}, {2, 2, 1, 1, 1}, {3, 3, 1, 1, 1}, {4, 1, 2, 1, 1}},
			vals:   []string{"a,x", "a,y", "b,x", "c,y"},
		},
		{
			name:   "free scales",
			spec:   "cls",
			modify: func(w *Wrap) { w.Scales = "free" },
			pos:    [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 2, 2}, {3, 1, 3, 3, 3}},
			vals:   []string{"a", "b", "c"},
		},
		{
			name:   "free x",
			spec:   "cls",
			modify: func(w *Wrap) { w.Scales = "free_x" },
			pos:    [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 2, 1}, {3, 1, 3, 3, 1}},
			vals:   []string{"a", "b", "c"},
		},
		{
			name: "computed variable",
			spec: "displ > 3",
			pos:  [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}},
			vals: []string{"false", "true"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWrap(t, tc.spec)
			if tc.modify != nil {
				tc.modify(w)
			}
			l, err := w.ComputeLayout([]*table.Table{mpg})
			if err != nil {
				t.Fatalf("ComputeLayout failed: %v", err)
			}
			if err := l.Validate(); err != nil {
				t.Errorf("invalid layout: %v", err)
			}
			if got := positions(l); !reflect.DeepEqual(got, tc.pos) {
				t.Errorf("got positions %v, want %v", got, tc.pos)
			}
			if got := values(l); !reflect.DeepEqual(got, tc.vals) {
				t.Errorf("got values %q, want %q", got, tc.vals)
			}
		})
	}
}

func TestWrapNoVariables(t *testing.T) {
	l, err := newWrap(t, nil).ComputeLayout([]*table.Table{mpg})
	if err != nil {
		t.Fatal(err)
	}
	if got := positions(l); !reflect.DeepEqual(got, [][5]int{{1, 1, 1, 1, 1}}) {
		t.Errorf("got %v", got)
	}
	if !reflect.DeepEqual(l.Possible, []string{"cls", "drv", "displ", "hwy"}) {
		t.Errorf("Possible = %q", l.Possible)
	}
}

// Integers beyond the float64 mantissa keep distinct panels.
func TestWrapLargeIntegers(t *testing.T) {
	data := new(table.Builder).
		Add("id", []int64{1 << 53, 1<<53 + 1, 1 << 53}).
		Add("u", []uint64{1<<64 - 2, 1<<64 - 1, 1<<64 - 2}).
		Done()
	tests := []struct {
		spec string
		vals []string
	}{
		{"id", []string{"9007199254740992", "9007199254740993"}},
		{"u", []string{"18446744073709551614", "18446744073709551615"}},
	}
	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			l, err := newWrap(t, tc.spec).ComputeLayout([]*table.Table{data})
			if err != nil {
				t.Fatal(err)
			}
			if got := values(l); !reflect.DeepEqual(got, tc.vals) {
				t.Errorf("got values %q, want %q", got, tc.vals)
			}
			got, err := MapData(data, l)
			if err != nil {
				t.Fatal(err)
			}
			if want := []int{1, 2, 1}; !reflect.DeepEqual(panelColumn(t, got), want) {
				t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
			}
		})
	}
}

func TestWrapErrors(t *testing.T) {
	empty := new(table.Builder).Add("cls", []string{}).Done()
	tests := []struct {
		name   string
		spec   string
		modify func(w *Wrap)
		data   *table.Table
		check  func(err error) bool
	}{
		{"missing variable", "nope", nil, mpg, func(err error) bool {
			var e *IncompleteFacetingError
			return errors.As(err, &e)
		}},
		{"no values", "cls", nil, empty, func(err error) bool {
			var e *EmptyFacetingError
			return errors.As(err, &e)
		}},
		{"too few cells", "cls", func(w *Wrap) { w.NRow, w.NCol = 1, 2 }, mpg, isUsageError},
		{"bad scales", "cls", func(w *Wrap) { w.Scales = "loose" }, mpg, isUsageError},
		{"bad dir", "cls", func(w *Wrap) { w.Dir = "d" }, mpg, isUsageError},
		{"bad expression", "cls + 1", nil, mpg, func(err error) bool { return err != nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newWrap(t, tc.spec)
			if tc.modify != nil {
				tc.modify(w)
			}
			_, err := w.ComputeLayout([]*table.Table{tc.data})
			if !tc.check(err) {
				t.Errorf("got error %v (%T)", err, err)
			}
		})
	}
}

func isUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func TestIncompleteFacetingMessage(t *testing.T) {
	other := new(table.Builder).Add("y", []int{1}).Done()
	_, err := newWrap(t, "nope").ComputeLayout([]*table.Table{mpg, other})
	want := "facet: at least one layer must contain all faceting variables: `nope`\n" +
		"* Plot is missing `nope`\n" +
		"* Layer 1 is missing `nope`"
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
}

var wrapDimsTests = []struct {
	n, nrow, ncol int
	wantR, wantC  int
}{
	{1, 0, 0, 1, 1},
	{3, 0, 0, 1, 3},
	{4, 0, 0, 2, 2},
	{5, 0, 0, 2, 3},
	{7, 0, 0, 3, 3},
	{12, 0, 0, 3, 4},
	{13, 0, 0, 4, 4},
	{20, 0, 0, 4, 5},
	{5, 0, 2, 3, 2},
	{5, 2, 0, 2, 3},
	{5, 3, 3, 3, 3},
}

func TestWrapDims(t *testing.T) {
	for i, tc := range wrapDimsTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			r, c, err := wrapDims(tc.n, tc.nrow, tc.ncol)
			if err != nil {
				t.Fatalf("wrapDims(%d, %d, %d) failed: %v", tc.n, tc.nrow, tc.ncol, err)
			}
			if r != tc.wantR || c != tc.wantC {
				t.Errorf("wrapDims(%d, %d, %d) = %d x %d, want %d x %d",
					tc.n, tc.nrow, tc.ncol, r, c, tc.wantR, tc.wantC)
			}
		})
	}
}

func newGrid(t *testing.T, rows, cols interface{}) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("NewGrid(%v, %v) failed: %v", rows, cols, err)
	}
	return g
}

func TestGridLayout(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols interface{}
		modify     func(g *Grid)
		pos        [][5]int
		vals       []string
	}{
		{
			name: "rows and cols",
			rows: "drv", cols: "cls",
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}, {3, 1, 3, 1, 1},
				{4, 2, 1, 1, 1}, {5, 2, 2, 1, 1}, {6, 2, 3, 1, 1}},
			vals: []string{"x,a", "x,b", "x,c", "y,a", "y,b", "y,c"},
		},
		{
			name:   "free scales",
			rows:   "drv ~ cls",
			modify: func(g *Grid) { g.Scales = "free" },
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 1, 2, 2, 1}, {3, 1, 3, 3, 1},
				{4, 2, 1, 1, 2}, {5, 2, 2, 2, 2}, {6, 2, 3, 3, 2}},
			vals: []string{"x,a", "x,b", "x,c", "y,a", "y,b", "y,c"},
		},
		{
			name: "bottom up",
			rows: "drv", cols: "cls",
			modify: func(g *Grid) { g.AsTable = false },
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}, {3, 1, 3, 1, 1},
				{4, 2, 1, 1, 1}, {5, 2, 2, 1, 1}, {6, 2, 3, 1, 1}},
			vals: []string{"y,a", "y,b", "y,c", "x,a", "x,b", "x,c"},
		},
		{
			name: "cols only",
			rows: ". ~ drv",
			pos:  [][5]int{{1, 1, 1, 1, 1}, {2, 1, 2, 1, 1}},
			vals: []string{"x", "y"},
		},
		{
			name: "rows only",
			rows: "drv", cols: nil,
			modify: func(g *Grid) { g.Scales = "free_y" },
			pos:    [][5]int{{1, 1, 1, 1, 1}, {2, 2, 1, 1, 2}},
			vals:   []string{"x", "y"},
		},
		{
			name: "two row variables",
			rows: "drv + cls", cols: nil,
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 2, 1, 1, 1}, {3, 3, 1, 1, 1}, {4, 4, 1, 1, 1}},
			vals: []string{"x,a", "x,b", "y,a", "y,c"},
		},
		{
			name: "two row variables keep unused",
			rows: "drv + cls", cols: nil,
			modify: func(g *Grid) { g.Drop = false },
			pos: [][5]int{
				{1, 1, 1, 1, 1}, {2, 2, 1, 1, 1}, {3, 3, 1, 1, 1},
				{4, 4, 1, 1, 1}, {5, 5, 1, 1, 1}, {6, 6, 1, 1, 1}},
			vals: []string{"x,a", "x,b", "x,c", "y,a", "y,b", "y,c"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(t, tc.rows, tc.cols)
			if tc.modify != nil {
				tc.modify(g)
			}
			l, err := g.ComputeLayout([]*table.Table{mpg})
			if err != nil {
				t.Fatalf("ComputeLayout failed: %v", err)
			}
			if err := l.Validate(); err != nil {
				t.Errorf("invalid layout: %v", err)
			}
			if got := positions(l); !reflect.DeepEqual(got, tc.pos) {
				t.Errorf("got positions %v, want %v", got, tc.pos)
			}
			if got := values(l); !reflect.DeepEqual(got, tc.vals) {
				t.Errorf("got values %q, want %q", got, tc.vals)
			}
		})
	}
}

// Layers lacking some facet variables are crossed with the values of the
// other variables.
func TestCombinePartialLayer(t *testing.T) {
	partial := new(table.Builder).Add("drv", []string{"z"}).Done()
	none := new(table.Builder).Add("y", []float64{1}).Done()

	l, err := newWrap(t, "cls; drv").ComputeLayout([]*table.Table{mpg, partial, none})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a,x", "a,y", "a,z", "b,x", "b,z", "c,y", "c,z"}
	if got := values(l); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Layout properties which hold for every facet and data set.
func TestLayoutProperties(t *testing.T) {
	facets := map[string]Facet{
		"null":      Null{},
		"wrap":      newWrap(t, "cls; drv"),
		"wrap free": &Wrap{Spec: MustParseSpec("cls"), Scales: "free", Drop: true},
		"grid":      newGrid(t, "drv", "cls"),
		"grid free": &Grid{Spec: MustParseSpec("drv ~ cls"), Scales: "free"},
	}
	for name, f := range facets {
		t.Run(name, func(t *testing.T) {
			l, err := f.ComputeLayout([]*table.Table{mpg})
			if err != nil {
				t.Fatal(err)
			}
			cells := make(map[[2]int]bool)
			for i, p := range l.Panels {
				if p.Panel != i+1 {
					t.Errorf("panel %d has id %d", i, p.Panel)
				}
				if p.Row < 1 || p.Row > l.NumRows() || p.Col < 1 || p.Col > l.NumCols() {
					t.Errorf("panel %d at %d,%d outside %dx%d", p.Panel, p.Row, p.Col, l.NumRows(), l.NumCols())
				}
				if cells[[2]int{p.Row, p.Col}] {
					t.Errorf("two panels at %d,%d", p.Row, p.Col)
				}
				cells[[2]int{p.Row, p.Col}] = true
				if id, ok := l.Lookup(p.Values); !ok || id != p.Panel {
					t.Errorf("Lookup(%v) = %d, %t, want %d", p.Values, id, ok, p.Panel)
				}
			}
			if err := l.Validate(); err != nil {
				t.Error(err)
			}

			// The layout does not depend on the row order of the data.
			rev := reverseRows(mpg)
			l2, err := f.ComputeLayout([]*table.Table{rev})
			if err != nil {
				t.Fatal(err)
			}
			if l.NumPanels() != l2.NumPanels() || l.NumRows() != l2.NumRows() || l.NumCols() != l2.NumCols() {
				t.Errorf("reversed data gives %d panels in %dx%d, want %d in %dx%d",
					l2.NumPanels(), l2.NumRows(), l2.NumCols(), l.NumPanels(), l.NumRows(), l.NumCols())
			}
		})
	}
}

func reverseRows(t *table.Table) *table.Table {
	n := t.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = n - 1 - i
	}
	b := new(table.Builder)
	for _, c := range t.Columns() {
		b.Add(c, slice.Select(t.Column(c), idx))
	}
	return b.Done()
}

func TestLayoutTableRoundTrip(t *testing.T) {
	w := newWrap(t, "cls; drv")
	w.Scales = "free_y"
	l, err := w.ComputeLayout([]*table.Table{mpg})
	if err != nil {
		t.Fatal(err)
	}
	tab := l.Table()
	if got, want := tab.Columns(), []string{"PANEL", "ROW", "COL", "SCALE_X", "SCALE_Y", "cls", "drv"}; !reflect.DeepEqual(got, want) {
		t.Errorf("columns %q, want %q", got, want)
	}
	back, err := LayoutFromTable(tab)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Panels, l.Panels) {
		t.Errorf("round trip changed panels:\n%s\nwant\n%s", back, l)
	}
	if !reflect.DeepEqual(back.Vars, l.Vars) {
		t.Errorf("round trip changed vars %q to %q", l.Vars, back.Vars)
	}
}

func TestLayoutFromTableErrors(t *testing.T) {
	noScales := new(table.Builder).Add("PANEL", []int{1}).Done()
	if _, err := LayoutFromTable(noScales); !isUsageError(err) {
		t.Errorf("missing columns: got %v", err)
	}
	fractional := new(table.Builder).
		Add("PANEL", []float64{1.5}).Add("SCALE_X", []int{1}).Add("SCALE_Y", []int{1}).
		Done()
	if _, err := LayoutFromTable(fractional); !isUsageError(err) {
		t.Errorf("fractional panel: got %v", err)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		panels []PanelLayout
		ok     bool
	}{
		{"ok", []PanelLayout{{Panel: 1, ScaleX: 1, ScaleY: 1}, {Panel: 2, ScaleX: 2, ScaleY: 1}}, true},
		{"empty", nil, false},
		{"duplicate", []PanelLayout{{Panel: 1, ScaleX: 1, ScaleY: 1}, {Panel: 1, ScaleX: 1, ScaleY: 1}}, false},
		{"gap", []PanelLayout{{Panel: 1, ScaleX: 1, ScaleY: 1}, {Panel: 2, ScaleX: 3, ScaleY: 1}}, false},
		{"zero", []PanelLayout{{Panel: 1, ScaleX: 1, ScaleY: 0}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := &Layout{Panels: tc.panels}
			if err := l.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}
