package gtable

import (
	"strconv"
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// box is a grob of fixed size which records where it was drawn.
type box struct {
	w, h  vg.Length
	drawn *vg.Rectangle
}

func (b box) Size() (w, h vg.Length) { return b.w, b.h }
func (b box) Draw(c draw.Canvas) {
	if b.drawn != nil {
		*b.drawn = c.Rectangle
	}
}

func TestFindPanelRegionSingle(t *testing.T) {
	tab := New([]Unit{Null}, []Unit{Null})
	tab.Add(box{}, "panel-1-1", 0, 0, 0, 0)

	got, ok := FindPanelRegion(tab)
	if !ok {
		t.Fatalf("FindPanelRegion found no panel")
	}
	if want := (Extent{Top: 0, Right: 0, Bottom: 0, Left: 0}); got != want {
		t.Errorf("FindPanelRegion = %+v, want %+v", got, want)
	}
}

func TestFindPanelRegion(t *testing.T) {
	tab := New(
		[]Unit{Fixed(10), Null, Fixed(5), Null, Fixed(10)},
		[]Unit{Fixed(10), Null, Fixed(5), Null, Fixed(10)})
	tab.Add(box{}, "panel-1-1", 1, 1, 1, 1)
	tab.Add(box{}, "panel-2-2", 3, 3, 3, 3)
	tab.Add(box{}, "axis-b-1", 4, 1, 4, 1)
	tab.Add(box{}, "strip-t-1", 0, 0, 0, 4)

	got, ok := FindPanelRegion(tab)
	if !ok {
		t.Fatalf("FindPanelRegion found no panel")
	}
	if want := (Extent{Top: 1, Right: 3, Bottom: 3, Left: 1}); got != want {
		t.Errorf("FindPanelRegion = %+v, want %+v", got, want)
	}

	if _, ok := FindPanelRegion(New(nil, nil)); ok {
		t.Errorf("FindPanelRegion on empty table reported a panel")
	}
}

func TestPanelColsRows(t *testing.T) {
	tab := New([]Unit{Null, Fixed(5), Null}, []Unit{Null, Fixed(5), Null})
	tab.Add(box{}, "panel-1-2", 0, 2, 0, 2)
	tab.Add(box{}, "panel-1-1", 0, 0, 0, 0)
	tab.Add(box{}, "panel-2-1", 2, 0, 2, 0)
	tab.Add(box{}, "axis-l-1", 0, 1, 2, 1)

	cols := PanelCols(tab)
	if len(cols) != 2 || cols[0] != (Span{2, 2}) || cols[1] != (Span{0, 0}) {
		t.Errorf("PanelCols = %v, want [{2 2} {0 0}]", cols)
	}
	rows := PanelRows(tab)
	if len(rows) != 2 || rows[0] != (Span{0, 0}) || rows[1] != (Span{2, 2}) {
		t.Errorf("PanelRows = %v, want [{0 0} {2 2}]", rows)
	}
}

var insertTests = []struct {
	at                       int
	top, bottom              int // of a cell spanning rows 1..2
	wantTop, wantBottom, num int
}{
	{0, 1, 2, 3, 4, 6},
	{1, 1, 2, 3, 4, 6},
	{2, 1, 2, 1, 4, 6},
	{3, 1, 2, 1, 2, 6},
	{4, 1, 2, 1, 2, 6},
}

func TestInsertRows(t *testing.T) {
	for i, tc := range insertTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			tab := New([]Unit{Null}, []Unit{Null, Null, Null, Null})
			c := tab.Add(Zero, "panel", tc.top, 0, tc.bottom, 0)
			tab.InsertRows(tc.at, Fixed(1), Fixed(2))
			if c.Top != tc.wantTop || c.Bottom != tc.wantBottom {
				t.Errorf("InsertRows(%d): cell rows %d..%d, want %d..%d",
					tc.at, c.Top, c.Bottom, tc.wantTop, tc.wantBottom)
			}
			if tab.NumRows() != tc.num {
				t.Errorf("InsertRows(%d): %d rows, want %d", tc.at, tab.NumRows(), tc.num)
			}
			if got := tab.Heights[tc.at]; got != Fixed(1) {
				t.Errorf("InsertRows(%d): height at %d = %v, want 1pt", tc.at, tc.at, got)
			}
		})
	}
}

func TestInsertCols(t *testing.T) {
	tab := New([]Unit{Null, Null}, []Unit{Null})
	left := tab.Add(Zero, "left", 0, 0, 0, 0)
	right := tab.Add(Zero, "right", 0, 1, 0, 1)
	tab.PrependCols(Fixed(3))
	tab.AppendCols(Fixed(4))

	if left.Left != 1 || right.Left != 2 || right.Right != 2 {
		t.Errorf("got left=%v right=%v", left, right)
	}
	if tab.NumCols() != 4 || tab.Widths[0] != Fixed(3) || tab.Widths[3] != Fixed(4) {
		t.Errorf("widths = %v", tab.Widths)
	}
}

func TestAddOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Add outside of table did not panic")
		}
	}()
	New([]Unit{Null}, []Unit{Null}).Add(Zero, "panel", 0, 0, 1, 0)
}

func TestTracks(t *testing.T) {
	tab := New([]Unit{Fixed(10), Null, Fixed(20), Null}, []Unit{Fixed(5), Null})
	xs, ys := tab.Tracks(130, 50)

	wantX := []vg.Length{0, 10, 60, 80, 130}
	for i := range wantX {
		if xs[i] != wantX[i] {
			t.Errorf("xs = %v, want %v", xs, wantX)
			break
		}
	}
	wantY := []vg.Length{0, 5, 50}
	for i := range wantY {
		if ys[i] != wantY[i] {
			t.Errorf("ys = %v, want %v", ys, wantY)
			break
		}
	}

	// Not enough room: the flexible tracks collapse.
	xs, _ = tab.Tracks(20, 50)
	if xs[2] != xs[1] || xs[4] != 30 {
		t.Errorf("overfull xs = %v", xs)
	}
}

func TestMaxExtent(t *testing.T) {
	grobs := []Grob{box{w: 3, h: 9}, nil, box{w: 7, h: 2}, Zero}
	if got := MaxExtent(grobs, Width); got != 7 {
		t.Errorf("MaxExtent(Width) = %v, want 7", got)
	}
	if got := MaxExtent(grobs, Height); got != 9 {
		t.Errorf("MaxExtent(Height) = %v, want 9", got)
	}
	if got := MaxExtentUnit(grobs, Height); got != Fixed(9) {
		t.Errorf("MaxExtentUnit(Height) = %v, want 9pt", got)
	}
	if got := MaxExtent(nil, Width); got != 0 {
		t.Errorf("MaxExtent(nil) = %v, want 0", got)
	}
}

func TestTableLayoutElement(t *testing.T) {
	tab := New([]Unit{Fixed(10), Null}, []Unit{Null, Fixed(20)})
	tab.Add(box{}, "panel", 0, 1, 0, 1)
	tab.Add(box{}, "axis-b", 1, 1, 1, 1)

	w, h, flexw, flexh := tab.SizeHint()
	if w != 10 || h != 20 || !flexw || !flexh {
		t.Errorf("SizeHint = %v %v %v %v", w, h, flexw, flexh)
	}

	tab.SetLayout(100, 200, 110, 120)
	if n := len(tab.Children()); n != 2 {
		t.Fatalf("%d children, want 2", n)
	}
	x, y, cw, ch := tab.Cells[0].Layout()
	if x != 110 || y != 200 || cw != 100 || ch != 100 {
		t.Errorf("panel layout = %v %v %v %v", x, y, cw, ch)
	}
	x, y, cw, ch = tab.Cells[1].Layout()
	if x != 110 || y != 300 || cw != 100 || ch != 20 {
		t.Errorf("axis layout = %v %v %v %v", x, y, cw, ch)
	}
}

func TestTableDraw(t *testing.T) {
	var panel, axis vg.Rectangle
	tab := New([]Unit{Fixed(10), Null}, []Unit{Null, Fixed(20)})
	tab.Add(box{drawn: &panel}, "panel", 0, 1, 0, 1)
	tab.Add(box{drawn: &axis}, "axis-b", 1, 1, 1, 1)

	img := vgimg.New(110, 120)
	tab.Draw(draw.New(img))

	if panel.Min.X != 10 || panel.Max.X != 110 || panel.Min.Y != 20 || panel.Max.Y != 120 {
		t.Errorf("panel drawn in %v", panel)
	}
	if axis.Min.Y != 0 || axis.Max.Y != 20 {
		t.Errorf("axis drawn in %v", axis)
	}
}
