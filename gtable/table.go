package gtable

import (
	"fmt"
	"strings"

	"github.com/aclements/go-gg/gg/layout"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ----------------------------------------------------------------------------
// Unit

// Unit is the size of a row or column of a Table.
type Unit struct {
	Length   vg.Length
	Flexible bool // Flexible tracks share the space left by fixed tracks.
}

// Fixed returns a unit of the given absolute length.
func Fixed(l vg.Length) Unit { return Unit{Length: l} }

// Null is the flexible unit.
var Null = Unit{Flexible: true}

func (u Unit) String() string {
	if u.Flexible {
		return "null"
	}
	return fmt.Sprintf("%.2fpt", float64(u.Length))
}

// ----------------------------------------------------------------------------
// Cell

// A Cell places a grob on the rows Top to Bottom and the columns Left to
// Right (all 0-based and inclusive) of a Table.
type Cell struct {
	layout.Leaf

	Name                     string
	Grob                     Grob
	Top, Left, Bottom, Right int
}

// SizeHint implements layout.Element.
func (c *Cell) SizeHint() (w, h float64, flexw, flexh bool) {
	gw, gh := c.Grob.Size()
	return float64(gw), float64(gh), gw == 0, gh == 0
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s [t=%d l=%d b=%d r=%d]", c.Name, c.Top, c.Left, c.Bottom, c.Right)
}

// ----------------------------------------------------------------------------
// Table

// Table is a grid of rows and columns with grobs placed in named cells.
// The zero value is an empty table.
type Table struct {
	Widths  []Unit
	Heights []Unit
	Cells   []*Cell

	x, y, w, h float64
}

// New returns a table with the given column widths and row heights.
func New(widths, heights []Unit) *Table {
	return &Table{
		Widths:  append([]Unit(nil), widths...),
		Heights: append([]Unit(nil), heights...),
	}
}

// NumRows returns the number of rows in t.
func (t *Table) NumRows() int { return len(t.Heights) }

// NumCols returns the number of columns in t.
func (t *Table) NumCols() int { return len(t.Widths) }

// Add places g in the cell spanning rows top..bottom and columns
// left..right. A nil g is stored as Zero. Add panics if the span lies
// outside of t.
func (t *Table) Add(g Grob, name string, top, left, bottom, right int) *Cell {
	if top < 0 || left < 0 || bottom >= len(t.Heights) || right >= len(t.Widths) ||
		top > bottom || left > right {
		panic(fmt.Sprintf("gtable: cell %q [t=%d l=%d b=%d r=%d] outside of %dx%d table",
			name, top, left, bottom, right, len(t.Heights), len(t.Widths)))
	}
	c := &Cell{Name: name, Grob: orZero(g), Top: top, Left: left, Bottom: bottom, Right: right}
	t.Cells = append(t.Cells, c)
	return c
}

// InsertRows inserts rows of the given heights before row at. Cells
// below at move down, cells spanning at grow.
func (t *Table) InsertRows(at int, heights ...Unit) {
	if at < 0 || at > len(t.Heights) {
		panic(fmt.Sprintf("gtable: cannot insert rows at %d in table with %d rows", at, len(t.Heights)))
	}
	n := len(heights)
	t.Heights = append(t.Heights[:at], append(append([]Unit(nil), heights...), t.Heights[at:]...)...)
	for _, c := range t.Cells {
		if c.Top >= at {
			c.Top += n
		}
		if c.Bottom >= at {
			c.Bottom += n
		}
	}
}

// InsertCols inserts columns of the given widths before column at. Cells
// right of at move right, cells spanning at grow.
func (t *Table) InsertCols(at int, widths ...Unit) {
	if at < 0 || at > len(t.Widths) {
		panic(fmt.Sprintf("gtable: cannot insert columns at %d in table with %d columns", at, len(t.Widths)))
	}
	n := len(widths)
	t.Widths = append(t.Widths[:at], append(append([]Unit(nil), widths...), t.Widths[at:]...)...)
	for _, c := range t.Cells {
		if c.Left >= at {
			c.Left += n
		}
		if c.Right >= at {
			c.Right += n
		}
	}
}

// PrependRows inserts rows on top of t.
func (t *Table) PrependRows(heights ...Unit) { t.InsertRows(0, heights...) }

// AppendRows adds rows at the bottom of t.
func (t *Table) AppendRows(heights ...Unit) { t.InsertRows(len(t.Heights), heights...) }

// PrependCols inserts columns left of t.
func (t *Table) PrependCols(widths ...Unit) { t.InsertCols(0, widths...) }

// AppendCols adds columns right of t.
func (t *Table) AppendCols(widths ...Unit) { t.InsertCols(len(t.Widths), widths...) }

// Find returns the first cell called name.
func (t *Table) Find(name string) (*Cell, bool) {
	for _, c := range t.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// CellsWithPrefix returns all cells whose name starts with prefix in
// insertion order.
func (t *Table) CellsWithPrefix(prefix string) []*Cell {
	var cells []*Cell
	for _, c := range t.Cells {
		if strings.HasPrefix(c.Name, prefix) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Size implements Grob: It is the sum of all fixed tracks.
func (t *Table) Size() (w, h vg.Length) {
	for _, u := range t.Widths {
		w += u.Length
	}
	for _, u := range t.Heights {
		h += u.Length
	}
	return w, h
}

// Tracks resolves the tracks for the given total width and height and
// returns the track boundaries. xs has NumCols()+1 entries measured from
// the left, ys has NumRows()+1 entries measured from the top.
func (t *Table) Tracks(w, h vg.Length) (xs, ys []vg.Length) {
	return resolve(t.Widths, w), resolve(t.Heights, h)
}

// resolve distributes total over the units. Fixed units get their length,
// the remaining space is split evenly between the flexible ones.
func resolve(units []Unit, total vg.Length) []vg.Length {
	var fixed vg.Length
	flex := 0
	for _, u := range units {
		if u.Flexible {
			flex++
		} else {
			fixed += u.Length
		}
	}
	var share vg.Length
	if flex > 0 && total > fixed {
		share = (total - fixed) / vg.Length(flex)
	}

	pos := make([]vg.Length, len(units)+1)
	for i, u := range units {
		size := u.Length
		if u.Flexible {
			size = share
		}
		pos[i+1] = pos[i] + size
	}
	return pos
}

// SizeHint implements layout.Element.
func (t *Table) SizeHint() (w, h float64, flexw, flexh bool) {
	fw, fh := t.Size()
	for _, u := range t.Widths {
		flexw = flexw || u.Flexible
	}
	for _, u := range t.Heights {
		flexh = flexh || u.Flexible
	}
	return float64(fw), float64(fh), flexw, flexh
}

// SetLayout implements layout.Element. It lays out all cells of t
// inside the given rectangle; y grows downwards.
func (t *Table) SetLayout(x, y, w, h float64) {
	t.x, t.y, t.w, t.h = x, y, w, h
	xs, ys := t.Tracks(vg.Length(w), vg.Length(h))
	for _, c := range t.Cells {
		c.SetLayout(
			x+float64(xs[c.Left]), y+float64(ys[c.Top]),
			float64(xs[c.Right+1]-xs[c.Left]), float64(ys[c.Bottom+1]-ys[c.Top]))
	}
}

// Layout implements layout.Element.
func (t *Table) Layout() (x, y, w, h float64) {
	return t.x, t.y, t.w, t.h
}

// Children implements layout.Group.
func (t *Table) Children() []layout.Element {
	elts := make([]layout.Element, len(t.Cells))
	for i, c := range t.Cells {
		elts[i] = c
	}
	return elts
}

// Draw implements Grob. The cells are drawn in insertion order.
func (t *Table) Draw(c draw.Canvas) {
	size := c.Size()
	t.SetLayout(0, 0, float64(size.X), float64(size.Y))
	for _, cell := range t.Cells {
		x, y, w, h := cell.Layout()
		sub := c
		sub.Min.X = c.Min.X + vg.Length(x)
		sub.Max.X = sub.Min.X + vg.Length(w)
		sub.Max.Y = c.Max.Y - vg.Length(y)
		sub.Min.Y = sub.Max.Y - vg.Length(h)
		cell.Grob.Draw(sub)
	}
}

// String returns a textual description of the table, one cell per line.
func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d table\n  widths:  %v\n  heights: %v\n", len(t.Heights), len(t.Widths), t.Widths, t.Heights)
	for _, c := range t.Cells {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	return b.String()
}
