package facet

import (
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
)

func wrapLayout(t *testing.T, spec string, layers ...*table.Table) *Layout {
	t.Helper()
	l, err := newWrap(t, spec).ComputeLayout(layers)
	if err != nil {
		t.Fatalf("ComputeLayout(%s) failed: %v", spec, err)
	}
	return l
}

func panelColumn(t *testing.T, data *table.Table) []int {
	t.Helper()
	col, ok := data.Column(ColPanel).([]int)
	if !ok {
		t.Fatalf("PANEL column is %T, want []int", data.Column(ColPanel))
	}
	return col
}

func TestMapData(t *testing.T) {
	l := wrapLayout(t, "cls", mpg)

	got, err := MapData(mpg, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3, 1}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
	if !reflect.DeepEqual(got.MustColumn("hwy"), mpg.MustColumn("hwy")) {
		t.Errorf("data columns changed: %v", got.MustColumn("hwy"))
	}
}

func TestMapDataReplicates(t *testing.T) {
	l := wrapLayout(t, "cls", mpg)
	ref := new(table.Builder).Add("y", []float64{10, 20}).Done()

	got, err := MapData(ref, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 1, 2, 2, 3, 3}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
	if want := []float64{10, 20, 10, 20, 10, 20}; !reflect.DeepEqual(got.MustColumn("y"), want) {
		t.Errorf("y = %v, want %v", got.MustColumn("y"), want)
	}
}

func TestMapDataReplicatesPartially(t *testing.T) {
	l := wrapLayout(t, "cls; drv", mpg)
	ref := new(table.Builder).Add("drv", []string{"y"}).Done()

	got, err := MapData(ref, l)
	if err != nil {
		t.Fatal(err)
	}
	// Panels with drv y: (a,y) is 2 and (c,y) is 4.
	if want := []int{2, 4}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
}

func TestMapDataGridReplicatesRows(t *testing.T) {
	ref := new(table.Builder).Add("cls", []string{"b", "c"}).Done()
	l, err := newGrid(t, "drv", "cls").ComputeLayout([]*table.Table{mpg, ref})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Panels) != 6 {
		t.Fatalf("got %d panels, want 6", len(l.Panels))
	}

	got, err := MapData(ref, l)
	if err != nil {
		t.Fatal(err)
	}
	// Row x holds panels 1 to 3, row y panels 4 to 6.
	if want := []int{2, 3, 5, 6}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
	if want := []string{"b", "c", "b", "c"}; !reflect.DeepEqual(got.MustColumn("cls"), want) {
		t.Errorf("cls = %v, want %v", got.MustColumn("cls"), want)
	}
}

func TestMapDataDropsUnknown(t *testing.T) {
	l := wrapLayout(t, "cls", mpg)
	data := new(table.Builder).
		Add("cls", []string{"d", "b"}).
		Add("y", []int{1, 2}).
		Done()

	got, err := MapData(data, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
	if want := []int{2}; !reflect.DeepEqual(got.MustColumn("y"), want) {
		t.Errorf("y = %v, want %v", got.MustColumn("y"), want)
	}
}

func TestMapDataNumericTypes(t *testing.T) {
	l := wrapLayout(t, "hwy", mpg)
	data := new(table.Builder).Add("hwy", []float64{23, 29}).Done()

	got, err := MapData(data, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{3, 1}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
}

func TestMapDataExpression(t *testing.T) {
	l := wrapLayout(t, "displ > 3", mpg)
	got, err := MapData(mpg, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 1, 2, 2}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
}

func TestMapDataSinglePanel(t *testing.T) {
	l, err := Null{}.ComputeLayout([]*table.Table{mpg})
	if err != nil {
		t.Fatal(err)
	}
	got, err := MapData(mpg, l)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 1, 1, 1}; !reflect.DeepEqual(panelColumn(t, got), want) {
		t.Errorf("PANEL = %v, want %v", panelColumn(t, got), want)
	}
}

func TestMapDataEmpty(t *testing.T) {
	l := wrapLayout(t, "cls", mpg)
	for _, data := range []*table.Table{nil, new(table.Builder).Add("cls", []string{}).Done()} {
		got, err := MapData(data, l)
		if err != nil {
			t.Fatal(err)
		}
		if got.Len() != 0 || len(panelColumn(t, got)) != 0 {
			t.Errorf("MapData(%v) has %d rows", data, got.Len())
		}
	}
}
