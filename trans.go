package facet

import (
	"math"
	"strings"

	"gonum.org/v1/plot"
)

// A Transformation maps values of a continuous scale's range onto an
// output interval, e.g. the width of a panel. Inverse maps back. Ticker
// places the ticks of scales using the transformation.
type Transformation struct {
	Name    string
	Trans   func(from, to Interval, x float64) float64
	Inverse func(from, to Interval, y float64) float64
	Ticker  plot.Ticker
}

// linear maps x from from to to.
func linear(from, to Interval, x float64) float64 {
	return to.Min + (to.Max-to.Min)*(x-from.Min)/(from.Max-from.Min)
}

func squared(i Interval) Interval { return Interval{i.Min * i.Min, i.Max * i.Max} }

// IdentityTrans returns x unchanged, ignoring both intervals.
var IdentityTrans = Transformation{
	Name:    "Identity",
	Trans:   func(from, to Interval, x float64) float64 { return x },
	Inverse: func(from, to Interval, y float64) float64 { return y },
	Ticker:  DefaultTicks(4),
}

// LinearTrans maps from linearly onto to. It is the default of
// position scales.
var LinearTrans = Transformation{
	Name:    "Linear",
	Trans:   linear,
	Inverse: func(from, to Interval, y float64) float64 { return linear(to, from, y) },
	Ticker:  DefaultTicks(4),
}

// SqrtTrans maps from linearly onto the squares of to and takes the root,
// so equal steps in the data give equal steps in area.
var SqrtTrans = Transformation{
	Name: "SquareRoot",
	Trans: func(from, to Interval, x float64) float64 {
		return math.Sqrt(linear(from, squared(to), x))
	},
	Inverse: func(from, to Interval, y float64) float64 {
		return linear(squared(to), from, y*y)
	},
	Ticker: DefaultTicks(5),
}

// SqrtTransFix0 is SqrtTrans with both intervals starting at 0, so 0 is
// always mapped to 0.
var SqrtTransFix0 = Transformation{
	Name: "SquareRootArea",
	Trans: func(from, to Interval, x float64) float64 {
		from.Min, to.Min = 0, 0
		return SqrtTrans.Trans(from, to, x)
	},
	Inverse: func(from, to Interval, y float64) float64 {
		from.Min, to.Min = 0, 0
		return SqrtTrans.Inverse(from, to, y)
	},
	Ticker: DefaultTicks(5),
}

// Log10Trans maps the positive interval from logarithmically onto to.
var Log10Trans = Transformation{
	Name: "Log10",
	Trans: func(from, to Interval, x float64) float64 {
		t := math.Log10(x/from.Min) / math.Log10(from.Max/from.Min)
		return to.Min + t*(to.Max-to.Min)
	},
	Inverse: func(from, to Interval, y float64) float64 {
		t := (y - to.Min) / (to.Max - to.Min)
		return from.Min * math.Pow(from.Max/from.Min, t)
	},
	Ticker: plot.LogTicks{},
}

// transformations are the known transformations by lower case name.
var transformations = map[string]Transformation{
	"identity":       IdentityTrans,
	"linear":         LinearTrans,
	"squareroot":     SqrtTrans,
	"sqrt":           SqrtTrans,
	"squarerootarea": SqrtTransFix0,
	"area":           SqrtTransFix0,
	"log10":          Log10Trans,
	"log":            Log10Trans,
}

// TransByName returns the transformation called name, ignoring case.
// "sqrt", "area" and "log" are accepted as short names. The empty name
// selects LinearTrans.
func TransByName(name string) (Transformation, bool) {
	if name == "" {
		return LinearTrans, true
	}
	t, ok := transformations[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
