package facet

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// DefaultTicks returns a ticker which places about n major ticks at
// multiples of 1, 2 or 5 times a power of ten and one unlabeled minor
// tick between two major ones.
func DefaultTicks(n int) plot.Ticker {
	if n < 1 {
		n = 1
	}
	return niceTicks{n: n}
}

type niceTicks struct{ n int }

// Ticks implements plot.Ticker.
func (t niceTicks) Ticks(min, max float64) []plot.Tick {
	if !(max > min) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	step := niceStep((max - min) / float64(t.n))
	prec := -int(math.Floor(math.Log10(step)))
	if prec < 0 {
		prec = 0
	}

	var ticks []plot.Tick
	first := math.Ceil(min/step) * step
	if half := first - step/2; half >= min {
		ticks = append(ticks, plot.Tick{Value: half})
	}
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		label := strconv.FormatFloat(v, 'f', prec, 64)
		if f, _ := strconv.ParseFloat(label, 64); f == 0 {
			label = strconv.FormatFloat(0, 'f', prec, 64)
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
		if v+step/2 <= max {
			ticks = append(ticks, plot.Tick{Value: v + step/2})
		}
	}
	return ticks
}

// niceStep rounds x to 1, 2 or 5 times a power of ten.
func niceStep(x float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(x)))
	switch f := x / exp; {
	case f < 1.5:
		return exp
	case f < 3:
		return 2 * exp
	case f < 7:
		return 5 * exp
	}
	return 10 * exp
}
