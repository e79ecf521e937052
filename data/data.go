// Package data converts the columns of layer tables into plain Go values
// for drawing.
package data

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Values returns column name of t as a slice of interface values or nil
// if t has no such column.
func Values(t *table.Table, name string) []interface{} {
	if t == nil {
		return nil
	}
	col := t.Column(name)
	if col == nil {
		return nil
	}
	rv := reflect.ValueOf(col)
	vals := make([]interface{}, rv.Len())
	for i := range vals {
		vals[i] = rv.Index(i).Interface()
	}
	return vals
}

// Floats returns the numeric column name of t converted to float64. The
// second result is false if the column is missing or not numeric.
func Floats(t *table.Table, name string) ([]float64, bool) {
	if t == nil {
		return nil, false
	}
	col := t.Column(name)
	if col == nil {
		return nil, false
	}
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	case reflect.Interface:
		return interfaceFloats(Values(t, name))
	default:
		return nil, false
	}
	var fs []float64
	slice.Convert(&fs, col)
	return fs, true
}

// interfaceFloats converts values holding numbers or nil. Nil becomes NaN.
func interfaceFloats(vals []interface{}) ([]float64, bool) {
	fs := make([]float64, len(vals))
	for i, v := range vals {
		if v == nil {
			fs[i] = math.NaN()
			continue
		}
		f, ok := Float(v)
		if !ok {
			return nil, false
		}
		fs[i] = f
	}
	return fs, true
}

// Float converts a numeric value to float64.
func Float(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return math.NaN(), false
}

// Index converts a non-negative whole number to an int.
func Index(v interface{}) (int, bool) {
	f, ok := Float(v)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Strings returns column name of t formatted with fmt.Sprint. Nil
// values become "NA".
func Strings(t *table.Table, name string) []string {
	vals := Values(t, name)
	if vals == nil {
		return nil
	}
	strs := make([]string, len(vals))
	for i, v := range vals {
		if v == nil {
			strs[i] = "NA"
			continue
		}
		strs[i] = fmt.Sprint(v)
	}
	return strs
}

// XYUVer wraps the Len and XYUV methods.
type XYUVer interface {
	// Len returns the number of x, y, u, v quadruples.
	Len() int

	// XYUV returns an x, y, u, v quadruple.
	XYUV(int) (x, y, u, v float64)
}

// XYUVs implements the XYUVer interface.
type XYUVs []struct{ X, Y, U, V float64 }

func (d XYUVs) Len() int                        { return len(d) }
func (d XYUVs) XYUV(i int) (x, y, u, v float64) { return d[i].X, d[i].Y, d[i].U, d[i].V }
