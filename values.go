package facet

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// columnNames returns the union of all column names of the layers in
// order of first appearance.
func columnNames(layers []*table.Table) []string {
	var names []string
	seen := make(map[string]bool)
	for _, l := range layers {
		if l == nil {
			continue
		}
		for _, c := range l.Columns() {
			if !seen[c] {
				seen[c] = true
				names = append(names, c)
			}
		}
	}
	return names
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// toValues converts the generic slice s to a slice of normalized values.
func toValues(s slice.T) []interface{} {
	if s == nil {
		return nil
	}
	rv := reflect.ValueOf(s)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = normValue(rv.Index(i).Interface())
	}
	return out
}

// normValue maps numeric types to float64 so that values from different
// layers compare equal. Integers beyond the exact range of float64 become
// int64 (or uint64 above math.MaxInt64) and so do integral floats of
// that size.
func normValue(v interface{}) interface{} {
	switch x := v.(type) {
	case string, bool, nil:
		return x
	case float64:
		return floatValue(x)
	case float32:
		return floatValue(float64(x))
	case int:
		return intValue(int64(x))
	case int8:
		return intValue(int64(x))
	case int16:
		return intValue(int64(x))
	case int32:
		return intValue(int64(x))
	case int64:
		return intValue(x)
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return uintValue(uint64(x))
	case uint16:
		return uintValue(uint64(x))
	case uint32:
		return uintValue(uint64(x))
	case uint64:
		return uintValue(x)
	case fmt.Stringer:
		if _, ok := v.(time.Time); ok {
			return v
		}
		return x.String()
	}
	return v
}

// maxExact is the largest magnitude up to which every integer is
// representable as float64.
const maxExact = 1 << 53

func intValue(x int64) interface{} {
	if x >= -maxExact && x <= maxExact {
		return float64(x)
	}
	return x
}

func uintValue(x uint64) interface{} {
	switch {
	case x <= maxExact:
		return float64(x)
	case x <= math.MaxInt64:
		return int64(x)
	}
	return x
}

func floatValue(x float64) interface{} {
	if x == math.Trunc(x) && math.Abs(x) > maxExact && x >= math.MinInt64 && x < math.MaxInt64 {
		return int64(x)
	}
	return x
}

// approxFloat turns the large integers kept by normValue into float64
// for arithmetic and positioning.
func approxFloat(v interface{}) interface{} {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return v
}

// bigValue returns the number v exactly.
func bigValue(v interface{}) (*big.Float, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return nil, false
		}
		return new(big.Float).SetFloat64(x), true
	case int64:
		return new(big.Float).SetInt64(x), true
	case uint64:
		return new(big.Float).SetUint64(x), true
	}
	return nil, false
}

// key returns a string which identifies the combination of values.
func key(vals []interface{}) string {
	var b strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&b, "%T\x1f%v\x1e", v, v)
	}
	return b.String()
}

// formatValue formats a facet value for strip labels.
func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NA"
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= maxExact {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return fmt.Sprintf("%g", x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// lessValue orders two normalized values: numbers (of any type) numerically, times
// chronologically, strings lexically and different types by type name.
func lessValue(a, b interface{}) bool {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return x < y || (math.IsNaN(x) && !math.IsNaN(y))
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	case bool:
		if y, ok := b.(bool); ok {
			return !x && y
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Before(y)
		}
	}
	if x, ok := bigValue(a); ok {
		if y, ok := bigValue(b); ok {
			return x.Cmp(y) < 0
		}
	}
	ta, tb := typeName(a), typeName(b)
	if ta != tb {
		return ta < tb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

// typeName names the type of v for ordering. All numbers share one name.
func typeName(v interface{}) string {
	switch v.(type) {
	case int64, uint64:
		return "float64"
	}
	return fmt.Sprintf("%T", v)
}

// sortValues sorts vals in place with lessValue.
func sortValues(vals []interface{}) {
	sort.SliceStable(vals, func(i, j int) bool { return lessValue(vals[i], vals[j]) })
}

// ----------------------------------------------------------------------------
// Combinations

// combos is an ordered set of rows of facet variable values.
type combos struct {
	vars  []string
	rows  [][]interface{}
	index map[string]int
}

func newCombos(vars []string) *combos {
	return &combos{vars: vars, index: make(map[string]int)}
}

// add appends row unless it is already present and reports whether it
// was added.
func (c *combos) add(row []interface{}) bool {
	k := key(row)
	if _, ok := c.index[k]; ok {
		return false
	}
	c.index[k] = len(c.rows)
	c.rows = append(c.rows, row)
	return true
}

func (c *combos) len() int { return len(c.rows) }

// column returns the position of variable name in c.vars or -1.
func (c *combos) column(name string) int {
	for i, v := range c.vars {
		if v == name {
			return i
		}
	}
	return -1
}

// levels returns the distinct values of column i in order of first
// appearance.
func (c *combos) levels(i int) []interface{} {
	var lv []interface{}
	seen := make(map[string]bool)
	for _, r := range c.rows {
		k := key(r[i : i+1])
		if !seen[k] {
			seen[k] = true
			lv = append(lv, r[i])
		}
	}
	return lv
}

// project returns the distinct combinations of the given columns.
func (c *combos) project(cols []int) [][]interface{} {
	sub := newCombos(nil)
	for _, r := range c.rows {
		p := make([]interface{}, len(cols))
		for j, i := range cols {
			p[j] = r[i]
		}
		sub.add(p)
	}
	return sub.rows
}

// expand replaces the rows of c by the full cross product of the levels
// of each column. The first column varies slowest.
func (c *combos) expand() {
	levels := make([][]interface{}, len(c.vars))
	for i := range c.vars {
		levels[i] = c.levels(i)
	}
	full := newCombos(c.vars)
	var rec func(prefix []interface{}, i int)
	rec = func(prefix []interface{}, i int) {
		if i == len(levels) {
			full.add(append([]interface{}(nil), prefix...))
			return
		}
		for _, v := range levels[i] {
			rec(append(prefix, v), i+1)
		}
	}
	if len(levels) > 0 {
		rec(nil, 0)
	}
	*c = *full
}

// levelIndex numbers the levels of every column in order of first
// appearance. Columns with reversed set are numbered back to front.
func (c *combos) levelIndex(reversed []bool) []map[string]int {
	idx := make([]map[string]int, len(c.vars))
	for i := range c.vars {
		lv := c.levels(i)
		idx[i] = make(map[string]int, len(lv))
		for j, v := range lv {
			pos := j
			if i < len(reversed) && reversed[i] {
				pos = len(lv) - 1 - j
			}
			idx[i][key([]interface{}{v})] = pos
		}
	}
	return idx
}

// rank returns for each row the dense, 1-based rank of its projection on
// cols, ordered by the level numbers in lv, first column first. Rows with
// the same projection get the same rank.
func (c *combos) rank(cols []int, lv []map[string]int) []int {
	codes := make([][]int, len(c.rows))
	for r, row := range c.rows {
		codes[r] = make([]int, len(cols))
		for j, i := range cols {
			codes[r][j] = lv[i][key(row[i:i+1])]
		}
	}
	less := func(a, b []int) bool {
		for i := range a {
			if a[i] != b[i] {
				return a[i] < b[i]
			}
		}
		return false
	}

	order := make([]int, len(c.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return less(codes[order[a]], codes[order[b]]) })

	ids := make([]int, len(c.rows))
	id := 0
	for k, r := range order {
		if k == 0 || less(codes[order[k-1]], codes[r]) {
			id++
		}
		ids[r] = id
	}
	return ids
}

// allColumns returns the indices 0..n-1 of the columns of c.
func (c *combos) allColumns() []int {
	cols := make([]int, len(c.vars))
	for i := range cols {
		cols[i] = i
	}
	return cols
}

// crossJoin returns all combinations of the rows of a and b; the rows
// of a vary fastest. An operand without variables is ignored.
func crossJoin(a, b *combos) *combos {
	if len(a.vars) == 0 {
		return b
	}
	if len(b.vars) == 0 {
		return a
	}
	vars := append(append([]string(nil), a.vars...), b.vars...)
	out := newCombos(vars)
	for _, rb := range b.rows {
		for _, ra := range a.rows {
			row := append(append([]interface{}(nil), ra...), rb...)
			out.add(row)
		}
	}
	return out
}

// column turns vals into a typed slice if all values share one type and
// into a []interface{} otherwise.
func column(vals []interface{}) slice.T {
	if len(vals) == 0 {
		return []interface{}{}
	}
	t := reflect.TypeOf(vals[0])
	if t == nil {
		return vals
	}
	for _, v := range vals[1:] {
		if reflect.TypeOf(v) != t {
			return vals
		}
	}
	s := reflect.MakeSlice(reflect.SliceOf(t), len(vals), len(vals))
	for i, v := range vals {
		s.Index(i).Set(reflect.ValueOf(v))
	}
	return s.Interface()
}
