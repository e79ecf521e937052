package facet

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"math"
	"strconv"
	"time"

	"github.com/aclements/go-gg/table"
)

// ----------------------------------------------------------------------------
// Expr

// Expr is a named facet expression. Expressions use Go syntax: a bare
// identifier refers to a data column, everything else is computed from
// columns, literals and the functions listed in the package
// documentation, e.g.
//
//	class
//	cyl > 4
//	cut_width(displ, 1)
type Expr struct {
	// Name is the name of the resulting facet variable.
	Name string

	node ast.Expr
}

// Var returns the expression referring to column name.
func Var(name string) Expr {
	return Expr{Name: name, node: ast.NewIdent(name)}
}

// ParseExpr parses src into an expression named after its canonical
// source text or, for bare column references, after the column.
func ParseExpr(src string) (Expr, error) {
	node, err := parser.ParseExpr(src)
	if err != nil {
		return Expr{}, usageErrorf("cannot parse facet expression %q: %v", src, err)
	}
	for {
		p, ok := node.(*ast.ParenExpr)
		if !ok {
			break
		}
		node = p.X
	}
	return Expr{Name: types.ExprString(node), node: node}, nil
}

// Vars parses each of src with ParseExpr and panics on malformed
// source. It is intended for literal facet specifications:
//
//	facet.NewWrap(facet.Vars("cyl", "cut_width(displ, 2)"))
func Vars(src ...string) []Expr {
	exprs := make([]Expr, len(src))
	for i, s := range src {
		e, err := ParseExpr(s)
		if err != nil {
			panic(err)
		}
		exprs[i] = e
	}
	return exprs
}

// As returns e renamed to name.
func As(name string, e Expr) Expr {
	e.Name = name
	return e
}

// IsVar reports whether e is a bare column reference.
func (e Expr) IsVar() bool {
	id, ok := e.node.(*ast.Ident)
	return ok && !isConstIdent(id.Name)
}

func (e Expr) String() string {
	if e.node == nil {
		return ""
	}
	src := types.ExprString(e.node)
	if src == e.Name {
		return src
	}
	return e.Name + "=" + src
}

func isConstIdent(name string) bool {
	switch name {
	case "true", "false", "NA", "nil":
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Evaluation

// EvalContext holds the data a facet expression is evaluated against.
type EvalContext struct {
	// Data is the data of the current layer. It may be nil.
	Data *table.Table

	// Possible contains the names of the columns of all layers.
	Possible map[string]bool
}

// Eval evaluates e on c.Data and returns one value per row with all
// numbers converted to float64.
//
// If e refers to a column absent from c.Data, Eval returns nil and no
// error provided e is a bare column reference or the column is one of
// c.Possible. Any other failure is returned as error.
func (c *EvalContext) Eval(e Expr) ([]interface{}, error) {
	if e.IsVar() {
		// May be nil: layers without the column are replicated.
		return c.column(e.node.(*ast.Ident).Name), nil
	}

	v, err := c.eval(e.node)
	if err != nil {
		var mv *MissingVariableError
		if errors.As(err, &mv) {
			logger.Debug("facet expression skipped for layer", "expr", e.Name, "missing", mv.Var)
			return nil, nil
		}
		return nil, fmt.Errorf("facet: evaluating %s: %w", e.Name, err)
	}

	n := c.len()
	switch len(v) {
	case n:
		return v, nil
	case 1:
		out := make([]interface{}, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("facet: evaluating %s: got %d values for %d rows", e.Name, len(v), n)
}

func (c *EvalContext) len() int {
	if c.Data == nil {
		return 0
	}
	return c.Data.Len()
}

func (c *EvalContext) column(name string) []interface{} {
	if c.Data == nil {
		return nil
	}
	col := c.Data.Column(name)
	if col == nil {
		return nil
	}
	return toValues(col)
}

// vector is the result of evaluating a (sub)expression. A vector of
// length one is recycled to the length of its operands.
type vector []interface{}

func (c *EvalContext) eval(node ast.Expr) (vector, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return c.eval(n.X)

	case *ast.Ident:
		switch n.Name {
		case "true":
			return vector{true}, nil
		case "false":
			return vector{false}, nil
		case "NA", "nil":
			return vector{nil}, nil
		}
		if col := c.column(n.Name); col != nil {
			return col, nil
		}
		if c.Possible[n.Name] {
			return nil, &MissingVariableError{Var: n.Name}
		}
		return nil, fmt.Errorf("unknown variable %q", n.Name)

	case *ast.BasicLit:
		return evalLiteral(n)

	case *ast.UnaryExpr:
		x, err := c.eval(n.X)
		if err != nil {
			return nil, err
		}
		return mapValues(x, func(v interface{}) (interface{}, error) { return unaryOp(n.Op, v) })

	case *ast.BinaryExpr:
		x, err := c.eval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := c.eval(n.Y)
		if err != nil {
			return nil, err
		}
		return zipValues(x, y, func(a, b interface{}) (interface{}, error) { return binaryOp(n.Op, a, b) })

	case *ast.CallExpr:
		id, ok := n.Fun.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("cannot call %s", types.ExprString(n.Fun))
		}
		f, ok := functions[id.Name]
		if !ok {
			return nil, fmt.Errorf("unknown function %s", id.Name)
		}
		args := make([]vector, len(n.Args))
		for i, a := range n.Args {
			v, err := c.eval(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		v, err := f(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id.Name, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported expression %s", types.ExprString(node))
}

func evalLiteral(lit *ast.BasicLit) (vector, error) {
	switch lit.Kind {
	case token.INT:
		i, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, err
		}
		return vector{float64(i)}, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return nil, err
		}
		return vector{f}, nil
	case token.STRING, token.CHAR:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, err
		}
		return vector{s}, nil
	}
	return nil, fmt.Errorf("unsupported literal %s", lit.Value)
}

// mapValues applies f to every element of x.
func mapValues(x vector, f func(interface{}) (interface{}, error)) (vector, error) {
	out := make(vector, len(x))
	for i, v := range x {
		r, err := f(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// recycledLen returns the common length of the vectors, recycling
// vectors of length one.
func recycledLen(vs ...vector) (int, error) {
	n := 1
	for _, v := range vs {
		switch {
		case len(v) == 0:
			return 0, nil
		case len(v) == 1:
		case n == 1:
			n = len(v)
		case len(v) != n:
			return 0, fmt.Errorf("mismatched lengths %d and %d", n, len(v))
		}
	}
	return n, nil
}

func at(v vector, i int) interface{} {
	if len(v) == 1 {
		return v[0]
	}
	return v[i]
}

// zipValues applies f elementwise to x and y.
func zipValues(x, y vector, f func(a, b interface{}) (interface{}, error)) (vector, error) {
	n, err := recycledLen(x, y)
	if err != nil {
		return nil, err
	}
	out := make(vector, n)
	for i := range out {
		r, err := f(at(x, i), at(y, i))
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func unaryOp(op token.Token, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	v = approxFloat(v)
	switch op {
	case token.ADD:
		if x, ok := v.(float64); ok {
			return x, nil
		}
	case token.SUB:
		if x, ok := v.(float64); ok {
			return -x, nil
		}
	case token.NOT:
		if b, ok := v.(bool); ok {
			return !b, nil
		}
	}
	return nil, fmt.Errorf("invalid operation: %s%v (%T)", op, v, v)
}

func binaryOp(op token.Token, a, b interface{}) (interface{}, error) {
	if a == nil || b == nil {
		return nil, nil
	}
	switch op {
	case token.EQL:
		return a == b, nil
	case token.NEQ:
		return a != b, nil
	}
	a, b = approxFloat(a), approxFloat(b)

	mismatch := fmt.Errorf("invalid operation: %v %s %v (mismatched types %T and %T)", a, op, b, a, b)
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return nil, mismatch
		}
		switch op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			return x - y, nil
		case token.MUL:
			return x * y, nil
		case token.QUO:
			return x / y, nil
		case token.REM:
			return math.Mod(x, y), nil
		case token.LSS:
			return x < y, nil
		case token.LEQ:
			return x <= y, nil
		case token.GTR:
			return x > y, nil
		case token.GEQ:
			return x >= y, nil
		}
	case string:
		y, ok := b.(string)
		if !ok {
			return nil, mismatch
		}
		switch op {
		case token.ADD:
			return x + y, nil
		case token.LSS:
			return x < y, nil
		case token.LEQ:
			return x <= y, nil
		case token.GTR:
			return x > y, nil
		case token.GEQ:
			return x >= y, nil
		}
	case bool:
		y, ok := b.(bool)
		if !ok {
			return nil, mismatch
		}
		switch op {
		case token.LAND:
			return x && y, nil
		case token.LOR:
			return x || y, nil
		}
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return nil, mismatch
		}
		switch op {
		case token.LSS:
			return x.Before(y), nil
		case token.GTR:
			return x.After(y), nil
		case token.LEQ:
			return !x.After(y), nil
		case token.GEQ:
			return !x.Before(y), nil
		}
	}
	return nil, fmt.Errorf("invalid operation: operator %s not defined on %v (%T)", op, a, a)
}
