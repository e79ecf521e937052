package facet

import (
	"strings"
)

// Spec is a parsed faceting specification: one dimension for wrapped
// facets or two (rows and columns) for a grid. A Spec is immutable once
// constructed and may be shared between render passes.
type Spec struct {
	Dims [][]Expr
}

// ParseSpec turns x into a Spec. x may be
//
//   - nil for no faceting,
//   - a string: a formula "rows ~ cols" whose sides list expressions
//     separated by "+" with "." standing for no variable, or a list of
//     expressions separated by ";",
//   - a []string, each element one expression,
//   - an Expr or []Expr, e.g. from Vars,
//   - a *Spec, which is returned unchanged.
//
// Passing an Aes mapping or a *Plot is a common mistake and is reported
// as a *UsageError.
func ParseSpec(x interface{}) (*Spec, error) {
	switch v := x.(type) {
	case nil:
		return &Spec{Dims: [][]Expr{nil}}, nil
	case *Spec:
		return v, nil
	case Expr:
		return &Spec{Dims: [][]Expr{dedupe([]Expr{v})}}, nil
	case []Expr:
		return &Spec{Dims: [][]Expr{dedupe(v)}}, nil
	case []string:
		exprs := make([]Expr, 0, len(v))
		for _, s := range v {
			e, err := ParseExpr(s)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		return &Spec{Dims: [][]Expr{dedupe(exprs)}}, nil
	case string:
		if len(splitTopLevel(v, '~')) > 1 {
			return parseFormula(v)
		}
		exprs, err := parseList(splitTopLevel(v, ';'))
		if err != nil {
			return nil, err
		}
		return &Spec{Dims: [][]Expr{exprs}}, nil
	case Aes, *Aes, *Plot, Plot:
		return nil, usageErrorf("Please use Vars() to supply facet variables")
	}
	return nil, usageErrorf("cannot use %T as facet specification", x)
}

// MustParseSpec is like ParseSpec but panics on error.
func MustParseSpec(x interface{}) *Spec {
	s, err := ParseSpec(x)
	if err != nil {
		panic(err)
	}
	return s
}

func parseFormula(src string) (*Spec, error) {
	sides := splitTopLevel(src, '~')
	if len(sides) != 2 {
		return nil, usageErrorf("facet formula %q must contain exactly one ~", src)
	}
	spec := &Spec{Dims: make([][]Expr, 2)}
	for i, side := range sides {
		exprs, err := parseList(splitTopLevel(side, '+'))
		if err != nil {
			return nil, err
		}
		spec.Dims[i] = exprs
	}
	return spec, nil
}

// parseList parses the terms, dropping empty ones and the "." placeholder.
func parseList(terms []string) ([]Expr, error) {
	var exprs []Expr
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || t == "." {
			continue
		}
		e, err := ParseExpr(t)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return dedupe(exprs), nil
}

// splitTopLevel splits s at sep outside of parentheses, brackets and
// quotes.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	var quote rune
	escaped := false
	for i, r := range s {
		switch {
		case quote != 0:
			if escaped {
				escaped = false
			} else if r == '\\' && quote != '`' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'' || r == '`':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}

// dedupe drops expressions whose name was already seen. The first one
// wins.
func dedupe(exprs []Expr) []Expr {
	seen := make(map[string]bool, len(exprs))
	out := exprs[:0:0]
	for _, e := range exprs {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}

// Flatten returns s with all dimensions joined into one.
func (s *Spec) Flatten() *Spec {
	var all []Expr
	for _, d := range s.Dims {
		all = append(all, d...)
	}
	return &Spec{Dims: [][]Expr{dedupe(all)}}
}

// Exprs returns the expressions of all dimensions.
func (s *Spec) Exprs() []Expr {
	var all []Expr
	for _, d := range s.Dims {
		all = append(all, d...)
	}
	return all
}

// Names returns the variable names of all dimensions.
func (s *Spec) Names() []string {
	return exprNames(s.Exprs())
}

// IsEmpty reports whether s contains no facet variables at all.
func (s *Spec) IsEmpty() bool {
	return len(s.Exprs()) == 0
}

func (s *Spec) String() string {
	dims := make([]string, len(s.Dims))
	for i, d := range s.Dims {
		names := make([]string, len(d))
		for j, e := range d {
			names[j] = e.String()
		}
		if len(names) == 0 {
			dims[i] = "."
		} else {
			dims[i] = strings.Join(names, " + ")
		}
	}
	return strings.Join(dims, " ~ ")
}

func exprNames(exprs []Expr) []string {
	names := make([]string, len(exprs))
	for i, e := range exprs {
		names[i] = e.Name
	}
	return names
}

// gridSpec builds the two-dimensional spec of a grid. If cols is nil
// and rows is a formula, the formula provides both dimensions.
func gridSpec(rows, cols interface{}) (*Spec, error) {
	r, err := gridDim(rows)
	if err != nil {
		return nil, err
	}
	if cols == nil && len(r.Dims) == 2 {
		return checkGrid(r)
	}
	c, err := gridDim(cols)
	if err != nil {
		return nil, err
	}
	spec := &Spec{Dims: [][]Expr{r.Flatten().Dims[0], c.Flatten().Dims[0]}}
	return checkGrid(spec)
}

// gridDim parses one grid dimension. Strings which are no formula list
// their expressions separated by "+" or ";" like a formula side.
func gridDim(x interface{}) (*Spec, error) {
	src, ok := x.(string)
	if !ok || len(splitTopLevel(src, '~')) > 1 {
		return ParseSpec(x)
	}
	var terms []string
	for _, t := range splitTopLevel(src, ';') {
		terms = append(terms, splitTopLevel(t, '+')...)
	}
	exprs, err := parseList(terms)
	if err != nil {
		return nil, err
	}
	return &Spec{Dims: [][]Expr{exprs}}, nil
}

func checkGrid(s *Spec) (*Spec, error) {
	inRows := nameSet(exprNames(s.Dims[0]))
	var dup []string
	for _, e := range s.Dims[1] {
		if inRows[e.Name] {
			dup = append(dup, e.Name)
		}
	}
	if len(dup) > 0 {
		return nil, usageErrorf("Faceting variables can only appear in rows or cols, not both. Duplicated variables: %s",
			quoteNames(dup))
	}
	return s, nil
}
