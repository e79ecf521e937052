package facet

import (
	"github.com/aclements/go-gg/table"
)

// possibleColumns returns the set of column names of all layers.
func possibleColumns(layers []*table.Table) map[string]bool {
	return nameSet(columnNames(layers))
}

// evalFacets evaluates exprs on data. The result has one entry per
// expression, nil for expressions which cannot be computed on data.
func evalFacets(exprs []Expr, data *table.Table, possible map[string]bool) ([][]interface{}, error) {
	ctx := &EvalContext{Data: data, Possible: possible}
	vals := make([][]interface{}, len(exprs))
	for i, e := range exprs {
		v, err := ctx.Eval(e)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// combineVars computes the combinations of the facet variables found in
// the layers. Layers providing all variables contribute their observed
// combinations. Layers providing only some of them are crossed with the
// values of the remaining variables. With drop unset, the observed
// levels are expanded into all possible combinations.
func combineVars(layers []*table.Table, exprs []Expr, possible map[string]bool, drop bool) (*combos, error) {
	names := exprNames(exprs)
	base := newCombos(names)
	if len(exprs) == 0 {
		return base, nil
	}

	values := make([][][]interface{}, len(layers))
	hasAll := make([]bool, len(layers))
	missing := make([][]string, len(layers))
	anyAll := false
	for i, l := range layers {
		vals, err := evalFacets(exprs, l, possible)
		if err != nil {
			return nil, err
		}
		values[i] = vals
		for j, v := range vals {
			if v == nil {
				missing[i] = append(missing[i], names[j])
			}
		}
		hasAll[i] = len(missing[i]) == 0
		anyAll = anyAll || hasAll[i]
	}
	if !anyAll {
		return nil, &IncompleteFacetingError{Vars: names, Missing: missing}
	}

	for i, vals := range values {
		if !hasAll[i] {
			continue
		}
		for r := range vals[0] {
			row := make([]interface{}, len(vals))
			for j := range vals {
				row[j] = vals[j][r]
			}
			base.add(row)
		}
	}
	if base.len() == 0 {
		return nil, &EmptyFacetingError{Vars: names}
	}
	if !drop {
		base.expand()
	}

	for i, vals := range values {
		if hasAll[i] {
			continue
		}
		var have, other []int
		for j, v := range vals {
			if v == nil {
				other = append(other, j)
			} else {
				have = append(have, j)
			}
		}
		if len(have) == 0 || len(vals[have[0]]) == 0 {
			continue
		}

		partial := newCombos(pick(names, have))
		for r := range vals[have[0]] {
			row := make([]interface{}, len(have))
			for k, j := range have {
				row[k] = vals[j][r]
			}
			partial.add(row)
		}
		if drop {
			partial.expand()
		}

		old := base.project(other)
		for _, p := range partial.rows {
			for _, o := range old {
				row := make([]interface{}, len(names))
				for k, j := range have {
					row[j] = p[k]
				}
				for k, j := range other {
					row[j] = o[k]
				}
				base.add(row)
			}
		}
		logger.Debug("facet layer crossed with other variables", "layer", layerName(i),
			"has", pick(names, have), "combinations", base.len())
	}
	return base, nil
}

func pick(names []string, idx []int) []string {
	out := make([]string, len(idx))
	for k, j := range idx {
		out[k] = names[j]
	}
	return out
}
