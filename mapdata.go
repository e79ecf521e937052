package facet

import (
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// MapData assigns every row of data to a panel of layout and returns the
// data with an added PANEL column of type []int.
//
// Rows of a layer lacking some facet variables are replicated once for
// every combination of the missing variables in layout. Rows which match
// no panel are dropped. Nil or empty data yields an empty PANEL column.
func MapData(data *table.Table, layout *Layout) (*table.Table, error) {
	if data == nil || data.Len() == 0 {
		return table.NewBuilder(data).Add(ColPanel, []int{}).Done(), nil
	}
	n := data.Len()
	if len(layout.Exprs) == 0 {
		panel := make([]int, n)
		for i := range panel {
			panel[i] = layout.Panels[0].Panel
		}
		return table.NewBuilder(data).Add(ColPanel, panel).Done(), nil
	}

	c := &combos{vars: layout.Vars}
	for _, p := range layout.Panels {
		c.rows = append(c.rows, p.Values)
	}
	vals, err := evalFacets(layout.Exprs, data, nameSet(layout.Possible))
	if err != nil {
		return nil, err
	}

	var missing []int
	for j, v := range vals {
		if v == nil {
			missing = append(missing, j)
		}
	}
	toAdd := [][]interface{}{nil}
	if len(missing) > 0 {
		toAdd = c.project(missing)
	}

	var rows, panels []int
	row := make([]interface{}, len(vals))
	for _, add := range toAdd {
		for k, j := range missing {
			row[j] = add[k]
		}
		for i := 0; i < n; i++ {
			for j, v := range vals {
				if v != nil {
					row[j] = v[i]
				}
			}
			if id, ok := layout.Lookup(row); ok {
				rows = append(rows, i)
				panels = append(panels, id)
			}
		}
	}
	if dropped := n*len(toAdd) - len(rows); dropped > 0 {
		logger.Warn("facet: rows without panel removed", "rows", dropped)
	}
	if len(missing) > 0 {
		logger.Debug("facet: data replicated over missing variables",
			"missing", pick(layout.Vars, missing), "copies", len(toAdd))
	}

	b := new(table.Builder)
	for _, name := range data.Columns() {
		b.Add(name, slice.Select(data.Column(name), rows))
	}
	b.Add(ColPanel, panels)
	return b.Done(), nil
}
