package facet

import (
	"fmt"
	"strings"
)

// A UsageError reports a malformed faceting specification or layout.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return "facet: " + e.Msg }

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// MissingVariableError is raised while evaluating a facet expression
// which refers to a column present in some layer but not in the data
// at hand. It never leaves the evaluator: Eval turns it into an absent
// result.
type MissingVariableError struct {
	Var string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("facet: variable %q is missing from this layer", e.Var)
}

// IncompleteFacetingError is returned if no layer provides all faceting
// variables.
type IncompleteFacetingError struct {
	Vars []string
	// Missing lists the missing variables for each layer.
	Missing [][]string
}

func (e *IncompleteFacetingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "facet: at least one layer must contain all faceting variables: %s",
		quoteNames(e.Vars))
	for i, m := range e.Missing {
		if len(m) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n* %s is missing %s", layerName(i), quoteNames(m))
	}
	return b.String()
}

// EmptyFacetingError is returned if the faceting variables do not
// produce a single panel.
type EmptyFacetingError struct {
	Vars []string
}

func (e *EmptyFacetingError) Error() string {
	return fmt.Sprintf("facet: faceting variables %s must have at least one value", quoteNames(e.Vars))
}

// layerName names the i'th layer data: the first entry is the plot data.
func layerName(i int) string {
	if i == 0 {
		return "Plot"
	}
	return fmt.Sprintf("Layer %d", i)
}

func quoteNames(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "`" + n + "`"
	}
	return strings.Join(q, ", ")
}
