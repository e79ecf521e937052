// Package facet produces faceted plots: the data is split by the values
// of one or more facet variables and every subset is drawn in a panel of
// its own.
//
// It tries to use or enhance gonum.org/v1/plot.
//
// # Facets
//
// The concept of facets is taken from ggplot2. Package facet knows about
// the following facets:
//   - Null   A single panel, no faceting at all.
//   - Wrap   Panels for the combinations of the facet variables, wrapped
//     into a rectangle of rows and columns.
//   - Grid   A matrix of panels: the row variables select the panel row,
//     the column variables the panel column.
//
// A render pass (see Plot.Build) calls the methods of a Facet in order:
// ComputeLayout determines the panels, MapData assigns each data row to
// a panel, InitScales and TrainScales set up one position scale per
// scale group and DrawPanels and DrawLabels arrange panels, axes, strips
// and axis titles in a gtable.Table.
//
// # Facet specifications
//
// The facet variables are given as expressions in Go syntax. A bare
// identifier refers to a data column, everything else is computed:
//
//	cyl
//	cyl > 4
//	cut_width(displ, 1)
//
// ParseSpec accepts a list of expressions separated by ";" or a formula
// "rows ~ cols" whose sides join expressions with "+" and use "." for
// no variable. The following functions are available:
//   - factor(x)              x unchanged
//   - str(x), upper(x), lower(x)
//   - paste(x, ...)          the values joined by a blank
//   - round(x [, digits]), floor(x), abs(x)
//   - ifelse(cond, a, b)
//   - cut_width(x, w [, boundary])  bins of width w
//   - cut_interval(x, n)     n bins of equal width
//   - cut_number(x, n)       n bins of about equal count
//
// # Scales
//
// The x and y position scales are trained per scale group: all panels
// share one group unless the facet's Scales field frees them. Free x
// scales of a Grid are shared by the panels of a column, free y scales
// by the panels of a row.
package facet
