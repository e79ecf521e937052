// Package cli implements the facetplot command-line interface.
//
// A plot is described by a YAML or TOML file naming a CSV data file, the
// aesthetics, the layers and the faceting. The commands are:
//   - render: draw the plot to a PNG file
//   - layout: print the panel layout table computed from the data
//
// All commands support --verbose (-v) for debug-level logging which
// includes the layout and scale dumps of package facet.
package cli
