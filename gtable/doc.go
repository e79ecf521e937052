// Package gtable arranges grobs (graphical objects) in a rectangular
// table of rows and columns.
//
// A Table has a width for every column and a height for every row. A
// track is either Fixed, measured in vg.Length, or Null which shares the
// space left over by the fixed tracks equally with the other Null tracks.
// Cells place a grob on a contiguous range of rows and columns and carry a
// name. Names follow a structural prefix convention ("panel", "axis",
// "strip", "xlab", "ylab", "title") which the geometry helpers FindPanelRegion,
// PanelCols and PanelRows rely on.
//
// Table implements the Element and Group interfaces of
// github.com/aclements/go-gg/gg/layout so it can be laid out as part of a
// larger layout hierarchy.
package gtable
