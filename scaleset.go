package facet

import (
	"fmt"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// ScaleSet holds the x and y scales of one render pass. X[i] is the
// scale of x scale group i+1, Y likewise.
type ScaleSet struct {
	X, Y []Scaler
}

// InitScales clones x once per x scale group of layout and y once per y
// scale group. A nil master scale leaves its list empty.
func InitScales(layout *Layout, x, y Scaler) *ScaleSet {
	set := &ScaleSet{}
	if x != nil {
		set.X = make([]Scaler, layout.NumScalesX())
		for i := range set.X {
			set.X[i] = x.Clone()
		}
	}
	if y != nil {
		set.Y = make([]Scaler, layout.NumScalesY())
		for i := range set.Y {
			set.Y[i] = y.Clone()
		}
	}
	return set
}

// TrainScales trains every scale with the rows of the layers which were
// mapped to panels of its scale group. The layers must carry a PANEL
// column as added by MapData.
func TrainScales(set *ScaleSet, layout *Layout, layers []*table.Table) error {
	for i, data := range layers {
		if data == nil || data.Len() == 0 {
			continue
		}
		var panel []int
		slice.Convert(&panel, data.MustColumn(ColPanel))
		if err := trainAxis(set.X, layout, data, panel, func(p PanelLayout) int { return p.ScaleX }); err != nil {
			return fmt.Errorf("%s: %w", layerName(i), err)
		}
		if err := trainAxis(set.Y, layout, data, panel, func(p PanelLayout) int { return p.ScaleY }); err != nil {
			return fmt.Errorf("%s: %w", layerName(i), err)
		}
	}
	return nil
}

func trainAxis(scales []Scaler, layout *Layout, data *table.Table, panel []int, group func(PanelLayout) int) error {
	if len(scales) == 0 {
		return nil
	}
	var aes []string
	for _, a := range scales[0].Aesthetics() {
		if data.Column(a) != nil {
			aes = append(aes, a)
		}
	}
	if len(aes) == 0 {
		return nil
	}

	rows := make([][]int, len(scales))
	for r, id := range panel {
		p, ok := layout.Panel(id)
		if !ok {
			return fmt.Errorf("facet: row %d refers to unknown panel %d", r+1, id)
		}
		g := group(p)
		if g < 1 || g > len(scales) {
			return fmt.Errorf("facet: panel %d refers to scale %d of %d", id, g, len(scales))
		}
		rows[g-1] = append(rows[g-1], r)
	}
	for g, idx := range rows {
		if len(idx) == 0 {
			continue
		}
		for _, a := range aes {
			if err := scales[g].Train(slice.Select(data.Column(a), idx)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Finalize finalizes all position scales in set.
func (set *ScaleSet) Finalize() {
	for _, s := range append(append([]Scaler(nil), set.X...), set.Y...) {
		if ps, ok := s.(PositionScaler); ok {
			ps.Finalize()
		}
	}
}

// PanelScales returns the x and y scale of the panel p. They are nil if
// they are missing or not position scales.
func (set *ScaleSet) PanelScales(p PanelLayout) (x, y PositionScaler) {
	if p.ScaleX >= 1 && p.ScaleX <= len(set.X) {
		x, _ = set.X[p.ScaleX-1].(PositionScaler)
	}
	if p.ScaleY >= 1 && p.ScaleY <= len(set.Y) {
		y, _ = set.Y[p.ScaleY-1].(PositionScaler)
	}
	return x, y
}
