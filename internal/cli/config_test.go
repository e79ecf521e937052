package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/facet/v2"
	"github.com/vdobler/facet/v2/geom"
)

const yamlConfig = `
data: mpg.csv
title: Fuel economy
aes:
  x: displ
  y: hwy
layers:
  - geom: point
    aes:
      colour: class
  - geom: line
    data: trend.csv
facet:
  type: wrap
  vars: "class; drv"
  ncol: 3
  scales: free_y
  as_table: false
x:
  title: Displacement
  min: 1
y:
  trans: log10
`

const tomlConfig = `
data = "mpg.csv"
width = 300
font_size = 9

[aes]
x = "displ"
y = "hwy"

[facet]
type = "grid"
rows = "drv"
cols = "cyl"
switch = "both"
labeller = "both"

[x]
discrete = true
`

func TestParseConfigYAML(t *testing.T) {
	cfg, err := parseConfig([]byte(yamlConfig), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, "mpg.csv", cfg.Data)
	assert.Equal(t, "Fuel economy", cfg.Title)
	assert.Equal(t, map[string]string{"x": "displ", "y": "hwy"}, cfg.Aes)
	require.Len(t, cfg.Layers, 2)
	assert.Equal(t, "class", cfg.Layers[0].Aes["colour"])
	assert.Equal(t, "trend.csv", cfg.Layers[1].Data)
	assert.Equal(t, "wrap", cfg.Facet.Type)
	assert.Equal(t, 3, cfg.Facet.NCol)
	require.NotNil(t, cfg.Facet.AsTable)
	assert.False(t, *cfg.Facet.AsTable)
	assert.Nil(t, cfg.Facet.Drop)
	require.NotNil(t, cfg.X.Min)
	assert.Equal(t, 1.0, *cfg.X.Min)
	assert.Equal(t, "log10", cfg.Y.Trans)

	// Defaults.
	assert.Equal(t, 576.0, cfg.Width)
	assert.Equal(t, 432.0, cfg.Height)
	assert.Equal(t, 12.0, cfg.FontSize)
}

func TestParseConfigTOML(t *testing.T) {
	cfg, err := parseConfig([]byte(tomlConfig), ".TOML")
	require.NoError(t, err)

	assert.Equal(t, "mpg.csv", cfg.Data)
	assert.Equal(t, 300.0, cfg.Width)
	assert.Equal(t, 432.0, cfg.Height)
	assert.Equal(t, 9.0, cfg.FontSize)
	assert.Equal(t, "grid", cfg.Facet.Type)
	assert.Equal(t, "drv", cfg.Facet.Rows)
	assert.Equal(t, "cyl", cfg.Facet.Cols)
	assert.Equal(t, "both", cfg.Facet.Switch)
	assert.True(t, cfg.X.Discrete)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := parseConfig([]byte("aes: [x"), ".yaml")
	assert.Error(t, err)

	_, err = parseConfig([]byte("aes = "), ".toml")
	assert.Error(t, err)
}

func TestLoadConfigResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mpg.csv"), cfg.Data)
	assert.Equal(t, "", cfg.Layers[0].Data)
	assert.Equal(t, filepath.Join(dir, "trend.csv"), cfg.Layers[1].Data)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFacetConfig(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		f, err := FacetConfig{}.facet()
		require.NoError(t, err)
		assert.IsType(t, facet.Null{}, f)
	})

	t.Run("wrap", func(t *testing.T) {
		no := false
		f, err := FacetConfig{Type: "wrap", Vars: "a; b", NRow: 2, Dir: "v", Drop: &no, Labeller: "both"}.facet()
		require.NoError(t, err)
		w, ok := f.(*facet.Wrap)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, w.Spec.Names())
		assert.Equal(t, 2, w.NRow)
		assert.Equal(t, "v", w.Dir)
		assert.True(t, w.AsTable)
		assert.False(t, w.Drop)
		assert.NotNil(t, w.Labeller)
	})

	t.Run("grid formula", func(t *testing.T) {
		f, err := FacetConfig{Type: "grid", Rows: "a ~ b", Scales: "free"}.facet()
		require.NoError(t, err)
		g, ok := f.(*facet.Grid)
		require.True(t, ok)
		require.Len(t, g.Spec.Dims, 2)
		assert.Equal(t, "free", g.Scales)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := FacetConfig{Type: "spiral"}.facet()
		assert.Error(t, err)
	})

	t.Run("unknown labeller", func(t *testing.T) {
		_, err := FacetConfig{Type: "wrap", Vars: "a", Labeller: "fancy"}.facet()
		assert.Error(t, err)
	})
}

func TestScaleConfig(t *testing.T) {
	s, err := ScaleConfig{}.scale(facet.XAesthetics)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ScaleConfig{Discrete: true, Title: "Class"}.scale(facet.XAesthetics)
	require.NoError(t, err)
	ds, ok := s.(*facet.DiscreteScale)
	require.True(t, ok)
	assert.Equal(t, "Class", ds.Title)

	lo, hi := 2.0, 8.0
	s, err = ScaleConfig{Trans: "log10", Min: &lo, Max: &hi}.scale(facet.YAesthetics)
	require.NoError(t, err)
	cs, ok := s.(*facet.Scale)
	require.True(t, ok)
	assert.Equal(t, "Log10", cs.Trans.Name)
	assert.Equal(t, 2.0, cs.MinRange.Min)
	assert.Equal(t, 8.0, cs.MaxRange.Max)
	assert.Equal(t, facet.YAesthetics, cs.Aesthetics())

	_, err = ScaleConfig{Trans: "cubic"}.scale(facet.YAesthetics)
	assert.Error(t, err)
}

func TestGeomByName(t *testing.T) {
	tests := []struct {
		name string
		want facet.Geom
	}{
		{"", geom.Point{}},
		{"Point", geom.Point{}},
		{"path", geom.Path{}},
		{"line", geom.Line{}},
		{"step", geom.Step{}},
		{"segment", geom.Segment{}},
		{"rect", geom.Rect{}},
		{"hline", geom.HLine{}},
		{"vline", geom.VLine{}},
		{"text", geom.Text{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := geomByName(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
		})
	}

	_, err := geomByName("violin")
	assert.Error(t, err)
}
