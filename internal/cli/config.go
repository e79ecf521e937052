package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vdobler/facet/v2"
	"github.com/vdobler/facet/v2/geom"
	"gopkg.in/yaml.v3"
)

// PlotConfig is the plot description read from a YAML or TOML file.
type PlotConfig struct {
	// Data is the CSV file with the plot data, relative to the config
	// file.
	Data string `yaml:"data" toml:"data"`

	Title    string `yaml:"title" toml:"title"`
	SubTitle string `yaml:"subtitle" toml:"subtitle"`
	XLab     string `yaml:"xlab" toml:"xlab"`
	YLab     string `yaml:"ylab" toml:"ylab"`

	Aes    map[string]string `yaml:"aes" toml:"aes"`
	Layers []LayerConfig     `yaml:"layers" toml:"layers"`
	Facet  FacetConfig       `yaml:"facet" toml:"facet"`
	X      ScaleConfig       `yaml:"x" toml:"x"`
	Y      ScaleConfig       `yaml:"y" toml:"y"`

	// Width and Height of the image in points.
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	FontSize float64 `yaml:"font_size" toml:"font_size"`
}

// LayerConfig describes one layer.
type LayerConfig struct {
	Geom string            `yaml:"geom" toml:"geom"`
	Data string            `yaml:"data" toml:"data"`
	Aes  map[string]string `yaml:"aes" toml:"aes"`
}

// FacetConfig selects and configures the facet.
type FacetConfig struct {
	// Type is "wrap", "grid" or empty for a single panel.
	Type string `yaml:"type" toml:"type"`

	// Vars are the wrap variables: a list of expressions separated by
	// ";" or a formula.
	Vars string `yaml:"vars" toml:"vars"`

	// Rows and Cols are the grid dimensions. Rows may be a formula
	// "rows ~ cols" if Cols is empty.
	Rows string `yaml:"rows" toml:"rows"`
	Cols string `yaml:"cols" toml:"cols"`

	NCol          int    `yaml:"ncol" toml:"ncol"`
	NRow          int    `yaml:"nrow" toml:"nrow"`
	Dir           string `yaml:"dir" toml:"dir"`
	AsTable       *bool  `yaml:"as_table" toml:"as_table"`
	Drop          *bool  `yaml:"drop" toml:"drop"`
	Scales        string `yaml:"scales" toml:"scales"`
	StripPosition string `yaml:"strip_position" toml:"strip_position"`
	Switch        string `yaml:"switch" toml:"switch"`

	// Labeller is "value" (default) or "both".
	Labeller string `yaml:"labeller" toml:"labeller"`
}

// ScaleConfig configures a position scale.
type ScaleConfig struct {
	Title    string   `yaml:"title" toml:"title"`
	Discrete bool     `yaml:"discrete" toml:"discrete"`
	Trans    string   `yaml:"trans" toml:"trans"`
	Min      *float64 `yaml:"min" toml:"min"`
	Max      *float64 `yaml:"max" toml:"max"`
}

// loadConfig reads the plot description at path. Files ending in .toml
// are parsed as TOML, everything else as YAML.
func loadConfig(path string) (*PlotConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parseConfig(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	cfg.Data = resolvePath(dir, cfg.Data)
	for i := range cfg.Layers {
		cfg.Layers[i].Data = resolvePath(dir, cfg.Layers[i].Data)
	}
	return cfg, nil
}

func parseConfig(raw []byte, ext string) (*PlotConfig, error) {
	var cfg PlotConfig
	if strings.EqualFold(ext, ".toml") {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Width == 0 {
		cfg.Width = 576
	}
	if cfg.Height == 0 {
		cfg.Height = 432
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = 12
	}
	return &cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// facet builds the configured facet.
func (c FacetConfig) facet() (facet.Facet, error) {
	lab, err := labeller(c.Labeller)
	if err != nil {
		return nil, err
	}
	switch c.Type {
	case "", "null", "none":
		return facet.Null{}, nil
	case "wrap":
		w, err := facet.NewWrap(c.Vars)
		if err != nil {
			return nil, err
		}
		w.NCol, w.NRow, w.Dir = c.NCol, c.NRow, c.Dir
		w.Scales, w.StripPosition, w.Labeller = c.Scales, c.StripPosition, lab
		if c.AsTable != nil {
			w.AsTable = *c.AsTable
		}
		if c.Drop != nil {
			w.Drop = *c.Drop
		}
		return w, nil
	case "grid":
		var rows, cols interface{} = c.Rows, nil
		if c.Cols != "" {
			cols = c.Cols
		}
		g, err := facet.NewGrid(rows, cols)
		if err != nil {
			return nil, err
		}
		g.Scales, g.Switch, g.Labeller = c.Scales, c.Switch, lab
		if c.AsTable != nil {
			g.AsTable = *c.AsTable
		}
		if c.Drop != nil {
			g.Drop = *c.Drop
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown facet type %q", c.Type)
}

func labeller(name string) (facet.Labeller, error) {
	switch name {
	case "", "value":
		return facet.LabelValue, nil
	case "both":
		return facet.LabelBoth, nil
	}
	return nil, fmt.Errorf("unknown labeller %q", name)
}

// scale builds the master scale for the aesthetics aes. The zero config
// yields nil so that the scale type follows the data.
func (c ScaleConfig) scale(aes []string) (facet.Scaler, error) {
	if c.Discrete {
		s := facet.NewDiscreteScale(aes...)
		s.Title = c.Title
		return s, nil
	}
	if c == (ScaleConfig{}) {
		return nil, nil
	}
	s := facet.NewScale(aes...)
	s.Title = c.Title
	if c.Trans != "" {
		t, ok := facet.TransByName(c.Trans)
		if !ok {
			return nil, fmt.Errorf("unknown transformation %q", c.Trans)
		}
		s.Trans = t
	}
	if c.Min != nil {
		s.FixMin(*c.Min)
	}
	if c.Max != nil {
		s.FixMax(*c.Max)
	}
	return s, nil
}

// geomByName returns the geom called name.
func geomByName(name string) (facet.Geom, error) {
	switch strings.ToLower(name) {
	case "point", "":
		return geom.Point{}, nil
	case "path":
		return geom.Path{}, nil
	case "line":
		return geom.Line{}, nil
	case "step":
		return geom.Step{}, nil
	case "segment":
		return geom.Segment{}, nil
	case "rect":
		return geom.Rect{}, nil
	case "hline":
		return geom.HLine{}, nil
	case "vline":
		return geom.VLine{}, nil
	case "text":
		return geom.Text{}, nil
	}
	return nil, fmt.Errorf("unknown geom %q", name)
}
