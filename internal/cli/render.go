package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
	"github.com/vdobler/facet/v2"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string  // output PNG file
	width  float64 // overrides the config width if > 0
	height float64 // overrides the config height if > 0
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [config]",
		Short: "Render a plot description to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: config name with .png)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "image width in points")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "image height in points")
	return cmd
}

func runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	start := time.Now()

	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.output == "" {
		opts.output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	p, err := plotFromConfig(cfg)
	if err != nil {
		return err
	}
	built, err := p.Build()
	if err != nil {
		return err
	}
	logger.Debug("plot built", "panels", built.Layout.NumPanels(),
		"x scales", built.Layout.NumScalesX(), "y scales", built.Layout.NumScalesY())

	if err := writePNG(opts.output, built, vg.Points(cfg.Width), vg.Points(cfg.Height)); err != nil {
		return err
	}
	logger.Infof("wrote %s (%s)", opts.output, time.Since(start).Round(time.Millisecond))
	return nil
}

// plotFromConfig loads the data and assembles the plot described by cfg.
func plotFromConfig(cfg *PlotConfig) (*facet.Plot, error) {
	data, layerData, err := loadData(cfg)
	if err != nil {
		return nil, err
	}
	return buildPlot(cfg, data, layerData)
}

// buildPlot assembles the plot described by cfg on already loaded data.
// A config without layers draws points.
func buildPlot(cfg *PlotConfig, data *table.Table, layerData []*table.Table) (*facet.Plot, error) {
	f, err := cfg.Facet.facet()
	if err != nil {
		return nil, err
	}
	x, err := cfg.X.scale(facet.XAesthetics)
	if err != nil {
		return nil, err
	}
	y, err := cfg.Y.scale(facet.YAesthetics)
	if err != nil {
		return nil, err
	}
	style := facet.DefaultFacetStyle(vg.Length(cfg.FontSize))

	p := &facet.Plot{
		Data:     data,
		Aes:      facet.Aes(cfg.Aes),
		Facet:    f,
		X:        x,
		Y:        y,
		Style:    &style,
		Title:    cfg.Title,
		SubTitle: cfg.SubTitle,
		XLab:     cfg.XLab,
		YLab:     cfg.YLab,
	}
	layers := cfg.Layers
	if len(layers) == 0 {
		layers = []LayerConfig{{Geom: "point"}}
	}
	for i, l := range layers {
		g, err := geomByName(l.Geom)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		var d *table.Table
		if i < len(layerData) {
			d = layerData[i]
		}
		p.Layers = append(p.Layers, facet.Layer{Data: d, Aes: facet.Aes(l.Aes), Geom: g})
	}
	return p, nil
}

func writePNG(path string, built *facet.Built, w, h vg.Length) error {
	img := vgimg.New(w, h)
	built.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
