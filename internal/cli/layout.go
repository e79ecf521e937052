package cli

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
	"github.com/vdobler/facet/v2"
)

func newLayoutCmd() *cobra.Command {
	var scales bool

	cmd := &cobra.Command{
		Use:   "layout [config]",
		Short: "Print the panel layout of a plot description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			p, err := plotFromConfig(cfg)
			if err != nil {
				return err
			}
			return printLayout(cmd.OutOrStdout(), p, scales)
		},
	}
	cmd.Flags().BoolVar(&scales, "scales", false, "print the trained scales, too")
	return cmd
}

// printLayout builds p and prints its layout table and, if scales is
// set, its scale groups to w.
func printLayout(w io.Writer, p *facet.Plot, scales bool) error {
	built, err := p.Build()
	if err != nil {
		return err
	}
	if err := table.Fprint(w, built.Layout.Table()); err != nil {
		return err
	}
	if !scales {
		return nil
	}
	for i, s := range built.Scales.X {
		fmt.Fprintf(w, "SCALE_X %d: %v\n", i+1, s)
	}
	for i, s := range built.Scales.Y {
		fmt.Fprintf(w, "SCALE_Y %d: %v\n", i+1, s)
	}
	return nil
}
