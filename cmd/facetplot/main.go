// Command facetplot renders faceted plots described in YAML or TOML files.
package main

import (
	"os"

	"github.com/vdobler/facet/v2/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
