package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
)

// readCSV reads a CSV file with a header row into a table. Columns whose
// values all parse as numbers become int or float64 columns.
func readCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parseCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	return table.TableFromStrings(records[0], records[1:], true), nil
}

// loadData reads the plot data and the data of every layer which names
// its own file.
func loadData(cfg *PlotConfig) (*table.Table, []*table.Table, error) {
	var plotData *table.Table
	if cfg.Data != "" {
		t, err := readCSV(cfg.Data)
		if err != nil {
			return nil, nil, err
		}
		plotData = t
	}
	layers := make([]*table.Table, len(cfg.Layers))
	for i, l := range cfg.Layers {
		if l.Data == "" {
			continue
		}
		t, err := readCSV(l.Data)
		if err != nil {
			return nil, nil, err
		}
		layers[i] = t
	}
	return plotData, layers, nil
}
