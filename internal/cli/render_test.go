package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mpgCSV = `displ,hwy,drv,class
1.8,29,f,compact
2.0,31,f,compact
2.8,26,4,suv
3.1,27,f,midsize
5.7,17,r,suv
4.2,23,4,suv
`

func writeFixture(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mpg.csv"), []byte(mpgCSV), 0o644))
	path := filepath.Join(dir, "plot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderWrap(t *testing.T) {
	path := writeFixture(t, `
data: mpg.csv
title: Highway mileage
aes: {x: displ, y: hwy}
layers:
  - geom: point
    aes: {colour: drv}
  - geom: line
facet: {type: wrap, vars: class, ncol: 2}
`)
	out := filepath.Join(filepath.Dir(path), "out.png")

	_, err := runCmd(t, "render", path, "-o", out, "--width", "200", "--height", "150")
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")), "output is not a PNG")
}

func TestRenderDefaultOutput(t *testing.T) {
	path := writeFixture(t, `
data: mpg.csv
aes: {x: displ, y: hwy}
facet: {type: grid, rows: drv, scales: free}
`)
	_, err := runCmd(t, "render", path)
	require.NoError(t, err)

	_, err = os.Stat(strings.TrimSuffix(path, ".yaml") + ".png")
	assert.NoError(t, err)
}

func TestRenderMissingVariable(t *testing.T) {
	path := writeFixture(t, `
data: mpg.csv
aes: {x: displ, y: hwy}
facet: {type: wrap, vars: cyl}
`)
	_, err := runCmd(t, "render", path)
	assert.Error(t, err)
}

func TestRenderUnknownGeom(t *testing.T) {
	path := writeFixture(t, `
data: mpg.csv
aes: {x: displ, y: hwy}
layers: [{geom: violin}]
`)
	_, err := runCmd(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer 1")
}

func TestLayoutCommand(t *testing.T) {
	path := writeFixture(t, `
data: mpg.csv
aes: {x: displ, y: hwy}
facet: {type: wrap, vars: drv, scales: free_x}
`)
	out, err := runCmd(t, "layout", "--scales", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	for _, col := range []string{"PANEL", "ROW", "COL", "SCALE_X", "SCALE_Y", "drv"} {
		assert.Contains(t, lines[0], col)
	}
	// Header, three panels, three x scales and one y scale.
	assert.Len(t, lines, 1+3+3+1)
	assert.Contains(t, out, "SCALE_X 3:")
	assert.NotContains(t, out, "SCALE_Y 2:")
}
