package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGraphDoc = `
assets:
  - id: E
    type: js
    size: 100
  - id: A
    type: js
    size: 200
dependencies:
  - id: dE
    to: [E]
    entry: true
  - id: d1
    from: E
    to: [A]
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["plan"])
	assert.True(t, names["config"])
}

func TestPlanCommandMissingGraphFlag(t *testing.T) {
	_, err := runCommand(t, "plan")
	assert.Error(t, err)
}

func TestPlanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.yaml")
	require.NoError(t, os.WriteFile(graphPath, []byte(testGraphDoc), 0644))

	out, err := runCommand(t, "plan", "--graph", graphPath, "--json")
	require.NoError(t, err)

	var views []bundleView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "entry", views[0].Kind)
	assert.Equal(t, "E", views[0].Root)
	assert.Equal(t, []string{"A", "E"}, views[0].Assets)
	assert.Equal(t, uint64(300), views[0].Size)

	jsonOutput = false
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "parcelrc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("http: 1\n"), 0644))

	out, err := runCommand(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "minBundleSize:       30000")
	assert.Contains(t, out, "maxParallelRequests: 6")
}
