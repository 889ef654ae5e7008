package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/truncated-density/truncnorm"
)

// resetFlags puts every flag of cmd and its subcommands back to its default,
// so a run never sees values parsed by an earlier one.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var defaults []string
			if trimmed := strings.Trim(f.DefValue, "[]"); trimmed != "" {
				defaults = strings.Split(trimmed, ",")
			}
			require.NoError(t, sv.Replace(defaults), f.Name)
		} else {
			require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "truncdensity version "+Version+"\n", run(t, "version"))
}

func TestEvaluate(t *testing.T) {
	out := run(t, "evaluate", "-n", "2000", "--grid-size", "500", "--rows", "5", "--log-level", "error")
	assert.Contains(t, out, "values >= 0.5")
	assert.Contains(t, out, "over 500 points")
	assert.Contains(t, out, "density")
	assert.Equal(t, 500, cfg.GridSize)
}

func TestRenderTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.txt")
	run(t, "render", "-n", "2000", "--grid-size", "500", "--format", "txt", "-o", path, "--log-level", "error")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## truncated density (500 points)")
	assert.Contains(t, string(data), "## unconditional density (500 points)")
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncdensity.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 1\nbins: 10\n"), 0o644))

	run(t, "describe", "--config", path, "-n", "2000", "--bins", "12", "--log-level", "error")
	assert.Equal(t, 1.0, cfg.Threshold)
	assert.Equal(t, 12, cfg.Bins)
}

func TestCompare(t *testing.T) {
	out := run(t, "compare", "-n", "2000", "--grid-size", "200", "--log-level", "error")
	assert.Contains(t, out, "support Z")
	assert.Contains(t, out, "0.158655")
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "evaluate", "--normalization", "tail")
	assert.Error(t, err)

	_, err = execute(t, "describe", "--bandwidth", "wide")
	assert.Error(t, err)
}

func TestFlagsDoNotCarryOver(t *testing.T) {
	run(t, "evaluate", "-n", "2000", "--grid-size", "500", "-t", "1", "--rows", "3", "--log-level", "error")
	require.Equal(t, 500, cfg.GridSize)

	out := run(t, "evaluate", "-n", "2000", "--log-level", "error")
	assert.Equal(t, truncnorm.DefaultGridSize, cfg.GridSize)
	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Contains(t, out, "values >= 0.5")

	rows := func(out string) int {
		return len(strings.Split(strings.TrimSpace(out), "\n")) - 1
	}
	out = run(t, "compare", "-n", "2000", "--grid-size", "200", "--thresholds", "0,1", "--log-level", "error")
	assert.Equal(t, 2, rows(out))
	out = run(t, "compare", "-n", "2000", "--grid-size", "200", "--log-level", "error")
	assert.Equal(t, 4, rows(out))
}

func TestDescribe(t *testing.T) {
	out := run(t, "describe", "-n", "2000", "--bandwidth", "scott", "--log-level", "error")
	assert.Equal(t, "scott", cfg.Bandwidth)
	assert.Contains(t, out, "truncated")
	assert.Contains(t, out, "quantile")
	assert.Contains(t, out, "kde")
	assert.NotContains(t, out, " -\n")
}
