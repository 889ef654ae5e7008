package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uyouii/truncated-density/config"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "truncdensity",
	Short: "Fit and draw truncated normal densities",
	Long: `truncdensity simulates normal draws, keeps those above a threshold and
compares their density histogram with the normal density renormalized over
the truncated range.

Settings come from defaults, then --config (YAML), then TRUNCDENSITY_*
environment variables, then flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := utils.NewLogger(loaded.LogLevel)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		cmd.SetContext(utils.WithLogger(cmd.Context(), logger))

		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = utils.GetLogger(cmd.Context()).Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config `file`")
	flags.Float64("mean", d.Mean, "mean of the generating normal distribution")
	flags.Float64("std-dev", d.StdDev, "standard deviation of the generating normal distribution")
	flags.IntP("samples", "n", d.SampleSize, "number of draws before truncation")
	flags.Uint64("seed", d.Seed, "random seed")
	flags.Float64P("threshold", "t", d.Threshold, "keep draws >= threshold")
	flags.Int("grid-size", d.GridSize, "number of density grid points")
	flags.Int("bins", d.Bins, "histogram bins")
	flags.String("normalization", d.Normalization, `normalize over the observed "range" or the "support" [threshold, inf)`)
	flags.String("bandwidth", d.Bandwidth, "kde bandwidth rule: normal, scott or silverman")
	flags.String("log-level", d.LogLevel, "log level")
}

// applyFlags copies the flags given on the command line over c.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	if changed("mean") {
		c.Mean, _ = flags.GetFloat64("mean")
	}
	if changed("std-dev") {
		c.StdDev, _ = flags.GetFloat64("std-dev")
	}
	if changed("samples") {
		c.SampleSize, _ = flags.GetInt("samples")
	}
	if changed("seed") {
		c.Seed, _ = flags.GetUint64("seed")
	}
	if changed("threshold") {
		c.Threshold, _ = flags.GetFloat64("threshold")
	}
	if changed("grid-size") {
		c.GridSize, _ = flags.GetInt("grid-size")
	}
	if changed("bins") {
		c.Bins, _ = flags.GetInt("bins")
	}
	if changed("normalization") {
		c.Normalization, _ = flags.GetString("normalization")
	}
	if changed("bandwidth") {
		c.Bandwidth, _ = flags.GetString("bandwidth")
	}
	if changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if changed("format") {
		c.Format, _ = flags.GetString("format")
	}
	if changed("width") {
		c.Width, _ = flags.GetInt("width")
	}
	if changed("height") {
		c.Height, _ = flags.GetInt("height")
	}
	if changed("kde") {
		c.KDE, _ = flags.GetBool("kde")
	}
}
