package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uyouii/truncated-density/config"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/overlay"
	"github.com/uyouii/truncated-density/render"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw the density histogram with the fitted truncated density on top",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := utils.GetLogger(ctx)

		res, err := overlay.Build(ctx, cfg)
		if err != nil {
			return err
		}

		out, err := writeChart(cmd, res.Chart, renderOut, "truncated_density")
		if err != nil {
			logger.Error("render chart failed", zap.Error(err))
			return err
		}
		logger.Info("render chart success", zap.String("out", out), zap.String("chart", res.Chart.DebugString()))
		return nil
	},
}

func init() {
	addChartFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output `file`, - for stdout (default truncated_density.<format>)")
	renderCmd.Flags().Bool("kde", false, "add a kernel density estimate of the truncated sample")
	rootCmd.AddCommand(renderCmd)
}

func addChartFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().StringP("format", "f", d.Format, "output format: svg, png or txt")
	cmd.Flags().Int("width", d.Width, "chart width")
	cmd.Flags().Int("height", d.Height, "chart height")
}

// writeChart renders chart to out, or to <base>.<ext> when out is empty.
func writeChart(cmd *cobra.Command, chart *model.OverlayChart, out, base string) (string, error) {
	r, err := render.New(cfg.Format, cfg.Width, cfg.Height)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = base + "." + r.Extension()
	}

	if out == "-" {
		return out, r.Render(cmd.OutOrStdout(), chart)
	}

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := r.Render(f, chart); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", out, err)
	}
	return out, nil
}
