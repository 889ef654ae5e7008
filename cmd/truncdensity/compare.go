package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/truncated-density/overlay"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

var (
	compareThresholds []float64
	compareOut        string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Evaluate one sample truncated at several thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cmp, err := overlay.Compare(ctx, cfg, compareThresholds)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%10s %8s %12s %12s\n", "threshold", "n", "Z", "support Z")
		for _, e := range cmp.Entries {
			fmt.Fprintf(w, "%10g %8d %12.6g %12.6g\n", e.Threshold, e.SampleSize, e.Grid.Z, e.SupportZ)
		}

		if compareOut == "" {
			return nil
		}
		out, err := writeChart(cmd, cmp.Chart, compareOut, "truncated_density_compare")
		if err != nil {
			return err
		}
		utils.GetLogger(ctx).Info("render comparison success", zap.String("out", out))
		return nil
	},
}

func init() {
	addChartFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&compareThresholds, "thresholds", []float64{0, 0.5, 1, 1.5}, "thresholds to compare")
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "also draw the comparison chart to `file`")
	rootCmd.AddCommand(compareCmd)
}
