package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/truncated-density/overlay"
	"github.com/uyouii/truncated-density/render"
)

var evaluateRows int

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Print the truncated density grid and its normalization",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := overlay.Build(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		grid := res.Grid
		fmt.Fprintf(w, "sample      %d values >= %g\n", len(res.Sample.Values), res.Sample.Threshold)
		fmt.Fprintf(w, "fitted      %s\n", grid.Params.DebugString())
		fmt.Fprintf(w, "bounds      [%g, %g] (%s)\n", grid.Bounds.Lower, grid.Bounds.Upper, cfg.Normalization)
		fmt.Fprintf(w, "Z           %.6g\n", grid.Z)
		fmt.Fprintf(w, "integral    %.6g over %d points\n\n", grid.Integral(), grid.Len())
		return render.WriteDensityTable(w, grid.Points, evaluateRows)
	},
}

func init() {
	evaluateCmd.Flags().IntVar(&evaluateRows, "rows", 20, "grid rows to print")
	rootCmd.AddCommand(evaluateCmd)
}
