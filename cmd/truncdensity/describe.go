package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/uyouii/truncated-density/kde"
	"github.com/uyouii/truncated-density/model"
	"github.com/uyouii/truncated-density/sampler"
	"github.com/uyouii/truncated-density/truncnorm"
	"github.com/uyouii/truncated-density/utils"
	"go.uber.org/zap"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the raw and truncated samples against the fitted distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := sampler.Draw(cfg.Params(), cfg.SampleSize, cfg.Seed)
		if err != nil {
			return err
		}
		sample := sampler.Truncate(raw, cfg.Threshold)

		w := cmd.OutOrStdout()
		for _, s := range []struct {
			name   string
			values []float64
		}{{"raw", raw}, {"truncated", sample.Values}} {
			summary, err := sampler.Describe(s.values)
			if err != nil {
				return fmt.Errorf("%s sample: %w", s.name, err)
			}
			printSummary(w, s.name, summary)
		}

		dist, err := truncnorm.NewEvaluator(cfg.EvaluatorOptions()...).Distribution(sample.Values, cfg.Threshold)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nfitted      %s, Z %.6g, mean %.6g\n", dist.Params.DebugString(), dist.Z(), dist.Mean())

		kdeQuantiles, err := kde.Quantiles(cmd.Context(), sample.Values, cfg.Threshold, describeQuantiles, cfg.KDEOptions()...)
		if err != nil {
			// fitted quantiles are printed alone
			utils.GetLogger(cmd.Context()).Warn("kde quantiles skipped", zap.Error(err))
		}
		printQuantiles(w, dist, kdeQuantiles)
		return nil
	},
}

var describeQuantiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

func printQuantiles(w io.Writer, dist *truncnorm.Distribution, kdeQuantiles []*model.QuantileValue) {
	estimated := make(map[float64]float64, len(kdeQuantiles))
	for _, q := range kdeQuantiles {
		estimated[q.Quantile] = q.Value
	}

	fmt.Fprintf(w, "  %8s %10s %10s\n", "quantile", "fitted", "kde")
	for _, p := range describeQuantiles {
		fitted := dist.QuantileValue(p)
		kdeValue := "-"
		if v, ok := estimated[p]; ok {
			kdeValue = fmt.Sprintf("%.3f", v)
		}
		fmt.Fprintf(w, "  %8g %10.3f %10s\n", fitted.Quantile, utils.FormatFloat(fitted.Value, 3), kdeValue)
	}
}

func printSummary(w io.Writer, name string, s *model.SampleSummary) {
	fmt.Fprintf(w, "%-11s N %d  mean %.6g  std dev %.6g  min %.6g  max %.6g\n",
		name, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	for _, p := range sampler.SummaryPercentiles {
		key := fmt.Sprintf("p%d", p)
		fmt.Fprintf(w, "  %5s %.6g\n", key, s.Percentiles[key])
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
