package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/stats"
)

func newStatsCmd(_ *app) *cobra.Command {
	var col int

	cmd := &cobra.Command{
		Use:   "stats INPUT",
		Short: "Streaming statistics of a numeric column (Welford mean/variance, sketch quantiles)",
		Long: `Summarize column --col (0-based) of INPUT. A first line containing a comma
selects CSV parsing, otherwise fields are split on whitespace. Values that do
not parse as numbers are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stats.Column(args[0], col)
			if err != nil {
				return err
			}
			if s.Count == 0 {
				return stats.ErrNoValues
			}

			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().IntVar(&col, "col", 0, "0-based column index to analyze")

	return cmd
}

func printSummary(w io.Writer, s *stats.Summary) {
	optional := func(v float64, ok bool) string {
		if !ok {
			return "n/a"
		}
		return formatFloat(v)
	}

	fmt.Fprintln(w, field("count", s.Count))
	fmt.Fprintln(w, field("mean", formatFloat(s.Mean)))
	fmt.Fprintln(w, field("variance", optional(s.Variance())))
	fmt.Fprintln(w, field("stddev", optional(s.StdDev())))
	fmt.Fprintln(w, field("min", formatFloat(s.Min)))
	fmt.Fprintln(w, field("max", formatFloat(s.Max)))
	for _, q := range stats.Quantiles {
		v, err := s.Quantile(q)
		fmt.Fprintln(w, field(fmt.Sprintf("p%g", q*100), optional(v, err == nil)))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
