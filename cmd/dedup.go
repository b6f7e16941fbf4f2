package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/dedup"
)

func newDedupApproxCmd(a *app) *cobra.Command {
	var (
		expected int
		fpr      float64
	)

	cmd := &cobra.Command{
		Use:   "dedup-approx INPUT OUTPUT",
		Short: "Approximate deduplication using a Bloom filter (low memory, small false positive rate)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate := a.cfg.Dedup.FalsePositiveRate
			if cmd.Flags().Changed("fpr") {
				rate = fpr
			}

			res, err := dedup.Approx(args[0], args[1], expected, rate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d unique lines (approx; fpr~%v, k=%d, m=%d bits)\n",
				successStyle.Render("Wrote"), res.Written, rate, res.HashFunctions, res.Bits)
			return nil
		},
	}

	cmd.Flags().IntVar(&expected, "expected", 0, "Expected number of unique lines")
	cmd.Flags().Float64Var(&fpr, "fpr", 0.001, "Target false positive rate")
	_ = cmd.MarkFlagRequired("expected")

	return cmd
}

func newDedupExactCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dedup-exact INPUT OUTPUT",
		Short: "Exact deduplication using a hash set (memory grows with unique lines)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := dedup.Exact(args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d unique lines (exact, %d duplicates dropped)\n",
				successStyle.Render("Wrote"), res.Written, res.Dropped())
			return nil
		},
	}
}
