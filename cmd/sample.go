package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/sample"
)

func newSampleCmd(_ *app) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "sample INPUT K",
		Short: "Reservoir sample K lines uniformly at random",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid sample size %q: %w", args[1], err)
			}

			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}

			picked, err := sample.File(args[0], k, sample.NewRand(seedPtr))
			if err != nil {
				return err
			}

			w := lines.NewWriter(cmd.OutOrStdout())
			for _, line := range picked {
				if err := w.WriteLine(line); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible sample")

	return cmd
}
