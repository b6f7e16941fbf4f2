package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/cardinality"
)

func newCardinalityCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cardinality INPUT",
		Short: "Estimate the number of distinct lines with HyperLogLog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cardinality.File(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), field("distinct", fmt.Sprintf("~%d", e.Estimate())))
			fmt.Fprintln(cmd.OutOrStdout(), field("lines", e.Seen()))
			return nil
		},
	}
}
