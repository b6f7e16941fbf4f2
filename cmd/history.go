package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/repository"
)

func newHistoryCmd(a *app) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past sort jobs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.History.Disabled {
				return fmt.Errorf("job history is disabled in %s", a.cfg.History.Path)
			}

			repo, err := repository.NewBboltRepository(a.cfg.History.Path)
			if err != nil {
				return err
			}
			defer repo.Close()

			w := cmd.OutOrStdout()

			if clearAll {
				if err := repo.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(w, successStyle.Render("History cleared"))
				return nil
			}

			records, err := repo.FindAll()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(w, labelStyle.Render("No jobs recorded yet"))
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(w, "%s %s %s → %s\n",
					headerStyle.Render(r.Started.Format("2006-01-02 15:04:05")),
					stateLabel(r.State),
					pathStyle.Render(r.InputPath), pathStyle.Render(r.OutputPath))
				fmt.Fprintf(w, "    %s, %s, %d lines, %d chunks of %d, %s\n",
					r.Policy, r.Direction, r.Lines, r.Chunks, r.ChunkLines, formatDuration(r.Duration()))
				if r.Error != "" {
					fmt.Fprintln(w, "    "+errorStyle.Render(r.Error))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete every recorded job")

	return cmd
}
