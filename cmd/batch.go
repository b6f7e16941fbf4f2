package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run the sort jobs listed in a YAML manifest",
		Long: `Run every sort job in MANIFEST, at most --jobs at a time. Each job runs
sequentially on its own; a failing job does not stop the others.

  jobs:
    - input: access.log
      output: access.sorted
    - input: scores.txt
      output: scores.sorted
      numeric: true
      reverse: true
      chunkLines: 100000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := batch.LoadManifest(args[0])
			if err != nil {
				return err
			}
			sortJobs, err := m.SortJobs(batch.Defaults{
				ChunkLines:    a.cfg.Sort.ChunkLines,
				TempDir:       a.cfg.Sort.TempDir,
				MaxOpenChunks: a.cfg.Sort.MaxOpenChunks,
			})
			if err != nil {
				return err
			}

			limit := a.cfg.Batch.MaxConcurrentJobs
			if cmd.Flags().Changed("jobs") {
				limit = jobs
			}

			repo := a.openHistory()
			if repo != nil {
				defer repo.Close()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			outcomes, runErr := batch.NewRunner(limit, repo).Run(ctx, sortJobs)

			w := cmd.ErrOrStderr()
			for i, o := range outcomes {
				switch {
				case o.Result != nil:
					fmt.Fprintf(w, "%s [%d] %s → %s (%d lines, %s)\n", stateLabel(o.Result.State.String()), i,
						pathStyle.Render(o.Job.InputPath), pathStyle.Render(o.Job.OutputPath),
						o.Result.Lines, formatDuration(o.Result.Elapsed))
				case o.Err != nil:
					fmt.Fprintf(w, "%s [%d] %s: %v\n", warnStyle.Render("skipped"), i, o.Job.InputPath, o.Err)
				}
				if o.Err != nil && o.Result != nil {
					fmt.Fprintln(w, "    "+errorStyle.Render(o.Err.Error()))
				}
			}

			return runErr
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", batch.DefaultMaxConcurrent, "Maximum concurrent jobs")

	return cmd
}
