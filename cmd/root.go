package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/fman/internal/config"
	"github.com/NamanBalaji/fman/internal/logger"
	"github.com/NamanBalaji/fman/internal/repository"
	"github.com/NamanBalaji/fman/internal/sorter"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfg   *config.Config
	debug bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fman",
		Short: "File utilities for large line-oriented data",
		Long: `fman sorts, deduplicates, samples and summarizes text files that may be
much larger than memory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w", config.Path(), err)
			}
			a.cfg = cfg

			return logger.InitLogging(a.debug, cfg.Log.Path)
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newSortCmd(a),
		newBatchCmd(a),
		newDedupApproxCmd(a),
		newDedupExactCmd(a),
		newSampleCmd(a),
		newStatsCmd(a),
		newCardinalityCmd(a),
		newHistoryCmd(a),
	)

	return root
}

// Execute runs the command line and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// openHistory returns nil when history is disabled or unavailable. History
// problems never fail a command.
func (a *app) openHistory() repository.Repository {
	if a.cfg.History.Disabled {
		return nil
	}
	repo, err := repository.NewBboltRepository(a.cfg.History.Path)
	if err != nil {
		logger.Warnf("Job history unavailable: %v", err)
		return nil
	}
	return repo
}

// record stores one finished sort in the history database.
func (a *app) record(job sorter.Job, res *sorter.Result, runErr error, started time.Time) {
	repo := a.openHistory()
	if repo == nil {
		return
	}
	defer repo.Close()

	if err := repo.Save(repository.NewJobRecord(job, res, runErr, started)); err != nil {
		logger.Warnf("Failed to record job in history: %v", err)
	}
}
