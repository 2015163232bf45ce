package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/taskrunner/api/v1"
	"github.com/kubev2v/taskrunner/internal/config"
	"github.com/kubev2v/taskrunner/internal/report"
	"github.com/kubev2v/taskrunner/internal/store"
)

func NewReportCommand(cfg *config.Configuration) *cobra.Command {
	var (
		output = &cobraflags.StringFlag{
			Name:      "output",
			Shorthand: "o",
			Value:     "dispatches.xlsx",
			Usage:     "Output file",
		}
		modes = &cobraflags.StringSliceFlag{
			Name:  "mode",
			Usage: "Only export these modes (queue, cargo)",
		}
		statuses = &cobraflags.StringSliceFlag{
			Name:  "status",
			Usage: "Only export these statuses (succeeded, failed)",
		}
		storeOpts = newStoreFlags(cfg.Store)
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the dispatch journal to an xlsx file",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			st, err := storeOpts.store()
			if err != nil {
				return err
			}
			cfg.WithOptions(config.WithStore(*st))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Store.DataFolder == "" {
				return fmt.Errorf("--data-folder is required")
			}

			var opts []store.ListOption
			if modes := modes.GetStringSlice(); len(modes) > 0 {
				m, err := v1.ParseDispatchModes(modes)
				if err != nil {
					return err
				}
				opts = append(opts, store.ByMode(m...))
			}
			if statuses := statuses.GetStringSlice(); len(statuses) > 0 {
				s, err := v1.ParseDispatchStatuses(statuses)
				if err != nil {
					return err
				}
				opts = append(opts, store.ByStatus(s...))
			}

			db, err := store.NewDB(cfg.Store.DBPath())
			if err != nil {
				return err
			}
			st := store.NewStore(db)
			defer st.Close()

			ctx := cmd.Context()
			if err := st.Migrate(ctx); err != nil {
				return err
			}

			dispatches, err := st.Dispatch().List(ctx, append(opts, store.WithDefaultSort())...)
			if err != nil {
				return fmt.Errorf("failed to list dispatches: %w", err)
			}
			summaries, err := st.Dispatch().Summary(ctx, opts...)
			if err != nil {
				return fmt.Errorf("failed to summarize dispatches: %w", err)
			}

			path := output.GetString()
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := report.Write(f, dispatches, summaries); err != nil {
				return err
			}

			zap.S().Named("report").Infow("report written", "file", path, "dispatches", len(dispatches))
			return nil
		},
	}

	cobraflags.Register(cmd, output, modes, statuses)
	storeOpts.register(cmd)

	return cmd
}
