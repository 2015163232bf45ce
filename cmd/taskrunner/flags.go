package main

import (
	"fmt"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/kubev2v/taskrunner/internal/config"
)

func positive(name string) func(int) error {
	return func(v int) error {
		if v < 1 {
			return fmt.Errorf("invalid value %d for --%s: must be at least 1", v, name)
		}
		return nil
	}
}

func durationFlag(name string, value time.Duration, usage string) *cobraflags.StringFlag {
	return &cobraflags.StringFlag{
		Name:  name,
		Value: value.String(),
		Usage: usage,
		ValidateFunc: func(s string) error {
			if _, err := time.ParseDuration(s); err != nil {
				return fmt.Errorf("invalid value %q for --%s: %w", s, name, err)
			}
			return nil
		},
	}
}

func getDuration(f *cobraflags.StringFlag) (time.Duration, error) {
	s, err := f.GetStringE()
	if err != nil {
		return 0, err
	}
	return time.ParseDuration(s)
}

type runnerFlags struct {
	queueConcurrency *cobraflags.IntFlag
	cargoBatchSize   *cobraflags.IntFlag
	cargoConcurrency *cobraflags.IntFlag
}

func newRunnerFlags(r config.Runner) *runnerFlags {
	return &runnerFlags{
		queueConcurrency: &cobraflags.IntFlag{
			Name:         "queue-concurrency",
			Value:        r.QueueConcurrency,
			Usage:        "Items the queue processes at once",
			ValidateFunc: positive("queue-concurrency"),
		},
		cargoBatchSize: &cobraflags.IntFlag{
			Name:         "cargo-batch-size",
			Value:        r.CargoBatchSize,
			Usage:        "Items per cargo batch",
			ValidateFunc: positive("cargo-batch-size"),
		},
		cargoConcurrency: &cobraflags.IntFlag{
			Name:         "cargo-concurrency",
			Value:        r.CargoConcurrency,
			Usage:        "Cargo batches processed at once",
			ValidateFunc: positive("cargo-concurrency"),
		},
	}
}

func (f *runnerFlags) register(cmd *cobra.Command) {
	cobraflags.Register(cmd, f.queueConcurrency, f.cargoBatchSize, f.cargoConcurrency)
}

func (f *runnerFlags) runner() (*config.Runner, error) {
	queue, err := f.queueConcurrency.GetIntE()
	if err != nil {
		return nil, err
	}
	batch, err := f.cargoBatchSize.GetIntE()
	if err != nil {
		return nil, err
	}
	cargo, err := f.cargoConcurrency.GetIntE()
	if err != nil {
		return nil, err
	}

	return config.NewRunnerWithOptions(
		config.WithQueueConcurrency(queue),
		config.WithCargoBatchSize(batch),
		config.WithCargoConcurrency(cargo),
	), nil
}

type storeFlags struct {
	dataFolder *cobraflags.StringFlag
	retention  *cobraflags.StringFlag
}

func newStoreFlags(s config.Store) *storeFlags {
	return &storeFlags{
		dataFolder: &cobraflags.StringFlag{
			Name:  "data-folder",
			Value: s.DataFolder,
			Usage: "Folder of the dispatch journal database, in-memory when empty",
		},
		retention: durationFlag("retention", s.Retention, "Journal entries older than this are removed"),
	}
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cobraflags.Register(cmd, f.dataFolder, f.retention)
}

func (f *storeFlags) store() (*config.Store, error) {
	retention, err := getDuration(f.retention)
	if err != nil {
		return nil, err
	}

	return config.NewStoreWithOptions(
		config.WithDataFolder(f.dataFolder.GetString()),
		config.WithRetention(retention),
	), nil
}
