package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/kubev2v/taskrunner/internal/bench"
	"github.com/kubev2v/taskrunner/internal/config"
)

func NewBenchCommand() *cobra.Command {
	var (
		items = &cobraflags.IntFlag{
			Name:         "items",
			Value:        1000,
			Usage:        "Items pushed per scenario",
			ValidateFunc: positive("items"),
		}
		delay      = durationFlag("delay", 10*time.Millisecond, "Time each worker call takes")
		runnerOpts = newRunnerFlags(*config.NewRunnerWithOptionsAndDefaults())
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the reference queue and cargo scenarios in-process",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := items.GetIntE()
			if err != nil {
				return err
			}
			d, err := getDuration(delay)
			if err != nil {
				return err
			}
			rc, err := runnerOpts.runner()
			if err != nil {
				return err
			}

			results := bench.Run(cmd.Context(), bench.Config{Items: n, Delay: d, Runner: *rc})

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
				printResult(cmd, r)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}

	cobraflags.Register(cmd, items, delay)
	runnerOpts.register(cmd)

	return cmd
}

func printResult(cmd *cobra.Command, r bench.Result) {
	out := cmd.OutOrStdout()
	status := color.New(color.FgGreen, color.Bold).Sprint("PASS")
	if r.Err != nil {
		status = color.New(color.FgRed, color.Bold).Sprint("FAIL")
	}

	fmt.Fprintf(out, "%s %-18s items=%d elapsed=%s peak=%d/%d groups=%d\n",
		status, r.Name, r.Items, r.Elapsed.Round(time.Millisecond), r.Peak, r.Limit, r.Groups)
	if r.Err != nil {
		fmt.Fprintf(out, "     %s\n", color.RedString(r.Err.Error()))
	}
}
