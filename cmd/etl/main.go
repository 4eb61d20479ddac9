// Command etl extracts the raw movies CSV, cleans it and replaces the movie
// table in the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"movieetl/internal/cli"
	"movieetl/internal/pipeline"

	// register all backends with the storage factory.
	_ "movieetl/internal/storage/all"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		cli.Report(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cli.Flags

	cmd := &cobra.Command{
		Use:           "etl",
		Short:         "Load the raw movies CSV into the warehouse table",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Config(cmd)
			if err != nil {
				return err
			}
			if err := cli.Check(cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if flags.Validate {
				fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
				return nil
			}

			log, done, err := cli.Setup(cfg)
			if err != nil {
				return err
			}
			defer done()

			start := time.Now()
			sum, err := pipeline.Run(cmd.Context(), cfg, log)
			if err != nil {
				return cli.Fail(log, err)
			}
			log.Debug("run summary",
				zap.Int("input_rows", sum.InputRows),
				zap.Int("skipped_rows", sum.SkippedRows),
				zap.Int("dropped_rows", sum.DroppedRows),
				zap.Int("deduped_rows", sum.DedupedRows),
				zap.Int64("loaded_rows", sum.LoadedRows),
				zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)),
			)
			return nil
		},
	}
	flags.Register(cmd, true)
	return cmd
}
