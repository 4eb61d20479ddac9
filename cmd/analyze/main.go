// Command analyze prints the fixed movie reports from the warehouse table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"movieetl/internal/analysis"
	"movieetl/internal/cli"
	"movieetl/internal/metrics"
	"movieetl/internal/storage"

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
		Use:           "analyze",
		Short:         "Print top movies, top genres by revenue and movies per year",
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

			ctx := cmd.Context()
			stage := metrics.Stage(cfg.Job, "analyze")
			a, err := analysis.Open(ctx, storage.Config{
				Kind:   cfg.Storage.Kind,
				DSN:    cfg.Storage.DSN,
				Logger: log,
			}, cfg.Storage.Table)
			if err != nil {
				stage(err)
				return cli.Fail(log, err)
			}
			defer a.Close()

			err = a.Report(ctx, cmd.OutOrStdout())
			stage(err)
			return cli.Fail(log, err)
		},
	}
	flags.Register(cmd, false)
	return cmd
}
