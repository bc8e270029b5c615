package main

import (
	"context"
	"time"

	"github.com/riskibarqy/weekendbets/internal/app"
	"github.com/riskibarqy/weekendbets/internal/observability"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func scheduleCmd(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the whole pipeline on the PIPELINE_SCHEDULE cron expression",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				stopProfiler, err := observability.InitPyroscope(a.Config, a.Logger)
				if err != nil {
					a.Logger.Error("init pyroscope failed", "error", err)
				} else {
					defer func() { _ = stopProfiler() }()
				}

				runOnce := func() {
					report, err := a.Pipeline.Run(ctx, a.Today())
					if err != nil {
						a.Logger.ErrorContext(ctx, "scheduled run failed", "error", err, "aborted", report.Aborted)
					}
				}

				if once {
					runOnce()
					return nil
				}

				c := cron.New(
					cron.WithLocation(a.Config.Location),
					cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
				)
				if _, err := c.AddFunc(a.Config.Schedule, runOnce); err != nil {
					return err
				}
				c.Start()
				a.Logger.Info("scheduler started", "schedule", a.Config.Schedule, "timezone", a.Config.Timezone)

				<-ctx.Done()
				a.Logger.Info("scheduler stopping")
				stopCtx := c.Stop()
				select {
				case <-stopCtx.Done():
				case <-time.After(time.Minute):
					a.Logger.Warn("scheduled run still in progress at shutdown")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Run the pipeline once immediately and exit")
	return cmd
}
