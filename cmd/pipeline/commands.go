package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/weekendbets/internal/app"
	"github.com/riskibarqy/weekendbets/internal/domain/partition"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/usecase"
	"github.com/spf13/cobra"
)

func runCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run odds, fixtures and enrich stages over their windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				today, err := runDay(opts.date, time.Now(), a.Config.Location)
				if err != nil {
					return err
				}
				report, err := a.Pipeline.Run(ctx, today)
				if writeErr := writeJSON(cmd.OutOrStdout(), report); writeErr != nil {
					a.Logger.Error("write run report failed", "error", writeErr)
				}
				return err
			})
		},
	}
}

// stageCmd runs one stage over explicit dates or, without arguments, the stage window.
func stageCmd(opts *rootOptions, name, short string) *cobra.Command {
	stage := usecase.Stage(name)
	return &cobra.Command{
		Use:   name + " [YYYY-MM-DD...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				if _, err := partition.ParseDate(raw); err != nil {
					return err
				}
			}

			return withApp(opts, func(ctx context.Context, a *app.App) error {
				dates := args
				if len(dates) == 0 {
					today, err := runDay(opts.date, time.Now(), a.Config.Location)
					if err != nil {
						return err
					}
					window, err := a.Pipeline.Window(stage)
					if err != nil {
						return err
					}
					dates = window.Dates(today)
				}

				reports, err := a.Pipeline.RunStage(ctx, stage, dates)
				if writeErr := writeJSON(cmd.OutOrStdout(), reports); writeErr != nil {
					a.Logger.Error("write stage report failed", "error", writeErr)
				}
				if err != nil {
					return fmt.Errorf("%s stage: %w", name, err)
				}
				return nil
			})
		},
	}
}

// syncReferenceCmd copies document reference data into Postgres. Without
// --as-of it copies the snapshot anchored to the run day.
func syncReferenceCmd(opts *rootOptions) *cobra.Command {
	var (
		season string
		asOfs  []string
	)
	cmd := &cobra.Command{
		Use:   "sync-reference",
		Short: "Copy team, league and standings documents into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				if season == "" {
					season = a.Config.Season
				}
				if len(asOfs) == 0 {
					today, err := runDay(opts.date, time.Now(), a.Config.Location)
					if err != nil {
						return err
					}
					asOfs = []string{partition.FormatDate(standing.AnchorDate(today, a.Config.AnchorWeekday))}
				}

				service, err := a.ReferenceSync()
				if err != nil {
					return err
				}
				result, err := service.Sync(ctx, season, asOfs)
				if err != nil {
					return fmt.Errorf("sync reference: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season of the standings snapshots; defaults to PIPELINE_SEASON")
	cmd.Flags().StringSliceVar(&asOfs, "as-of", nil, "Snapshot as-of date (YYYY-MM-DD), repeatable")
	return cmd
}
