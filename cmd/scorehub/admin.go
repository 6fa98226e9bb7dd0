package main

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/fikri/scorehub/internal/app"
	"github.com/fikri/scorehub/internal/interfaces/clirender"
	"github.com/fikri/scorehub/internal/usecase"
)

func newWarmCommand(application *app.App) *cobra.Command {
	var leagueIDs []string
	var workers int
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Prefetch league data so later reads come from the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workers <= 0 {
				workers = application.Config.WarmWorkers
			}
			if every == 0 {
				every = application.Config.WarmInterval
			}

			input := usecase.WarmInput{LeagueIDs: leagueIDs, MaxWorkers: workers}

			runOnce := func() error {
				result, err := application.Warmer.Warm(cmd.Context(), input)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "warmed %d/%d tasks on %d workers\n",
					result.SuccessCount, result.TaskCount, result.WorkerCount)
				for _, task := range result.Tasks {
					if task.Status != "success" {
						fmt.Fprintf(cmd.OutOrStdout(), "  failed %s/%s: %s\n", task.LeagueID, task.Kind, task.Message)
					}
				}
				return nil
			}

			if err := runOnce(); err != nil {
				return err
			}
			if every <= 0 {
				return nil
			}

			// Periodic mode keeps the process alive and re-warms on the
			// interval until interrupted.
			scheduler, err := gocron.NewScheduler()
			if err != nil {
				return fmt.Errorf("create scheduler: %w", err)
			}
			if _, err := scheduler.NewJob(
				gocron.DurationJob(every),
				gocron.NewTask(func() {
					if err := runOnce(); err != nil {
						application.Logger.Warn("periodic warm failed", "error", err)
					}
				}),
			); err != nil {
				return fmt.Errorf("create warm job: %w", err)
			}

			scheduler.Start()
			application.Logger.Info("periodic warm started", "interval", every.String())
			<-cmd.Context().Done()
			return scheduler.Shutdown()
		},
	}
	cmd.Flags().StringSliceVar(&leagueIDs, "league", nil, "league ids to warm (default all)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size")
	cmd.Flags().DurationVar(&every, "every", 0, "re-warm on this interval; 0 runs once")
	return cmd
}

func newConfigCommand(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stored settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the primary API key; cached data is dropped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := application.Settings.SetCredential(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear-key",
		Short: "Remove the stored primary API key; cached data is dropped",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := application.Settings.ClearCredential(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key cleared")
			return nil
		},
	})
	return cmd
}

func newQuotaCommand(application *app.App, renderer *clirender.Renderer) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show today's primary API usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := application.Quota.CurrentCount(cmd.Context())
			if err != nil {
				return err
			}
			return renderer.QuotaStatus(count)
		},
	}
}
