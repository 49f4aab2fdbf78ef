package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surf-calendar/internal/application/controller"
	"surf-calendar/internal/application/middleware"
	"surf-calendar/internal/application/processor"
	"surf-calendar/internal/application/schedule"
	"surf-calendar/internal/domain/model"
	"surf-calendar/pkg/log"
	"surf-calendar/pkg/msg"
	"surf-calendar/pkg/resource"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		log.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "surf-calendar",
		Short:         "Scores the surf forecast and keeps the surf calendar in sync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCommand(), runCommand(), dryRunCommand(), workerCommand())
	return rootCmd
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API with the scheduler and the run request worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer app.close()
			log.Info(msg.GetMessage("app.start", app.env.ApplicationName))

			e := echo.New()
			e.HideBanner = true
			middleware.Setup(e)
			api := e.Group(app.env.ContextPath)

			controller.NewHealthController(api, app.health).InitHealthRoutes()
			controller.NewSurfController(api, app.surf).InitSurfRoutes()
			controller.NewMetricsController(api, app.registry).InitMetricsRoutes()

			if resource.GetBool("schedule.enabled") {
				var lock schedule.TaskLock
				if resource.GetBool("schedule.distributed-lock") {
					client, err := app.redis()
					if err != nil {
						return err
					}
					lock = schedule.NewRedisTaskLock(client,
						resource.GetDuration("schedule.lock-ttl"), resource.GetDuration("schedule.refresh-interval"))
				}
				scheduler := schedule.NewSurfScheduler(app.surf, lock, resource.GetString("schedule.cron"))
				scheduler.InitSurfScheduleTasks(ctx)
			}

			if app.queueName != "" {
				worker, err := app.newRunWorker(ctx, processor.NewRunProcessor(app.surf))
				if err != nil {
					return err
				}
				go worker.Start(ctx)
			}

			serverErr := make(chan error, 1)
			go func() {
				serverErr <- e.Start(":" + app.env.Port)
			}()
			log.Info(msg.GetMessage("app.started", app.env.ApplicationName, app.env.Port))

			select {
			case err := <-serverErr:
				if !errors.Is(err, nethttp.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := e.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("failed to shut down http server: %w", err)
				}
			}
			log.Info(msg.GetMessage("app.stopped", app.env.ApplicationName))
			return nil
		},
	}
}

func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the forecast once and apply the calendar changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			report, runErr := app.surf.ProcessForecast(cmd.Context(), uuid.New().String())
			if report != nil {
				if err := printReport(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			}
			return runErr
		},
	}
}

func dryRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Evaluate the forecast and print the decisions without touching the calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			report, runErr := app.surf.EvaluateForecast(cmd.Context())
			if report != nil {
				if err := printReport(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			}
			return runErr
		},
	}
}

func workerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume run requests from the queue until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()
			if app.queueName == "" {
				return errors.New("aws.sqs.run-queue is not configured")
			}

			worker, err := app.newRunWorker(cmd.Context(), processor.NewRunProcessor(app.surf))
			if err != nil {
				return err
			}
			worker.Start(cmd.Context())
			return nil
		},
	}
}

func printReport(out io.Writer, report *model.RunReport) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	return nil
}
