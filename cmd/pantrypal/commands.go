package main

import (
	"context"
	"fmt"
	"os/signal"
	"pantrypal/cmd/config"
	migration "pantrypal/cmd/database/migrate"
	"pantrypal/internal/utils"
	"pantrypal/pkg/expiry"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder dispatcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := config.ConnectDB()
		if err != nil {
			return err
		}

		app, err := config.NewApp(db, log)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Arm the daily check and catch up on edits made while we were down.
		if _, err := app.Sweeper.RunSweep(ctx, time.Now().In(utils.Location())); err != nil {
			log.Warn("startup sweep failed", zap.Error(err))
		}

		go app.Dispatcher.Run(ctx)

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Fiber.Listen(":" + utils.GetConfig("APP_PORT"))
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		return app.Fiber.ShutdownWithTimeout(shutdownTimeout)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		if err := migration.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database migration complete")
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Reconcile expiration reminders once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := config.ConnectDB()
		if err != nil {
			return err
		}

		app, err := config.NewApp(db, log)
		if err != nil {
			return err
		}
		defer app.Close()

		res, err := app.Sweeper.RunSweep(context.Background(), time.Now().In(utils.Location()))
		if err != nil {
			return err
		}
		if res.Skipped {
			fmt.Fprintln(cmd.OutOrStdout(), "notifications disabled, nothing scheduled")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"expired=%d critical=%d warning=%d safe=%d scheduled=%d cancelled=%d unchanged=%d failures=%d\n",
			res.Summary.ByUrgency[expiry.Expired], res.Summary.ByUrgency[expiry.Critical],
			res.Summary.ByUrgency[expiry.Warning], res.Summary.ByUrgency[expiry.Safe],
			res.Scheduled, res.Cancelled, res.Unchanged, len(res.Failures),
		)
		return nil
	},
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an owner API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := config.NewJWTService().GenerateOwnerToken(tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "owner", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime, 0 for no expiry")
}
