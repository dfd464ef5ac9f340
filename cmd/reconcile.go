package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/rest"
	"github.com/spf13/cobra"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/utils"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/repositories"
	discordgw "github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/discord"
)

const reconcileTimeout = 10 * time.Minute

var reconcileCMD = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one role-expiry reconciliation pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateReconciler(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), reconcileTimeout)
		defer cancel()

		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		restClient := rest.New(rest.NewClient(cfg.Bot.Token))
		defer restClient.Close(context.Background())

		tasks := utils.NewTaskRunner()
		rec, err := newReconciler(ctx, cfg,
			repositories.NewRolePurchaseRepository(db.BunDB()),
			repositories.NewGuildRepository(db.BunDB()),
			discordgw.New(restClient, cfg.Bot.RequestsPerSec),
			tasks,
		)
		if err != nil {
			return err
		}

		report, err := rec.Run(ctx)
		// Audit posts for expired rows are still queued; let them finish.
		if shutdownErr := tasks.Shutdown(30 * time.Second); shutdownErr != nil {
			slog.Warn("Audit messages still pending at exit",
				slog.String("type", "sys"),
				slog.Any("error", shutdownErr))
		}
		if err != nil {
			return err
		}

		slog.Info("Reconcile pass finished",
			slog.String("type", "job"),
			slog.String("run_id", report.RunID),
			slog.Int("candidates", report.Candidates),
			slog.Int("expired", report.Expired),
			slog.Int("row_errors", report.RowErrors))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCMD)
}
