package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/database"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/jobs"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables, indexes and the job queue schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrate(ctx, db); err != nil {
			return err
		}

		slog.Info("Migration completed", slog.String("type", "db"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}

func migrate(ctx context.Context, db *database.DB) error {
	if err := db.InitializeSchema(ctx); err != nil {
		return err
	}
	return jobs.Migrate(ctx, db.Pool())
}
