package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/database"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/logger"
)

var (
	Version = "dev"
	Commit  = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "blinkshare",
	Short:         "BlinkShare role sales and expiry service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler("BlinkShare", slog.LevelInfo)))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfig loads the config and reinstalls the logger at the configured level.
func loadConfig() (*blinkshare.Config, error) {
	cfg, err := blinkshare.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(logger.NewHandler("BlinkShare", cfg.Log.Level)))
	slog.Info("Configuration loaded",
		slog.String("type", "sys"),
		slog.String("environment", cfg.Environment),
		slog.String("version", Version),
		slog.String("commit", Commit))
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *blinkshare.Config) (*database.DB, error) {
	start := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	slog.Info("Database connected",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)))
	return db, nil
}
