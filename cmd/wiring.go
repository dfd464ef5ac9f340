package cmd

import (
	"context"
	"log/slog"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/reconciler"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/storage"
)

func auditChannel(cfg *blinkshare.Config) string {
	if cfg.Bot.AuditChannelID == 0 {
		return ""
	}
	return cfg.Bot.AuditChannelID.String()
}

func newReconciler(ctx context.Context, cfg *blinkshare.Config, store reconciler.Store, guilds reconciler.GuildLookup, notifier reconciler.Notifier, dispatcher reconciler.Dispatcher) (*reconciler.Reconciler, error) {
	rec := reconciler.New(store, guilds, notifier, dispatcher, reconciler.Config{
		Concurrency:    cfg.Reconciler.Concurrency,
		AuditChannelID: auditChannel(cfg),
	})

	if cfg.Spaces.Bucket == "" || cfg.Spaces.Key == "" {
		slog.Info("Report archiving disabled, no Spaces bucket configured", slog.String("type", "sys"))
		return rec, nil
	}

	client, err := storage.NewSpacesClient(ctx, storage.SpacesConfig{
		Key:      cfg.Spaces.Key,
		Secret:   cfg.Spaces.Secret,
		Region:   cfg.Spaces.Region,
		Bucket:   cfg.Spaces.Bucket,
		Endpoint: cfg.Spaces.Endpoint,
		Prefix:   cfg.Spaces.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return rec.WithArchiver(storage.NewReportArchiver(client, cfg.Spaces.Bucket, cfg.Spaces.Prefix)), nil
}
