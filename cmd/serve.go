package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/spf13/cobra"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend"
	backendhandlers "github.com/barkprotocol/blinkshare-platform-sub000/backend/handlers"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/commands"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/handlers"
	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/utils"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/blinks"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/purchases"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/repositories"
	discordgw "github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/discord"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/oauth"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/solana"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/jobs"
)

const (
	grantSweepInterval = time.Hour
	shutdownTimeout    = 15 * time.Second
)

var syncCommands bool

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Run the blink API, the Discord bot and the expiry scheduler",
	RunE:  runServe,
}

func init() {
	serveCMD.Flags().BoolVar(&syncCommands, "sync-commands", false, "sync slash commands to discord")
	rootCmd.AddCommand(serveCMD)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	db, err := openDatabase(setupCtx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(setupCtx, db); err != nil {
		return err
	}

	guildRepo := repositories.NewGuildRepository(db.BunDB())
	purchaseRepo := repositories.NewRolePurchaseRepository(db.BunDB())
	grantRepo := repositories.NewOAuthGrantRepository(db.BunDB())

	b := blinkshare.New(*cfg, Version, Commit)
	h := handler.New()
	h.Command("/roles", handlers.WrapWithLogging("roles", commands.RolesHandler(b, purchaseRepo)))
	h.Command("/version", handlers.WrapWithLogging("version", commands.VersionHandler(b)))

	if err := b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		return fmt.Errorf("failed to setup bot: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Close(closeCtx)
	}()

	gateway := discordgw.New(b.Client.Rest(), cfg.Bot.RequestsPerSec)
	tasks := utils.NewTaskRunner()

	rpcClient := solana.NewRPCClient(cfg.Solana.RPCURL)
	builder, err := solana.NewBuilder(rpcClient, cfg.Solana.TreasuryAddress, cfg.Solana.USDCMint)
	if err != nil {
		return err
	}
	cipher, err := oauth.NewTokenCipher(cfg.Security.TokenSecret)
	if err != nil {
		return err
	}

	svc := blinks.NewService(blinks.Deps{
		Guilds:    guildRepo,
		Grants:    grantRepo,
		Purchases: purchaseRepo,
		Exchanger: oauth.NewExchanger(oauth.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Scopes:       cfg.OAuth.Scopes,
		}),
		Tokens:     cipher,
		Builder:    builder,
		Verifier:   solana.NewVerifier(rpcClient, cfg.Solana.ConfirmTimeout.Std(), cfg.Solana.PollInterval.Std()),
		Discord:    gateway,
		Recorder:   purchases.NewRecorder(purchaseRepo),
		Dispatcher: tasks,
	}, blinks.Config{
		PublicURL:      cfg.Web.PublicURL,
		ExplorerURL:    cfg.Solana.ExplorerURL,
		AuditChannelID: auditChannel(cfg),
	})

	rec, err := newReconciler(setupCtx, cfg, purchaseRepo, guildRepo, gateway, tasks)
	if err != nil {
		return err
	}

	scheduler, err := jobs.NewScheduler(db.Pool(), rec, jobs.Config{
		Enabled:    cfg.ReconcilerEnabled(),
		Schedule:   cfg.Reconciler.Schedule,
		RunOnStart: cfg.Reconciler.RunOnStart,
		Exclusive:  cfg.Reconciler.Exclusive,
	})
	if err != nil {
		return err
	}
	if err := scheduler.Start(ctx); err != nil {
		return err
	}

	tasks.StartProcess("oauth_grant_sweeper", "Deletes expired OAuth grants",
		utils.Every(grantSweepInterval, func(ctx context.Context) {
			n, err := grantRepo.DeleteExpired(ctx, time.Now())
			if err != nil {
				slog.Error("Failed to delete expired OAuth grants",
					slog.String("type", "db"),
					slog.Any("error", err))
				return
			}
			if n > 0 {
				slog.Info("Expired OAuth grants deleted",
					slog.String("type", "db"),
					slog.Int64("count", n))
			}
		}))

	server := backend.NewServer(svc, map[string]backendhandlers.Pinger{"database": db}, backend.Config{
		Host:           cfg.Web.Host,
		Port:           cfg.Web.Port,
		AllowOrigins:   cfg.Web.AllowOrigins,
		RateLimit:      cfg.Web.RateLimit,
		ProxyHeader:    cfg.Web.ProxyHeader,
		TrustedProxies: cfg.Web.TrustedProxies,
		Version:        Version,
	})
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if syncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err := handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
				slog.Any("error", err))
		}
	}

	if err := b.Client.OpenGateway(setupCtx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	slog.Info("BlinkShare is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("HTTP server stopped unexpectedly", slog.String("type", "http"), slog.Any("error", err))
		}
	}

	slog.Info("Shutting down...", slog.String("type", "sys"))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := tasks.Shutdown(shutdownTimeout); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
