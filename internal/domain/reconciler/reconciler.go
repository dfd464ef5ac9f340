package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/metrics"
)

//go:generate mockgen -source=reconciler.go -destination=mock/reconciler.go -package=mock

const (
	ReminderWindow     = 72 * time.Hour
	DefaultConcurrency = 8

	threeDaysHours = 72
	oneDayHours    = 24
)

type Store interface {
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.RolePurchase, error)
	FindByTriple(ctx context.Context, discordUserID, guildID, roleID string) ([]*models.RolePurchase, error)
}

type GuildLookup interface {
	GetByID(ctx context.Context, guildID string) (*models.Guild, error)
}

type Notifier interface {
	RevokeRole(ctx context.Context, guildID, userID, roleID string) error
	SendDirectMessage(ctx context.Context, userID string, embed discord.Embed)
	SendChannelMessage(ctx context.Context, channelID string, embed discord.Embed) error
}

type Archiver interface {
	Archive(ctx context.Context, name string, v any) (string, error)
}

// Dispatcher runs best-effort work off the reconcile path.
type Dispatcher interface {
	Go(name string, fn func(ctx context.Context) error)
}

type Config struct {
	Concurrency    int
	AuditChannelID string
}

type Reconciler struct {
	store      Store
	guilds     GuildLookup
	notifier   Notifier
	dispatcher Dispatcher
	archiver   Archiver
	cfg        Config

	now   func() time.Time
	newID func() string
}

func New(store Store, guilds GuildLookup, notifier Notifier, dispatcher Dispatcher, cfg Config) *Reconciler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Reconciler{
		store:      store,
		guilds:     guilds,
		notifier:   notifier,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithArchiver uploads every run report through a.
func (r *Reconciler) WithArchiver(a Archiver) *Reconciler {
	r.archiver = a
	return r
}

// Run performs one pass over purchases expiring within ReminderWindow. Only a
// failure to load candidates fails the pass; per-purchase failures are logged
// and counted in the report.
func (r *Reconciler) Run(ctx context.Context) (*RunReport, error) {
	now := r.now()
	report := &RunReport{RunID: r.newID(), StartedAt: now}

	candidates, err := r.store.FindExpiringBetween(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		metrics.ReconcilerRuns.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to load expiring purchases: %w", err)
	}

	representatives := Dedupe(candidates)
	report.Candidates = len(candidates)
	report.Unique = len(representatives)

	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for _, rep := range representatives {
		g.Go(func() error {
			report.record(r.reconcile(ctx, now, rep))
			return nil
		})
	}
	_ = g.Wait()

	report.finish(r.now())
	metrics.ReconcilerRuns.WithLabelValues("success").Inc()
	metrics.ReconcilerDuration.Observe(report.Duration.Seconds())

	r.archive(ctx, report)

	slog.Info("Reconciler pass finished",
		slog.String("type", "job"),
		slog.String("component", "reconciler"),
		slog.String("run_id", report.RunID),
		slog.Int("candidates", report.Candidates),
		slog.Int("unique", report.Unique),
		slog.Int("reminders_3d", report.ThreeDayReminder),
		slog.Int("reminders_1d", report.OneDayReminder),
		slog.Int("expired", report.Expired),
		slog.Int("revoke_failures", report.RevokeFailures),
		slog.Int("skipped_renewals", report.SkippedRenewals),
		slog.Int("row_errors", report.RowErrors),
		slog.Duration("took", report.Duration))

	return report, nil
}

func (r *Reconciler) reconcile(ctx context.Context, now time.Time, rep *models.RolePurchase) (result outcome) {
	logAttrs := []any{
		slog.String("type", "job"),
		slog.String("component", "reconciler"),
		slog.String("user_id", rep.DiscordUserID),
		slog.String("guild_id", rep.GuildID),
		slog.String("role_id", rep.RoleID),
	}
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Reconcile panicked", append(logAttrs, slog.Any("panic", p))...)
			result = outcomeError
		}
		metrics.ReconcilerActions.WithLabelValues(actionLabel(result)).Inc()
	}()

	if rep.ExpiresAt == nil {
		return outcomeNone
	}

	siblings, err := r.store.FindByTriple(ctx, rep.DiscordUserID, rep.GuildID, rep.RoleID)
	if err != nil {
		slog.Error("Failed to load purchase history", append(logAttrs, slog.Any("error", err))...)
		return outcomeError
	}
	if IsRenewed(rep, siblings) {
		slog.Debug("Purchase renewed, skipping", logAttrs...)
		return outcomeRenewed
	}

	switch hours := int(rep.ExpiresAt.Sub(now) / time.Hour); hours {
	case threeDaysHours:
		r.notifier.SendDirectMessage(ctx, rep.DiscordUserID, reminderEmbed(rep, "3 days"))
		return outcomeReminder3d
	case oneDayHours:
		r.notifier.SendDirectMessage(ctx, rep.DiscordUserID, reminderEmbed(rep, "1 day"))
		return outcomeReminder1d
	case 0:
		return r.expire(ctx, rep, logAttrs)
	default:
		return outcomeNone
	}
}

func (r *Reconciler) expire(ctx context.Context, rep *models.RolePurchase, logAttrs []any) outcome {
	revokeErr := r.notifier.RevokeRole(ctx, rep.GuildID, rep.DiscordUserID, rep.RoleID)
	if revokeErr != nil {
		slog.Error("Failed to revoke expired role", append(logAttrs, slog.Any("error", revokeErr))...)
	} else {
		r.notifier.SendDirectMessage(ctx, rep.DiscordUserID, expiredEmbed(rep))
	}

	r.dispatcher.Go("expiry_audit", func(ctx context.Context) error {
		return r.sendAudit(ctx, rep, revokeErr)
	})

	if revokeErr != nil {
		return outcomeRevokeFailed
	}
	return outcomeExpired
}

// sendAudit posts to the global audit channel and the guild's own
// notification channel, whichever are configured.
func (r *Reconciler) sendAudit(ctx context.Context, rep *models.RolePurchase, revokeErr error) error {
	embed := auditEmbed(rep, revokeErr)

	var errs []error
	if r.cfg.AuditChannelID != "" {
		if err := r.notifier.SendChannelMessage(ctx, r.cfg.AuditChannelID, embed); err != nil {
			errs = append(errs, err)
		}
	}

	guild, err := r.guilds.GetByID(ctx, rep.GuildID)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("guild %s: %w", rep.GuildID, err))
	case guild.NotificationChannelID != "":
		if err := r.notifier.SendChannelMessage(ctx, guild.NotificationChannelID, embed); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reconciler) archive(ctx context.Context, report *RunReport) {
	if r.archiver == nil {
		return
	}
	name := fmt.Sprintf("%s/%s.json", report.StartedAt.UTC().Format("2006/01/02"), report.RunID)
	key, err := r.archiver.Archive(ctx, name, report)
	if err != nil {
		slog.Warn("Failed to archive reconciler report",
			slog.String("type", "job"),
			slog.String("component", "reconciler"),
			slog.String("run_id", report.RunID),
			slog.Any("error", err))
		return
	}
	report.ArchiveKey = key
}

func actionLabel(o outcome) string {
	switch o {
	case outcomeReminder3d:
		return metrics.ActionReminder3d
	case outcomeReminder1d:
		return metrics.ActionReminder1d
	case outcomeExpired:
		return metrics.ActionExpired
	case outcomeRevokeFailed:
		return metrics.ActionRevokeFailed
	case outcomeRenewed:
		return metrics.ActionSkippedRenewal
	case outcomeError:
		return metrics.ActionRowError
	default:
		return "none"
	}
}
