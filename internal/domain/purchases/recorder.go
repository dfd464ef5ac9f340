package purchases

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/repositories"
)

var discordIDPattern = regexp.MustCompile(`^\d{17,19}$`)

// ValidDiscordID reports whether id looks like a Discord snowflake.
func ValidDiscordID(id string) bool {
	return discordIDPattern.MatchString(id)
}

//go:generate mockgen -source=recorder.go -destination=mock/recorder.go -package=mock

// Recorder is the only write path for role purchases.
type Recorder interface {
	RecordPurchase(ctx context.Context, discordUserID string, guild *models.Guild, role *models.Role, signature string) (*models.RolePurchase, error)
}

type recorder struct {
	repository Repository
	now        func() time.Time
	newID      func() string
}

func NewRecorder(repository Repository) Recorder {
	return &recorder{
		repository: repository,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (r *recorder) RecordPurchase(ctx context.Context, discordUserID string, guild *models.Guild, role *models.Role, signature string) (*models.RolePurchase, error) {
	if !ValidDiscordID(discordUserID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUserID, discordUserID)
	}

	now := r.now()
	expiresAt, err := ComputeExpiry(now, RoleConfigFromGuild(guild))
	if err != nil {
		return nil, fmt.Errorf("guild %s: %w", guild.ID, err)
	}

	purchase := &models.RolePurchase{
		ID:            r.newID(),
		DiscordUserID: discordUserID,
		GuildID:       guild.ID,
		GuildName:     guild.Name,
		RoleID:        role.ID,
		RoleName:      role.Name,
		ExpiresAt:     expiresAt,
		PurchaseTime:  now,
	}
	if signature != "" {
		purchase.Signature = &signature
	}

	if err := r.repository.Create(ctx, purchase); err != nil {
		if repositories.IsConflict(err) {
			return nil, ErrDuplicateSignature
		}
		return nil, fmt.Errorf("failed to persist purchase: %w", err)
	}

	slog.Info("Role purchase recorded",
		slog.String("type", "db"),
		slog.String("component", "purchase_recorder"),
		slog.String("purchase_id", purchase.ID),
		slog.String("guild_id", guild.ID),
		slog.String("role_id", role.ID),
		slog.String("user_id", discordUserID),
		slog.Bool("permanent", expiresAt == nil))

	return purchase, nil
}
