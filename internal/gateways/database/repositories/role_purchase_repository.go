package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

type RolePurchaseRepository interface {
	Create(ctx context.Context, purchase *models.RolePurchase) error
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.RolePurchase, error)
	FindByTriple(ctx context.Context, discordUserID, guildID, roleID string) ([]*models.RolePurchase, error)
	FindActiveByUser(ctx context.Context, discordUserID, guildID string, now time.Time) ([]*models.RolePurchase, error)
	ExistsBySignature(ctx context.Context, signature string) (bool, error)
}

type rolePurchaseRepository struct {
	*BaseRepository
}

func NewRolePurchaseRepository(db *bun.DB) RolePurchaseRepository {
	return &rolePurchaseRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *rolePurchaseRepository) Create(ctx context.Context, purchase *models.RolePurchase) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().Model(purchase).Exec(ctx)
	if isUniqueViolation(err) {
		value := interface{}(nil)
		if purchase.Signature != nil {
			value = *purchase.Signature
		}
		return &ConflictError{Entity: "role_purchase", Field: "signature", Value: value}
	}
	return r.HandleErrorWithID("create", "role_purchase", purchase.ID, err)
}

// FindExpiringBetween returns purchases with from < expires_at <= to whose
// guild and role still exist, in insertion order.
func (r *rolePurchaseRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.RolePurchase, error) {
	var purchases []*models.RolePurchase
	err := r.SelectWithTimeout(ctx, "find_expiring", "role_purchase", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&purchases).
			Join("JOIN guilds AS g ON g.id = rp.guild_id AND g.deleted_at IS NULL").
			Join("JOIN roles AS r ON r.id = rp.role_id AND r.deleted_at IS NULL").
			Where("rp.expires_at > ?", from).
			Where("rp.expires_at <= ?", to).
			Order("rp.purchase_time ASC", "rp.id ASC").
			Scan(ctx)
	})
	return purchases, err
}

func (r *rolePurchaseRepository) FindByTriple(ctx context.Context, discordUserID, guildID, roleID string) ([]*models.RolePurchase, error) {
	var purchases []*models.RolePurchase
	err := r.SelectWithTimeout(ctx, "find_by_triple", "role_purchase", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&purchases).
			Where("rp.discord_user_id = ?", discordUserID).
			Where("rp.guild_id = ?", guildID).
			Where("rp.role_id = ?", roleID).
			Order("rp.purchase_time ASC").
			Scan(ctx)
	})
	return purchases, err
}

// FindActiveByUser lists permanent or not yet expired purchases of a user in a guild.
func (r *rolePurchaseRepository) FindActiveByUser(ctx context.Context, discordUserID, guildID string, now time.Time) ([]*models.RolePurchase, error) {
	var purchases []*models.RolePurchase
	err := r.SelectWithTimeout(ctx, "find_active_by_user", "role_purchase", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&purchases).
			Where("rp.discord_user_id = ?", discordUserID).
			Where("rp.guild_id = ?", guildID).
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("rp.expires_at IS NULL").WhereOr("rp.expires_at > ?", now)
			}).
			Order("rp.role_name ASC", "rp.expires_at DESC").
			Scan(ctx)
	})
	return purchases, err
}

func (r *rolePurchaseRepository) ExistsBySignature(ctx context.Context, signature string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.RolePurchase)(nil)).
		Where("rp.signature = ?", signature).
		Exists(ctx)
	return exists, r.HandleErrorWithID("exists_by_signature", "role_purchase", signature, err)
}
