package repositories

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

const (
	guildCacheSize = 512
	GuildCacheTTL  = time.Minute
)

type GuildRepository interface {
	GetByID(ctx context.Context, guildID string) (*models.Guild, error)
	GetRole(ctx context.Context, guildID, roleID string) (*models.Role, error)
	ListRoles(ctx context.Context, guildID string) ([]*models.Role, error)
}

type guildCacheEntry struct {
	guild     *models.Guild
	expiresAt time.Time
}

type guildRepository struct {
	*BaseRepository
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewGuildRepository caches guild rows for GuildCacheTTL. The dashboard owns
// writes, so seller address, expiry settings and soft deletes show up once
// the entry expires.
func NewGuildRepository(db *bun.DB) GuildRepository {
	return newGuildRepository(db, GuildCacheTTL, time.Now)
}

func newGuildRepository(db *bun.DB, ttl time.Duration, now func() time.Time) *guildRepository {
	cache, _ := lru.New(guildCacheSize)
	return &guildRepository{
		BaseRepository: NewBaseRepository(db),
		cache:          cache,
		ttl:            ttl,
		now:            now,
	}
}

func (r *guildRepository) GetByID(ctx context.Context, guildID string) (*models.Guild, error) {
	if guild, ok := r.getFromCache(guildID); ok {
		return guild, nil
	}

	guild := new(models.Guild)
	err := r.SelectOneWithTimeout(ctx, "get", "guild", guildID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(guild).
			Where("g.id = ?", guildID).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	r.setCache(guildID, guild)
	return guild, nil
}

func (r *guildRepository) GetRole(ctx context.Context, guildID, roleID string) (*models.Role, error) {
	role := new(models.Role)
	err := r.SelectOneWithTimeout(ctx, "get", "role", roleID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(role).
			Where("r.id = ?", roleID).
			Where("r.guild_id = ?", guildID).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *guildRepository) ListRoles(ctx context.Context, guildID string) ([]*models.Role, error) {
	var roles []*models.Role
	err := r.SelectWithTimeout(ctx, "list", "role", func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&roles).
			Where("r.guild_id = ?", guildID).
			Order("r.amount ASC").
			Scan(ctx)
	})
	return roles, err
}

func (r *guildRepository) getFromCache(guildID string) (*models.Guild, bool) {
	value, ok := r.cache.Get(guildID)
	if !ok {
		return nil, false
	}
	entry := value.(guildCacheEntry)
	if !r.now().Before(entry.expiresAt) {
		r.cache.Remove(guildID)
		return nil, false
	}
	return entry.guild, true
}

func (r *guildRepository) setCache(guildID string, guild *models.Guild) {
	r.cache.Add(guildID, guildCacheEntry{guild: guild, expiresAt: r.now().Add(r.ttl)})
}
