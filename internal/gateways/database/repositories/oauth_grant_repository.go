package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

type OAuthGrantRepository interface {
	Save(ctx context.Context, grant *models.OAuthGrant) error
	Get(ctx context.Context, codeHash string, now time.Time) (*models.OAuthGrant, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type oauthGrantRepository struct {
	*BaseRepository
}

func NewOAuthGrantRepository(db *bun.DB) OAuthGrantRepository {
	return &oauthGrantRepository{BaseRepository: NewBaseRepository(db)}
}

// Save upserts so a retried buy with the same code refreshes the token.
func (r *oauthGrantRepository) Save(ctx context.Context, grant *models.OAuthGrant) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(grant).
		On("CONFLICT (code_hash) DO UPDATE").
		Set("discord_user_id = EXCLUDED.discord_user_id").
		Set("encrypted_token = EXCLUDED.encrypted_token").
		Set("expires_at = EXCLUDED.expires_at").
		Exec(ctx)
	return r.HandleErrorWithID("save", "oauth_grant", grant.CodeHash, err)
}

func (r *oauthGrantRepository) Get(ctx context.Context, codeHash string, now time.Time) (*models.OAuthGrant, error) {
	grant := new(models.OAuthGrant)
	err := r.SelectOneWithTimeout(ctx, "get", "oauth_grant", codeHash, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(grant).
			Where("og.code_hash = ?", codeHash).
			Where("og.expires_at > ?", now).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *oauthGrantRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.OAuthGrant)(nil)).
		Where("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("delete_expired", "oauth_grant", err)
	}
	return res.RowsAffected()
}
