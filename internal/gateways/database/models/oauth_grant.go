package models

import (
	"time"

	"github.com/uptrace/bun"
)

// OAuthGrant stores the sealed access token obtained from a buyer's
// authorization code between the buy and confirm steps.
type OAuthGrant struct {
	bun.BaseModel `bun:"table:oauth_grants,alias:og"`

	CodeHash       string    `bun:"code_hash,pk,type:varchar(64)"`
	DiscordUserID  string    `bun:"discord_user_id,notnull,type:varchar(20)"`
	EncryptedToken string    `bun:"encrypted_token,notnull,type:text"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
	ExpiresAt      time.Time `bun:"expires_at,notnull"`
}
