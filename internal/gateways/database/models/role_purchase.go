package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RolePurchase is one paid grant of a Discord role. Renewals add rows, the
// latest ExpiresAt among rows sharing (guild, role, user) is authoritative.
type RolePurchase struct {
	bun.BaseModel `bun:"table:role_purchases,alias:rp"`

	ID            string     `bun:"id,pk,type:uuid"`
	DiscordUserID string     `bun:"discord_user_id,notnull,type:varchar(20)"`
	GuildID       string     `bun:"guild_id,notnull,type:varchar(20)"`
	GuildName     string     `bun:"guild_name,notnull"`
	RoleID        string     `bun:"role_id,notnull,type:varchar(20)"`
	RoleName      string     `bun:"role_name,notnull"`
	ExpiresAt     *time.Time `bun:"expires_at"`
	Signature     *string    `bun:"signature"`
	PurchaseTime  time.Time  `bun:"purchase_time,notnull,default:current_timestamp"`
	DeletedAt     time.Time  `bun:"deleted_at,soft_delete,nullzero"`
}

// Permanent reports whether the purchase never expires.
func (p *RolePurchase) Permanent() bool {
	return p.ExpiresAt == nil
}

// Key identifies the (guild, role, user) triple renewals are grouped by.
func (p *RolePurchase) Key() PurchaseKey {
	return PurchaseKey{GuildID: p.GuildID, RoleID: p.RoleID, DiscordUserID: p.DiscordUserID}
}

type PurchaseKey struct {
	GuildID       string
	RoleID        string
	DiscordUserID string
}
