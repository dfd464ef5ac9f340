package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Guild is the server-level sale configuration managed by the dashboard.
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	ID                    string    `bun:"id,pk,type:varchar(20)"`
	Name                  string    `bun:"name,notnull"`
	IconURL               string    `bun:"icon_url"`
	Description           string    `bun:"description,type:text"`
	SellerAddress         string    `bun:"seller_address,notnull"`
	NotificationChannelID string    `bun:"notification_channel_id,nullzero"`
	LimitedTimeRoles      bool      `bun:"limited_time_roles,notnull,default:false"`
	LimitedTimeQuantity   int       `bun:"limited_time_quantity,nullzero"`
	LimitedTimeUnit       string    `bun:"limited_time_unit,nullzero"`
	UseUSDC               bool      `bun:"use_usdc,notnull,default:false"`
	CreatedAt             time.Time `bun:"created_at,notnull,default:current_timestamp"`
	DeletedAt             time.Time `bun:"deleted_at,soft_delete,nullzero"`

	Roles []*Role `bun:"rel:has-many,join:id=guild_id"`
}
