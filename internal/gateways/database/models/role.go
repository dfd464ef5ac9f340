package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID          string    `bun:"id,pk,type:varchar(20)"`
	GuildID     string    `bun:"guild_id,notnull,type:varchar(20)"`
	Name        string    `bun:"name,notnull"`
	Amount      float64   `bun:"amount,notnull"` // SOL or USDC display units
	Description string    `bun:"description,type:text"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	DeletedAt   time.Time `bun:"deleted_at,soft_delete,nullzero"`
}
