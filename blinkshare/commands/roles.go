package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/sahilm/fuzzy"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
)

const (
	rolesPerPage  = 10
	rolesColor    = 0x5865F2
	rolesDeadline = 2 * time.Second
)

var Roles = discord.SlashCommandCreate{
	Name:        "roles",
	Description: "List the roles you bought in this server",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "filter",
			Description: "Only show roles whose name matches",
			Required:    false,
		},
	},
}

type ActivePurchaseFinder interface {
	FindActiveByUser(ctx context.Context, discordUserID, guildID string, now time.Time) ([]*models.RolePurchase, error)
}

// RolesHandler replies with an ephemeral, paginated list of the caller's
// active purchases in the current guild.
func RolesHandler(b *blinkshare.Bot, finder ActivePurchaseFinder) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return e.CreateMessage(ephemeral("This command only works inside a server."))
		}

		ctx, cancel := context.WithTimeout(context.Background(), rolesDeadline)
		defer cancel()

		now := time.Now()
		purchases, err := finder.FindActiveByUser(ctx, e.User().ID.String(), guildID.String(), now)
		if err != nil {
			_ = e.CreateMessage(ephemeral("Could not load your roles right now. Please try again later."))
			return fmt.Errorf("failed to load purchases: %w", err)
		}

		filter := e.SlashCommandInteractionData().String("filter")
		purchases = FilterPurchases(LatestPerRole(purchases), filter)
		if len(purchases) == 0 {
			if filter != "" {
				return e.CreateMessage(ephemeral(fmt.Sprintf("No purchased roles match `%s`.", filter)))
			}
			return e.CreateMessage(ephemeral("You have no active purchased roles in this server."))
		}

		totalPages := (len(purchases) + rolesPerPage - 1) / rolesPerPage
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle("Your roles").
					SetDescription(RolesPage(purchases, page, now)).
					SetColor(rolesColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", page+1, totalPages, len(purchases)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
	}
}

// LatestPerRole keeps the first row per role. Rows arrive ordered by role
// with the longest lasting purchase first, so renewals collapse onto it.
func LatestPerRole(purchases []*models.RolePurchase) []*models.RolePurchase {
	seen := make(map[string]struct{}, len(purchases))
	out := make([]*models.RolePurchase, 0, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.RoleID]; ok {
			continue
		}
		seen[p.RoleID] = struct{}{}
		out = append(out, p)
	}
	return out
}

type purchaseSource []*models.RolePurchase

func (s purchaseSource) String(i int) string { return s[i].RoleName }
func (s purchaseSource) Len() int            { return len(s) }

// FilterPurchases keeps fuzzy matches on the role name, best match first.
// An empty query keeps everything in its original order.
func FilterPurchases(purchases []*models.RolePurchase, query string) []*models.RolePurchase {
	query = strings.TrimSpace(query)
	if query == "" {
		return purchases
	}

	matches := fuzzy.FindFrom(query, purchaseSource(purchases))
	out := make([]*models.RolePurchase, 0, len(matches))
	for _, m := range matches {
		out = append(out, purchases[m.Index])
	}
	return out
}

// RolesPage renders one page of the list. Out of range pages are clamped.
func RolesPage(purchases []*models.RolePurchase, page int, now time.Time) string {
	start := page * rolesPerPage
	if start >= len(purchases) {
		start = max(0, (len(purchases)-1)/rolesPerPage*rolesPerPage)
	}
	end := min(start+rolesPerPage, len(purchases))

	var sb strings.Builder
	for _, p := range purchases[start:end] {
		sb.WriteString(fmt.Sprintf("**%s** • %s\n", p.RoleName, expiryLabel(p, now)))
	}
	return sb.String()
}

func expiryLabel(p *models.RolePurchase, now time.Time) string {
	if p.Permanent() {
		return "permanent"
	}
	left := p.ExpiresAt.Sub(now)
	if left < time.Hour {
		return "expires within the hour"
	}
	return fmt.Sprintf("expires <t:%d:R>", p.ExpiresAt.Unix())
}

func ephemeral(content string) discord.MessageCreate {
	return discord.MessageCreate{Content: content, Flags: discord.MessageFlagEphemeral}
}
