package reconciler

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
	discordgw "github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/discord"
)

const (
	colorReminder = 0xF1C40F
	colorExpired  = 0x95A5A6
	colorFailure  = 0xE74C3C
)

func reminderEmbed(p *models.RolePurchase, left string) discord.Embed {
	return discordgw.Embed(
		"Role expiring soon",
		fmt.Sprintf("Your **%s** role in **%s** expires in %s. Buy it again from the server's blink to keep access.",
			p.RoleName, p.GuildName, left),
		colorReminder,
	)
}

func expiredEmbed(p *models.RolePurchase) discord.Embed {
	return discordgw.Embed(
		"Role expired",
		fmt.Sprintf("Your **%s** role in **%s** has expired.", p.RoleName, p.GuildName),
		colorExpired,
	)
}

func auditEmbed(p *models.RolePurchase, revokeErr error) discord.Embed {
	if revokeErr != nil {
		return discordgw.Embed(
			"Role expiry failed",
			fmt.Sprintf("Could not remove **%s** from <@%s> in **%s** (%s).\nPurchase `%s`\nError: %s",
				p.RoleName, p.DiscordUserID, p.GuildName, p.GuildID, p.ID, revokeErr),
			colorFailure,
		)
	}
	return discordgw.Embed(
		"Role expired",
		fmt.Sprintf("Removed **%s** from <@%s> in **%s** (%s).\nPurchase `%s`",
			p.RoleName, p.DiscordUserID, p.GuildName, p.GuildID, p.ID),
		colorExpired,
	)
}
