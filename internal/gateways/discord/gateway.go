package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=gateway.go -destination=mock/rest.go -package=mock

// RestClient is the subset of the disgo REST client the gateway uses.
type RestClient interface {
	AddMember(guildID snowflake.ID, userID snowflake.ID, memberAdd discord.MemberAdd, opts ...rest.RequestOpt) (*discord.Member, error)
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	RemoveMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	CreateDMChannel(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.DMChannel, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Gateway grants and revokes purchased roles and delivers notifications.
type Gateway struct {
	rest    RestClient
	limiter *rate.Limiter
}

// New wraps rest with a shared limiter of requestsPerSec (burst of the same size).
func New(rest RestClient, requestsPerSec float64) *Gateway {
	burst := int(requestsPerSec)
	if burst < 1 {
		burst = 1
	}
	return &Gateway{
		rest:    rest,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), burst),
	}
}

// GrantRole joins the user to the guild with their OAuth token and assigns the
// role in one call. Existing members get the role assigned separately.
func (g *Gateway) GrantRole(ctx context.Context, guildID, userID, roleID, accessToken string) error {
	ids, err := parseIDs(guildID, userID, roleID)
	if err != nil {
		return err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	member, err := g.rest.AddMember(ids[0], ids[1], discord.MemberAdd{
		AccessToken: accessToken,
		Roles:       []snowflake.ID{ids[2]},
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to add member %s to guild %s: %w", userID, guildID, err)
	}
	if member != nil {
		return nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := g.rest.AddMemberRole(ids[0], ids[1], ids[2], rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to add role %s to member %s: %w", roleID, userID, err)
	}
	return nil
}

// RevokeRole removes the role with the bot credential. Removing an absent role succeeds.
func (g *Gateway) RevokeRole(ctx context.Context, guildID, userID, roleID string) error {
	ids, err := parseIDs(guildID, userID, roleID)
	if err != nil {
		return err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := g.rest.RemoveMemberRole(ids[0], ids[1], ids[2], rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to remove role %s from member %s in guild %s: %w", roleID, userID, guildID, err)
	}
	return nil
}

// SendDirectMessage is best effort: users may have DMs disabled, so failures
// are logged and dropped.
func (g *Gateway) SendDirectMessage(ctx context.Context, userID string, embed discord.Embed) {
	id, err := snowflake.Parse(userID)
	if err != nil {
		slog.Warn("Invalid user id for direct message",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return
	}

	dmChannel, err := g.rest.CreateDMChannel(id, rest.WithCtx(ctx))
	if err != nil {
		slog.Debug("Failed to create DM channel, user may have DMs disabled",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return
	}

	if _, err = g.rest.CreateMessage(dmChannel.ID(), discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}, rest.WithCtx(ctx)); err != nil {
		slog.Debug("Failed to send direct message",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
}

// SendChannelMessage posts an embed to a guild channel, used for audit logs.
func (g *Gateway) SendChannelMessage(ctx context.Context, channelID string, embed discord.Embed) error {
	id, err := snowflake.Parse(channelID)
	if err != nil {
		return fmt.Errorf("invalid channel id %q: %w", channelID, err)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := g.rest.CreateMessage(id, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return nil
}

func parseIDs(guildID, userID, roleID string) ([3]snowflake.ID, error) {
	var ids [3]snowflake.ID
	for i, raw := range []string{guildID, userID, roleID} {
		id, err := snowflake.Parse(raw)
		if err != nil {
			return ids, fmt.Errorf("invalid snowflake %q: %w", raw, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// Embed builds the embeds sent by the reconciler and the purchase flow.
func Embed(title, description string, color int) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(description).
		SetColor(color).
		SetTimestamp(time.Now()).
		Build()
}
