package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/discord/mock"
)

const (
	guildID = "1100000000000000001"
	userID  = "123456789012345678"
	roleID  = "1200000000000000001"
)

func newTestGateway(t *testing.T) (*Gateway, *mock.MockRestClient) {
	client := mock.NewMockRestClient(gomock.NewController(t))
	return New(client, 1000), client
}

func TestGateway_GrantRole(t *testing.T) {
	gid, uid, rid := snowflake.MustParse(guildID), snowflake.MustParse(userID), snowflake.MustParse(roleID)

	t.Run("new member joins with role", func(t *testing.T) {
		g, client := newTestGateway(t)
		client.EXPECT().
			AddMember(gid, uid, discord.MemberAdd{AccessToken: "token", Roles: []snowflake.ID{rid}}, gomock.Any()).
			Return(&discord.Member{}, nil)

		require.NoError(t, g.GrantRole(context.Background(), guildID, userID, roleID, "token"))
	})

	t.Run("existing member gets role assigned", func(t *testing.T) {
		g, client := newTestGateway(t)
		gomock.InOrder(
			client.EXPECT().AddMember(gid, uid, gomock.Any(), gomock.Any()).Return(nil, nil),
			client.EXPECT().AddMemberRole(gid, uid, rid, gomock.Any()).Return(nil),
		)

		require.NoError(t, g.GrantRole(context.Background(), guildID, userID, roleID, "token"))
	})

	t.Run("api error surfaces", func(t *testing.T) {
		g, client := newTestGateway(t)
		apiErr := errors.New(`{"message": "Invalid OAuth2 access token", "code": 50025}`)
		client.EXPECT().AddMember(gid, uid, gomock.Any(), gomock.Any()).Return(nil, apiErr)

		err := g.GrantRole(context.Background(), guildID, userID, roleID, "token")
		require.Error(t, err)
		assert.ErrorIs(t, err, apiErr)
		assert.Contains(t, err.Error(), "Invalid OAuth2 access token")
	})

	t.Run("invalid id never reaches discord", func(t *testing.T) {
		g, _ := newTestGateway(t)
		assert.Error(t, g.GrantRole(context.Background(), "guild", userID, roleID, "token"))
	})
}

func TestGateway_RevokeRole(t *testing.T) {
	g, client := newTestGateway(t)
	apiErr := errors.New("missing permissions")
	client.EXPECT().
		RemoveMemberRole(snowflake.MustParse(guildID), snowflake.MustParse(userID), snowflake.MustParse(roleID), gomock.Any()).
		Return(apiErr)

	err := g.RevokeRole(context.Background(), guildID, userID, roleID)
	assert.ErrorIs(t, err, apiErr)
}

func TestGateway_SendDirectMessage(t *testing.T) {
	t.Run("delivers embed", func(t *testing.T) {
		g, client := newTestGateway(t)
		client.EXPECT().CreateDMChannel(snowflake.MustParse(userID), gomock.Any()).Return(&discord.DMChannel{}, nil)
		client.EXPECT().
			CreateMessage(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ snowflake.ID, m discord.MessageCreate, _ ...rest.RequestOpt) (*discord.Message, error) {
				require.Len(t, m.Embeds, 1)
				assert.Equal(t, "Hello", m.Embeds[0].Title)
				return &discord.Message{}, nil
			})

		g.SendDirectMessage(context.Background(), userID, Embed("Hello", "world", 0x57F287))
	})

	t.Run("dm channel failure is swallowed", func(t *testing.T) {
		g, client := newTestGateway(t)
		client.EXPECT().CreateDMChannel(gomock.Any(), gomock.Any()).Return(nil, errors.New("cannot send messages to this user"))

		g.SendDirectMessage(context.Background(), userID, Embed("Hello", "world", 0))
	})

	t.Run("message failure is swallowed", func(t *testing.T) {
		g, client := newTestGateway(t)
		client.EXPECT().CreateDMChannel(gomock.Any(), gomock.Any()).Return(&discord.DMChannel{}, nil)
		client.EXPECT().CreateMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		g.SendDirectMessage(context.Background(), userID, Embed("Hello", "world", 0))
	})
}

func TestGateway_SendChannelMessage(t *testing.T) {
	g, client := newTestGateway(t)
	client.EXPECT().CreateMessage(snowflake.MustParse("1300000000000000001"), gomock.Any(), gomock.Any()).Return(&discord.Message{}, nil)

	require.NoError(t, g.SendChannelMessage(context.Background(), "1300000000000000001", Embed("Audit", "", 0)))
	assert.Error(t, g.SendChannelMessage(context.Background(), "", Embed("Audit", "", 0)))
}
