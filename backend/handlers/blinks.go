package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/utils"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/blinks"
)

//go:generate mockgen -source=blinks.go -destination=mock/blinks.go -package=mock

type BlinkService interface {
	Describe(ctx context.Context, req blinks.DescribeRequest) (*blinks.ActionMetadata, error)
	Buy(ctx context.Context, req blinks.BuyRequest) (*blinks.ActionPostResponse, error)
	Confirm(ctx context.Context, req blinks.ConfirmRequest) (*blinks.CompletedAction, error)
}

type BlinkHandler struct {
	svc BlinkService
}

func NewBlinkHandler(svc BlinkService) *BlinkHandler {
	return &BlinkHandler{svc: svc}
}

type buyBody struct {
	Account      string `json:"account"`
	IsDiscordBot bool   `json:"isDiscordBot"`
}

type confirmBody struct {
	Signature string `json:"signature"`
}

// Describe serves GET /blinks/:guildId.
func (h *BlinkHandler) Describe(c *fiber.Ctx) error {
	meta, err := h.svc.Describe(c.UserContext(), blinks.DescribeRequest{
		GuildID: c.Params("guildId"),
		Code:    c.Query("code"),
	})
	if err != nil {
		return h.fail(c, "describe", err)
	}
	return c.JSON(meta)
}

// Buy serves POST /blinks/:guildId/buy and answers with an unsigned transaction.
func (h *BlinkHandler) Buy(c *fiber.Ctx) error {
	var body buyBody
	if err := c.BodyParser(&body); err != nil {
		return utils.SendBadRequest(c, "INVALID_BODY", "Request body must be JSON with an account")
	}

	resp, err := h.svc.Buy(c.UserContext(), blinks.BuyRequest{
		GuildID:      c.Params("guildId"),
		RoleID:       c.Query("roleId"),
		Code:         c.Query("code"),
		Account:      body.Account,
		IsDiscordBot: body.IsDiscordBot || c.QueryBool("isDiscordBot"),
	})
	if err != nil {
		return h.fail(c, "buy", err)
	}
	return c.JSON(resp)
}

// Confirm serves POST /blinks/:guildId/confirm once the wallet has submitted
// the transaction.
func (h *BlinkHandler) Confirm(c *fiber.Ctx) error {
	var body confirmBody
	if err := c.BodyParser(&body); err != nil {
		return utils.SendBadRequest(c, "INVALID_BODY", "Request body must be JSON with a signature")
	}

	done, err := h.svc.Confirm(c.UserContext(), blinks.ConfirmRequest{
		GuildID:      c.Params("guildId"),
		RoleID:       c.Query("roleId"),
		Code:         c.Query("code"),
		Signature:    body.Signature,
		IsDiscordBot: c.QueryBool("isDiscordBot"),
	})
	if err != nil {
		return h.fail(c, "confirm", err)
	}
	return c.JSON(done)
}

func ActionsRules(c *fiber.Ctx) error {
	return c.JSON(blinks.DefaultActionsRules())
}

func (h *BlinkHandler) fail(c *fiber.Ctx, op string, err error) error {
	slog.Warn("Blink request rejected",
		slog.String("type", "http"),
		slog.String("operation", op),
		slog.String("guild_id", c.Params("guildId")),
		slog.String("role_id", c.Query("roleId")),
		slog.Any("error", err))
	return utils.SendServiceError(c, err)
}
