package blinks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/purchases"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/database/repositories"
	discordgw "github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/discord"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/oauth"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/solana"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type GuildStore interface {
	GetByID(ctx context.Context, guildID string) (*models.Guild, error)
	GetRole(ctx context.Context, guildID, roleID string) (*models.Role, error)
	ListRoles(ctx context.Context, guildID string) ([]*models.Role, error)
}

type GrantStore interface {
	Save(ctx context.Context, grant *models.OAuthGrant) error
	Get(ctx context.Context, codeHash string, now time.Time) (*models.OAuthGrant, error)
}

type PurchaseLookup interface {
	ExistsBySignature(ctx context.Context, signature string) (bool, error)
}

type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth.Grant, error)
	AuthCodeURL(state string) string
}

type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(ciphertext string) (string, error)
}

type TransactionBuilder interface {
	BuildPaymentTransaction(ctx context.Context, req solana.PaymentRequest) (*solanago.Transaction, error)
}

type PaymentVerifier interface {
	IsTransactionConfirmed(ctx context.Context, signature string) bool
}

type RoleGranter interface {
	GrantRole(ctx context.Context, guildID, userID, roleID, accessToken string) error
	SendDirectMessage(ctx context.Context, userID string, embed discord.Embed)
	SendChannelMessage(ctx context.Context, channelID string, embed discord.Embed) error
}

type Dispatcher interface {
	Go(name string, fn func(ctx context.Context) error)
}

type Config struct {
	PublicURL      string
	ExplorerURL    string
	AuditChannelID string
}

// Deps groups the collaborators of Service.
type Deps struct {
	Guilds     GuildStore
	Grants     GrantStore
	Purchases  PurchaseLookup
	Exchanger  CodeExchanger
	Tokens     TokenSealer
	Builder    TransactionBuilder
	Verifier   PaymentVerifier
	Discord    RoleGranter
	Recorder   purchases.Recorder
	Dispatcher Dispatcher
}

// Service drives the buyer flow behind the blink endpoints.
type Service struct {
	Deps
	cfg Config
	now func() time.Time
}

func NewService(deps Deps, cfg Config) *Service {
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &Service{Deps: deps, cfg: cfg, now: time.Now}
}

type DescribeRequest struct {
	GuildID string
	Code    string
}

type BuyRequest struct {
	GuildID      string
	RoleID       string
	Code         string
	Account      string
	IsDiscordBot bool
}

type ConfirmRequest struct {
	GuildID      string
	RoleID       string
	Code         string
	Signature    string
	IsDiscordBot bool
}

// Describe renders the blink for a guild. Without an authorization code the
// blink is disabled and links to the Discord consent screen instead.
func (s *Service) Describe(ctx context.Context, req DescribeRequest) (*ActionMetadata, error) {
	guild, err := s.loadGuild(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	roles, err := s.Guilds.ListRoles(ctx, guild.ID)
	if err != nil {
		return nil, internal("failed to load roles", err)
	}

	meta := &ActionMetadata{
		Type:        ActionTypeAction,
		Icon:        guild.IconURL,
		Title:       guild.Name,
		Description: guild.Description,
		Label:       "Buy role",
		Links:       &ActionLinks{},
	}

	if req.Code == "" {
		meta.Disabled = true
		meta.Error = &ActionError{Message: "Connect your Discord account to buy a role."}
		meta.Links.Actions = []LinkedAction{{
			Type:  LinkTypeExternal,
			Href:  s.Exchanger.AuthCodeURL(guild.ID),
			Label: "Connect Discord",
		}}
		return meta, nil
	}

	for _, role := range roles {
		query := url.Values{"roleId": {role.ID}, "code": {req.Code}}
		meta.Links.Actions = append(meta.Links.Actions, LinkedAction{
			Type:  ActionTypeTransaction,
			Href:  fmt.Sprintf("%s/blinks/%s/buy?%s", s.cfg.PublicURL, guild.ID, query.Encode()),
			Label: fmt.Sprintf("%s (%s)", role.Name, priceLabel(role.Amount, guild.UseUSDC)),
		})
	}
	if len(roles) == 0 {
		meta.Disabled = true
		meta.Error = &ActionError{Message: "This server has no roles for sale."}
	}
	return meta, nil
}

// Buy returns the unsigned payment transaction for a role.
func (s *Service) Buy(ctx context.Context, req BuyRequest) (*ActionPostResponse, error) {
	if req.GuildID == "" || req.RoleID == "" || req.Code == "" || req.Account == "" {
		return nil, badRequest("MISSING_PARAMS", "guildId, roleId, code and account are required", nil)
	}
	payer, err := solanago.PublicKeyFromBase58(req.Account)
	if err != nil {
		return nil, badRequest("INVALID_ACCOUNT", "account is not a valid Solana address", err)
	}

	guild, role, err := s.loadGuildRole(ctx, req.GuildID, req.RoleID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureGrant(ctx, req.Code); err != nil {
		return nil, err
	}

	tx, err := s.Builder.BuildPaymentTransaction(ctx, solana.PaymentRequest{
		Payer:     req.Account,
		Recipient: guild.SellerAddress,
		Amount:    role.Amount,
		UseUSDC:   guild.UseUSDC,
		Tracking:  solana.TrackingInstruction(guild.ID, role.ID, payer),
	})
	if err != nil {
		var insufficient *solana.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return nil, badRequest("INSUFFICIENT_FUNDS", insufficient.Error(), err)
		}
		return nil, badRequest("TRANSACTION_BUILD_FAILED", "failed to build payment transaction", err)
	}

	encoded, err := tx.ToBase64()
	if err != nil {
		return nil, badRequest("TRANSACTION_BUILD_FAILED", "failed to encode payment transaction", err)
	}

	next := url.Values{"roleId": {role.ID}, "code": {req.Code}}
	if req.IsDiscordBot {
		next.Set("isDiscordBot", "true")
	}

	return &ActionPostResponse{
		Type:        ActionTypeTransaction,
		Transaction: encoded,
		Message:     fmt.Sprintf("Buy %s in %s for %s", role.Name, guild.Name, priceLabel(role.Amount, guild.UseUSDC)),
		Links: &ActionLinks{Next: &NextAction{
			Type: LinkTypePost,
			Href: fmt.Sprintf("%s/blinks/%s/confirm?%s", s.cfg.PublicURL, guild.ID, next.Encode()),
		}},
	}, nil
}

// ensureGrant redeems code once and keeps the sealed token for Confirm.
// Retried buys with the same code reuse the stored grant.
func (s *Service) ensureGrant(ctx context.Context, code string) error {
	codeHash := oauth.HashCode(code)
	_, err := s.Grants.Get(ctx, codeHash, s.now())
	switch {
	case err == nil:
		return nil
	case !repositories.IsNotFound(err):
		return internal("failed to load authorization", err)
	}

	grant, err := s.Exchanger.Exchange(ctx, code)
	if err != nil {
		return forbidden("discord authorization failed", err)
	}
	sealed, err := s.Tokens.Seal(grant.AccessToken)
	if err != nil {
		return internal("failed to secure authorization", err)
	}

	if err := s.Grants.Save(ctx, &models.OAuthGrant{
		CodeHash:       codeHash,
		DiscordUserID:  grant.UserID,
		EncryptedToken: sealed,
		CreatedAt:      s.now(),
		ExpiresAt:      grant.Expiry,
	}); err != nil {
		return internal("failed to store authorization", err)
	}
	return nil
}

// Confirm verifies the payment and grants the role. Once payment is verified
// the buyer has paid, so later failures come back as a completed action
// carrying the error and the transaction link instead of an HTTP error.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*CompletedAction, error) {
	if req.GuildID == "" || req.RoleID == "" || req.Code == "" || req.Signature == "" {
		return nil, badRequest("MISSING_PARAMS", "guildId, roleId, code and signature are required", nil)
	}

	if !s.Verifier.IsTransactionConfirmed(ctx, req.Signature) {
		return nil, badRequest("TRANSACTION_NOT_CONFIRMED", "transaction is not confirmed", nil)
	}

	redeemed, err := s.Purchases.ExistsBySignature(ctx, req.Signature)
	if err != nil {
		return nil, internal("failed to check transaction", err)
	}
	if redeemed {
		return nil, conflict("transaction was already used for a purchase")
	}

	guild, role, err := s.loadGuildRole(ctx, req.GuildID, req.RoleID)
	if err != nil {
		return nil, err
	}

	grant, err := s.Grants.Get(ctx, oauth.HashCode(req.Code), s.now())
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, forbidden("authorization not found or expired", err)
		}
		return nil, internal("failed to load authorization", err)
	}
	accessToken, err := s.Tokens.Open(grant.EncryptedToken)
	if err != nil {
		return nil, forbidden("authorization is invalid", err)
	}

	attrs := []any{
		slog.String("type", "sys"),
		slog.String("component", "blinks"),
		slog.String("guild_id", guild.ID),
		slog.String("role_id", role.ID),
		slog.String("user_id", grant.DiscordUserID),
		slog.String("signature", req.Signature),
	}

	if err := s.Discord.GrantRole(ctx, guild.ID, grant.DiscordUserID, role.ID, accessToken); err != nil {
		metrics.RoleGrants.WithLabelValues("failed").Inc()
		slog.Error("Failed to grant purchased role", append(attrs, slog.Any("error", err))...)
		return s.completedWithError(guild, role, req.Signature, err), nil
	}
	metrics.RoleGrants.WithLabelValues("granted").Inc()

	purchase, err := s.Recorder.RecordPurchase(ctx, grant.DiscordUserID, guild, role, req.Signature)
	if err != nil {
		slog.Error("Role granted but purchase not recorded", append(attrs, slog.Any("error", err))...)
		return s.completedWithError(guild, role, req.Signature, err), nil
	}

	s.Dispatcher.Go("purchase_audit", func(ctx context.Context) error {
		return s.announce(ctx, guild, purchase)
	})

	slog.Info("Role purchase completed", attrs...)
	return &CompletedAction{
		Type:        ActionTypeCompleted,
		Icon:        guild.IconURL,
		Title:       fmt.Sprintf("You now have %s", role.Name),
		Description: purchaseDescription(purchase, s.explorerLink(req.Signature)),
		Label:       doneLabel(req.IsDiscordBot),
	}, nil
}

func (s *Service) completedWithError(guild *models.Guild, role *models.Role, signature string, cause error) *CompletedAction {
	link := s.explorerLink(signature)
	return &CompletedAction{
		Type:  ActionTypeCompleted,
		Icon:  guild.IconURL,
		Title: fmt.Sprintf("Payment received for %s", role.Name),
		Description: fmt.Sprintf(
			"Your payment went through but the role could not be assigned automatically. "+
				"Send this transaction to the server owner so they can finish it: %s", link),
		Label: "Contact the server owner",
		Error: &ActionError{Message: fmt.Sprintf("%v. Transaction: %s", cause, link)},
	}
}

// announce notifies the buyer and posts the purchase to the audit channels.
func (s *Service) announce(ctx context.Context, guild *models.Guild, purchase *models.RolePurchase) error {
	link := s.explorerLink(*purchase.Signature)
	s.Discord.SendDirectMessage(ctx, purchase.DiscordUserID, purchaseEmbed(
		"Role purchased",
		fmt.Sprintf("You bought **%s** in **%s**.\n%s", purchase.RoleName, purchase.GuildName, purchaseDescription(purchase, link)),
	))

	audit := purchaseEmbed(
		"New role purchase",
		fmt.Sprintf("<@%s> bought **%s** in **%s** (%s).\nPurchase `%s`\n%s",
			purchase.DiscordUserID, purchase.RoleName, purchase.GuildName, purchase.GuildID, purchase.ID, link),
	)

	var errs []error
	for _, channelID := range []string{s.cfg.AuditChannelID, guild.NotificationChannelID} {
		if channelID == "" {
			continue
		}
		if err := s.Discord.SendChannelMessage(ctx, channelID, audit); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) loadGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	if guildID == "" {
		return nil, badRequest("MISSING_PARAMS", "guildId is required", nil)
	}
	guild, err := s.Guilds.GetByID(ctx, guildID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, notFound("guild not found", err)
		}
		return nil, internal("failed to load guild", err)
	}
	return guild, nil
}

func (s *Service) loadGuildRole(ctx context.Context, guildID, roleID string) (*models.Guild, *models.Role, error) {
	guild, err := s.loadGuild(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.Guilds.GetRole(ctx, guildID, roleID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil, notFound("role not found", err)
		}
		return nil, nil, internal("failed to load role", err)
	}
	return guild, role, nil
}

func (s *Service) explorerLink(signature string) string {
	return s.cfg.ExplorerURL + signature
}

func priceLabel(amount float64, usdc bool) string {
	currency := "SOL"
	if usdc {
		currency = "USDC"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64) + " " + currency
}

func purchaseDescription(p *models.RolePurchase, link string) string {
	expiry := "It does not expire."
	if p.ExpiresAt != nil {
		expiry = fmt.Sprintf("It expires <t:%d:R>.", p.ExpiresAt.Unix())
	}
	return fmt.Sprintf("%s Transaction: %s", expiry, link)
}

func doneLabel(fromBot bool) string {
	if fromBot {
		return "Return to Discord"
	}
	return "Done"
}

const colorPurchase = 0x2ECC71

func purchaseEmbed(title, description string) discord.Embed {
	return discordgw.Embed(title, description, colorPurchase)
}
