package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const DiscordAPIBase = "https://discord.com/api"

var ErrExchangeFailed = errors.New("oauth code exchange failed")

// Grant is the result of redeeming an authorization code.
type Grant struct {
	AccessToken string
	UserID      string
	Expiry      time.Time
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	// APIBase overrides DiscordAPIBase, used by tests.
	APIBase string
}

type Exchanger struct {
	oauth   *oauth2.Config
	apiBase string
}

func NewExchanger(cfg Config) *Exchanger {
	base := strings.TrimRight(cfg.APIBase, "/")
	if base == "" {
		base = DiscordAPIBase
	}
	return &Exchanger{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth2/authorize",
				TokenURL:  base + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase: base,
	}
}

// AuthCodeURL is the link a buyer follows to authorize the role grant.
func (e *Exchanger) AuthCodeURL(state string) string {
	return e.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "none"))
}

// Exchange redeems code and resolves the Discord user it belongs to.
func (e *Exchanger) Exchange(ctx context.Context, code string) (*Grant, error) {
	token, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	userID, err := e.currentUserID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}

	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(7 * 24 * time.Hour)
	}
	return &Grant{AccessToken: token.AccessToken, UserID: userID, Expiry: expiry}, nil
}

func (e *Exchanger) currentUserID(ctx context.Context, token *oauth2.Token) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.apiBase+"/users/@me", nil)
	if err != nil {
		return "", err
	}

	resp, err := e.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("users/@me returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("failed to decode current user: %w", err)
	}
	if user.ID == "" {
		return "", errors.New("current user has no id")
	}
	return user.ID, nil
}
