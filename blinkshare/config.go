package blinkshare

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

// LoadConfig reads the toml file at path, loads an optional .env next to the
// working directory and lets environment variables override secrets.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.String("type", "sys"), slog.Any("error", err))
	}

	var cfg Config
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using environment only",
			slog.String("type", "sys"),
			slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Environment string           `toml:"environment"`
	Log         LogConfig        `toml:"log"`
	Bot         BotConfig        `toml:"bot"`
	DB          DBConfig         `toml:"db"`
	Web         WebConfig        `toml:"web"`
	OAuth       OAuthConfig      `toml:"oauth"`
	Solana      SolanaConfig     `toml:"solana"`
	Security    SecurityConfig   `toml:"security"`
	Reconciler  ReconcilerConfig `toml:"reconciler"`
	Spaces      SpacesConfig     `toml:"spaces"`
}

// Duration decodes toml strings such as "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type BotConfig struct {
	DevGuilds      []snowflake.ID `toml:"dev_guilds"`
	Token          string         `toml:"token"`
	AuditChannelID snowflake.ID   `toml:"audit_channel_id"`
	RequestsPerSec float64        `toml:"requests_per_sec"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type WebConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	PublicURL    string `toml:"public_url"`
	AllowOrigins string `toml:"allow_origins"`
	RateLimit    int    `toml:"rate_limit"`

	// ProxyHeader is trusted only for requests coming from TrustedProxies.
	ProxyHeader    string   `toml:"proxy_header"`
	TrustedProxies []string `toml:"trusted_proxies"`
}

type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`
}

type SolanaConfig struct {
	RPCURL          string   `toml:"rpc_url"`
	TreasuryAddress string   `toml:"treasury_address"`
	USDCMint        string   `toml:"usdc_mint"`
	ExplorerURL     string   `toml:"explorer_url"`
	ConfirmTimeout  Duration `toml:"confirm_timeout"`
	PollInterval    Duration `toml:"poll_interval"`
}

type SecurityConfig struct {
	TokenSecret string `toml:"token_secret"`
}

type ReconcilerConfig struct {
	// Enabled defaults to true only in production when unset.
	Enabled     *bool  `toml:"enabled"`
	Schedule    string `toml:"schedule"`
	RunOnStart  bool   `toml:"run_on_start"`
	Exclusive   bool   `toml:"exclusive"`
	Concurrency int    `toml:"concurrency"`
}

type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Endpoint string `toml:"endpoint"`
	Prefix   string `toml:"prefix"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvironmentProduction)
}

// ReconcilerEnabled resolves the tri-state enabled flag.
func (c *Config) ReconcilerEnabled() bool {
	if c.Reconciler.Enabled != nil {
		return *c.Reconciler.Enabled
	}
	return c.IsProduction()
}

// Validate reports every missing setting the full service needs at once.
func (c *Config) Validate() error {
	return requireSettings(
		setting{"bot.token", c.Bot.Token},
		setting{"solana.rpc_url", c.Solana.RPCURL},
		setting{"solana.treasury_address", c.Solana.TreasuryAddress},
		setting{"security.token_secret", c.Security.TokenSecret},
		setting{"oauth.client_id", c.OAuth.ClientID},
		setting{"oauth.client_secret", c.OAuth.ClientSecret},
		setting{"db.host", c.DB.Host},
		setting{"db.database", c.DB.Database},
	)
}

// ValidateReconciler checks only what a standalone reconcile pass needs.
func (c *Config) ValidateReconciler() error {
	return requireSettings(
		setting{"bot.token", c.Bot.Token},
		setting{"db.host", c.DB.Host},
		setting{"db.database", c.DB.Database},
	)
}

type setting struct {
	key   string
	value string
}

func requireSettings(settings ...setting) error {
	var errs []error
	for _, s := range settings {
		if strings.TrimSpace(s.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", s.key))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("BLINKSHARE_ENV", &c.Environment)
	setString("DISCORD_BOT_TOKEN", &c.Bot.Token)
	setString("DISCORD_CLIENT_ID", &c.OAuth.ClientID)
	setString("DISCORD_CLIENT_SECRET", &c.OAuth.ClientSecret)
	setString("DISCORD_REDIRECT_URI", &c.OAuth.RedirectURL)
	setString("SOLANA_RPC_URL", &c.Solana.RPCURL)
	setString("TREASURY_ADDRESS", &c.Solana.TreasuryAddress)
	setString("USDC_MINT", &c.Solana.USDCMint)
	setString("TOKEN_SECRET", &c.Security.TokenSecret)
	setString("PUBLIC_URL", &c.Web.PublicURL)
	setString("DATABASE_HOST", &c.DB.Host)
	setInt("DATABASE_PORT", &c.DB.Port)
	setString("DATABASE_USER", &c.DB.User)
	setString("DATABASE_PASSWORD", &c.DB.Password)
	setString("DATABASE_NAME", &c.DB.Database)
	setString("SPACES_KEY", &c.Spaces.Key)
	setString("SPACES_SECRET", &c.Spaces.Secret)

	if v, ok := lookup("AUDIT_CHANNEL_ID"); ok && v != "" {
		if id, err := snowflake.Parse(v); err == nil {
			c.Bot.AuditChannelID = id
		}
	}
	if v, ok := lookup("RECONCILER_ENABLED"); ok && v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Reconciler.Enabled = &enabled
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvironmentDevelopment
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.DB.PoolSize == 0 {
		c.DB.PoolSize = 10
	}
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 3001
	}
	if c.Web.AllowOrigins == "" {
		c.Web.AllowOrigins = "*"
	}
	if c.Web.RateLimit == 0 {
		c.Web.RateLimit = 60
	}
	if len(c.OAuth.Scopes) == 0 {
		c.OAuth.Scopes = []string{"identify", "guilds.join"}
	}
	if c.Solana.USDCMint == "" {
		c.Solana.USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	}
	if c.Solana.ExplorerURL == "" {
		c.Solana.ExplorerURL = "https://solscan.io/tx/"
	}
	if c.Solana.ConfirmTimeout == 0 {
		c.Solana.ConfirmTimeout = Duration(60 * time.Second)
	}
	if c.Solana.PollInterval == 0 {
		c.Solana.PollInterval = Duration(2 * time.Second)
	}
	if c.Bot.RequestsPerSec == 0 {
		c.Bot.RequestsPerSec = 40
	}
	if c.Reconciler.Schedule == "" {
		c.Reconciler.Schedule = "0 * * * *"
	}
	if c.Reconciler.Concurrency == 0 {
		c.Reconciler.Concurrency = 8
	}
	if c.Spaces.Prefix == "" {
		c.Spaces.Prefix = "reconciler"
	}
}
