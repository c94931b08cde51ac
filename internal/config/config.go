package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix of all environment variables read by Load.
const EnvPrefix = "FT"

var (
	ErrInvalidPort             = errors.New("the server port must be between 1 and 65535")
	ErrMissingJWTSecret        = errors.New("auth.jwt_secret must be set")
	ErrInvalidPlaidEnvironment = errors.New("plaid.environment must be sandbox or production")
	ErrInvalidLocale           = errors.New("locale must be a valid BCP 47 language tag")
	ErrInvalidAPIURL           = errors.New("server.api_url must be an absolute URL")
)

// Config is the complete configuration of the service.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Log      Log      `mapstructure:"log"`
	Auth     Auth     `mapstructure:"auth"`
	CORS     CORS     `mapstructure:"cors"`
	Pprof    Pprof    `mapstructure:"pprof"`
	Plaid    Plaid    `mapstructure:"plaid"`
	Locale   string   `mapstructure:"locale"`
}

type Server struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"` // gin mode
	APIURL  string `mapstructure:"api_url"`
}

type Database struct {
	DSN string `mapstructure:"dsn"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // human or json
}

type Auth struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Pprof struct {
	Enabled bool `mapstructure:"enabled"`
}

// Plaid configures the bank synchronization. It is disabled when
// ClientID or Secret are empty.
type Plaid struct {
	ClientID    string `mapstructure:"client_id"`
	Secret      string `mapstructure:"secret"`
	Environment string `mapstructure:"environment"`
	WebhookURL  string `mapstructure:"webhook_url"`
	SyncDays    int    `mapstructure:"sync_days"`
}

// Enabled reports whether Plaid credentials are configured.
func (p Plaid) Enabled() bool {
	return p.ClientID != "" && p.Secret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.api_url", "http://localhost:8080")
	v.SetDefault("database.dsn", "data/finance.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("auth.bcrypt_cost", 0)
	v.SetDefault("cors.allow_origins", []string{})
	v.SetDefault("pprof.enabled", false)
	v.SetDefault("plaid.client_id", "")
	v.SetDefault("plaid.secret", "")
	v.SetDefault("plaid.environment", "sandbox")
	v.SetDefault("plaid.webhook_url", "")
	v.SetDefault("plaid.sync_days", 30)
	v.SetDefault("locale", "en-US")
}

// Load reads the configuration from defaults, the optional file at path and
// the environment, later sources overriding earlier ones. A .env file in
// the working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}

	// Environment variables hold lists as space separated strings
	if len(c.CORS.AllowOrigins) == 1 {
		c.CORS.AllowOrigins = strings.Fields(c.CORS.AllowOrigins[0])
	}

	return c, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}

	u, err := url.Parse(c.Server.APIURL)
	if err != nil || !u.IsAbs() {
		return ErrInvalidAPIURL
	}

	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	switch c.Plaid.Environment {
	case "sandbox", "production":
	default:
		return ErrInvalidPlaidEnvironment
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return ErrInvalidLocale
	}

	return nil
}

// ListenAddress returns the address the HTTP server listens on.
func (c Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Currency returns the currency of the configured locale, falling back
// to USD for regions without a currency.
func (c Config) Currency() currency.Unit {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return currency.USD
	}

	unit, confidence := currency.FromTag(tag)
	if confidence == language.No {
		return currency.USD
	}

	return unit
}
