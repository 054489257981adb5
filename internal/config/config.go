package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

// Config holds all configuration for the application. Every field is read
// from the environment variable named in its mapstructure tag.
type Config struct {
	Port                             string        `mapstructure:"PORT"`
	GinMode                          string        `mapstructure:"GIN_MODE"`
	AppEnv                           string        `mapstructure:"APP_ENV"`
	ServiceName                      string        `mapstructure:"SERVICE_NAME"`
	StoreBackend                     string        `mapstructure:"STORE_BACKEND"` // firestore or memory
	FirebaseProjectID                string        `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"` // Base64 encoded
	FirebaseWebAPIKey                string        `mapstructure:"FIREBASE_WEB_API_KEY"`
	StripeSecretKey                  string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret              string        `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripePricePayPerService         string        `mapstructure:"STRIPE_PRICE_PAY_PER_SERVICE"`
	StripePriceBasic                 string        `mapstructure:"STRIPE_PRICE_BASIC"`
	StripePriceStandard              string        `mapstructure:"STRIPE_PRICE_STANDARD"`
	StripePricePremium               string        `mapstructure:"STRIPE_PRICE_PREMIUM"`
	ClientURL                        string        `mapstructure:"CLIENT_URL"` // Comma separated origins
	RedisAddr                        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword                    string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                          int           `mapstructure:"REDIS_DB"`
	CacheTTL                         time.Duration `mapstructure:"CACHE_TTL"` // e.g. 5m
	AMQPURL                          string        `mapstructure:"AMQP_URL"`
	SupportQueue                     string        `mapstructure:"SUPPORT_QUEUE"`
	SMTPHost                         string        `mapstructure:"SMTP_HOST"` // Support mail relay
	SMTPPort                         string        `mapstructure:"SMTP_PORT"`
	SMTPUser                         string        `mapstructure:"SMTP_USER"`
	SMTPPass                         string        `mapstructure:"SMTP_PASS"`
	SupportEmail                     string        `mapstructure:"SUPPORT_EMAIL"`
	SupportSender                    string        `mapstructure:"SUPPORT_SENDER"`
	OTLPEndpoint                     string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	RateLimitRPS                     float64       `mapstructure:"RATE_LIMIT_RPS"` // Per client key
	RateLimitBurst                   int           `mapstructure:"RATE_LIMIT_BURST"`
}

// appConfig is the configuration of the last successful LoadConfig call.
var appConfig *Config

// envKeys lists every variable bound explicitly, so Unmarshal sees keys
// that have no default.
var envKeys = []string{
	"PORT", "GIN_MODE", "APP_ENV", "SERVICE_NAME", "STORE_BACKEND",
	"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "FIREBASE_WEB_API_KEY",
	"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET",
	"STRIPE_PRICE_PAY_PER_SERVICE", "STRIPE_PRICE_BASIC", "STRIPE_PRICE_STANDARD", "STRIPE_PRICE_PREMIUM",
	"CLIENT_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"AMQP_URL", "SUPPORT_QUEUE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SUPPORT_EMAIL", "SUPPORT_SENDER",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, validates the result and stores it for GetConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "coaching-backend")
	v.SetDefault("STORE_BACKEND", StoreFirestore)
	v.SetDefault("STRIPE_PRICE_PAY_PER_SERVICE", "price_pay_per_service")
	v.SetDefault("STRIPE_PRICE_BASIC", "price_basic_monthly")
	v.SetDefault("STRIPE_PRICE_STANDARD", "price_standard_monthly")
	v.SetDefault("STRIPE_PRICE_PREMIUM", "price_premium_monthly")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("SUPPORT_QUEUE", "support_emails")
	v.SetDefault("SMTP_HOST", "smtp.mailtrap.io")
	v.SetDefault("SMTP_PORT", "2525")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	// Bind environment variables
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = &cfg
	return appConfig, nil
}

// Validate checks the required fields for the selected store backend. The
// memory backend needs nothing else. The firestore backend needs
// FIREBASE_PROJECT_ID, and a Stripe secret key must come with its webhook
// secret.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
		return nil
	case StoreFirestore:
	default:
		return errors.New("STORE_BACKEND must be one of firestore, memory")
	}
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.StripeSecretKey != "" && c.StripeWebhookSecret == "" {
		return errors.New("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}
	return nil
}

// IsProduction reports whether APP_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
