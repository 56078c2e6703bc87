package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	QuoteSourceAPI = "api"
	QuoteSourceDB  = "db"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string `mapstructure:"PGSQL_URL" validate:"required_if=DBDriver postgres"`
	DBDriver      string `mapstructure:"DB_DRIVER" validate:"oneof=postgres memory"`
	Port          string `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction  bool   `mapstructure:"IS_PRODUCTION"`
	EnableDBCheck bool   `mapstructure:"ENABLE_DB_CHECK"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`
	DBMaxConns    int32  `mapstructure:"DB_MAX_CONNS" validate:"gte=0"`

	JWTSecret         string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	JWTExpiryDuration time.Duration `mapstructure:"JWT_EXPIRY_DURATION" validate:"gt=0"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER" validate:"required"`

	// Admin login is disabled unless both are set.
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH" validate:"required_with=AdminUsername"`

	RateQuoteSource  string        `mapstructure:"RATE_QUOTE_SOURCE" validate:"oneof=api db"`
	RateAPIBaseURL   string        `mapstructure:"RATE_API_BASE_URL" validate:"omitempty,url"`
	RateAPIKey       string        `mapstructure:"RATE_API_KEY"`
	RateQuoteTimeout time.Duration `mapstructure:"RATE_QUOTE_TIMEOUT" validate:"gt=0"`

	TelegramBotToken   string        `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID     string        `mapstructure:"TELEGRAM_CHAT_ID" validate:"required_with=TelegramBotToken"`
	TelegramAPIBaseURL string        `mapstructure:"TELEGRAM_API_BASE_URL" validate:"omitempty,url"`
	AlertTimeout       time.Duration `mapstructure:"ALERT_TIMEOUT" validate:"gt=0"`

	OTPCommand string        `mapstructure:"OTP_COMMAND"`
	OTPTimeout time.Duration `mapstructure:"OTP_TIMEOUT" validate:"gt=0"`

	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	IdempotencyTTL time.Duration `mapstructure:"IDEMPOTENCY_TTL" validate:"gt=0"`

	LoginRateLimit     string   `mapstructure:"LOGIN_RATE_LIMIT" validate:"required"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// UsesMemoryStore reports whether the process keeps the ledger in memory.
func (c *Config) UsesMemoryStore() bool {
	return c.DBDriver == DriverMemory
}

// AdminEnabled reports whether admin login is configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPasswordHash != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DB_MAX_CONNS", 0)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "multicurrency-ledger")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("RATE_QUOTE_SOURCE", QuoteSourceAPI)
	v.SetDefault("RATE_API_BASE_URL", "https://v6.exchangerate-api.com")
	v.SetDefault("RATE_API_KEY", "")
	v.SetDefault("RATE_QUOTE_TIMEOUT", "5s")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", "")
	v.SetDefault("TELEGRAM_API_BASE_URL", "https://api.telegram.org")
	v.SetDefault("ALERT_TIMEOUT", "5s")
	v.SetDefault("OTP_COMMAND", "")
	v.SetDefault("OTP_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		DBMaxConns:         v.GetInt32("DB_MAX_CONNS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTExpiryDuration:  v.GetDuration("JWT_EXPIRY_DURATION"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		AdminUsername:      v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash:  v.GetString("ADMIN_PASSWORD_HASH"),
		RateQuoteSource:    strings.ToLower(v.GetString("RATE_QUOTE_SOURCE")),
		RateAPIBaseURL:     v.GetString("RATE_API_BASE_URL"),
		RateAPIKey:         v.GetString("RATE_API_KEY"),
		RateQuoteTimeout:   v.GetDuration("RATE_QUOTE_TIMEOUT"),
		TelegramBotToken:   v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     v.GetString("TELEGRAM_CHAT_ID"),
		TelegramAPIBaseURL: v.GetString("TELEGRAM_API_BASE_URL"),
		AlertTimeout:       v.GetDuration("ALERT_TIMEOUT"),
		OTPCommand:         v.GetString("OTP_COMMAND"),
		OTPTimeout:         v.GetDuration("OTP_TIMEOUT"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		IdempotencyTTL:     v.GetDuration("IDEMPOTENCY_TTL"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RateQuoteSource == QuoteSourceAPI && cfg.RateAPIKey == "" {
		log.Println("Warning: RATE_API_KEY not set. Currency conversion will report the rate as unavailable.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
