package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StoreDriverPgsql  = "pgsql"
	StoreDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	StoreDriver        string
	MigrationsPath     string
	DBStatementTimeout time.Duration

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AuthRequired      bool

	// Ledger policies
	ApprovalThreshold decimal.Decimal
	LockedPeriods     []string // entity:book:YYYY-MM, book may be *

	// Report cache
	RedisURL       string
	ReportCacheTTL time.Duration

	RateLimit          string // ulule/limiter format, e.g. 100-M
	CORSAllowedOrigins []string
	LogLevel           string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPgsql)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "ledger-engine")
	v.SetDefault("AUTH_REQUIRED", true)
	v.SetDefault("APPROVAL_THRESHOLD", "10000")
	v.SetDefault("LOCKED_PERIODS", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REPORT_CACHE_TTL", "60s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.StoreDriver = strings.ToLower(v.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverMemory {
		cfg.StoreDriver = StoreDriverPgsql
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.DBStatementTimeout = durationOr(v, "DB_STATEMENT_TIMEOUT", 5*time.Second)

	// Load JWT Secret
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "ledger-engine"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}
	cfg.AuthRequired = v.GetBool("AUTH_REQUIRED")

	threshold, err := decimal.NewFromString(v.GetString("APPROVAL_THRESHOLD"))
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for APPROVAL_THRESHOLD ('%s'). Defaulting to %s.\n", v.GetString("APPROVAL_THRESHOLD"), threshold)
	}
	cfg.ApprovalThreshold = threshold
	cfg.LockedPeriods = splitList(v.GetString("LOCKED_PERIODS"))

	cfg.RedisURL = v.GetString("REDIS_URL")
	cfg.ReportCacheTTL = durationOr(v, "REPORT_CACHE_TTL", time.Minute)

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))

	return cfg
}

// durationOr parses key as a duration (e.g. "60m", "1h"), logging and falling back to def when invalid.
func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
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
