package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Records backend
	BackendBaseURL string
	BackendTimeout time.Duration

	// Reporting currency used when a user has not chosen one
	DefaultCurrency string

	// Exchange rate provider
	ExchangeRateAPIKey      string
	ExchangeRateBaseURL     string
	ExchangeRateFallbackURL string
	ExchangeRateTimeout     time.Duration
	RateAPIRequestsPerSec   float64
	RateFreshFor            time.Duration
	RateStaleFor            time.Duration

	// Background refresh
	RefreshInterval time.Duration
	FocusTTL        time.Duration

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_TIMEOUT", "15s")
	viper.SetDefault("DEFAULT_CURRENCY", "USD")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_BASE_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGE_RATE_FALLBACK_URL", "https://api.exchangerate-api.com/v4")
	viper.SetDefault("EXCHANGE_RATE_TIMEOUT", "10s")
	viper.SetDefault("RATE_API_RPS", 5.0)
	viper.SetDefault("RATE_FRESH_FOR", "6h")
	viper.SetDefault("RATE_STALE_FOR", "48h")
	viper.SetDefault("REFRESH_INTERVAL", "30s")
	viper.SetDefault("FOCUS_TTL", "5m")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Values from .env can be overridden by actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Rates, currencies and preferences will not be persisted.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BackendBaseURL = strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/")
	cfg.BackendTimeout = durationOrDefault("BACKEND_TIMEOUT", 15*time.Second)

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("DEFAULT_CURRENCY")))
	if len(cfg.DefaultCurrency) != 3 {
		log.Printf("Warning: Invalid value for DEFAULT_CURRENCY ('%s'). Defaulting to USD.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "USD"
	}

	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Only the keyless fallback rate endpoint will be used.")
	}
	cfg.ExchangeRateBaseURL = strings.TrimRight(viper.GetString("EXCHANGE_RATE_BASE_URL"), "/")
	cfg.ExchangeRateFallbackURL = strings.TrimRight(viper.GetString("EXCHANGE_RATE_FALLBACK_URL"), "/")
	cfg.ExchangeRateTimeout = durationOrDefault("EXCHANGE_RATE_TIMEOUT", 10*time.Second)
	cfg.RateFreshFor = durationOrDefault("RATE_FRESH_FOR", 6*time.Hour)
	cfg.RateStaleFor = durationOrDefault("RATE_STALE_FOR", 48*time.Hour)

	cfg.RateAPIRequestsPerSec = viper.GetFloat64("RATE_API_RPS")
	if cfg.RateAPIRequestsPerSec <= 0 {
		cfg.RateAPIRequestsPerSec = 5
		log.Printf("Warning: RATE_API_RPS must be positive. Defaulting to %.0f.\n", cfg.RateAPIRequestsPerSec)
	}

	cfg.RefreshInterval = durationOrDefault("REFRESH_INTERVAL", 30*time.Second)
	cfg.FocusTTL = durationOrDefault("FOCUS_TTL", 5*time.Minute)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// durationOrDefault parses key as a duration, warning and falling back to def
// when it is unset or malformed.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
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
