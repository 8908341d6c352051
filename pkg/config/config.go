package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SettingsBackendEnv      = "env"
	SettingsBackendPostgres = "postgres"
	SettingsBackendRedis    = "redis"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// AdminAllowedOrigins is the CORS allowlist for the embedded admin UI.
	AdminAllowedOrigins []string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often a pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB    DBConfig
	Redis RedisConfig

	// SettingsBackend selects where the remote settings record is read from on every call:
	// "env" (this process' environment), "postgres" (shopify_settings table) or "redis".
	SettingsBackend string

	Shopify ShopifyConfig
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SettingsKey string
}

type ShopifyConfig struct {
	// AppType is "Private" (credentials embedded in the URL) or "Public" (access token header).
	AppType     string
	APIKey      string
	Password    string
	ShopURL     string
	AccessToken string

	// WebhookAddress is the callback URL registered for every webhook topic.
	// Example: https://erp.example.com/v1/webhooks/shopify
	WebhookAddress string

	HTTPTimeout time.Duration
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:              env("APP_ENV", "dev"),
		HTTPAddr:            httpAddr,
		MigrationsPath:      os.Getenv("MIGRATIONS_PATH"),
		AdminAllowedOrigins: envList("ADMIN_ALLOWED_ORIGINS"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DirectURL:           os.Getenv("DIRECT_URL"),
		SettingsBackend:     strings.ToLower(env("SETTINGS_BACKEND", SettingsBackendEnv)),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "shopbridge"),
			User:     env("DB_USER", "shopbridge"),
			Password: env("DB_PASSWORD", "shopbridge"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:        env("REDIS_ADDR", "localhost:6379"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          envInt("REDIS_DB", 0),
			SettingsKey: env("SETTINGS_REDIS_KEY", "shopbridge:shopify_settings"),
		},
		Shopify: ShopifyConfig{
			AppType:        env("SHOPIFY_APP_TYPE", "Private"),
			APIKey:         os.Getenv("SHOPIFY_API_KEY"),
			Password:       os.Getenv("SHOPIFY_PASSWORD"),
			ShopURL:        os.Getenv("SHOPIFY_URL"),
			AccessToken:    os.Getenv("SHOPIFY_ACCESS_TOKEN"),
			WebhookAddress: os.Getenv("SHOPIFY_WEBHOOK_ADDRESS"),
			HTTPTimeout:    envDuration("SHOPIFY_HTTP_TIMEOUT", 30*time.Second),
		},
	}
}

// IsProd reports whether the process runs with APP_ENV=prod.
func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
