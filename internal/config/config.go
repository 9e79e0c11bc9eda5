package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string

	// Supabase
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	StorageBucket      string

	// JWT / Auth. SessionTTL is both the token lifetime and the idle
	// window: /v1/auth/refresh issues a fresh token, so an idle client
	// expires while an active one keeps its session alive.
	JWTSecret      string
	SessionTTL     time.Duration
	AdminPassword  string
	ViewerPassword string

	// Billing
	BillingEpoch string // YYYY-MM-DD, bills are never generated before this
	GenerateCron string // cron expression for the daily backlog run

	// Email notifications
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailTo       []string

	// CORS
	CORSOrigins []string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 10),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		StorageBucket:      getEnv("SUPABASE_STORAGE_BUCKET", "compliance-docs"),

		JWTSecret:      getEnv("JWT_SECRET", "rentledger-default-dev-secret-change-me"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 15*time.Minute),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		ViewerPassword: getEnv("VIEWER_PASSWORD", ""),

		BillingEpoch: getEnv("BILLING_EPOCH", "2024-01-01"),
		GenerateCron: getEnv("GENERATE_CRON", "0 6 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "rentledger@localhost"),
		MailTo:       getEnvList("MAIL_TO"),

		CORSOrigins: getEnvListDefault("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvListDefault(key string, fallback []string) []string {
	if list := getEnvList(key); list != nil {
		return list
	}
	return fallback
}
